package bridge

import (
	"fmt"
	"maps"
	"time"

	"asset-bridge/core/engine"
)

// Vector3 is a host-visible point or direction.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Mesh is the host-visible copy of a native mesh.
type Mesh struct {
	Name          string     `json:"name"`
	Vertices      []Vector3  `json:"vertices"`
	Normals       []Vector3  `json:"normals,omitempty"`
	Faces         [][]uint32 `json:"faces"`
	MaterialIndex int        `json:"material_index"`
}

// Material is the host-visible copy of a native material.
type Material struct {
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Node is the host-visible copy of a scene graph node.
type Node struct {
	Name     string  `json:"name"`
	Meshes   []int   `json:"meshes,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Scene is an independent copy of a native scene. It shares no memory with
// the importer, so it stays valid after the session loads again or is freed.
type Scene struct {
	Source     string          `json:"source"`
	Flags      uint32          `json:"flags"`
	Meshes     []Mesh          `json:"meshes"`
	Materials  []Material      `json:"materials"`
	Root       *Node           `json:"root"`
	Properties []PropertyValue `json:"-"`
	LoadedAt   time.Time       `json:"loaded_at"`
}

// SceneSummary holds aggregate counts for a scene.
type SceneSummary struct {
	Source    string `json:"source"`
	Meshes    int    `json:"meshes"`
	Vertices  int    `json:"vertices"`
	Faces     int    `json:"faces"`
	Materials int    `json:"materials"`
	Nodes     int    `json:"nodes"`
}

// Summary counts the scene contents.
func (s *Scene) Summary() SceneSummary {
	sum := SceneSummary{
		Source:    s.Source,
		Meshes:    len(s.Meshes),
		Materials: len(s.Materials),
		Nodes:     countNodes(s.Root),
	}
	for _, m := range s.Meshes {
		sum.Vertices += len(m.Vertices)
		sum.Faces += len(m.Faces)
	}
	return sum
}

// Property returns the value of a property that was in effect for the load
// that produced the scene.
func (s *Scene) Property(name string) (PropertyValue, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyValue{}, false
}

func countNodes(n *Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	return count
}

// copyScene builds the host-visible scene field by field. maxVertices bounds
// the total vertex count; zero disables the limit.
func copyScene(native *engine.Scene, maxVertices int) (*Scene, error) {
	if native == nil {
		return nil, fmt.Errorf("%w: engine returned no scene", ErrImportFailure)
	}
	if maxVertices > 0 {
		if n := native.VertexCount(); n > maxVertices {
			return nil, fmt.Errorf("%w: scene has %d vertices, limit is %d", ErrAllocationFailure, n, maxVertices)
		}
	}

	out := &Scene{
		Flags:     native.Flags,
		Meshes:    make([]Mesh, 0, len(native.Meshes)),
		Materials: make([]Material, 0, len(native.Materials)),
	}

	for mi, m := range native.Meshes {
		if m == nil {
			return nil, fmt.Errorf("%w: mesh %d is nil", ErrAllocationFailure, mi)
		}
		mesh := Mesh{
			Name:          m.Name,
			Vertices:      copyVectors(m.Vertices),
			Normals:       copyVectors(m.Normals),
			Faces:         make([][]uint32, 0, len(m.Faces)),
			MaterialIndex: m.MaterialIndex,
		}
		for fi, f := range m.Faces {
			for _, idx := range f.Indices {
				if int(idx) >= len(m.Vertices) {
					return nil, fmt.Errorf("%w: mesh %d face %d references vertex %d of %d", ErrAllocationFailure, mi, fi, idx, len(m.Vertices))
				}
			}
			mesh.Faces = append(mesh.Faces, append([]uint32(nil), f.Indices...))
		}
		out.Meshes = append(out.Meshes, mesh)
	}

	for _, m := range native.Materials {
		if m == nil {
			continue
		}
		out.Materials = append(out.Materials, Material{Name: m.Name, Properties: maps.Clone(m.Properties)})
	}

	root, err := copyNode(native.Root, len(out.Meshes))
	if err != nil {
		return nil, err
	}
	out.Root = root
	return out, nil
}

func copyVectors(in []engine.Vector3) []Vector3 {
	if len(in) == 0 {
		return nil
	}
	out := make([]Vector3, len(in))
	for i, v := range in {
		out[i] = Vector3{X: v.X, Y: v.Y, Z: v.Z}
	}
	return out
}

func copyNode(n *engine.Node, meshCount int) (*Node, error) {
	if n == nil {
		return &Node{Name: "root"}, nil
	}
	out := &Node{Name: n.Name}
	for _, idx := range n.Meshes {
		if idx < 0 || idx >= meshCount {
			return nil, fmt.Errorf("%w: node %q references mesh %d of %d", ErrAllocationFailure, n.Name, idx, meshCount)
		}
		out.Meshes = append(out.Meshes, idx)
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		child, err := copyNode(c, meshCount)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
	}
	return out, nil
}
