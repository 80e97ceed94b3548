package engine

// Vector3 is a point or direction in model space.
type Vector3 struct {
	X, Y, Z float32
}

// Face is one polygon as indices into the owning mesh's vertices.
type Face struct {
	Indices []uint32
}

// Mesh is a set of polygons sharing one material.
type Mesh struct {
	Name          string
	Vertices      []Vector3
	Normals       []Vector3
	Faces         []Face
	MaterialIndex int
}

// Material is a named bag of material properties.
type Material struct {
	Name       string
	Properties map[string]string
}

// Node is one element of the scene hierarchy.
type Node struct {
	Name     string
	Meshes   []int
	Children []*Node
}

// Scene is the native import result.
type Scene struct {
	Flags     uint32
	Meshes    []*Mesh
	Materials []*Material
	Root      *Node
}

// VertexCount returns the number of vertices across all meshes.
func (s *Scene) VertexCount() int {
	n := 0
	for _, m := range s.Meshes {
		n += len(m.Vertices)
	}
	return n
}
