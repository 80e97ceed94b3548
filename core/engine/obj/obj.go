// Package obj adapts the gwob Wavefront OBJ parser to engine.Importer.
//
// Every object, group or material run becomes one mesh. gwob splits quads
// into triangles while parsing, so faces are always triangles whether or not
// engine.FlagTriangulate is set. Texture coordinates and material libraries
// are ignored.
package obj

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/udhos/gwob"

	"asset-bridge/core/engine"
)

// Properties understood by the importer.
const (
	PropGlobalScale  = "GLOBAL_SCALE"
	PropRootNodeName = "ROOT_NODE_NAME"
	PropSkipNormals  = "SKIP_NORMALS"
)

// Extensions lists the file extensions the importer accepts.
var Extensions = []string{".obj"}

var errClosed = errors.New("importer closed")

// Importer reads OBJ files.
type Importer struct {
	ints   map[string]int32
	floats map[string]float32
	strs   map[string]string
	scene  *engine.Scene
	closed bool
}

// New creates an importer with no properties set.
func New() *Importer {
	return &Importer{
		ints:   make(map[string]int32),
		floats: make(map[string]float32),
		strs:   make(map[string]string),
	}
}

// NewFactory returns a factory producing OBJ importers.
func NewFactory() engine.Factory {
	return engine.FactoryFunc(func() (engine.Importer, error) {
		return New(), nil
	})
}

// KnownProperties implements engine.Catalog.
func (i *Importer) KnownProperties() []string {
	return []string{PropGlobalScale, PropRootNodeName, PropSkipNormals}
}

func (i *Importer) SetPropertyInteger(name string, value int32) { i.ints[name] = value }
func (i *Importer) SetPropertyFloat(name string, value float32) { i.floats[name] = value }
func (i *Importer) SetPropertyString(name, value string)        { i.strs[name] = value }

// Close drops the owned scene. Further imports fail.
func (i *Importer) Close() error {
	i.scene = nil
	i.closed = true
	return nil
}

// Import parses the file at path into a scene owned by the importer.
func (i *Importer) Import(path string, flags uint32) (*engine.Scene, error) {
	if i.closed {
		return nil, errClosed
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".obj" {
		return nil, fmt.Errorf("%w: %q", engine.ErrUnsupported, ext)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open asset: %w", err)
	}

	root := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name, ok := i.strs[PropRootNodeName]; ok && name != "" {
		root = name
	}

	b := builder{
		scale:       1,
		skipNormals: i.ints[PropSkipNormals] != 0,
		flags:       flags,
		matIndex:    make(map[string]int),
	}
	if s, ok := i.floats[PropGlobalScale]; ok && s != 0 {
		b.scale = s
	}

	o, err := parse(path, b.skipNormals)
	if err != nil {
		return nil, err
	}
	scene, err := b.build(o, root)
	if err != nil {
		return nil, err
	}
	i.scene = scene
	return scene, nil
}

// parse runs gwob and turns its non-fatal diagnostics about malformed
// vertex or face statements into an error. Unknown statements and empty
// groups are skipped.
func parse(path string, skipNormals bool) (o *gwob.Obj, err error) {
	var problems []string
	opts := &gwob.ObjParserOptions{
		IgnoreNormals: skipNormals,
		Logger: func(msg string) {
			m := strings.ToLower(msg)
			if strings.Contains(m, "group size") {
				return
			}
			if strings.Contains(m, "bad ") || strings.Contains(m, "error") || strings.Contains(m, "invalid") {
				problems = append(problems, strings.TrimSpace(msg))
			}
		},
	}

	// gwob indexes normals without a bounds check.
	defer func() {
		if r := recover(); r != nil {
			o, err = nil, fmt.Errorf("malformed asset: %v", r)
		}
	}()

	o, err = gwob.NewObjFromFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("malformed asset: %s", problems[0])
	}
	return o, nil
}

type builder struct {
	scale       float32
	skipNormals bool
	flags       uint32

	materials []*engine.Material
	matIndex  map[string]int
}

func (b *builder) build(o *gwob.Obj, rootName string) (*engine.Scene, error) {
	if len(o.Indices) == 0 {
		return nil, errors.New("asset contains no geometry")
	}
	stride := o.StrideSize / 4
	if stride == 0 || len(o.Coord)%stride != 0 || len(o.Indices)%3 != 0 {
		return nil, errors.New("malformed asset: inconsistent vertex attributes")
	}
	count := len(o.Coord) / stride
	normals := o.NormCoordFound && !b.skipNormals

	var meshes []*engine.Mesh
	for _, g := range o.Groups {
		if g.IndexCount < 3 {
			continue
		}
		name := g.Name
		if name == "" {
			name = "default"
		}
		m := &engine.Mesh{Name: name, MaterialIndex: b.material(g.Usemtl)}

		// gwob indices already identify a unique position/texture/normal
		// triple, so they only need compacting per mesh.
		remap := make(map[int]uint32)
		tri := o.Indices[g.IndexBegin : g.IndexBegin+g.IndexCount]
		for k := 0; k+2 < len(tri); k += 3 {
			face := make([]uint32, 3)
			for n, idx := range tri[k : k+3] {
				if idx < 0 || idx >= count {
					return nil, fmt.Errorf("malformed asset: vertex %d out of range", idx)
				}
				local, ok := remap[idx]
				if !ok {
					local = uint32(len(m.Vertices))
					remap[idx] = local
					x, y, z := o.VertexCoordinates(idx)
					m.Vertices = append(m.Vertices, engine.Vector3{X: x * b.scale, Y: y * b.scale, Z: z * b.scale})
					if normals {
						f := o.StrideOffsetNormal/4 + idx*stride
						m.Normals = append(m.Normals, engine.Vector3{X: o.Coord[f], Y: o.Coord[f+1], Z: o.Coord[f+2]})
					}
				}
				face[n] = local
			}
			if b.flags&engine.FlagFlipWinding != 0 {
				face[0], face[2] = face[2], face[0]
			}
			m.Faces = append(m.Faces, engine.Face{Indices: face})
		}
		meshes = append(meshes, m)
	}
	if len(meshes) == 0 {
		return nil, errors.New("asset contains no geometry")
	}

	root := &engine.Node{Name: rootName}
	for idx, m := range meshes {
		root.Children = append(root.Children, &engine.Node{Name: m.Name, Meshes: []int{idx}})
	}

	return &engine.Scene{
		Flags:     b.flags,
		Meshes:    meshes,
		Materials: b.materials,
		Root:      root,
	}, nil
}

func (b *builder) material(name string) int {
	if name == "" {
		name = "default"
	}
	if idx, ok := b.matIndex[name]; ok {
		return idx
	}
	idx := len(b.materials)
	b.materials = append(b.materials, &engine.Material{Name: name, Properties: map[string]string{}})
	b.matIndex[name] = idx
	return idx
}
