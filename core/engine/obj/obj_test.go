package obj_test

import (
	"os"
	"path/filepath"
	"testing"

	"asset-bridge/core/engine"
	"asset-bridge/core/engine/obj"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quad = `# unit quad
o plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
usemtl red
f 1//1 2//1 3//1 4//1
`

func writeAsset(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestImport_Quad(t *testing.T) {
	imp := obj.New()
	scene, err := imp.Import(writeAsset(t, "quad.obj", quad), 0)
	require.NoError(t, err)

	require.Len(t, scene.Meshes, 1)
	m := scene.Meshes[0]
	assert.Equal(t, "plane", m.Name)
	assert.Len(t, m.Vertices, 4)
	assert.Len(t, m.Normals, 4)
	require.Len(t, m.Faces, 2)
	assert.Equal(t, []uint32{0, 1, 2}, m.Faces[0].Indices)
	assert.Equal(t, []uint32{2, 3, 0}, m.Faces[1].Indices)
	assert.Equal(t, "red", scene.Materials[m.MaterialIndex].Name)
	assert.Equal(t, "quad", scene.Root.Name)
	require.Len(t, scene.Root.Children, 1)
	assert.Equal(t, []int{0}, scene.Root.Children[0].Meshes)
}

func TestImport_Flags(t *testing.T) {
	path := writeAsset(t, "quad.obj", quad)

	t.Run("Triangulate", func(t *testing.T) {
		scene, err := obj.New().Import(path, engine.FlagTriangulate)
		require.NoError(t, err)
		faces := scene.Meshes[0].Faces
		require.Len(t, faces, 2)
		for _, f := range faces {
			assert.Len(t, f.Indices, 3)
		}
	})

	t.Run("FlipWinding", func(t *testing.T) {
		scene, err := obj.New().Import(path, engine.FlagFlipWinding)
		require.NoError(t, err)
		faces := scene.Meshes[0].Faces
		assert.Equal(t, []uint32{2, 1, 0}, faces[0].Indices)
		assert.Equal(t, []uint32{0, 3, 2}, faces[1].Indices)
	})
}

func TestImport_Properties(t *testing.T) {
	imp := obj.New()
	imp.SetPropertyFloat(obj.PropGlobalScale, 2)
	imp.SetPropertyString(obj.PropRootNodeName, "model")
	imp.SetPropertyInteger(obj.PropSkipNormals, 1)
	imp.SetPropertyInteger("IMPORT_FLAG", 5)

	scene, err := imp.Import(writeAsset(t, "quad.obj", quad), 0)
	require.NoError(t, err)

	assert.Equal(t, "model", scene.Root.Name)
	assert.Equal(t, engine.Vector3{X: 2, Y: 2, Z: 0}, scene.Meshes[0].Vertices[2])
	assert.Empty(t, scene.Meshes[0].Normals)
}

func TestImport_Failures(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"WrongExtension", "model.fbx", quad},
		{"NoGeometry", "empty.obj", "v 0 0 0\n"},
		{"BadIndex", "bad.obj", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 9\n"},
		{"BadVector", "bad.obj", "v 0 zero 0\n"},
		{"BadNormalIndex", "bad.obj", "v 0 0 0\nv 1 0 0\nv 1 1 0\nvn 0 0 1\nf 1//1 2//1 3//7\n"},
		{"PentagonFace", "bad.obj", "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv 0 2 0\nf 1 2 3 4 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := obj.New().Import(writeAsset(t, tt.file, tt.body), 0)
			assert.Error(t, err)
		})
	}

	t.Run("MissingFile", func(t *testing.T) {
		_, err := obj.New().Import(filepath.Join(t.TempDir(), "missing.obj"), 0)
		assert.Error(t, err)
	})

	t.Run("Closed", func(t *testing.T) {
		imp := obj.New()
		require.NoError(t, imp.Close())
		_, err := imp.Import(writeAsset(t, "quad.obj", quad), 0)
		assert.Error(t, err)
	})
}

func TestImport_NegativeIndices(t *testing.T) {
	body := "o tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	scene, err := obj.New().Import(writeAsset(t, "tri.obj", body), 0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, scene.Meshes[0].Faces[0].Indices)
}

func TestImport_SharedPositionDistinctNormals(t *testing.T) {
	body := `o wedge
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
vn 0 0 1
vn 1 0 0
f 1//1 2//1 3//1
f 1//2 3//2 4//2
`
	scene, err := obj.New().Import(writeAsset(t, "wedge.obj", body), 0)
	require.NoError(t, err)

	m := scene.Meshes[0]
	require.Len(t, m.Vertices, 6)
	require.Len(t, m.Normals, 6)
	assert.Equal(t, m.Vertices[0], m.Vertices[3])
	assert.Equal(t, engine.Vector3{Z: 1}, m.Normals[0])
	assert.Equal(t, engine.Vector3{X: 1}, m.Normals[3])
	assert.Equal(t, []uint32{3, 4, 5}, m.Faces[1].Indices)
}

func TestImport_Groups(t *testing.T) {
	body := `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
o first
usemtl red
f 1 2 3
o second
usemtl blue
f 1 3 4
`
	scene, err := obj.New().Import(writeAsset(t, "pair.obj", body), 0)
	require.NoError(t, err)

	require.Len(t, scene.Meshes, 2)
	assert.Equal(t, "first", scene.Meshes[0].Name)
	assert.Equal(t, "second", scene.Meshes[1].Name)
	assert.Equal(t, "red", scene.Materials[scene.Meshes[0].MaterialIndex].Name)
	assert.Equal(t, "blue", scene.Materials[scene.Meshes[1].MaterialIndex].Name)
	assert.Len(t, scene.Meshes[1].Vertices, 3)
	require.Len(t, scene.Root.Children, 2)
	assert.Equal(t, []int{1}, scene.Root.Children[1].Meshes)
}

func TestImport_EmptyGroupSkipped(t *testing.T) {
	body := "o helper\no tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nl 1 2\n"
	scene, err := obj.New().Import(writeAsset(t, "tri.obj", body), 0)
	require.NoError(t, err)
	require.Len(t, scene.Meshes, 1)
	assert.Equal(t, "tri", scene.Meshes[0].Name)
}

func TestFactory(t *testing.T) {
	imp, err := obj.NewFactory().NewImporter()
	require.NoError(t, err)
	cat, ok := imp.(engine.Catalog)
	require.True(t, ok)
	assert.Contains(t, cat.KnownProperties(), obj.PropGlobalScale)
}
