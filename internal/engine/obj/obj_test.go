package obj

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeCorner = `# two triangles
mtllib cube.mtl
o Cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vn 0 0 1
usemtl Wood
s off
f 1/1/1 2/2/1 3/3/1
usemtl Leaf
f 1//1 3//1 4//1
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(cubeCorner))
	require.NoError(t, err)

	assert.Equal(t, []string{"cube.mtl"}, f.MaterialLibs)
	assert.Len(t, f.Positions, 4)
	assert.Len(t, f.TexCoords, 3)
	assert.Len(t, f.Normals, 1)

	require.Len(t, f.Objects, 1)
	ob := f.Objects[0]
	assert.Equal(t, "Cube", ob.Name)
	require.Len(t, ob.Faces, 2)

	assert.Equal(t, "Wood", ob.Faces[0].Material)
	assert.Equal(t, Corner{Position: 1, TexCoord: 1, Normal: 0}, ob.Faces[0].Corners[1])

	assert.Equal(t, "Leaf", ob.Faces[1].Material)
	assert.Equal(t, Corner{Position: 3, TexCoord: NoIndex, Normal: 0}, ob.Faces[1].Corners[2])
	assert.Empty(t, f.Warnings)
}

func TestDecodeRelativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	f, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, f.Objects, 1)
	assert.Equal(t, "default", f.Objects[0].Name)
	corners := f.Objects[0].Faces[0].Corners
	assert.Equal(t, 0, corners[0].Position)
	assert.Equal(t, 1, corners[1].Position)
	assert.Equal(t, 2, corners[2].Position)
}

func TestDecodeKeepsPolygonArity(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	f, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, f.Objects[0].Faces[0].Corners, 4)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad float", "v 0 x 0\n"},
		{"short vertex", "v 0 0\n"},
		{"zero index", "v 0 0 0\nf 0 1 1\n"},
		{"two corners", "v 0 0 0\nf 1 1\n"},
		{"position out of range", "v 0 0 0\nf 1 2 3\n"},
		{"texcoord out of range", "v 0 0 0\nvt 0 0\nf 1/2 1/1 1/1\n"},
		{"normal out of range", "v 0 0 0\nvn 0 1 0\nf 1//1 1//1 1//5\n"},
		{"relative before start", "v 0 0 0\nf -2 1 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestAttributeIndexIntoEmptyList(t *testing.T) {
	// A corner may name a texcoord or normal the file never declares.
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1 2/1/1 3/1/1\n"
	f, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	c := f.Objects[0].Faces[0].Corners[0]
	assert.Equal(t, mgl32.Vec2{}, f.TexCoord(c))
	assert.Equal(t, mgl32.Vec3{}, f.Normal(c))
}

func TestUnsupportedStatementWarns(t *testing.T) {
	f, err := Decode(strings.NewReader("v 0 0 0\nl 1 1\n"))
	require.NoError(t, err)
	require.Len(t, f.Warnings, 1)
	assert.Contains(t, f.Warnings[0], "line 2")
}

func TestDecodeLibrary(t *testing.T) {
	src := `newmtl Wood
Ka 0.1 0.1 0.1
Kd 0.6 0.4 0.2
Ks 0.3 0.3 0.3
Ns 30
d 1
illum 2
map_Kd -s 1 1 1 bark.png

newmtl Leaf
Tr 0.25
map_Kd leaf.tga
map_Bump leaf_n.png
`
	lib, err := DecodeLibrary(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, lib.Materials, 2)
	wood, ok := lib.Lookup("Wood")
	require.True(t, ok)
	assert.Equal(t, 0, wood.Index)
	assert.Equal(t, mgl32.Vec3{0.6, 0.4, 0.2}, wood.Diffuse)
	assert.Equal(t, mgl32.Vec3{0.3, 0.3, 0.3}, wood.Specular)
	assert.Equal(t, float32(30), wood.Shininess)
	assert.Equal(t, 2, wood.Illum)
	assert.Equal(t, "bark.png", wood.DiffuseMap)

	leaf, ok := lib.Lookup("Leaf")
	require.True(t, ok)
	assert.Equal(t, 1, leaf.Index)
	assert.InDelta(t, 0.75, leaf.Opacity, 1e-6)
	assert.Equal(t, "leaf.tga", leaf.DiffuseMap)
	assert.Len(t, lib.Warnings, 2, "Ka and map_Bump are not rendered")

	_, ok = lib.Lookup("Stone")
	assert.False(t, ok)
}

func TestDecodeLibraryErrors(t *testing.T) {
	_, err := DecodeLibrary(strings.NewReader("Kd 1 1 1\n"))
	assert.Error(t, err, "statement before newmtl")

	_, err = DecodeLibrary(strings.NewReader("newmtl A\nKd 1 one 1\n"))
	assert.Error(t, err)
}

func TestLibraryMerge(t *testing.T) {
	a, err := DecodeLibrary(strings.NewReader("newmtl A\nnewmtl B\n"))
	require.NoError(t, err)
	b, err := DecodeLibrary(strings.NewReader("newmtl B\nnewmtl C\n"))
	require.NoError(t, err)

	var lib Library
	lib.Merge(a)
	lib.Merge(b)

	require.Len(t, lib.Materials, 3)
	for i, name := range []string{"A", "B", "C"} {
		assert.Equal(t, name, lib.Materials[i].Name)
		assert.Equal(t, i, lib.Materials[i].Index)
	}
}
