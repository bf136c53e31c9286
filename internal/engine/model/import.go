package model

import (
	"bytes"
	"fmt"
	"path"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/obj"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/texture"
)

// Loader reads asset files by slash-separated path.
// assets.Manager and fstest.MapFS both satisfy it.
type Loader interface {
	ReadFile(name string) ([]byte, error)
}

// Mesh is an imported mesh file with its decoded material textures.
// It holds CPU-side data only; see Model for the uploaded form.
type Mesh struct {
	Path      string
	Submeshes []Submesh
	Materials []*obj.Material    // declaration order
	Textures  []*texture.Texture // one per material with a diffuse map, in declaration order
	Warnings  []string
}

// Texture returns the texture of the named material.
func (m *Mesh) Texture(material string) (*texture.Texture, bool) {
	for _, t := range m.Textures {
		if t.Name == material {
			return t, true
		}
	}
	return nil, false
}

// Material returns the declared material with the given name.
func (m *Mesh) Material(name string) (*obj.Material, bool) {
	for _, mat := range m.Materials {
		if mat.Name == name {
			return mat, true
		}
	}
	return nil, false
}

// Bounds returns the bounding box of all submeshes.
func (m *Mesh) Bounds() Bounds {
	var b Bounds
	first := true
	for i := range m.Submeshes {
		if len(m.Submeshes[i].Vertices) == 0 {
			continue
		}
		sb := m.Submeshes[i].Bounds()
		if first {
			b, first = sb, false
			continue
		}
		b = b.Union(sb)
	}
	return b
}

// Import reads the mesh at meshPath, its material libraries (resolved next to
// the mesh) and every diffuse map (resolved under materialDir).
//
// Each face corner becomes its own vertex; nothing is deduplicated. Faces
// are grouped into one submesh per object and material pair, in order of
// first appearance.
func Import(loader Loader, meshPath, materialDir string, opts ImportOptions) (*Mesh, error) {
	data, err := loader.ReadFile(meshPath)
	if err != nil {
		return nil, fmt.Errorf("reading mesh %s: %w", meshPath, err)
	}
	file, err := obj.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing mesh %s: %w", meshPath, err)
	}

	mesh := &Mesh{Path: meshPath, Warnings: file.Warnings}

	var lib obj.Library
	for _, name := range file.MaterialLibs {
		libPath := path.Join(path.Dir(meshPath), name)
		data, err := loader.ReadFile(libPath)
		if err != nil {
			return nil, fmt.Errorf("reading material library %s: %w", libPath, err)
		}
		l, err := obj.DecodeLibrary(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing material library %s: %w", libPath, err)
		}
		lib.Merge(l)
	}
	mesh.Materials = lib.Materials
	mesh.Warnings = append(mesh.Warnings, lib.Warnings...)

	if mesh.Submeshes, err = buildSubmeshes(file, opts); err != nil {
		return nil, fmt.Errorf("mesh %s: %w", meshPath, err)
	}
	for _, sm := range mesh.Submeshes {
		if _, ok := lib.Lookup(sm.Material); sm.Material != "" && !ok {
			mesh.Warnings = append(mesh.Warnings, fmt.Sprintf("submesh %s uses undeclared material %s", sm.Name, sm.Material))
		}
	}

	for _, mat := range lib.Materials {
		if mat.DiffuseMap == "" {
			continue
		}
		texPath := path.Join(materialDir, mat.DiffuseMap)
		data, err := loader.ReadFile(texPath)
		if err != nil {
			return nil, fmt.Errorf("reading texture %s: %w", texPath, err)
		}
		tex, err := texture.Decode(texPath, data)
		if err != nil {
			return nil, fmt.Errorf("reading texture %s: %w", texPath, err)
		}
		tex.Index = mat.Index
		tex.Name = mat.Name
		mesh.Textures = append(mesh.Textures, tex)
	}

	return mesh, nil
}

type submeshKey struct {
	object   int
	material string
}

func buildSubmeshes(file *obj.File, opts ImportOptions) ([]Submesh, error) {
	var submeshes []Submesh
	index := make(map[submeshKey]int)

	for oi, ob := range file.Objects {
		materials := 0
		for _, face := range ob.Faces {
			key := submeshKey{oi, face.Material}
			if _, ok := index[key]; !ok {
				index[key] = len(submeshes)
				submeshes = append(submeshes, Submesh{Name: ob.Name, Material: face.Material})
				materials++
			}
		}
		if materials > 1 {
			for key, i := range index {
				if key.object == oi {
					submeshes[i].Name = ob.Name + "/" + key.material
				}
			}
		}
	}

	// raw holds each submesh's per-corner position indices for SourceIndices mode.
	raw := make([][]uint32, len(submeshes))
	for oi, ob := range file.Objects {
		for fi, face := range ob.Faces {
			if len(face.Corners) != 3 {
				return nil, fmt.Errorf("object %s face %d has %d corners: %w", ob.Name, fi, len(face.Corners), ErrNotTriangulated)
			}
			si := index[submeshKey{oi, face.Material}]
			sm := &submeshes[si]
			for _, c := range face.Corners {
				sm.Vertices = append(sm.Vertices, Vertex{
					Position: file.Positions[c.Position],
					TexCoord: file.TexCoord(c),
					Normal:   file.Normal(c),
				})
				raw[si] = append(raw[si], uint32(c.Position))
			}
		}
	}

	// Index buffers are built separately from the vertex loop.
	for si := range submeshes {
		sm := &submeshes[si]
		if !opts.SourceIndices {
			sm.Indices = make([]uint32, len(sm.Vertices))
			for i := range sm.Indices {
				sm.Indices[i] = uint32(i)
			}
			continue
		}
		for corner, idx := range raw[si] {
			if int(idx) >= len(sm.Vertices) || sm.Vertices[idx] != sm.Vertices[corner] {
				return nil, fmt.Errorf("submesh %s corner %d index %d: %w", sm.Name, corner, idx, ErrIndexMismatch)
			}
		}
		sm.Indices = raw[si]
	}
	return submeshes, nil
}
