package model

import "github.com/go-gl/mathgl/mgl32"

// Interleave packs the vertices as position, texcoord, normal floats.
func (s *Submesh) Interleave() []float32 {
	out := make([]float32, 0, len(s.Vertices)*FloatsPerVertex)
	for _, v := range s.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.TexCoord[0], v.TexCoord[1],
			v.Normal[0], v.Normal[1], v.Normal[2],
		)
	}
	return out
}

// Bounds returns the bounding box of the submesh positions.
// An empty submesh has zero bounds.
func (s *Submesh) Bounds() Bounds {
	if len(s.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: s.Vertices[0].Position, Max: s.Vertices[0].Position}
	for _, v := range s.Vertices[1:] {
		b = b.extend(v.Position)
	}
	return b
}

func (b Bounds) extend(p mgl32.Vec3) Bounds {
	for i := range p {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Union returns the box enclosing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return b.extend(o.Min).extend(o.Max)
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}
