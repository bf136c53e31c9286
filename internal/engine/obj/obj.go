// Package obj decodes Wavefront OBJ meshes (*.obj) and their material
// libraries (*.mtl).
//
// Only the geometry and material statements used by the game's assets are
// interpreted; other statements are kept as warnings. Faces are stored with
// their original arity, so callers decide how to treat polygons.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// NoIndex marks a face corner without a texcoord or normal reference.
const NoIndex = -1

// File holds everything decoded from one OBJ stream.
type File struct {
	Positions    []mgl32.Vec3
	TexCoords    []mgl32.Vec2
	Normals      []mgl32.Vec3
	Objects      []Object
	MaterialLibs []string // mtllib references in declaration order
	Warnings     []string
}

// Object is a named group of faces started by an "o" or "g" statement.
type Object struct {
	Name  string
	Faces []Face
}

// Face is one polygon. Material is the name from the last usemtl, or "".
type Face struct {
	Corners  []Corner
	Material string
	Smooth   bool
}

// Corner holds zero-based attribute indices for one face vertex.
// TexCoord and Normal are NoIndex when the corner does not declare them.
type Corner struct {
	Position int
	TexCoord int
	Normal   int
}

const blanks = "\r\n\t "

type decoder struct {
	file     *File
	line     int
	object   *Object
	material string
	smooth   bool
}

// Decode parses an OBJ stream.
// Relative (negative) indices are resolved against the attributes declared
// so far. Index ranges are checked once the whole stream has been read.
func Decode(r io.Reader) (*File, error) {
	dec := &decoder{file: &File{}}
	if err := parseLines(r, &dec.line, dec.parseLine); err != nil {
		return nil, err
	}
	if err := dec.file.validate(); err != nil {
		return nil, err
	}
	return dec.file, nil
}

// parseLines trims each line and hands it to parseLine, tracking the line number.
func parseLines(r io.Reader, line *int, parseLine func(string) error) error {
	bufin := bufio.NewReader(r)
	*line = 1
	for {
		text, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if perr := parseLine(strings.Trim(text, blanks)); perr != nil {
			return perr
		}
		if err == io.EOF {
			return nil
		}
		*line++
	}
}

func (dec *decoder) errorf(format string, args ...any) error {
	return fmt.Errorf("obj: line %d: %s", dec.line, fmt.Sprintf(format, args...))
}

func (dec *decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "mtllib":
		if len(fields) < 2 {
			return dec.errorf("mtllib with no fields")
		}
		dec.file.MaterialLibs = append(dec.file.MaterialLibs, strings.Join(fields[1:], " "))
	case "o", "g":
		name := "default"
		if len(fields) > 1 {
			name = strings.Join(fields[1:], " ")
		}
		dec.startObject(name)
	case "v":
		v, err := dec.parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.file.Positions = append(dec.file.Positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := dec.parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		dec.file.TexCoords = append(dec.file.TexCoords, mgl32.Vec2{v[0], v[1]})
	case "vn":
		v, err := dec.parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.file.Normals = append(dec.file.Normals, mgl32.Vec3{v[0], v[1], v[2]})
	case "f":
		return dec.parseFace(fields[1:])
	case "usemtl":
		if len(fields) < 2 {
			return dec.errorf("usemtl with no fields")
		}
		dec.material = fields[1]
	case "s":
		if len(fields) < 2 {
			return dec.errorf("'s' with no fields")
		}
		dec.smooth = fields[1] != "0" && fields[1] != "off"
	default:
		dec.warn("statement not supported: " + fields[0])
	}
	return nil
}

func (dec *decoder) warn(msg string) {
	dec.file.Warnings = append(dec.file.Warnings, fmt.Sprintf("obj line %d: %s", dec.line, msg))
}

func (dec *decoder) startObject(name string) {
	dec.file.Objects = append(dec.file.Objects, Object{Name: name})
	dec.object = &dec.file.Objects[len(dec.file.Objects)-1]
}

// parseFloats reads exactly the first n fields as float32; extra components
// such as the optional w are ignored.
func (dec *decoder) parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, dec.errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, dec.errorf("invalid number %q", f)
		}
		out[i] = float32(val)
	}
	return out, nil
}

// parseFace parses a face description line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *decoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.errorf("face with %d corners", len(fields))
	}
	if dec.object == nil {
		// faces are allowed before any o/g statement
		dec.startObject("default")
	}

	face := Face{
		Corners:  make([]Corner, len(fields)),
		Material: dec.material,
		Smooth:   dec.smooth,
	}
	for i, f := range fields {
		parts := strings.Split(f, "/")

		pos, err := dec.resolveIndex(parts[0], len(dec.file.Positions))
		if err != nil {
			return err
		}
		if pos == NoIndex {
			return dec.errorf("face corner %q without position", f)
		}
		c := Corner{Position: pos, TexCoord: NoIndex, Normal: NoIndex}

		if len(parts) > 1 {
			if c.TexCoord, err = dec.resolveIndex(parts[1], len(dec.file.TexCoords)); err != nil {
				return err
			}
		}
		if len(parts) > 2 {
			if c.Normal, err = dec.resolveIndex(parts[2], len(dec.file.Normals)); err != nil {
				return err
			}
		}
		face.Corners[i] = c
	}
	dec.object.Faces = append(dec.object.Faces, face)
	return nil
}

// resolveIndex converts a one-based or negative relative OBJ index to a
// zero-based index. An empty field yields NoIndex, as does a relative
// reference into an attribute list that is still empty.
func (dec *decoder) resolveIndex(field string, count int) (int, error) {
	if field == "" {
		return NoIndex, nil
	}
	val, err := strconv.Atoi(field)
	if err != nil {
		return 0, dec.errorf("invalid index %q", field)
	}
	switch {
	case val > 0:
		return val - 1, nil
	case val < 0:
		if count == 0 {
			return NoIndex, nil
		}
		idx := count + val
		if idx < 0 {
			return 0, dec.errorf("relative index %d out of range", val)
		}
		return idx, nil
	default:
		return 0, dec.errorf("index value 0")
	}
}

// validate rejects any corner whose position index is outside the position
// list, and any texcoord or normal index outside a non-empty attribute list.
// References into an empty list are read as absent.
func (f *File) validate() error {
	for _, ob := range f.Objects {
		for fi, face := range ob.Faces {
			for _, c := range face.Corners {
				if c.Position < 0 || c.Position >= len(f.Positions) {
					return fmt.Errorf("obj: object %q face %d: position index %d out of range [0,%d)", ob.Name, fi, c.Position, len(f.Positions))
				}
				if c.TexCoord != NoIndex && len(f.TexCoords) > 0 && c.TexCoord >= len(f.TexCoords) {
					return fmt.Errorf("obj: object %q face %d: texcoord index %d out of range [0,%d)", ob.Name, fi, c.TexCoord, len(f.TexCoords))
				}
				if c.Normal != NoIndex && len(f.Normals) > 0 && c.Normal >= len(f.Normals) {
					return fmt.Errorf("obj: object %q face %d: normal index %d out of range [0,%d)", ob.Name, fi, c.Normal, len(f.Normals))
				}
			}
		}
	}
	return nil
}

// TexCoord returns the texture coordinate of a corner, or zero when the corner
// has none or the file declares none.
func (f *File) TexCoord(c Corner) mgl32.Vec2 {
	if c.TexCoord == NoIndex || len(f.TexCoords) == 0 {
		return mgl32.Vec2{}
	}
	return f.TexCoords[c.TexCoord]
}

// Normal returns the normal of a corner, or zero when absent.
func (f *File) Normal(c Corner) mgl32.Vec3 {
	if c.Normal == NoIndex || len(f.Normals) == 0 {
		return mgl32.Vec3{}
	}
	return f.Normals[c.Normal]
}
