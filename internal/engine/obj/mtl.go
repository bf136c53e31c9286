package obj

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Material is one newmtl block of a material library.
type Material struct {
	Name       string
	Index      int // declaration order within the library
	Diffuse    mgl32.Vec3
	Specular   mgl32.Vec3
	Shininess  float32 // Ns
	Opacity    float32 // d, or 1-Tr
	Illum      int
	DiffuseMap string // map_Kd, relative to the material directory
}

// Library is a decoded material library.
type Library struct {
	Materials []*Material // declaration order
	Warnings  []string

	byName map[string]*Material
}

// Lookup returns the material with the given name.
func (l *Library) Lookup(name string) (*Material, bool) {
	m, ok := l.byName[name]
	return m, ok
}

// Merge appends the materials of other that are not yet declared, keeping
// declaration order across libraries.
func (l *Library) Merge(other *Library) {
	if l.byName == nil {
		l.byName = make(map[string]*Material)
	}
	for _, m := range other.Materials {
		if _, dup := l.byName[m.Name]; dup {
			continue
		}
		m.Index = len(l.Materials)
		l.Materials = append(l.Materials, m)
		l.byName[m.Name] = m
	}
	l.Warnings = append(l.Warnings, other.Warnings...)
}

type mtlDecoder struct {
	lib     *Library
	line    int
	current *Material
}

// DecodeLibrary parses an MTL stream.
func DecodeLibrary(r io.Reader) (*Library, error) {
	dec := &mtlDecoder{lib: &Library{byName: make(map[string]*Material)}}
	if err := parseLines(r, &dec.line, dec.parseLine); err != nil {
		return nil, err
	}
	return dec.lib, nil
}

func (dec *mtlDecoder) errorf(format string, args ...any) error {
	return fmt.Errorf("mtl: line %d: %s", dec.line, fmt.Sprintf(format, args...))
}

func (dec *mtlDecoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	if fields[0] == "newmtl" {
		if len(fields) < 2 {
			return dec.errorf("newmtl with no name")
		}
		m := &Material{Name: fields[1], Index: len(dec.lib.Materials), Opacity: 1, Illum: 2}
		dec.lib.Materials = append(dec.lib.Materials, m)
		dec.lib.byName[m.Name] = m
		dec.current = m
		return nil
	}
	if dec.current == nil {
		return dec.errorf("%s before newmtl", fields[0])
	}

	m := dec.current
	args := fields[1:]
	var err error
	switch fields[0] {
	case "Kd":
		m.Diffuse, err = dec.parseColor(args)
	case "Ks":
		m.Specular, err = dec.parseColor(args)
	case "Ns":
		m.Shininess, err = dec.parseScalar(args)
	case "d":
		m.Opacity, err = dec.parseScalar(args)
	case "Tr":
		var tr float32
		tr, err = dec.parseScalar(args)
		m.Opacity = 1 - tr
	case "illum":
		if len(args) < 1 {
			return dec.errorf("illum with no value")
		}
		m.Illum, err = strconv.Atoi(args[0])
		if err != nil {
			return dec.errorf("invalid illum %q", args[0])
		}
	case "map_Kd":
		if len(args) < 1 {
			return dec.errorf("map_Kd with no file")
		}
		// Options such as -s or -o precede the file name.
		m.DiffuseMap = args[len(args)-1]
	default:
		dec.lib.Warnings = append(dec.lib.Warnings, fmt.Sprintf("mtl line %d: statement not supported: %s", dec.line, fields[0]))
	}
	return err
}

func (dec *mtlDecoder) parseScalar(args []string) (float32, error) {
	if len(args) < 1 {
		return 0, dec.errorf("missing value")
	}
	v, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return 0, dec.errorf("invalid number %q", args[0])
	}
	return float32(v), nil
}

func (dec *mtlDecoder) parseColor(args []string) (mgl32.Vec3, error) {
	if len(args) < 3 {
		return mgl32.Vec3{}, dec.errorf("expected 3 color components, got %d", len(args))
	}
	var c mgl32.Vec3
	for i := range c {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return mgl32.Vec3{}, dec.errorf("invalid number %q", args[i])
		}
		c[i] = float32(v)
	}
	return c, nil
}
