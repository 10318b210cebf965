// Package formats provides parsers for the Wavefront OBJ and MTL asset formats.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrOBJSyntax = errors.New("obj syntax error")
	ErrOBJIndex  = errors.New("obj index out of range")
)

// OBJ is a parsed Wavefront OBJ file.
type OBJ struct {
	// MaterialLibs lists the mtllib file names in order of appearance,
	// relative to the OBJ file.
	MaterialLibs []string
	// Groups holds one entry per (object/group name, material) run that has faces.
	Groups []*OBJGroup

	// Raw attribute counts in the file.
	PositionCount int
	TexCoordCount int
	NormalCount   int
}

// OBJGroup is geometry with a single index into flat attribute streams.
// Entry i of each non-empty stream describes vertex i.
type OBJGroup struct {
	Name     string
	Material string

	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex, or empty
	TexCoords []float32 // 2 per vertex, or empty
	Indices   []uint32  // 3 per triangle

	// v/vt/vn triple -> vertex index
	seen map[objIndex]uint32
}

// VertexCount returns the number of vertices in the group.
func (g *OBJGroup) VertexCount() int {
	return len(g.Positions) / 3
}

// objIndex is a resolved, zero-based v/vt/vn triple; -1 means absent.
type objIndex struct {
	v, vt, vn int
}

type objParser struct {
	obj *OBJ

	positions [][3]float32
	texcoords [][2]float32
	normals   [][3]float32

	name     string
	material string
	current  *OBJGroup
	line     int
}

// ParseOBJ parses OBJ data. Faces with more than three vertices are
// triangulated as fans; v/vt/vn triples are de-duplicated per group in
// first-appearance order.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	p := &objParser{obj: &OBJ{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}

	p.obj.PositionCount = len(p.positions)
	p.obj.TexCoordCount = len(p.texcoords)
	p.obj.NormalCount = len(p.normals)
	for _, g := range p.obj.Groups {
		g.seen = nil
	}
	return p.obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening obj file: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f)
}

func (p *objParser) errorf(base error, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", base, p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	keyword, args := fields[0], fields[1:]
	switch keyword {
	case "v":
		v, err := p.floats(args, 3, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := p.floats(args, 1, 2)
		if err != nil {
			return err
		}
		p.texcoords = append(p.texcoords, [2]float32{v[0], v[1]})
	case "vn":
		v, err := p.floats(args, 3, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
	case "f":
		return p.parseFace(args)
	case "o", "g":
		p.name = strings.Join(args, " ")
		p.current = nil
	case "usemtl":
		p.material = strings.Join(args, " ")
		p.current = nil
	case "mtllib":
		if len(args) == 0 {
			return p.errorf(ErrOBJSyntax, "mtllib without file name")
		}
		p.obj.MaterialLibs = append(p.obj.MaterialLibs, args...)
	default:
		// s, l, p, curves and other records do not affect polygon geometry
	}
	return nil
}

// floats parses at least required values and returns want values,
// padding missing ones with zero. Extra values (w, vertex colors) are dropped.
func (p *objParser) floats(args []string, required, want int) ([]float32, error) {
	if len(args) < required {
		return nil, p.errorf(ErrOBJSyntax, "expected %d values, got %d", required, len(args))
	}
	out := make([]float32, want)
	for i := 0; i < want && i < len(args); i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, p.errorf(ErrOBJSyntax, "bad number %q", args[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return p.errorf(ErrOBJSyntax, "face needs at least 3 vertices, got %d", len(args))
	}

	refs := make([]objIndex, len(args))
	for i, a := range args {
		ref, err := p.parseRef(a)
		if err != nil {
			return err
		}
		refs[i] = ref
	}

	g := p.group()
	for i := 1; i+1 < len(refs); i++ {
		g.Indices = append(g.Indices, g.vertex(p, refs[0]), g.vertex(p, refs[i]), g.vertex(p, refs[i+1]))
	}
	return nil
}

// parseRef parses v, v/vt, v//vn or v/vt/vn.
func (p *objParser) parseRef(s string) (objIndex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 || parts[0] == "" {
		return objIndex{}, p.errorf(ErrOBJSyntax, "bad face vertex %q", s)
	}

	ref := objIndex{v: -1, vt: -1, vn: -1}
	var err error
	if ref.v, err = p.resolve(parts[0], len(p.positions)); err != nil {
		return ref, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if ref.vt, err = p.resolve(parts[1], len(p.texcoords)); err != nil {
			return ref, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if ref.vn, err = p.resolve(parts[2], len(p.normals)); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// resolve converts a one-based (or negative, relative) index to zero-based.
func (p *objParser) resolve(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.errorf(ErrOBJSyntax, "bad index %q", s)
	}

	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, p.errorf(ErrOBJIndex, "index %d with %d elements", n, count)
	}
	return idx, nil
}

// group returns the group faces are currently added to, starting a new one
// after o, g or usemtl.
func (p *objParser) group() *OBJGroup {
	if p.current == nil {
		p.current = &OBJGroup{
			Name:     p.name,
			Material: p.material,
			seen:     make(map[objIndex]uint32),
		}
		p.obj.Groups = append(p.obj.Groups, p.current)
	}
	return p.current
}

// vertex returns the group-local index of a triple, appending it to the
// streams the first time it is seen.
func (g *OBJGroup) vertex(p *objParser, ref objIndex) uint32 {
	if idx, ok := g.seen[ref]; ok {
		return idx
	}

	idx := uint32(g.VertexCount())
	pos := p.positions[ref.v]
	g.Positions = append(g.Positions, pos[0], pos[1], pos[2])
	if ref.vn >= 0 {
		n := p.normals[ref.vn]
		g.Normals = append(g.Normals, n[0], n[1], n[2])
	}
	if ref.vt >= 0 {
		t := p.texcoords[ref.vt]
		g.TexCoords = append(g.TexCoords, t[0], t[1])
	}
	g.seen[ref] = idx
	return idx
}
