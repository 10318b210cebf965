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

// ErrMTLSyntax is wrapped by MTL parse errors.
var ErrMTLSyntax = errors.New("mtl syntax error")

// Material is one newmtl block of an MTL library.
type Material struct {
	Name string

	Ambient   [3]float32 // Ka
	Diffuse   [3]float32 // Kd
	Specular  [3]float32 // Ks
	Shininess float32    // Ns
	Dissolve  float32    // d, or 1 - Tr
	Illum     int

	// Texture maps, paths relative to the MTL file.
	AmbientMap      string // map_Ka
	DiffuseMap      string // map_Kd
	SpecularMap     string // map_Ks
	NormalMap       string // map_Bump, bump, norm
	AlphaMap        string // map_d
	DisplacementMap string // disp, map_disp
}

// texture option -> number of arguments; -1 means up to three numbers
var mtlMapOptions = map[string]int{
	"-blendu":  1,
	"-blendv":  1,
	"-bm":      1,
	"-boost":   1,
	"-cc":      1,
	"-clamp":   1,
	"-imfchan": 1,
	"-texres":  1,
	"-type":    1,
	"-mm":      2,
	"-o":       -1,
	"-s":       -1,
	"-t":       -1,
}

// ParseMTL parses an MTL library into materials keyed by name.
func ParseMTL(r io.Reader) (map[string]*Material, error) {
	materials := make(map[string]*Material)
	var current *Material

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		keyword, args := fields[0], fields[1:]
		if keyword == "newmtl" {
			if len(args) == 0 {
				return nil, fmt.Errorf("%w: line %d: newmtl without name", ErrMTLSyntax, line)
			}
			current = &Material{Name: strings.Join(args, " "), Dissolve: 1}
			materials[current.Name] = current
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("%w: line %d: %s before newmtl", ErrMTLSyntax, line, keyword)
		}

		if err := current.apply(keyword, args); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMTLSyntax, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mtl: %w", err)
	}

	return materials, nil
}

// ParseMTLFile parses an MTL file from disk.
func ParseMTLFile(path string) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mtl file: %w", err)
	}
	defer f.Close()
	return ParseMTL(f)
}

func (m *Material) apply(keyword string, args []string) error {
	var err error
	switch strings.ToLower(keyword) {
	case "ka":
		m.Ambient, err = parseColor(args)
	case "kd":
		m.Diffuse, err = parseColor(args)
	case "ks":
		m.Specular, err = parseColor(args)
	case "ns":
		m.Shininess, err = parseScalar(args)
	case "d":
		m.Dissolve, err = parseScalar(args)
	case "tr":
		var tr float32
		tr, err = parseScalar(args)
		m.Dissolve = 1 - tr
	case "illum":
		if len(args) == 0 {
			return errors.New("illum without value")
		}
		m.Illum, err = strconv.Atoi(args[0])
	case "map_ka":
		m.AmbientMap, err = mapPath(args)
	case "map_kd":
		m.DiffuseMap, err = mapPath(args)
	case "map_ks":
		m.SpecularMap, err = mapPath(args)
	case "map_bump", "bump", "norm":
		m.NormalMap, err = mapPath(args)
	case "map_d":
		m.AlphaMap, err = mapPath(args)
	case "disp", "map_disp":
		m.DisplacementMap, err = mapPath(args)
	}
	return err
}

// parseColor parses "r g b"; a single value is used for all channels.
func parseColor(args []string) ([3]float32, error) {
	var c [3]float32
	if len(args) == 0 {
		return c, errors.New("color without values")
	}
	if args[0] == "spectral" || args[0] == "xyz" {
		return c, fmt.Errorf("unsupported color form %q", args[0])
	}
	for i := 0; i < 3; i++ {
		s := args[0]
		if i < len(args) {
			s = args[i]
		}
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return c, fmt.Errorf("bad number %q", s)
		}
		c[i] = float32(f)
	}
	return c, nil
}

func parseScalar(args []string) (float32, error) {
	if len(args) == 0 {
		return 0, errors.New("missing value")
	}
	f, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", args[0])
	}
	return float32(f), nil
}

// mapPath skips texture options and returns the file name.
func mapPath(args []string) (string, error) {
	i := 0
	for i < len(args) && strings.HasPrefix(args[i], "-") {
		n, ok := mtlMapOptions[args[i]]
		if !ok {
			return "", fmt.Errorf("unknown texture option %q", args[i])
		}
		i++
		if n < 0 {
			for j := 0; j < 3 && i < len(args); j++ {
				if _, err := strconv.ParseFloat(args[i], 32); err != nil {
					break
				}
				i++
			}
			continue
		}
		i += n
	}
	if i >= len(args) {
		return "", errors.New("texture map without file name")
	}
	return strings.Join(args[i:], " "), nil
}
