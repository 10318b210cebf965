// Package demos holds the LearnOpenGL chapter demos. Each demo registers
// itself under its chapter id ("1_2_1", "4_10_3") and is run by the harness.
package demos

import (
	"embed"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/learnopengl/internal/harness"
)

//go:embed shaders
var embedded embed.FS

// Shaders is the embedded GLSL tree, rooted at the chapter directories.
var Shaders fs.FS = mustSub(embedded, "shaders")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Demo is one runnable chapter demo.
type Demo struct {
	ID    string
	Title string
	// New returns fresh options so that per-run state is never shared.
	New func() harness.Options
}

var registry = map[string]Demo{}

// Register adds a demo. Registering an id twice panics.
func Register(d Demo) {
	if _, dup := registry[d.ID]; dup {
		panic("demos: duplicate id " + d.ID)
	}
	registry[d.ID] = d
}

// Lookup returns the demo with id.
func Lookup(id string) (Demo, bool) {
	d, ok := registry[id]
	return d, ok
}

// Options returns the harness options of a demo with its title and embedded
// shaders filled in.
func (d Demo) Options() harness.Options {
	opts := d.New()
	if opts.Title == "" {
		opts.Title = d.Title
	}
	if opts.Shaders == nil {
		opts.Shaders = Shaders
	}
	return opts
}

// All returns every demo in chapter order (1_2_5 before 1_10_1).
func All() []Demo {
	all := make([]Demo, 0, len(registry))
	for _, d := range registry {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return idLess(all[i].ID, all[j].ID) })
	return all
}

func idLess(a, b string) bool {
	as, bs := strings.Split(a, "_"), strings.Split(b, "_")
	for i := 0; i < len(as) && i < len(bs); i++ {
		x, errX := strconv.Atoi(as[i])
		y, errY := strconv.Atoi(bs[i])
		if errX != nil || errY != nil {
			if as[i] != bs[i] {
				return as[i] < bs[i]
			}
			continue
		}
		if x != y {
			return x < y
		}
	}
	return len(as) < len(bs)
}
