// Package shader compiles GLSL stages into linked programs and uploads uniforms.
package shader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/logger"
)

// Program is a linked GPU program.
type Program struct {
	dev  gpu.Device
	id   uint32
	name string

	// Source location for Reload. fsys is nil for programs built from memory.
	fsys    fs.FS
	paths   []string
	sources []string

	warned map[string]struct{}
	// ints are re-applied after Reload so sampler units survive a relink.
	ints map[string]int32
	log  *zap.Logger
}

// Load reads the vertex, fragment and optional geometry stage from fsys,
// compiles and links them. Intermediate shader objects are deleted after the
// link; on any failure every GPU object created so far is released.
func Load(dev gpu.Device, fsys fs.FS, vertexPath, fragmentPath string, geometryPath ...string) (*Program, error) {
	paths := []string{vertexPath, fragmentPath}
	if len(geometryPath) > 0 && geometryPath[0] != "" {
		paths = append(paths, geometryPath[0])
	}

	sources, err := readSources(fsys, paths)
	if err != nil {
		return nil, err
	}

	p := newProgram(dev, vertexPath, paths, sources)
	p.fsys = fsys
	if p.id, err = build(dev, paths, sources); err != nil {
		return nil, err
	}

	p.log.Debug("program linked", zap.Uint32("id", p.id), zap.Strings("stages", paths))
	return p, nil
}

// FromSource compiles a program from in-memory sources. geometrySrc may be empty.
func FromSource(dev gpu.Device, name, vertexSrc, fragmentSrc, geometrySrc string) (*Program, error) {
	paths := []string{name + ".vs", name + ".fs"}
	sources := []string{vertexSrc, fragmentSrc}
	if geometrySrc != "" {
		paths = append(paths, name+".gs")
		sources = append(sources, geometrySrc)
	}

	p := newProgram(dev, name, paths, sources)
	var err error
	if p.id, err = build(dev, paths, sources); err != nil {
		return nil, err
	}
	return p, nil
}

func newProgram(dev gpu.Device, name string, paths, sources []string) *Program {
	return &Program{
		dev:     dev,
		name:    name,
		paths:   paths,
		sources: sources,
		warned:  make(map[string]struct{}),
		ints:    make(map[string]int32),
		log:     logger.Named("shader").With(zap.String("program", name)),
	}
}

func readSources(fsys fs.FS, paths []string) ([]string, error) {
	sources := make([]string, len(paths))
	for i, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, &SourceError{Stage: gpu.Stage(i), Path: path, Err: err}
		}
		sources[i] = string(data)
	}
	return sources, nil
}

// build compiles every stage in order (vertex, fragment, geometry) and links.
func build(dev gpu.Device, paths, sources []string) (uint32, error) {
	shaders := make([]uint32, 0, len(sources))
	defer func() {
		for _, s := range shaders {
			dev.DeleteShader(s)
		}
	}()

	for i, src := range sources {
		stage := gpu.Stage(i)
		id, infoLog, ok := dev.CompileShader(stage, src)
		if !ok {
			err := &CompileError{Stage: stage.String(), Path: paths[i], Log: infoLog}
			logger.Named("shader").Error("compile failed", zap.Error(err))
			return 0, err
		}
		shaders = append(shaders, id)
	}

	program, infoLog, ok := dev.LinkProgram(shaders)
	if !ok {
		err := &CompileError{Stage: StageProgram, Path: paths[0], Log: infoLog}
		logger.Named("shader").Error("link failed", zap.Error(err))
		return 0, err
	}
	return program, nil
}

// ID returns the GPU program handle, 0 after Delete.
func (p *Program) ID() uint32 { return p.id }

// Name returns the program name used in logs.
func (p *Program) Name() string { return p.name }

// Paths returns the stage source paths, vertex first.
func (p *Program) Paths() []string { return p.paths }

// Use makes the program current for subsequent draw calls.
func (p *Program) Use() {
	p.dev.UseProgram(p.id)
}

// Reload rebuilds the program from its sources. On success the old program
// is deleted and the new one is made current; on failure the old program
// stays in place and the error is returned.
func (p *Program) Reload() error {
	if p.id == 0 {
		return errors.New("shader: reload of deleted program")
	}

	sources := p.sources
	if p.fsys != nil {
		var err error
		if sources, err = readSources(p.fsys, p.paths); err != nil {
			return err
		}
	}

	id, err := build(p.dev, p.paths, sources)
	if err != nil {
		return fmt.Errorf("reloading %s: %w", p.name, err)
	}

	p.dev.DeleteProgram(p.id)
	p.id = id
	p.sources = sources
	p.warned = make(map[string]struct{})
	p.dev.UseProgram(p.id)
	for name, v := range p.ints {
		p.dev.Uniform1i(p.location(name), v)
	}
	p.log.Info("program reloaded", zap.Uint32("id", id))
	return nil
}

// Delete releases the program. Calling it again is a no-op.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
}

// location looks the uniform up by name. Unknown names are reported once.
func (p *Program) location(name string) int32 {
	loc := p.dev.UniformLocation(p.id, name)
	if loc < 0 {
		if _, seen := p.warned[name]; !seen {
			p.warned[name] = struct{}{}
			p.log.Warn("unknown uniform", zap.String("name", name))
		}
	}
	return loc
}

// SetBool sets a bool uniform (uploaded as int).
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.dev.Uniform1i(p.location(name), i)
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	p.ints[name] = v
	p.dev.Uniform1i(p.location(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	p.dev.Uniform1f(p.location(name), v)
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	p.dev.Uniform2f(p.location(name), v)
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.dev.Uniform3f(p.location(name), v)
}

// SetVec3f sets a vec3 uniform from components.
func (p *Program) SetVec3f(name string, x, y, z float32) {
	p.dev.Uniform3f(p.location(name), mgl32.Vec3{x, y, z})
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	p.dev.Uniform4f(p.location(name), v)
}

func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	p.dev.UniformMatrix3(p.location(name), m)
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	p.dev.UniformMatrix4(p.location(name), m)
}
