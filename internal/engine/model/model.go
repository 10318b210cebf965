package model

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/engine/texture"
	"github.com/Faultbox/learnopengl/internal/logger"
	"github.com/Faultbox/learnopengl/pkg/formats"
)

// Model is a set of meshes loaded from one OBJ file, with the textures they
// share. Textures are de-duplicated by their literal path string.
type Model struct {
	Meshes []*Mesh
	Bounds Bounds

	dev       gpu.Device
	directory string
	opts      Options
	loaded    []Texture
	closed    bool
}

// Load parses the OBJ file at path and its material libraries, uploads one
// mesh per group and the textures referenced by the group materials.
// On error no GPU resources remain allocated.
func Load(dev gpu.Device, path string, opts Options) (*Model, error) {
	log := logger.Named("model")

	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		if errors.Is(err, formats.ErrOBJSyntax) || errors.Is(err, formats.ErrOBJIndex) {
			return nil, &ParseError{Path: path, Reason: err.Error(), Err: err}
		}
		return nil, &IOError{Path: path, Err: err}
	}

	m := &Model{
		dev:       dev,
		directory: filepath.Dir(path),
		opts:      opts,
	}

	materials, err := m.loadMaterials(obj.MaterialLibs)
	if err != nil {
		return nil, err
	}

	for _, g := range obj.Groups {
		mesh, err := m.processGroup(path, g, materials)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.Meshes = append(m.Meshes, mesh)
	}

	for i, mesh := range m.Meshes {
		b := ComputeBounds(mesh.Vertices)
		if i == 0 {
			m.Bounds = b
			continue
		}
		updateBounds(&m.Bounds, b.Min)
		updateBounds(&m.Bounds, b.Max)
	}

	log.Info("model loaded",
		zap.String("path", path),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("textures", len(m.loaded)))
	return m, nil
}

func (m *Model) loadMaterials(libs []string) (map[string]*formats.Material, error) {
	materials := make(map[string]*formats.Material)
	for _, lib := range libs {
		path := filepath.Join(m.directory, lib)
		mats, err := formats.ParseMTLFile(path)
		if err != nil {
			if errors.Is(err, formats.ErrMTLSyntax) {
				return nil, &ParseError{Path: path, Reason: err.Error(), Err: err}
			}
			return nil, &IOError{Path: path, Err: err}
		}
		for name, mat := range mats {
			materials[name] = mat
		}
	}
	return materials, nil
}

func (m *Model) processGroup(path string, g *formats.OBJGroup, materials map[string]*formats.Material) (*Mesh, error) {
	vertices, reason := buildVertices(g.Positions, g.Normals, g.TexCoords)
	if reason == "" {
		reason = checkIndices(g.Indices, len(vertices))
	}
	if reason != "" {
		return nil, &ParseError{Path: path, Group: g.Name, Reason: reason}
	}

	if len(g.Normals) == 0 {
		GenerateNormals(vertices, g.Indices)
	}
	if m.opts.SmoothNormals {
		SmoothNormals(vertices)
	}
	ComputeTangents(vertices, g.Indices)

	var textures []Texture
	if g.Material != "" {
		mat, ok := materials[g.Material]
		if !ok {
			logger.Named("model").Warn("undefined material",
				zap.String("path", path), zap.String("material", g.Material))
		} else {
			var err error
			if textures, err = m.materialTextures(mat); err != nil {
				return nil, err
			}
		}
	}

	mesh, err := NewMesh(m.dev, vertices, g.Indices, textures)
	if err != nil {
		return nil, &ParseError{Path: path, Group: g.Name, Reason: err.Error(), Err: err}
	}
	return mesh, nil
}

// materialTextures resolves the diffuse, specular and normal maps of mat.
func (m *Model) materialTextures(mat *formats.Material) ([]Texture, error) {
	slots := []struct {
		path string
		typ  TextureType
	}{
		{mat.DiffuseMap, TextureDiffuse},
		{mat.SpecularMap, TextureSpecular},
		{mat.NormalMap, TextureNormal},
		{heightMap(mat), TextureHeight},
	}

	var textures []Texture
	for _, s := range slots {
		if s.path == "" {
			continue
		}
		tex, err := m.loadTexture(s.path, s.typ)
		if err != nil {
			return nil, err
		}
		textures = append(textures, tex)
	}
	return textures, nil
}

// heightMap returns the displacement map, or the ambient map that exporters
// commonly use to carry height data.
func heightMap(mat *formats.Material) string {
	if mat.DisplacementMap != "" {
		return mat.DisplacementMap
	}
	return mat.AmbientMap
}

// loadTexture returns the cached texture for path or uploads it.
// The cache key is the path string exactly as written in the material.
func (m *Model) loadTexture(path string, typ TextureType) (Texture, error) {
	for _, t := range m.loaded {
		if t.Path == path {
			return t, nil
		}
	}

	opts := texture.Options{
		FlipY: m.opts.FlipTextures,
		Gamma: m.opts.Gamma && typ == TextureDiffuse,
	}
	id, err := texture.FromFile(m.dev, path, m.directory, opts)
	if err != nil {
		var decErr *texture.DecodeError
		if errors.As(err, &decErr) {
			return Texture{}, fmt.Errorf("loading texture %s: %w", path, err)
		}
		return Texture{}, &IOError{Path: filepath.Join(m.directory, path), Err: err}
	}

	tex := Texture{ID: id, Type: typ, Path: path}
	m.loaded = append(m.loaded, tex)
	return tex, nil
}

// Directory returns the directory texture and material paths are resolved against.
func (m *Model) Directory() string { return m.directory }

// Textures returns the loaded textures in load order.
func (m *Model) Textures() []Texture {
	return append([]Texture(nil), m.loaded...)
}

// Draw draws every mesh with one indexed draw call each.
func (m *Model) Draw(prog *shader.Program) {
	for _, mesh := range m.Meshes {
		mesh.Draw(prog)
	}
}

// DrawInstanced draws count instances of every mesh.
func (m *Model) DrawInstanced(prog *shader.Program, count int32) {
	for _, mesh := range m.Meshes {
		mesh.DrawInstanced(prog, count)
	}
}

// Close releases all meshes and textures. Calling it again is a no-op.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true

	for _, mesh := range m.Meshes {
		mesh.Delete()
	}
	for _, t := range m.loaded {
		m.dev.DeleteTexture(t.ID)
	}
	m.Meshes = nil
	m.loaded = nil
}
