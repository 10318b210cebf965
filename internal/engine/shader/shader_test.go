package shader

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/gpu/gputest"
	"github.com/Faultbox/learnopengl/internal/logger"
)

const (
	vertexSrc   = "#version 410 core\nvoid main() { gl_Position = vec4(0.0); }\n"
	fragmentSrc = "#version 410 core\nout vec4 FragColor;\nvoid main() { FragColor = vec4(1.0); }\n"
	geometrySrc = "#version 410 core\nlayout (points) in;\nvoid main() {}\n"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"basic.vs":  {Data: []byte(vertexSrc)},
		"basic.fs":  {Data: []byte(fragmentSrc)},
		"basic.gs":  {Data: []byte(geometrySrc)},
		"broken.fs": {Data: []byte("#version 410 core\nvoid main() { BROKEN }\n")},
	}
}

func TestLoad(t *testing.T) {
	dev := &gputest.Device{}
	p, err := Load(dev, testFS(), "basic.vs", "basic.fs")
	require.NoError(t, err)

	assert.NotZero(t, p.ID())
	assert.Len(t, dev.Programs, 1)
	assert.Len(t, dev.Programs[p.ID()], 2)
	assert.Empty(t, dev.Shaders, "intermediate shader objects must be deleted after link")
	assert.Equal(t, []string{"basic.vs", "basic.fs"}, p.Paths())
}

func TestLoadWithGeometry(t *testing.T) {
	dev := &gputest.Device{}
	p, err := Load(dev, testFS(), "basic.vs", "basic.fs", "basic.gs")
	require.NoError(t, err)

	assert.Len(t, dev.Programs[p.ID()], 3)
	assert.Empty(t, dev.Shaders)
}

func TestLoadMissingSource(t *testing.T) {
	dev := &gputest.Device{}
	_, err := Load(dev, testFS(), "basic.vs", "missing.fs")
	require.Error(t, err)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, gpu.StageFragment, srcErr.Stage)
	assert.Equal(t, "missing.fs", srcErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Zero(t, dev.Live())
}

func TestLoadCompileError(t *testing.T) {
	dev := &gputest.Device{CompileFail: "BROKEN"}
	_, err := Load(dev, testFS(), "basic.vs", "broken.fs")
	require.Error(t, err)

	var compErr *CompileError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "FRAGMENT", compErr.Stage)
	assert.Equal(t, "broken.fs", compErr.Path)
	assert.Contains(t, compErr.Log, "syntax error")
	assert.Zero(t, dev.Live(), "vertex shader compiled before the failure must be released")
}

func TestLoadLinkError(t *testing.T) {
	dev := &gputest.Device{LinkFail: true}
	_, err := Load(dev, testFS(), "basic.vs", "basic.fs")
	require.Error(t, err)

	var compErr *CompileError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, StageProgram, compErr.Stage)
	assert.Zero(t, dev.Live())
}

func TestFromSource(t *testing.T) {
	dev := &gputest.Device{}
	p, err := FromSource(dev, "inline", vertexSrc, fragmentSrc, "")
	require.NoError(t, err)
	assert.Len(t, dev.Programs[p.ID()], 2)
	assert.False(t, p.Uses("inline.vs"))
}

func TestUniformSetters(t *testing.T) {
	dev := &gputest.Device{}
	p, err := FromSource(dev, "u", vertexSrc, fragmentSrc, "")
	require.NoError(t, err)
	p.Use()
	assert.Equal(t, p.ID(), dev.Current())

	p.SetBool("flag", true)
	p.SetInt("texture1", 3)
	p.SetFloat("mixValue", 0.25)
	p.SetVec2("offset", mgl32.Vec2{1, 2})
	p.SetVec3("lightPos", mgl32.Vec3{1, 2, 3})
	p.SetVec3f("viewPos", 4, 5, 6)
	p.SetVec4("color", mgl32.Vec4{1, 0, 0, 1})
	p.SetMat4("model", mgl32.Ident4())

	tests := []struct {
		name string
		want any
	}{
		{"flag", int32(1)},
		{"texture1", int32(3)},
		{"mixValue", float32(0.25)},
		{"offset", mgl32.Vec2{1, 2}},
		{"lightPos", mgl32.Vec3{1, 2, 3}},
		{"viewPos", mgl32.Vec3{4, 5, 6}},
		{"color", mgl32.Vec4{1, 0, 0, 1}},
		{"model", mgl32.Ident4()},
	}
	for _, tt := range tests {
		got, ok := dev.Value(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestUniformLookedUpEveryCall(t *testing.T) {
	dev := &gputest.Device{}
	p, err := FromSource(dev, "u", vertexSrc, fragmentSrc, "")
	require.NoError(t, err)

	p.SetFloat("time", 1)
	p.SetFloat("time", 2)
	assert.Equal(t, []string{"time", "time"}, dev.Lookups)
}

func TestUnknownUniformWarnsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	dev := &gputest.Device{Uniforms: []string{"known"}}
	p, err := FromSource(dev, "u", vertexSrc, fragmentSrc, "")
	require.NoError(t, err)

	p.SetFloat("known", 1)
	p.SetFloat("missing", 1)
	p.SetFloat("missing", 2)
	p.SetInt("other", 1)

	assert.Len(t, dev.Sets, 1, "unknown uniforms must not be uploaded")
	warnings := logs.FilterMessage("unknown uniform").All()
	require.Len(t, warnings, 2)
	assert.Equal(t, "missing", warnings[0].ContextMap()["name"])
	assert.Equal(t, "other", warnings[1].ContextMap()["name"])
}

func TestReload(t *testing.T) {
	fsys := testFS()
	dev := &gputest.Device{}
	p, err := Load(dev, fsys, "basic.vs", "basic.fs")
	require.NoError(t, err)
	old := p.ID()

	require.NoError(t, p.Reload())
	assert.NotEqual(t, old, p.ID())
	assert.NotContains(t, dev.Programs, old)
	assert.Len(t, dev.Programs, 1)
	assert.Equal(t, p.ID(), dev.Current())
}

func TestReloadRestoresInts(t *testing.T) {
	dev := &gputest.Device{}
	p, err := Load(dev, testFS(), "basic.vs", "basic.fs")
	require.NoError(t, err)
	p.Use()
	p.SetInt("diffuse", 3)
	dev.Sets = nil

	require.NoError(t, p.Reload())
	require.Len(t, dev.Sets, 1)
	assert.Equal(t, p.ID(), dev.Sets[0].Program)
	assert.Equal(t, "diffuse", dev.Sets[0].Name)
	assert.Equal(t, int32(3), dev.Sets[0].Value)
}

func TestReloadFailureKeepsProgram(t *testing.T) {
	fsys := testFS()
	dev := &gputest.Device{CompileFail: "BROKEN"}
	p, err := Load(dev, fsys, "basic.vs", "basic.fs")
	require.NoError(t, err)
	old := p.ID()

	fsys["basic.fs"] = &fstest.MapFile{Data: []byte("void main() { BROKEN }")}
	err = p.Reload()

	var compErr *CompileError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, old, p.ID())
	assert.Contains(t, dev.Programs, old)
	assert.Len(t, dev.Programs, 1)
	assert.Empty(t, dev.Shaders)
}

func TestDeleteIdempotent(t *testing.T) {
	dev := &gputest.Device{}
	p, err := Load(dev, testFS(), "basic.vs", "basic.fs")
	require.NoError(t, err)

	p.Delete()
	p.Delete()
	assert.Zero(t, p.ID())
	assert.Zero(t, dev.Live())
	assert.Error(t, p.Reload())
}

func TestUses(t *testing.T) {
	dev := &gputest.Device{}
	p, err := Load(dev, testFS(), "basic.vs", "basic.fs")
	require.NoError(t, err)

	assert.True(t, p.Uses("basic.fs"))
	assert.False(t, p.Uses("basic.gs"))
}
