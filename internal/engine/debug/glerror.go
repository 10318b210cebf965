package debug

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/logger"
)

// ErrorName returns the symbolic name of a glGetError code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "NO_ERROR"
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "UNKNOWN"
	}
}

// CheckError drains the GL error queue, logging each error with where as
// context. It returns the last error code, or NO_ERROR.
func CheckError(where string) uint32 {
	var last uint32 = gl.NO_ERROR
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		logger.Named("gl").Error("gl error",
			zap.String("error", ErrorName(code)),
			zap.Uint32("code", code),
			zap.String("where", where))
		last = code
	}
	return last
}
