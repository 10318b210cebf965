package shader

import (
	"fmt"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
)

// StageProgram is the CompileError stage reported for link failures.
const StageProgram = "PROGRAM"

// CompileError is returned when a stage fails to compile or the program fails
// to link. Log holds the driver's info log.
type CompileError struct {
	Stage string
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == StageProgram {
		return fmt.Sprintf("shader: link %s: %s", e.Path, e.Log)
	}
	return fmt.Sprintf("shader: compile %s stage %s: %s", e.Stage, e.Path, e.Log)
}

// SourceError is returned when a stage source cannot be read.
type SourceError struct {
	Stage gpu.Stage
	Path  string
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("shader: read %s source %s: %v", e.Stage, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
