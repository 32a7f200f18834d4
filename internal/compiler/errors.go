package compiler

import "fmt"

// CompileError is a fatal, semantically-malformed-AST failure: an unknown
// identifier or function, register or string-pool exhaustion, an empty
// scope stack, or an unknown node kind. The compiler makes no attempt to
// recover; Compile returns the first CompileError encountered.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[juno::compile_error] %s", e.Message)
}

func errorf(format string, args ...any) error {
	return &CompileError{Message: fmt.Sprintf(format, args...)}
}
