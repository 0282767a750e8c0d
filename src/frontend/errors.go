package frontend

import "fmt"

// ErrorKind enumerates spec §7's fatal error categories. A single
// CompileError aborts compilation; there is no parallel error buffer (spec
// §5 rules out concurrent compilation, and §7 rules out multi-error
// diagnostics). Grounded on original_source/src/frontend/mod.rs's
// FrontendError enum, adapted to vslc/src/util/perror.go's terse-message
// style but stripped of its goroutine-based aggregation.
type ErrorKind int

const (
	ParseFailure ErrorKind = iota
	UndeclaredID
	MultiDef
	EvalConstExpFail
	InvalidInitializer
	InvalidValueType
	IOError
	InvalidArgs
)

var errorKindNames = [...]string{
	"ParseFailure", "UndeclaredId", "MultiDef", "EvalConstExpFail",
	"InvalidInitializer", "InvalidValueType", "IOError", "InvalidArgs",
}

func (k ErrorKind) String() string { return errorKindNames[k] }

// CompileError is the single typed error every frontend/backend failure
// surfaces as.
type CompileError struct {
	Kind  ErrorKind
	Msg   string
	Cause error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *CompileError) Unwrap() error { return e.Cause }

// Errf builds a CompileError of the given kind.
func Errf(kind ErrorKind, format string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
