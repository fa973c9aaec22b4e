package world

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by grid and registry operations.
var (
	ErrOutOfBounds = errors.New("world: coordinate out of bounds")
	ErrEmptySource = errors.New("world: source cell is empty")
	ErrOccupied    = errors.New("world: destination cell is occupied")
	ErrDuplicateID = errors.New("world: element identifier already registered")
	ErrNotFound    = errors.New("world: element identifier not registered")
	ErrReservedID  = errors.New("world: element identifier is reserved")
)

// LoadError codes.
const (
	CodeEmptyMap       = "EMPTY_MAP"
	CodeNotRectangular = "NOT_RECTANGULAR"
	CodeUnknownTile    = "UNKNOWN_TILE"
	CodeNoSpawn        = "NO_SPAWN"
	CodeMultipleSpawns = "MULTIPLE_SPAWNS"
	CodeParse          = "PARSE"
)

// LoadError reports a malformed map layout. It is fatal: no session can be
// built from the layout.
type LoadError struct {
	Code    string
	Line    int // 1-based row, 0 when not tied to a row
	Message string
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s", e.Code, e.Line, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewLoadError builds a LoadError with a formatted message.
func NewLoadError(code string, line int, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Line: line, Message: fmt.Sprintf(format, args...)}
}

// IsLoadError reports whether err is (or wraps) a LoadError with the given code.
// An empty code matches any LoadError.
func IsLoadError(err error, code string) bool {
	var le *LoadError
	if !errors.As(err, &le) {
		return false
	}
	return code == "" || le.Code == code
}
