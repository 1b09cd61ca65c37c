package semantic

import "fmt"

// Error is a violated static rule of the checked program.
type Error struct {
	Message string
	Line    int
}

func errorf(line int, format string, a ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, a...),
		Line:    line,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at line %v", e.Message, e.Line)
}
