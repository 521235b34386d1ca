package loader

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownNode  = errors.New("unknown node type")
	ErrMissingField = errors.New("missing field")
	ErrInvalidField = errors.New("invalid field")
)

// ErrorCollector gathers errors across several fixtures so one bad file does
// not hide problems in the others.
type ErrorCollector struct {
	Errors []error

	// Max errors before we stop collecting
	// 0 => no limit
	MaxErrors int
}

func (f *ErrorCollector) HasErrors() bool {
	return len(f.Errors) > 0
}

// AddErrors records errs and reports whether collection may continue.
func (f *ErrorCollector) AddErrors(errs ...error) bool {
	for _, err := range errs {
		if err == nil {
			continue
		}
		f.Errors = append(f.Errors, err)
		if f.MaxErrors > 0 && len(f.Errors) >= f.MaxErrors {
			return false
		}
	}
	return true
}

func (f *ErrorCollector) Errorf(source string, format string, args ...any) bool {
	return f.AddErrors(fmt.Errorf("%s: %w", source, fmt.Errorf(format, args...)))
}

// Err joins everything collected, or returns nil.
func (f *ErrorCollector) Err() error {
	return errors.Join(f.Errors...)
}
