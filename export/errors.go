package export

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists          = errors.New("output file already exists")
	ErrMissingParentDirectory = errors.New("parent directory does not exist")
	ErrEmptyInput             = errors.New("no records to derive fields from")
	ErrUnexpectedField        = errors.New("unexpected field")
)

// UnexpectedFieldError is returned in strict mode for a record carrying a
// field outside the field set.
type UnexpectedFieldError struct {
	Record int // 1-based position in the input sequence
	Field  string
}

func (e *UnexpectedFieldError) Error() string {
	return fmt.Sprintf("record %d: unexpected field %q", e.Record, e.Field)
}

func (e *UnexpectedFieldError) Is(target error) bool {
	return target == ErrUnexpectedField
}
