package tag

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrTargetMustBePointer = errors.New("target must be a pointer to a struct")
	ErrUnsupportedType     = errors.New("unsupported type")
)

// FieldError reports the field whose default could not be applied
type FieldError struct {
	Path  string
	Kind  reflect.Kind
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (type: %s, default: %q): %v", e.Path, e.Kind, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
