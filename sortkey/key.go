package sortkey

import (
	"github.com/kochabx/keysort/core/util/convert"
	"github.com/kochabx/keysort/errors"
)

// keyFunc derives the ordering key of a numeric string.
type keyFunc func(string) int32

// Key parses s as a decimal int32. Malformed input is a precondition
// violation: Key panics with an *errors.Error of code CodeInvalidNumber.
func Key(s string) int32 {
	v, err := convert.ParseString[int32](s)
	if err != nil {
		panic(invalidNumber(s, err))
	}
	return v
}

func invalidNumber(s string, err error) *errors.Error {
	return errors.WrapWithMetadata(err, errors.CodeInvalidNumber,
		map[string]string{"value": s}, "invalid numeric string %q", s)
}
