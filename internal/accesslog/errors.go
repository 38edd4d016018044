package accesslog

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRecord     = errors.New("invalid record")
	ErrDateParse         = errors.New("cannot parse date")
	ErrMissingRangeStart = errors.New("date range end given without start")
)

// InvalidRecordError reports a raw line whose token count is not FieldCount.
type InvalidRecordError struct {
	Tokens []string
	Count  int
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record: expected %d tokens, got %d: %q", FieldCount, e.Count, e.Tokens)
}

func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Is(target error) bool {
	return target == ErrDateParse
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}
