package wire

import (
	"fmt"
	"strings"
)

// FramingError reports input that could not be read as one complete
// line-delimited JSON record: the stream ended in the middle of a record, or
// a record's bytes are not well-formed JSON.
type FramingError struct {
	Reason string
	Line   string
}

// Error implements the error interface.
func (e FramingError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("framing: %s", e.Reason)
	}
	return fmt.Sprintf("framing: %s: %q", e.Reason, strings.TrimSuffix(e.Line, "\n"))
}

// IsFraming checks whether an error is a FramingError.
func IsFraming(err error) bool {
	_, ok := err.(FramingError)
	return ok
}

// SchemaError reports a well-formed JSON line whose contents do not match
// any known envelope or payload shape. It carries the offending line for
// diagnostics.
type SchemaError struct {
	Reason string
	Line   string
}

// Error implements the error interface.
func (e SchemaError) Error() string {
	return fmt.Sprintf("schema: %s: %q", e.Reason, strings.TrimSuffix(e.Line, "\n"))
}

// IsSchema checks whether an error is a SchemaError.
func IsSchema(err error) bool {
	_, ok := err.(SchemaError)
	return ok
}
