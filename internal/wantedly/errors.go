package wantedly

import "fmt"

// StructureMismatchError reports that a snapshot document does not carry the
// expected envelope. At names the last path segment that was reached.
type StructureMismatchError struct {
	Path string
	At   string
	Err  error
}

func (e *StructureMismatchError) Error() string {
	msg := fmt.Sprintf("invalid JSON structure: expected %s as array", e.Path)
	if e.At != "" {
		msg += fmt.Sprintf(" (mismatch at %s)", e.At)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StructureMismatchError) Unwrap() error { return e.Err }

// MissingNodeError reports an edge without a `node` field.
type MissingNodeError struct {
	Index int
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("missing `node` field in edge %d", e.Index)
}

// NodeDecodeError wraps the type or presence failure of a node's required fields.
type NodeDecodeError struct {
	Err error
}

func (e *NodeDecodeError) Error() string {
	return fmt.Sprintf("json decode error for profile view node: %v", e.Err)
}

func (e *NodeDecodeError) Unwrap() error { return e.Err }

// UnrecognizedDateTokenError carries the relative-date text that matched no known form.
type UnrecognizedDateTokenError struct {
	Raw string
}

func (e *UnrecognizedDateTokenError) Error() string {
	return fmt.Sprintf("invalid impression date: %q", e.Raw)
}
