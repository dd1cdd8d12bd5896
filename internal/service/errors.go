package service

import (
	"errors"
	"fmt"

	"profileviews/internal/repository"
	"profileviews/internal/wantedly"
)

// Error kinds reported by ErrorKind.
const (
	KindStructureMismatch     = "structure_mismatch"
	KindMissingNode           = "missing_node"
	KindNodeDecode            = "node_decode_error"
	KindUnrecognizedDateToken = "unrecognized_date_token"
	KindStorage               = "storage_error"
	KindUnknown               = "unknown"
)

// EdgeError locates a failure at one edge of a snapshot. It unwraps to the
// typed cause.
type EdgeError struct {
	Index int
	Err   error
}

func (e *EdgeError) Error() string {
	return fmt.Sprintf("edge %d: %v", e.Index, e.Err)
}

func (e *EdgeError) Unwrap() error { return e.Err }

// ErrorKind classifies err into the import failure taxonomy. It returns ""
// for a nil error.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var (
		structureErr *wantedly.StructureMismatchError
		missingErr   *wantedly.MissingNodeError
		decodeErr    *wantedly.NodeDecodeError
		dateErr      *wantedly.UnrecognizedDateTokenError
		storageErr   *repository.StorageError
	)
	switch {
	case errors.As(err, &structureErr):
		return KindStructureMismatch
	case errors.As(err, &missingErr):
		return KindMissingNode
	case errors.As(err, &decodeErr):
		return KindNodeDecode
	case errors.As(err, &dateErr):
		return KindUnrecognizedDateToken
	case errors.As(err, &storageErr):
		return KindStorage
	default:
		return KindUnknown
	}
}
