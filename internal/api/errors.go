package api

import (
	"errors"
	"fmt"
)

// ErrRemote matches every RemoteError via errors.Is.
var ErrRemote = errors.New("api: remote call failed")

var errMissingID = errors.New("api: response has no task id")

// RemoteError describes a failed call. Status is zero for transport and
// timeout failures.
type RemoteError struct {
	Op     string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("api: %s failed: status %d: %v", e.Op, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("api: %s failed: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("api: %s failed: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("api: %s failed", e.Op)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

func remoteErr(op string, status int, err error) error {
	return &RemoteError{Op: op, Status: status, Err: err}
}
