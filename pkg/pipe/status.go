package pipe

import (
	"errors"

	"github.com/ineffectivecoder/SpoolGooser/pkg/smb"
)

// Status is the result of trying to open a pipe
type Status int

const (
	StatusAvailable Status = iota
	StatusAccessDenied
	StatusNotFound
	StatusError
)

// String returns a short label for the status
func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusAccessDenied:
		return "access denied"
	case StatusNotFound:
		return "not found"
	}
	return "error"
}

// Classify maps an Open error onto a Status
func Classify(err error) Status {
	switch {
	case err == nil:
		return StatusAvailable
	case errors.Is(err, smb.ErrAccessDenied):
		return StatusAccessDenied
	case errors.Is(err, smb.ErrNotFound), errors.Is(err, smb.ErrBadNetworkName):
		return StatusNotFound
	}
	return StatusError
}
