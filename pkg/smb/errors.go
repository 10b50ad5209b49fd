package smb

import (
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

// Common SMB errors
var (
	ErrConnectionFailed = errors.New("connection failed")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrAccessDenied     = errors.New("access denied")
	ErrNotFound         = errors.New("object not found")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotConnected     = errors.New("not connected")
	ErrSessionExpired   = errors.New("session expired")
	ErrBadNetworkName   = errors.New("bad network name")
	ErrNotSupported     = errors.New("operation not supported")
	ErrPipeClosed       = errors.New("pipe closed")
	ErrShortResponse    = errors.New("short response")
)

// NTStatusError carries a failing NT status from a response header. It
// matches the sentinel errors above via errors.Is, and the raw status stays
// reachable through errors.As.
type NTStatusError struct {
	Status types.NTStatus
}

// Error implements the error interface
func (e *NTStatusError) Error() string {
	return fmt.Sprintf("NT status error: 0x%08X (%s)", uint32(e.Status), e.StatusName())
}

// NTStatus returns the raw status code
func (e *NTStatusError) NTStatus() uint32 {
	return uint32(e.Status)
}

// StatusName returns the symbolic name for the status
func (e *NTStatusError) StatusName() string {
	if entry, ok := winerror.LookupNTStatus(uint32(e.Status)); ok {
		return entry.Name
	}
	return "UNKNOWN"
}

// Is maps the status onto the package sentinels
func (e *NTStatusError) Is(target error) bool {
	switch e.Status {
	case types.StatusAccessDenied:
		return target == ErrAccessDenied
	case types.StatusNoSuchFile, types.StatusObjectNameNotFound, types.StatusObjectPathNotFound:
		return target == ErrNotFound
	case types.StatusLogonFailure, types.StatusAccountDisabled, types.StatusPasswordExpired:
		return target == ErrAuthFailed
	case types.StatusBadNetworkName:
		return target == ErrBadNetworkName
	case types.StatusNetworkSessionExpired, types.StatusUserSessionDeleted:
		return target == ErrSessionExpired
	case types.StatusNotSupported:
		return target == ErrNotSupported
	case types.StatusInvalidParameter:
		return target == ErrInvalidParameter
	case types.StatusPipeBroken, types.StatusPipeClosing, types.StatusPipeDisconnected:
		return target == ErrPipeClosed
	}
	return false
}

// StatusToError converts an NT status to an error, nil on success
func StatusToError(status types.NTStatus) error {
	if status.IsSuccess() {
		return nil
	}
	return &NTStatusError{Status: status}
}

// checkResponse parses the SMB2 header of resp and returns the header along
// with the status as an error.
func checkResponse(resp []byte) (*types.Header, error) {
	if len(resp) < types.SMB2HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortResponse, len(resp))
	}
	var h types.Header
	if err := h.Unmarshal(resp[:types.SMB2HeaderSize]); err != nil {
		return nil, fmt.Errorf("failed to parse response header: %w", err)
	}
	return &h, StatusToError(h.Status)
}
