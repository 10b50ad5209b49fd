package dcerpc

import (
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

// Common errors
var (
	ErrBufferTooSmall = errors.New("buffer too small")
	ErrBindFailed     = errors.New("bind failed")
	ErrCallFailed     = errors.New("RPC call failed")
	ErrNotBound       = errors.New("not bound to interface")
	ErrBadFragment    = errors.New("malformed fragment")
)

// FaultError is returned when the server answers a request with a fault PDU
type FaultError struct {
	Status uint32
}

// Error implements the error interface
func (e *FaultError) Error() string {
	return "RPC fault: " + winerror.Describe(e.Status, winerror.LookupRPC)
}

// Is matches ErrCallFailed
func (e *FaultError) Is(target error) bool {
	return target == ErrCallFailed
}

// BindError describes a rejected presentation context
type BindError struct {
	Result uint16
	Reason uint16
}

// Error implements the error interface
func (e *BindError) Error() string {
	return fmt.Sprintf("bind rejected: result %d reason %d", e.Result, e.Reason)
}

// Unwrap returns ErrBindFailed
func (e *BindError) Unwrap() error {
	return ErrBindFailed
}
