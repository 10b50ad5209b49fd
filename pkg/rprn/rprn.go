// Package rprn implements the MS-RPRN printer driver calls used against the
// Print Spooler: RpcEnumPrinterDrivers, RpcGetPrinterDriverDirectory and
// RpcAddPrinterDriverEx.
package rprn

import (
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/dcerpc"
	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

// Interface identity of the spooler service
var InterfaceUUID = dcerpc.MustParseUUID("12345678-1234-abcd-ef00-0123456789ab")

// Interface version 1.0
const (
	InterfaceMajor uint16 = 1
	InterfaceMinor uint16 = 0
)

// PipeName is the named pipe the spooler listens on, relative to IPC$
const PipeName = "spoolss"

// Supported driver environments
const (
	EnvironmentX64 = "Windows x64"
	EnvironmentX86 = "Windows NT x86"
)

// dwFileCopyFlags for RpcAddPrinterDriverEx
const (
	APDCopyAllFiles        uint32 = 0x00000004
	APDCopyFromDirectory   uint32 = 0x00000010
	APDInstallWarnedDriver uint32 = 0x00008000

	// AddDriverFlags is sent with every install attempt
	AddDriverFlags = APDInstallWarnedDriver | APDCopyFromDirectory | APDCopyAllFiles
)

// Errors
var (
	ErrMalformedStructure = errors.New("malformed structure")
	ErrUnexpectedReply    = errors.New("unexpected reply")
	ErrInvalidEnvironment = errors.New("invalid driver environment")
	ErrUnknownOperation   = errors.New("unknown operation")
	ErrBadParameters      = errors.New("bad operation parameters")
)

// TransportFault is returned when the transport reports a status instead of
// a response: an NT status on the named pipe, or a DCE/RPC fault PDU.
type TransportFault struct {
	Op     string
	Status uint32
	RPC    bool // Status came from a fault PDU
	Err    error
}

// Error implements the error interface
func (f *TransportFault) Error() string {
	return fmt.Sprintf("%s: transport fault %s", f.Op, f.Describe())
}

// Unwrap returns the underlying transport error
func (f *TransportFault) Unwrap() error {
	return f.Err
}

// Lookup resolves the status in the NT status or RPC table
func (f *TransportFault) Lookup() (winerror.Entry, bool) {
	if f.RPC {
		return winerror.LookupRPC(f.Status)
	}
	return winerror.LookupNTStatus(f.Status)
}

// Describe formats the status with its name when known
func (f *TransportFault) Describe() string {
	if f.RPC {
		return winerror.Describe(f.Status, winerror.LookupRPC)
	}
	return winerror.Describe(f.Status, winerror.LookupNTStatus)
}

// IsPipeBroken reports whether err is a STATUS_PIPE_BROKEN transport fault
func IsPipeBroken(err error) bool {
	var fault *TransportFault
	return errors.As(err, &fault) && !fault.RPC && fault.Status == winerror.StatusPipeBroken
}
