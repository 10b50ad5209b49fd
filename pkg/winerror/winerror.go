// Package winerror maps numeric NT status, Win32 error and RPC fault codes
// to their symbolic names and descriptions.
package winerror

import "fmt"

// Entry describes a known status code
type Entry struct {
	Code        uint32
	Name        string
	Description string
}

// String formats the entry as NAME (description)
func (e Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Description)
}

// Win32 error codes returned by the spooler
const (
	ErrorSuccess                       uint32 = 0
	ErrorFileNotFound                  uint32 = 2
	ErrorPathNotFound                  uint32 = 3
	ErrorAccessDenied                  uint32 = 5
	ErrorInvalidHandle                 uint32 = 6
	ErrorNotEnoughMemory               uint32 = 8
	ErrorNotSupported                  uint32 = 50
	ErrorBadNetpath                    uint32 = 53
	ErrorBadNetName                    uint32 = 67
	ErrorInvalidParameter              uint32 = 87
	ErrorInsufficientBuffer            uint32 = 122
	ErrorInvalidLevel                  uint32 = 124
	ErrorModNotFound                   uint32 = 126
	ErrorProcNotFound                  uint32 = 127
	ErrorBadExeFormat                  uint32 = 193
	ErrorMoreData                      uint32 = 234
	ErrorInvalidFlags                  uint32 = 1004
	ErrorDllInitFailed                 uint32 = 1114
	ErrorInvalidUserBuffer             uint32 = 1784
	ErrorPrinterDriverAlreadyInstalled uint32 = 1795
	ErrorUnknownPort                   uint32 = 1796
	ErrorUnknownPrinterDriver          uint32 = 1797
	ErrorUnknownPrintProcessor         uint32 = 1798
	ErrorInvalidPrinterName            uint32 = 1801
	ErrorPrinterAlreadyExists          uint32 = 1802
	ErrorInvalidEnvironment            uint32 = 1805
	ErrorPrinterDriverInUse            uint32 = 3001
	ErrorPrinterDriverWarned           uint32 = 3013
	ErrorPrinterDriverBlocked          uint32 = 3014
	ErrorPrinterDriverPackageInUse     uint32 = 3015
)

// NT status codes seen on the named pipe transport
const (
	StatusSuccess                uint32 = 0x00000000
	StatusInvalidHandle          uint32 = 0xC0000008
	StatusInvalidParameter       uint32 = 0xC000000D
	StatusAccessDenied           uint32 = 0xC0000022
	StatusBufferTooSmall         uint32 = 0xC0000023
	StatusObjectNameInvalid      uint32 = 0xC0000033
	StatusObjectNameNotFound     uint32 = 0xC0000034
	StatusObjectPathNotFound     uint32 = 0xC000003A
	StatusLogonFailure           uint32 = 0xC000006D
	StatusInsufficientResources  uint32 = 0xC000009A
	StatusPipeNotAvailable       uint32 = 0xC00000AC
	StatusInvalidPipeState       uint32 = 0xC00000AD
	StatusPipeBusy               uint32 = 0xC00000AE
	StatusPipeDisconnected       uint32 = 0xC00000B0
	StatusPipeClosing            uint32 = 0xC00000B1
	StatusIOTimeout              uint32 = 0xC00000B5
	StatusNotSupported           uint32 = 0xC00000BB
	StatusBadNetworkName         uint32 = 0xC00000CC
	StatusPipeEmpty              uint32 = 0xC00000D9
	StatusPipeBroken             uint32 = 0xC000014B
	StatusConnectionDisconnected uint32 = 0xC000020C
	StatusConnectionReset        uint32 = 0xC000020D
	StatusUserSessionDeleted     uint32 = 0xC0000203
	StatusNetworkSessionExpired  uint32 = 0xC000035C
)

// DCE/RPC fault codes (nca_s_*) and RPC_S_* values carried in fault PDUs
const (
	RPCUnknownInterface      uint32 = 0x1C010003
	RPCOpRangeError          uint32 = 0x1C010002
	RPCProtoError            uint32 = 0x1C01000B
	RPCFaultNDR              uint32 = 0x000006F7
	RPCProcnumOutOfRange     uint32 = 0x000006D1
	RPCServerUnavailable     uint32 = 0x000006BA
	RPCCallFailed            uint32 = 0x000006BE
	RPCUnsupportedAuthnLevel uint32 = 0x0000076D
	RPCAccessDenied          uint32 = 0x00000005
)

var ntStatus = table(
	Entry{StatusSuccess, "STATUS_SUCCESS", "The operation completed successfully."},
	Entry{StatusInvalidHandle, "STATUS_INVALID_HANDLE", "An invalid HANDLE was specified."},
	Entry{StatusInvalidParameter, "STATUS_INVALID_PARAMETER", "An invalid parameter was passed to a service or function."},
	Entry{StatusAccessDenied, "STATUS_ACCESS_DENIED", "A process has requested access to an object but has not been granted those access rights."},
	Entry{StatusBufferTooSmall, "STATUS_BUFFER_TOO_SMALL", "The buffer is too small to contain the entry."},
	Entry{StatusObjectNameInvalid, "STATUS_OBJECT_NAME_INVALID", "The object name is invalid."},
	Entry{StatusObjectNameNotFound, "STATUS_OBJECT_NAME_NOT_FOUND", "The object name is not found."},
	Entry{StatusObjectPathNotFound, "STATUS_OBJECT_PATH_NOT_FOUND", "The path does not exist."},
	Entry{StatusLogonFailure, "STATUS_LOGON_FAILURE", "The attempted logon is invalid."},
	Entry{StatusInsufficientResources, "STATUS_INSUFFICIENT_RESOURCES", "Insufficient system resources exist to complete the API."},
	Entry{StatusPipeNotAvailable, "STATUS_PIPE_NOT_AVAILABLE", "An instance of a named pipe cannot be found in the listening state."},
	Entry{StatusInvalidPipeState, "STATUS_INVALID_PIPE_STATE", "The named pipe is not in the connected or closing state."},
	Entry{StatusPipeBusy, "STATUS_PIPE_BUSY", "The specified pipe is set to complete operations and there are current I/O operations queued."},
	Entry{StatusPipeDisconnected, "STATUS_PIPE_DISCONNECTED", "The specified named pipe is in the disconnected state."},
	Entry{StatusPipeClosing, "STATUS_PIPE_CLOSING", "The specified named pipe is in the closing state."},
	Entry{StatusIOTimeout, "STATUS_IO_TIMEOUT", "The specified I/O operation was not completed before the time-out period expired."},
	Entry{StatusNotSupported, "STATUS_NOT_SUPPORTED", "The request is not supported."},
	Entry{StatusBadNetworkName, "STATUS_BAD_NETWORK_NAME", "The specified share name cannot be found on the remote server."},
	Entry{StatusPipeEmpty, "STATUS_PIPE_EMPTY", "Used to indicate that a read operation was done on an empty pipe."},
	Entry{StatusPipeBroken, "STATUS_PIPE_BROKEN", "The pipe operation has failed because the other end of the pipe has been closed."},
	Entry{StatusConnectionDisconnected, "STATUS_CONNECTION_DISCONNECTED", "The transport connection is now disconnected."},
	Entry{StatusConnectionReset, "STATUS_CONNECTION_RESET", "The transport connection has been reset."},
	Entry{StatusUserSessionDeleted, "STATUS_USER_SESSION_DELETED", "The remote user session has been deleted."},
	Entry{StatusNetworkSessionExpired, "STATUS_NETWORK_SESSION_EXPIRED", "The client session has expired."},
)

var rpcFault = table(
	Entry{RPCAccessDenied, "RPC_ACCESS_DENIED", "Access is denied."},
	Entry{RPCUnknownInterface, "NCA_S_UNK_IF", "The server does not export the requested interface."},
	Entry{RPCOpRangeError, "NCA_S_OP_RNG_ERROR", "The operation number passed in the request PDU is greater than or equal to the number of operations in the interface."},
	Entry{RPCProtoError, "NCA_S_PROTO_ERROR", "An RPC protocol error occurred."},
	Entry{RPCFaultNDR, "RPC_X_BAD_STUB_DATA", "The stub received bad data."},
	Entry{RPCProcnumOutOfRange, "RPC_S_PROCNUM_OUT_OF_RANGE", "The procedure number is out of range."},
	Entry{RPCServerUnavailable, "RPC_S_SERVER_UNAVAILABLE", "The RPC server is unavailable."},
	Entry{RPCCallFailed, "RPC_S_CALL_FAILED", "The remote procedure call failed."},
	Entry{RPCUnsupportedAuthnLevel, "RPC_S_UNSUPPORTED_AUTHN_LEVEL", "The requested authentication level is not supported."},
)

func table(entries ...Entry) map[uint32]Entry {
	m := make(map[uint32]Entry, len(entries))
	for _, e := range entries {
		m[e.Code] = e
	}
	return m
}

// LookupWin32 resolves a Win32 error code
func LookupWin32(code uint32) (Entry, bool) {
	e, ok := win32[code]
	return e, ok
}

// LookupNTStatus resolves an NT status code
func LookupNTStatus(code uint32) (Entry, bool) {
	e, ok := ntStatus[code]
	return e, ok
}

// LookupRPC resolves a DCE/RPC fault status. Fault PDUs may also carry plain
// Win32 codes, so the Win32 table is consulted second.
func LookupRPC(code uint32) (Entry, bool) {
	if e, ok := rpcFault[code]; ok {
		return e, true
	}
	return LookupWin32(code)
}

// Describe formats a code for display, falling back to the raw value when it
// is not in the given table.
func Describe(code uint32, lookup func(uint32) (Entry, bool)) string {
	if e, ok := lookup(code); ok {
		return fmt.Sprintf("%s (0x%08X): %s", e.Name, code, e.Description)
	}
	return fmt.Sprintf("unknown status 0x%08X", code)
}
