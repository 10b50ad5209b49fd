// Package types defines the SMB2 wire structures a named-pipe client needs.
package types

// SMB2ProtocolID is the SMB2 header magic
var SMB2ProtocolID = [4]byte{0xFE, 'S', 'M', 'B'}

// SMB2HeaderSize is the fixed size of every SMB2 header
const SMB2HeaderSize = 64

// Dialect is an SMB2 dialect revision
type Dialect uint16

const (
	DialectSMB2_0_2 Dialect = 0x0202
	DialectSMB2_1   Dialect = 0x0210
	DialectSMB3_0   Dialect = 0x0300
	DialectSMB3_0_2 Dialect = 0x0302
	DialectSMB3_1_1 Dialect = 0x0311 // recognised, never offered
)

// Command is the SMB2 header command code
type Command uint16

const (
	CommandNegotiate      Command = 0x0000
	CommandSessionSetup   Command = 0x0001
	CommandLogoff         Command = 0x0002
	CommandTreeConnect    Command = 0x0003
	CommandTreeDisconnect Command = 0x0004
	CommandCreate         Command = 0x0005
	CommandClose          Command = 0x0006
	CommandRead           Command = 0x0008
	CommandWrite          Command = 0x0009
	CommandIoctl          Command = 0x000B
)

// HeaderFlags of the SMB2 header
type HeaderFlags uint32

const (
	FlagsServerToRedir HeaderFlags = 0x00000001
	FlagsSigned        HeaderFlags = 0x00000008
)

// NTStatus is the status field of an SMB2 response header
type NTStatus uint32

const (
	StatusSuccess               NTStatus = 0x00000000
	StatusPending               NTStatus = 0x00000103
	StatusBufferOverflow        NTStatus = 0x80000005 // more pipe data waiting
	StatusInvalidParameter      NTStatus = 0xC000000D
	StatusNoSuchFile            NTStatus = 0xC000000F
	StatusMoreProcessingReq     NTStatus = 0xC0000016
	StatusAccessDenied          NTStatus = 0xC0000022
	StatusObjectNameNotFound    NTStatus = 0xC0000034
	StatusObjectPathNotFound    NTStatus = 0xC000003A
	StatusLogonFailure          NTStatus = 0xC000006D
	StatusPasswordExpired       NTStatus = 0xC0000071
	StatusAccountDisabled       NTStatus = 0xC0000072
	StatusPipeDisconnected      NTStatus = 0xC00000B0
	StatusPipeClosing           NTStatus = 0xC00000B1
	StatusNotSupported          NTStatus = 0xC00000BB
	StatusBadNetworkName        NTStatus = 0xC00000CC
	StatusPipeBroken            NTStatus = 0xC000014B
	StatusUserSessionDeleted    NTStatus = 0xC0000203
	StatusNetworkSessionExpired NTStatus = 0xC000035C
)

// IsSuccess reports whether the response carries usable data. A pipe read
// that overflowed still returned its first chunk.
func (s NTStatus) IsSuccess() bool {
	return s == StatusSuccess || s == StatusBufferOverflow
}

// AccessMask is a file access mask
type AccessMask uint32

const (
	FileReadData       AccessMask = 0x00000001
	FileWriteData      AccessMask = 0x00000002
	FileAppendData     AccessMask = 0x00000004
	FileReadEA         AccessMask = 0x00000008
	FileReadAttributes AccessMask = 0x00000080
	ReadControl        AccessMask = 0x00020000
	Synchronize        AccessMask = 0x00100000
	GenericAll         AccessMask = 0x10000000
)

// CreateDisposition of a CREATE request
type CreateDisposition uint32

// FileOpen opens an existing object and fails otherwise
const FileOpen CreateDisposition = 1

// ShareAccess of a CREATE request
type ShareAccess uint32

const (
	FileShareRead  ShareAccess = 0x00000001
	FileShareWrite ShareAccess = 0x00000002
)

// ShareType from TREE_CONNECT
type ShareType uint8

const ShareTypePipe ShareType = 0x02

// SecurityMode of NEGOTIATE and SESSION_SETUP
type SecurityMode uint8

const (
	NegotiateSigningEnabled  SecurityMode = 0x01
	NegotiateSigningRequired SecurityMode = 0x02
)

// Capabilities of NEGOTIATE
type Capabilities uint32

const (
	GlobalCapDFS        Capabilities = 0x00000001
	GlobalCapLargeMTU   Capabilities = 0x00000004
	GlobalCapEncryption Capabilities = 0x00000040
)

// FsctlPipeTransceive writes to a pipe and reads the reply in one IOCTL
const FsctlPipeTransceive uint32 = 0x0011C017
