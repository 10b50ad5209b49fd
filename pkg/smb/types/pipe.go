package types

import (
	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// Messages needed to drive a named pipe: CREATE, CLOSE, READ, WRITE and the
// FSCTL_PIPE_TRANSCEIVE ioctl. Offsets in the wire structures count from the
// start of the SMB2 header.

// FileID is the 16-byte handle returned by CREATE
type FileID struct {
	Persistent [8]byte
	Volatile   [8]byte
}

func (f FileID) put(buf []byte) {
	copy(buf[0:8], f.Persistent[:])
	copy(buf[8:16], f.Volatile[:])
}

func fileIDAt(buf []byte) FileID {
	var f FileID
	copy(f.Persistent[:], buf[0:8])
	copy(f.Volatile[:], buf[8:16])
	return f
}

// IsZero returns true if the handle was never assigned
func (f FileID) IsZero() bool {
	return f == FileID{}
}

// ImpersonationImpersonation is the level used for every pipe open
const ImpersonationImpersonation uint32 = 2

// CreateRequest is an SMB2 CREATE for a named pipe
type CreateRequest struct {
	DesiredAccess AccessMask
	ShareAccess   ShareAccess
	Disposition   CreateDisposition
	Name          []byte // UTF-16LE, no leading backslash
}

// NewCreatePipeRequest opens an existing pipe with read/write sharing. Pipes
// take no file attributes and no create options.
func NewCreatePipeRequest(name []byte, access AccessMask) *CreateRequest {
	return &CreateRequest{
		DesiredAccess: access,
		ShareAccess:   FileShareRead | FileShareWrite,
		Disposition:   FileOpen,
		Name:          name,
	}
}

// Marshal serializes the CREATE request
func (r *CreateRequest) Marshal() []byte {
	// 56 fixed bytes, then the name (at least one buffer byte)
	buf := make([]byte, 56+max(len(r.Name), 1))

	encoding.PutUint16LE(buf[0:2], 57)
	encoding.PutUint32LE(buf[4:8], ImpersonationImpersonation)
	encoding.PutUint32LE(buf[24:28], uint32(r.DesiredAccess))
	encoding.PutUint32LE(buf[32:36], uint32(r.ShareAccess))
	encoding.PutUint32LE(buf[36:40], uint32(r.Disposition))
	encoding.PutUint16LE(buf[44:46], SMB2HeaderSize+56)
	encoding.PutUint16LE(buf[46:48], uint16(len(r.Name)))
	copy(buf[56:], r.Name)

	return buf
}

// CreateResponse holds the parts of an SMB2 CREATE response a pipe needs
type CreateResponse struct {
	CreateAction uint32
	EndOfFile    uint64
	FileID       FileID
}

// Unmarshal deserializes a CREATE response
func (r *CreateResponse) Unmarshal(buf []byte) error {
	if len(buf) < 88 {
		return ErrBufferTooSmall
	}
	r.CreateAction = encoding.Uint32LE(buf[4:8])
	r.EndOfFile = encoding.Uint64LE(buf[48:56])
	r.FileID = fileIDAt(buf[64:80])
	return nil
}

// NewCloseRequest builds an SMB2 CLOSE body
func NewCloseRequest(fileID FileID) []byte {
	buf := make([]byte, 24)
	encoding.PutUint16LE(buf[0:2], 24)
	fileID.put(buf[8:24])
	return buf
}

// NewReadRequest builds an SMB2 READ body. Pipes are always read at offset 0.
func NewReadRequest(fileID FileID, length uint32) []byte {
	buf := make([]byte, 49)
	encoding.PutUint16LE(buf[0:2], 49)
	buf[2] = 0x50 // preferred data offset
	encoding.PutUint32LE(buf[4:8], length)
	fileID.put(buf[16:32])
	return buf
}

// ReadResponse is an SMB2 READ response
type ReadResponse struct {
	DataRemaining uint32
	Data          []byte
}

// Unmarshal deserializes a READ response
func (r *ReadResponse) Unmarshal(buf []byte) error {
	if len(buf) < 16 {
		return ErrBufferTooSmall
	}
	offset := int(buf[2]) - SMB2HeaderSize
	length := int(encoding.Uint32LE(buf[4:8]))
	r.DataRemaining = encoding.Uint32LE(buf[8:12])
	r.Data = nil

	if length == 0 {
		return nil
	}
	if offset < 0 || offset+length > len(buf) {
		return ErrBufferTooSmall
	}
	r.Data = append([]byte(nil), buf[offset:offset+length]...)
	return nil
}

// NewWriteRequest builds an SMB2 WRITE body carrying data at offset 0
func NewWriteRequest(fileID FileID, data []byte) []byte {
	buf := make([]byte, 48+max(len(data), 1))
	encoding.PutUint16LE(buf[0:2], 49)
	encoding.PutUint16LE(buf[2:4], SMB2HeaderSize+48)
	encoding.PutUint32LE(buf[4:8], uint32(len(data)))
	fileID.put(buf[16:32])
	copy(buf[48:], data)
	return buf
}

// WriteCount returns the byte count of an SMB2 WRITE response
func WriteCount(buf []byte) (uint32, error) {
	if len(buf) < 16 {
		return 0, ErrBufferTooSmall
	}
	return encoding.Uint32LE(buf[4:8]), nil
}

// ioctlFlagIsFsctl marks the CtlCode as an FSCTL
const ioctlFlagIsFsctl uint32 = 0x00000001

// NewIoctlRequest builds an SMB2 IOCTL body for an FSCTL with input data
func NewIoctlRequest(fileID FileID, ctlCode uint32, input []byte, maxOutput uint32) []byte {
	buf := make([]byte, 56+len(input))
	encoding.PutUint16LE(buf[0:2], 57)
	encoding.PutUint32LE(buf[4:8], ctlCode)
	fileID.put(buf[8:24])
	if len(input) > 0 {
		encoding.PutUint32LE(buf[24:28], SMB2HeaderSize+56)
	}
	encoding.PutUint32LE(buf[28:32], uint32(len(input)))
	encoding.PutUint32LE(buf[44:48], maxOutput)
	encoding.PutUint32LE(buf[48:52], ioctlFlagIsFsctl)
	copy(buf[56:], input)
	return buf
}

// IoctlResponse is an SMB2 IOCTL response
type IoctlResponse struct {
	CtlCode uint32
	Output  []byte
}

// Unmarshal deserializes an IOCTL response
func (r *IoctlResponse) Unmarshal(buf []byte) error {
	if len(buf) < 48 {
		return ErrBufferTooSmall
	}
	r.CtlCode = encoding.Uint32LE(buf[4:8])
	offset := int(encoding.Uint32LE(buf[32:36])) - SMB2HeaderSize
	length := int(encoding.Uint32LE(buf[36:40]))
	r.Output = nil

	if length == 0 {
		return nil
	}
	if offset < 0 || offset+length > len(buf) {
		return ErrBufferTooSmall
	}
	r.Output = append([]byte(nil), buf[offset:offset+length]...)
	return nil
}
