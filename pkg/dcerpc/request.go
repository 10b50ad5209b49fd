package dcerpc

import (
	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// Request represents an RPC REQUEST message
type Request struct {
	Header    CommonHeader
	AllocHint uint32
	ContextID uint16
	Opnum     uint16
	StubData  []byte
}

// NewRequest creates an RPC request
func NewRequest(opnum uint16, stubData []byte, callID uint32) *Request {
	return &Request{
		Header:    newHeader(PacketTypeRequest, callID),
		AllocHint: uint32(len(stubData)),
		ContextID: ndrContextID,
		Opnum:     opnum,
		StubData:  stubData,
	}
}

// requestHeaderSize is the common header plus alloc hint, context and opnum
const requestHeaderSize = 24

// Marshal serializes the request
func (r *Request) Marshal() []byte {
	r.Header.FragLength = uint16(requestHeaderSize + len(r.StubData))

	buf := make([]byte, 0, r.Header.FragLength)
	buf = append(buf, r.Header.Marshal()...)
	buf = encoding.AppendUint32LE(buf, r.AllocHint)
	buf = encoding.AppendUint16LE(buf, r.ContextID)
	buf = encoding.AppendUint16LE(buf, r.Opnum)
	return append(buf, r.StubData...)
}

// fragmentRequest splits a stub into request PDUs no larger than maxFrag.
// Every fragment carries the bytes still to come as its alloc hint.
func fragmentRequest(opnum uint16, stub []byte, callID uint32, maxFrag uint16) [][]byte {
	chunk := int(maxFrag) - requestHeaderSize
	if chunk <= 0 {
		chunk = defaultMaxXmitFrag - requestHeaderSize
	}

	var frags [][]byte
	for off := 0; ; off += chunk {
		end := min(off+chunk, len(stub))
		req := NewRequest(opnum, stub[off:end], callID)
		req.AllocHint = uint32(len(stub) - off)
		req.Header.PacketFlags = 0
		if off == 0 {
			req.Header.PacketFlags |= PacketFlagFirstFrag
		}
		if end == len(stub) {
			req.Header.PacketFlags |= PacketFlagLastFrag
		}
		frags = append(frags, req.Marshal())
		if end == len(stub) {
			return frags
		}
	}
}

// Response represents an RPC RESPONSE message
type Response struct {
	Header      CommonHeader
	AllocHint   uint32
	ContextID   uint16
	CancelCount uint8
	Reserved    uint8
	StubData    []byte
}

// Unmarshal deserializes a response
func (r *Response) Unmarshal(buf []byte) error {
	if len(buf) < 24 {
		return ErrBufferTooSmall
	}

	offset := 0

	// Header
	if err := r.Header.Unmarshal(buf[offset:]); err != nil {
		return err
	}
	offset += 16

	r.AllocHint = encoding.Uint32LE(buf[offset:])
	offset += 4
	r.ContextID = encoding.Uint16LE(buf[offset:])
	offset += 2
	r.CancelCount = buf[offset]
	offset++
	r.Reserved = buf[offset]
	offset++

	// Stub data
	stubLen := int(r.Header.FragLength) - offset - authTrailerLen(r.Header)
	if stubLen < 0 || offset+stubLen > len(buf) {
		return ErrBufferTooSmall
	}
	r.StubData = make([]byte, stubLen)
	copy(r.StubData, buf[offset:offset+stubLen])

	return nil
}

// authTrailerLen is the size of the sec_trailer and auth value, if any
func authTrailerLen(h CommonHeader) int {
	if h.AuthLength == 0 {
		return 0
	}
	return 8 + int(h.AuthLength)
}

// Fault represents an RPC FAULT response
type Fault struct {
	Header      CommonHeader
	AllocHint   uint32
	ContextID   uint16
	CancelCount uint8
	Reserved    uint8
	Status      uint32 // NTSTATUS or RPC status
}

// Unmarshal deserializes a fault response
func (r *Fault) Unmarshal(buf []byte) error {
	if len(buf) < 28 {
		return ErrBufferTooSmall
	}

	offset := 0
	if err := r.Header.Unmarshal(buf[offset:]); err != nil {
		return err
	}
	offset += 16

	r.AllocHint = encoding.Uint32LE(buf[offset:])
	offset += 4
	r.ContextID = encoding.Uint16LE(buf[offset:])
	offset += 2
	r.CancelCount = buf[offset]
	offset++
	r.Reserved = buf[offset]
	offset++
	r.Status = encoding.Uint32LE(buf[offset:])

	return nil
}

// Common RPC status codes
const (
	RPCStatusOK                  uint32 = 0
	RPCStatusAccessDenied        uint32 = 0x00000005
	RPCStatusInvalidParameter    uint32 = 0x00000057
	RPCStatusUnknownIf           uint32 = 0x1C010003
	RPCStatusProtseqNotSupported uint32 = 0x1C010004
	RPCStatusProcedureOutOfRange uint32 = 0x1C010002
)
