package dcerpc

import (
	"strings"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// BindRequest represents an RPC BIND request
type BindRequest struct {
	Header      CommonHeader
	MaxXmitFrag uint16
	MaxRecvFrag uint16
	AssocGroup  uint32
	NumCtxItems uint8
	Reserved    [3]byte
	CtxItems    []ContextItem
}

// ContextItem represents a presentation context for binding
type ContextItem struct {
	ContextID        uint16
	NumTransItems    uint8
	Reserved         uint8
	AbstractSyntax   SyntaxID
	TransferSyntaxes []SyntaxID
}

// Presentation context IDs offered in every bind
const (
	ndrContextID   uint16 = 0
	ndr64ContextID uint16 = 1
)

// Default fragment sizes proposed in the bind
const (
	defaultMaxXmitFrag = 4280
	defaultMaxRecvFrag = 4280
)

// NewBindRequest creates a bind request for an interface. The interface is
// offered twice: once with NDR and once with NDR64, so the server's answer
// to the second context reveals its architecture.
func NewBindRequest(interfaceUUID UUID, interfaceVersion uint32, callID uint32) *BindRequest {
	abstract := SyntaxID{UUID: interfaceUUID, Version: interfaceVersion}
	return &BindRequest{
		Header:      newHeader(PacketTypeBind, callID),
		MaxXmitFrag: defaultMaxXmitFrag,
		MaxRecvFrag: defaultMaxRecvFrag,
		NumCtxItems: 2,
		CtxItems: []ContextItem{
			{
				ContextID:        ndrContextID,
				NumTransItems:    1,
				AbstractSyntax:   abstract,
				TransferSyntaxes: []SyntaxID{NDRSyntax},
			},
			{
				ContextID:        ndr64ContextID,
				NumTransItems:    1,
				AbstractSyntax:   abstract,
				TransferSyntaxes: []SyntaxID{NDR64Syntax},
			},
		},
	}
}

// Marshal serializes the bind request. Each context item is 4 bytes of
// header, the abstract syntax and its transfer syntaxes.
func (r *BindRequest) Marshal() []byte {
	buf := make([]byte, commonHeaderSize, 512)
	buf = encoding.AppendUint16LE(buf, r.MaxXmitFrag)
	buf = encoding.AppendUint16LE(buf, r.MaxRecvFrag)
	buf = encoding.AppendUint32LE(buf, r.AssocGroup)
	buf = append(buf, r.NumCtxItems, 0, 0, 0)

	for _, item := range r.CtxItems {
		buf = encoding.AppendUint16LE(buf, item.ContextID)
		buf = append(buf, item.NumTransItems, 0)
		buf = append(buf, item.AbstractSyntax.Marshal()...)
		for _, ts := range item.TransferSyntaxes {
			buf = append(buf, ts.Marshal()...)
		}
	}

	r.Header.FragLength = uint16(len(buf))
	copy(buf, r.Header.Marshal())
	return buf
}

// Presentation context results
const (
	ResultAcceptance        uint16 = 0
	ResultUserRejection     uint16 = 1
	ResultProviderRejection uint16 = 2
)

// BindAckResult represents the result of a context negotiation
type BindAckResult struct {
	Result         uint16
	Reason         uint16
	TransferSyntax SyntaxID
}

// Accepted reports whether the context was accepted
func (r BindAckResult) Accepted() bool {
	return r.Result == ResultAcceptance
}

// BindAck represents an RPC BIND_ACK response
type BindAck struct {
	Header      CommonHeader
	MaxXmitFrag uint16
	MaxRecvFrag uint16
	AssocGroup  uint32
	SecAddr     string // the server's pipe name, e.g. \PIPE\spoolss
	Results     []BindAckResult
}

// Unmarshal deserializes a bind ack response. Results that would run past
// the end of buf are dropped.
func (r *BindAck) Unmarshal(buf []byte) error {
	if len(buf) < 26 {
		return ErrBufferTooSmall
	}
	if err := r.Header.Unmarshal(buf); err != nil {
		return err
	}

	r.MaxXmitFrag = encoding.Uint16LE(buf[16:18])
	r.MaxRecvFrag = encoding.Uint16LE(buf[18:20])
	r.AssocGroup = encoding.Uint32LE(buf[20:24])

	// The secondary address is NUL terminated and padded to 4 bytes
	off := 26
	if n := int(encoding.Uint16LE(buf[24:26])); n > 0 && off+n <= len(buf) {
		r.SecAddr = strings.TrimRight(string(buf[off:off+n]), "\x00")
		off += n
	}
	off = (off + 3) &^ 3
	if off+4 > len(buf) {
		return ErrBufferTooSmall
	}

	count := int(buf[off])
	r.Results = r.Results[:0]
	for off += 4; len(r.Results) < count && off+24 <= len(buf); off += 24 {
		result := BindAckResult{
			Result: encoding.Uint16LE(buf[off:]),
			Reason: encoding.Uint16LE(buf[off+2:]),
		}
		if err := result.TransferSyntax.Unmarshal(buf[off+4:]); err != nil {
			return err
		}
		r.Results = append(r.Results, result)
	}
	return nil
}

// IsAccepted returns true if the NDR context was accepted
func (r *BindAck) IsAccepted() bool {
	return len(r.Results) > 0 && r.Results[ndrContextID].Accepted()
}

// Arch infers the server architecture from the NDR64 context result. A
// server that only returned one result says nothing either way.
func (r *BindAck) Arch() Arch {
	if len(r.Results) <= int(ndr64ContextID) {
		return ArchUnknown
	}
	if r.Results[ndr64ContextID].Accepted() {
		return ArchX64
	}
	return ArchX86
}

// Arch is the processor architecture of the RPC server
type Arch int

// Architectures
const (
	ArchUnknown Arch = iota
	ArchX86
	ArchX64
)

// String returns the short architecture name
func (a Arch) String() string {
	switch a {
	case ArchX86:
		return "x86"
	case ArchX64:
		return "x64"
	}
	return "unknown"
}
