// Package dcerpc is a connection-oriented DCE/RPC client (C706 with the
// MS-RPCE extensions) for use over SMB named pipes.
package dcerpc

import (
	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// Protocol version 5.0
const (
	RPCVersionMajor = 5
	RPCVersionMinor = 0
)

// PacketType is the PTYPE of a connection-oriented PDU
type PacketType uint8

// The PDUs a client sends or expects back
const (
	PacketTypeRequest  PacketType = 0
	PacketTypeResponse PacketType = 2
	PacketTypeFault    PacketType = 3
	PacketTypeBind     PacketType = 11
	PacketTypeBindAck  PacketType = 12
	PacketTypeBindNak  PacketType = 13
)

// PFC flags
const (
	PacketFlagFirstFrag uint8 = 0x01
	PacketFlagLastFrag  uint8 = 0x02
)

// NDRDataRepresentation is little-endian integers, ASCII and IEEE floats
const NDRDataRepresentation = 0x00000010

// commonHeaderSize is the fixed prefix of every PDU
const commonHeaderSize = 16

// CommonHeader is the 16-byte prefix of every PDU
type CommonHeader struct {
	Version            uint8
	VersionMinor       uint8
	PacketType         PacketType
	PacketFlags        uint8
	DataRepresentation uint32
	FragLength         uint16
	AuthLength         uint16
	CallID             uint32
}

// newHeader returns the header of an unfragmented client PDU
func newHeader(t PacketType, callID uint32) CommonHeader {
	return CommonHeader{
		Version:            RPCVersionMajor,
		VersionMinor:       RPCVersionMinor,
		PacketType:         t,
		PacketFlags:        PacketFlagFirstFrag | PacketFlagLastFrag,
		DataRepresentation: NDRDataRepresentation,
		CallID:             callID,
	}
}

// Marshal serializes the common header
func (h *CommonHeader) Marshal() []byte {
	buf := []byte{h.Version, h.VersionMinor, byte(h.PacketType), h.PacketFlags}
	buf = encoding.AppendUint32LE(buf, h.DataRepresentation)
	buf = encoding.AppendUint16LE(buf, h.FragLength)
	buf = encoding.AppendUint16LE(buf, h.AuthLength)
	return encoding.AppendUint32LE(buf, h.CallID)
}

// Unmarshal deserializes a common header
func (h *CommonHeader) Unmarshal(buf []byte) error {
	if len(buf) < commonHeaderSize {
		return ErrBufferTooSmall
	}
	*h = CommonHeader{
		Version:            buf[0],
		VersionMinor:       buf[1],
		PacketType:         PacketType(buf[2]),
		PacketFlags:        buf[3],
		DataRepresentation: encoding.Uint32LE(buf[4:8]),
		FragLength:         encoding.Uint16LE(buf[8:10]),
		AuthLength:         encoding.Uint16LE(buf[10:12]),
		CallID:             encoding.Uint32LE(buf[12:16]),
	}
	return nil
}
