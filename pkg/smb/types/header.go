package types

import (
	"errors"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// Header is the 64-byte SMB2 sync header
type Header struct {
	ProtocolID    [4]byte
	StructureSize uint16
	CreditCharge  uint16
	Status        NTStatus // ChannelSequence on requests
	Command       Command
	CreditRequest uint16 // Credits granted on responses
	Flags         HeaderFlags
	NextCommand   uint32
	MessageID     uint64
	Reserved      uint32 // Async ID high bits on async responses
	TreeID        uint32
	SessionID     uint64
	Signature     [16]byte
}

// NewHeader creates a request header asking for one credit
func NewHeader(cmd Command, messageID uint64) *Header {
	return &Header{
		ProtocolID:    SMB2ProtocolID,
		StructureSize: SMB2HeaderSize,
		CreditCharge:  1, // Required for SMB 2.1+
		Command:       cmd,
		MessageID:     messageID,
		CreditRequest: 1,
	}
}

// Marshal serializes the header
func (h *Header) Marshal() []byte {
	buf := make([]byte, SMB2HeaderSize)

	copy(buf[0:4], h.ProtocolID[:])
	encoding.PutUint16LE(buf[4:6], h.StructureSize)
	encoding.PutUint16LE(buf[6:8], h.CreditCharge)
	encoding.PutUint32LE(buf[8:12], uint32(h.Status))
	encoding.PutUint16LE(buf[12:14], uint16(h.Command))
	encoding.PutUint16LE(buf[14:16], h.CreditRequest)
	encoding.PutUint32LE(buf[16:20], uint32(h.Flags))
	encoding.PutUint32LE(buf[20:24], h.NextCommand)
	encoding.PutUint64LE(buf[24:32], h.MessageID)
	encoding.PutUint32LE(buf[32:36], h.Reserved)
	encoding.PutUint32LE(buf[36:40], h.TreeID)
	encoding.PutUint64LE(buf[40:48], h.SessionID)
	copy(buf[48:64], h.Signature[:])

	return buf
}

// Unmarshal deserializes a header
func (h *Header) Unmarshal(buf []byte) error {
	if len(buf) < SMB2HeaderSize {
		return errors.New("buffer too small for SMB2 header")
	}

	copy(h.ProtocolID[:], buf[0:4])
	if h.ProtocolID != SMB2ProtocolID {
		return errors.New("invalid SMB2 protocol ID")
	}

	h.StructureSize = encoding.Uint16LE(buf[4:6])
	h.CreditCharge = encoding.Uint16LE(buf[6:8])
	h.Status = NTStatus(encoding.Uint32LE(buf[8:12]))
	h.Command = Command(encoding.Uint16LE(buf[12:14]))
	h.CreditRequest = encoding.Uint16LE(buf[14:16])
	h.Flags = HeaderFlags(encoding.Uint32LE(buf[16:20]))
	h.NextCommand = encoding.Uint32LE(buf[20:24])
	h.MessageID = encoding.Uint64LE(buf[24:32])
	h.Reserved = encoding.Uint32LE(buf[32:36])
	h.TreeID = encoding.Uint32LE(buf[36:40])
	h.SessionID = encoding.Uint64LE(buf[40:48])
	copy(h.Signature[:], buf[48:64])

	return nil
}

// IsSigned returns true if the message is signed
func (h *Header) IsSigned() bool {
	return h.Flags&FlagsSigned != 0
}
