package dcerpc

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// UUID is a DCE UUID in wire order: the first three fields little-endian
type UUID [16]byte

// String formats the UUID in its canonical text form
func (u UUID) String() string {
	return uuid.UUID(u.swap()).String()
}

// swap converts between wire order and RFC 4122 byte order
func (u UUID) swap() [16]byte {
	var out [16]byte
	out[0], out[1], out[2], out[3] = u[3], u[2], u[1], u[0]
	out[4], out[5] = u[5], u[4]
	out[6], out[7] = u[7], u[6]
	copy(out[8:], u[8:])
	return out
}

// ParseUUID parses a UUID string (with or without dashes)
func ParseUUID(s string) (UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID %q: %w", s, err)
	}
	return UUID(parsed).swap(), nil
}

// MustParseUUID parses a UUID and panics on error
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// SyntaxID represents an interface or transfer syntax identifier
type SyntaxID struct {
	UUID    UUID
	Version uint32 // major in the low word, minor in the high word
}

// Version packs a major.minor interface version
func Version(major, minor uint16) uint32 {
	return uint32(major) | uint32(minor)<<16
}

// Marshal serializes the syntax ID
func (s *SyntaxID) Marshal() []byte {
	buf := make([]byte, 20)
	copy(buf[0:16], s.UUID[:])
	encoding.PutUint32LE(buf[16:20], s.Version)
	return buf
}

// Unmarshal deserializes a syntax ID
func (s *SyntaxID) Unmarshal(buf []byte) error {
	if len(buf) < 20 {
		return ErrBufferTooSmall
	}
	copy(s.UUID[:], buf[0:16])
	s.Version = encoding.Uint32LE(buf[16:20])
	return nil
}

// Transfer syntaxes and interfaces
var (
	NDRSyntax = SyntaxID{
		UUID:    MustParseUUID("8a885d04-1ceb-11c9-9fe8-08002b104860"),
		Version: 2,
	}

	// Offered alongside NDR to learn whether the server is 64-bit
	NDR64Syntax = SyntaxID{
		UUID:    MustParseUUID("71710533-beba-4937-8319-b5dbef9ccc36"),
		Version: 1,
	}
)
