package types

import (
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// ClientDialects are the dialects offered, oldest first. SMB 3.1.1 is left
// out, which keeps negotiate contexts and preauth integrity off the wire.
var ClientDialects = []Dialect{DialectSMB2_0_2, DialectSMB2_1, DialectSMB3_0, DialectSMB3_0_2}

// NegotiateRequest is the body of an SMB2 NEGOTIATE request
type NegotiateRequest struct {
	SecurityMode SecurityMode
	Capabilities Capabilities
	ClientGUID   [16]byte
	Dialects     []Dialect
}

// Marshal encodes the 36-byte fixed part followed by the dialect array.
// The negotiate context fields stay zero.
func (r *NegotiateRequest) Marshal() []byte {
	buf := make([]byte, 36, 36+2*len(r.Dialects))
	encoding.PutUint16LE(buf[0:2], 36)
	encoding.PutUint16LE(buf[2:4], uint16(len(r.Dialects)))
	encoding.PutUint16LE(buf[4:6], uint16(r.SecurityMode))
	encoding.PutUint32LE(buf[8:12], uint32(r.Capabilities))
	copy(buf[12:28], r.ClientGUID[:])
	for _, d := range r.Dialects {
		buf = encoding.AppendUint16LE(buf, uint16(d))
	}
	return buf
}

// NegotiateResponse holds the fields of an SMB2 NEGOTIATE response the
// client acts on
type NegotiateResponse struct {
	SecurityMode    SecurityMode
	DialectRevision Dialect
	ServerGUID      [16]byte
	Capabilities    Capabilities
	MaxTransactSize uint32
	MaxReadSize     uint32
	MaxWriteSize    uint32
}

// Unmarshal decodes a response body. The security blob is ignored; the
// client always starts SPNEGO itself.
func (r *NegotiateResponse) Unmarshal(buf []byte) error {
	if len(buf) < 64 {
		return fmt.Errorf("%w: negotiate response is %d bytes", ErrBufferTooSmall, len(buf))
	}
	if size := encoding.Uint16LE(buf[0:2]); size != 65 {
		return fmt.Errorf("negotiate response structure size %d", size)
	}

	r.SecurityMode = SecurityMode(encoding.Uint16LE(buf[2:4]))
	r.DialectRevision = Dialect(encoding.Uint16LE(buf[4:6]))
	copy(r.ServerGUID[:], buf[8:24])
	r.Capabilities = Capabilities(encoding.Uint32LE(buf[24:28]))
	r.MaxTransactSize = encoding.Uint32LE(buf[28:32])
	r.MaxReadSize = encoding.Uint32LE(buf[32:36])
	r.MaxWriteSize = encoding.Uint32LE(buf[36:40])
	return nil
}

// RequiresSigning returns true if the server demands signed messages
func (r *NegotiateResponse) RequiresSigning() bool {
	return r.SecurityMode&NegotiateSigningRequired != 0
}
