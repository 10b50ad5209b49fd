package types

import (
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// Messages that build and tear down a session and its IPC$ tree:
// SESSION_SETUP, LOGOFF, TREE_CONNECT and TREE_DISCONNECT.

// ErrBufferTooSmall indicates the buffer is too small for the message
var ErrBufferTooSmall = errors.New("buffer too small")

// SESSION_SETUP response flags
const (
	SessionFlagIsGuest     uint16 = 0x0001
	SessionFlagEncryptData uint16 = 0x0004
)

// NewSessionSetupRequest carries one SPNEGO token. The token follows the
// 24-byte fixed part directly.
func NewSessionSetupRequest(token []byte) []byte {
	buf := make([]byte, 24, 24+len(token))
	encoding.PutUint16LE(buf[0:2], 25)
	buf[3] = byte(NegotiateSigningEnabled)
	encoding.PutUint32LE(buf[4:8], uint32(GlobalCapDFS))
	encoding.PutUint16LE(buf[12:14], SMB2HeaderSize+24)
	encoding.PutUint16LE(buf[14:16], uint16(len(token)))
	return append(buf, token...)
}

// SessionSetupResponse is an SMB2 SESSION_SETUP response
type SessionSetupResponse struct {
	SessionFlags   uint16
	SecurityBuffer []byte
}

// Unmarshal deserializes a SESSION_SETUP response. A security buffer that
// points outside buf is dropped rather than rejected.
func (r *SessionSetupResponse) Unmarshal(buf []byte) error {
	if len(buf) < 8 {
		return ErrBufferTooSmall
	}
	if size := encoding.Uint16LE(buf[0:2]); size != 9 {
		return fmt.Errorf("session setup response structure size %d", size)
	}

	r.SessionFlags = encoding.Uint16LE(buf[2:4])
	off := int(encoding.Uint16LE(buf[4:6])) - SMB2HeaderSize
	n := int(encoding.Uint16LE(buf[6:8]))
	r.SecurityBuffer = nil
	if n > 0 && off >= 0 && off+n <= len(buf) {
		r.SecurityBuffer = append([]byte(nil), buf[off:off+n]...)
	}
	return nil
}

// IsGuest returns true if the server mapped the logon to Guest
func (r *SessionSetupResponse) IsGuest() bool {
	return r.SessionFlags&SessionFlagIsGuest != 0
}

// NewLogoffRequest builds an SMB2 LOGOFF body
func NewLogoffRequest() []byte {
	buf := make([]byte, 4)
	encoding.PutUint16LE(buf, 4)
	return buf
}

// NewTreeConnectRequest connects to a UNC path given in UTF-16LE
func NewTreeConnectRequest(path []byte) []byte {
	buf := make([]byte, 8, 8+len(path))
	encoding.PutUint16LE(buf[0:2], 9)
	encoding.PutUint16LE(buf[4:6], SMB2HeaderSize+8)
	encoding.PutUint16LE(buf[6:8], uint16(len(path)))
	return append(buf, path...)
}

// TreeConnectResponse is an SMB2 TREE_CONNECT response
type TreeConnectResponse struct {
	ShareType     ShareType
	ShareFlags    uint32
	MaximalAccess AccessMask
}

// Unmarshal deserializes a TREE_CONNECT response
func (r *TreeConnectResponse) Unmarshal(buf []byte) error {
	if len(buf) < 16 {
		return ErrBufferTooSmall
	}
	if size := encoding.Uint16LE(buf[0:2]); size != 16 {
		return fmt.Errorf("tree connect response structure size %d", size)
	}

	r.ShareType = ShareType(buf[2])
	r.ShareFlags = encoding.Uint32LE(buf[4:8])
	r.MaximalAccess = AccessMask(encoding.Uint32LE(buf[12:16]))
	return nil
}

// NewTreeDisconnectRequest builds an SMB2 TREE_DISCONNECT body, which has
// the same shape as LOGOFF
func NewTreeDisconnectRequest() []byte {
	return NewLogoffRequest()
}
