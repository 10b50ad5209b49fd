package types

import (
	"bytes"
	"testing"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

func TestSessionSetupRequest(t *testing.T) {
	token := []byte("spnego token")
	buf := NewSessionSetupRequest(token)

	if len(buf) != 24+len(token) {
		t.Fatalf("expected %d bytes, got %d", 24+len(token), len(buf))
	}
	if got := encoding.Uint16LE(buf[0:2]); got != 25 {
		t.Errorf("expected structure size 25, got %d", got)
	}
	if got := encoding.Uint16LE(buf[12:14]); got != SMB2HeaderSize+24 {
		t.Errorf("expected buffer offset 88, got %d", got)
	}
	if !bytes.Equal(buf[24:], token) {
		t.Errorf("expected token at offset 24, got %q", buf[24:])
	}
}

func TestSessionSetupResponse(t *testing.T) {
	buf := make([]byte, 8)
	encoding.PutUint16LE(buf[0:2], 9)
	encoding.PutUint16LE(buf[2:4], SessionFlagIsGuest|SessionFlagEncryptData)
	encoding.PutUint16LE(buf[4:6], SMB2HeaderSize+8)
	encoding.PutUint16LE(buf[6:8], 3)
	buf = append(buf, 'a', 'b', 'c')

	var r SessionSetupResponse
	if err := r.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !r.IsGuest() || r.SessionFlags&SessionFlagEncryptData == 0 {
		t.Errorf("unexpected flags 0x%04x", r.SessionFlags)
	}
	if string(r.SecurityBuffer) != "abc" {
		t.Errorf("expected abc, got %q", r.SecurityBuffer)
	}

	// A length running past the end drops the blob
	encoding.PutUint16LE(buf[6:8], 30)
	if err := r.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if r.SecurityBuffer != nil {
		t.Errorf("expected no security buffer, got %q", r.SecurityBuffer)
	}

	encoding.PutUint16LE(buf[0:2], 17)
	if err := r.Unmarshal(buf); err == nil {
		t.Error("expected bad structure size to fail")
	}
}

func TestTreeConnect(t *testing.T) {
	path := encoding.ToUTF16LE(`\\host\IPC$`)
	req := NewTreeConnectRequest(path)
	if got := encoding.Uint16LE(req[6:8]); int(got) != len(path) {
		t.Errorf("expected path length %d, got %d", len(path), got)
	}
	if !bytes.Equal(req[8:], path) {
		t.Error("expected path after fixed part")
	}

	buf := make([]byte, 16)
	encoding.PutUint16LE(buf[0:2], 16)
	buf[2] = byte(ShareTypePipe)
	encoding.PutUint32LE(buf[12:16], uint32(GenericAll))

	var r TreeConnectResponse
	if err := r.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if r.ShareType != ShareTypePipe || r.MaximalAccess != GenericAll {
		t.Errorf("unexpected response %+v", r)
	}
	if err := r.Unmarshal(buf[:10]); err != ErrBufferTooSmall {
		t.Errorf("expected ErrBufferTooSmall, got %v", err)
	}
}

func TestNegotiateRequestMarshal(t *testing.T) {
	r := NegotiateRequest{SecurityMode: NegotiateSigningEnabled, Dialects: ClientDialects}
	buf := r.Marshal()
	if len(buf) != 36+2*len(ClientDialects) {
		t.Fatalf("unexpected length %d", len(buf))
	}
	if got := Dialect(encoding.Uint16LE(buf[len(buf)-2:])); got != DialectSMB3_0_2 {
		t.Errorf("expected last dialect 3.0.2, got 0x%04x", uint16(got))
	}
}
