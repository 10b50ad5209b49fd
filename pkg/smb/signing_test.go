package smb

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"testing"

	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// RFC 4493 section 4
func TestCMACVectors(t *testing.T) {
	block, err := aes.NewCipher(unhex(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	if err != nil {
		t.Fatal(err)
	}

	msg := "6bc1bee22e409f96e93d7e117393172a" +
		"ae2d8a571e03ac9c9eb76fac45af8e51" +
		"30c81c46a35ce411e5fbc1191a0a52ef" +
		"f69f2445df4f9b17ad2b417be66c3710"
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"empty", "", "bb1d6929e95937287fa37d129b756746"},
		{"one block", msg[:32], "070a16b46b4d4144f79bdd9dd04a287c"},
		{"partial block", msg[:80], "dfa66747de9ae63030ca32611497c827"},
		{"four blocks", msg, "51f0bebf7e3b9d92fc49741779363cfe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cmac(block, unhex(t, tt.msg))
			if hex.EncodeToString(got) != tt.want {
				t.Errorf("expected %s, got %x", tt.want, got)
			}
		})
	}
}

func TestCMACSubkeys(t *testing.T) {
	l := unhex(t, "7df76b0c1ab899b33e42f047b91b546f")
	k1 := dbl(l)
	if hex.EncodeToString(k1) != "fbeed618357133667c85e08f7236a8de" {
		t.Errorf("unexpected K1 %x", k1)
	}
	if k2 := dbl(k1); hex.EncodeToString(k2) != "f7ddac306ae266ccf90bc11ee46d513b" {
		t.Errorf("unexpected K2 %x", k2)
	}
}

func testMessage() []byte {
	h := types.NewHeader(types.CommandIoctl, 7)
	h.SessionID = 0x1122334455667788
	h.Flags |= types.FlagsSigned
	return append(h.Marshal(), []byte("payload after the header")...)
}

func TestSignerRoundTrip(t *testing.T) {
	sessionKey := []byte("0123456789abcdef")

	for _, dialect := range []types.Dialect{types.DialectSMB2_1, types.DialectSMB3_0, types.DialectSMB3_0_2} {
		s, err := newSigner(dialect, sessionKey)
		if err != nil {
			t.Fatalf("newSigner(0x%04x) failed: %v", uint16(dialect), err)
		}
		if (dialect >= types.DialectSMB3_0) != (s.block != nil) {
			t.Errorf("dialect 0x%04x: wrong signing algorithm", uint16(dialect))
		}

		msg := testMessage()
		s.sign(msg)
		if bytes.Equal(msg[sigStart:sigEnd], make([]byte, 16)) {
			t.Errorf("dialect 0x%04x: signature not written", uint16(dialect))
		}
		if !s.verify(msg) {
			t.Errorf("dialect 0x%04x: signature did not verify", uint16(dialect))
		}

		msg[len(msg)-1] ^= 0xFF
		if s.verify(msg) {
			t.Errorf("dialect 0x%04x: tampered message verified", uint16(dialect))
		}
	}
}

func TestSignerIgnoresExistingSignature(t *testing.T) {
	s, err := newSigner(types.DialectSMB2_1, []byte("0123456789abcdef"))
	if err != nil {
		t.Fatal(err)
	}
	a := testMessage()
	b := testMessage()
	copy(b[sigStart:sigEnd], bytes.Repeat([]byte{0xEE}, 16))

	if !bytes.Equal(s.mac(a), s.mac(b)) {
		t.Error("expected signature field to be zeroed before signing")
	}
	if b[sigStart] != 0xEE {
		t.Error("mac must not modify its input")
	}
}

func TestSignerShortMessage(t *testing.T) {
	s, err := newSigner(types.DialectSMB3_0, []byte("0123456789abcdef"))
	if err != nil {
		t.Fatal(err)
	}
	if s.verify(make([]byte, 10)) {
		t.Error("expected short message to fail verification")
	}
}

func TestKDFLabels(t *testing.T) {
	key := []byte("0123456789abcdef")

	sign := kdf(key, "SMB2AESCMAC\x00", "SmbSign\x00")
	if len(sign) != 16 {
		t.Fatalf("expected 16 byte key, got %d", len(sign))
	}
	if !bytes.Equal(sign, kdf(key, "SMB2AESCMAC\x00", "SmbSign\x00")) {
		t.Error("expected kdf to be deterministic")
	}

	in := kdf(key, "SMB2AESCCM\x00", "ServerIn \x00")
	out := kdf(key, "SMB2AESCCM\x00", "ServerOut\x00")
	if bytes.Equal(in, out) || bytes.Equal(in, sign) {
		t.Error("expected distinct keys per label and context")
	}
}
