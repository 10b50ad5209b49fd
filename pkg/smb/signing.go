package smb

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"

	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

// Signature field of the SMB2 header
const (
	sigStart = 48
	sigEnd   = 64
)

// signer computes SMB2 message signatures. SMB 2.x signs with HMAC-SHA256
// keyed by the session key; SMB 3.x signs with AES-128-CMAC keyed by a
// derived signing key.
type signer struct {
	key   []byte
	block cipher.Block // nil for HMAC-SHA256
}

func newSigner(dialect types.Dialect, sessionKey []byte) (*signer, error) {
	if dialect < types.DialectSMB3_0 {
		return &signer{key: sessionKey}, nil
	}

	key := kdf(sessionKey, "SMB2AESCMAC\x00", "SmbSign\x00")
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &signer{key: key, block: block}, nil
}

// mac returns the 16-byte signature of msg computed with a zeroed
// signature field. msg is not modified.
func (s *signer) mac(msg []byte) []byte {
	zeroed := append([]byte(nil), msg...)
	clear(zeroed[sigStart:sigEnd])

	if s.block != nil {
		return cmac(s.block, zeroed)
	}
	h := hmac.New(sha256.New, s.key)
	h.Write(zeroed)
	return h.Sum(nil)[:16]
}

// sign writes the signature into msg
func (s *signer) sign(msg []byte) {
	if len(msg) < types.SMB2HeaderSize {
		return
	}
	copy(msg[sigStart:sigEnd], s.mac(msg))
}

func (s *signer) verify(msg []byte) bool {
	if len(msg) < types.SMB2HeaderSize {
		return false
	}
	return hmac.Equal(msg[sigStart:sigEnd], s.mac(msg))
}

// cmac is AES-CMAC from RFC 4493
func cmac(block cipher.Block, msg []byte) []byte {
	var l [aes.BlockSize]byte
	block.Encrypt(l[:], l[:])
	k1 := dbl(l[:])
	k2 := dbl(k1)

	n := max((len(msg)+aes.BlockSize-1)/aes.BlockSize, 1)
	tail := msg[(n-1)*aes.BlockSize:]

	last := make([]byte, aes.BlockSize)
	if len(tail) == aes.BlockSize {
		subtle.XORBytes(last, tail, k1)
	} else {
		copy(last, tail)
		last[len(tail)] = 0x80
		subtle.XORBytes(last, last, k2)
	}

	x := make([]byte, aes.BlockSize)
	for i := range n - 1 {
		subtle.XORBytes(x, x, msg[i*aes.BlockSize:(i+1)*aes.BlockSize])
		block.Encrypt(x, x)
	}
	subtle.XORBytes(x, x, last)
	block.Encrypt(x, x)
	return x
}

// dbl doubles a block in GF(2^128)
func dbl(b []byte) []byte {
	out := make([]byte, len(b))
	var carry byte
	for i := len(b) - 1; i >= 0; i-- {
		out[i] = b[i]<<1 | carry
		carry = b[i] >> 7
	}
	if carry != 0 {
		out[len(out)-1] ^= 0x87
	}
	return out
}

// kdf is the SP800-108 counter-mode KDF with HMAC-SHA256 that SMB 3.0
// uses to derive 128-bit keys. The label already carries its terminator,
// and the separator byte follows it.
func kdf(ki []byte, label, context string) []byte {
	h := hmac.New(sha256.New, ki)
	h.Write(binary.BigEndian.AppendUint32(nil, 1))
	h.Write([]byte(label))
	h.Write([]byte{0})
	h.Write([]byte(context))
	h.Write(binary.BigEndian.AppendUint32(nil, 128))
	return h.Sum(nil)[:16]
}
