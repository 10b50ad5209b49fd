package smb

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// SMB2_TRANSFORM_HEADER layout
const (
	transformHeaderSize    = 52
	transformFlagEncrypted = 0x0001
	ccmNonceSize           = 11
	ccmTagSize             = 16
)

var transformProtocolID = []byte{0xFD, 'S', 'M', 'B'}

var errDecrypt = errors.New("message authentication failed")

// isTransform reports whether msg carries an SMB2_TRANSFORM_HEADER
func isTransform(msg []byte) bool {
	return len(msg) >= 4 && string(msg[:4]) == string(transformProtocolID)
}

// sealer wraps messages of one session in AES-128-CCM transform headers,
// the cipher of SMB 3.0 and 3.0.2
type sealer struct {
	sessionID uint64
	out       *ccm // ServerIn key
	in        *ccm // ServerOut key
}

func newSealer(sessionKey []byte, sessionID uint64) (*sealer, error) {
	out, err := newCCM(kdf(sessionKey, "SMB2AESCCM\x00", "ServerIn \x00"), ccmTagSize)
	if err != nil {
		return nil, err
	}
	in, err := newCCM(kdf(sessionKey, "SMB2AESCCM\x00", "ServerOut\x00"), ccmTagSize)
	if err != nil {
		return nil, err
	}
	return &sealer{sessionID: sessionID, out: out, in: in}, nil
}

// seal encrypts a complete SMB2 message
func (s *sealer) seal(msg []byte) ([]byte, error) {
	hdr := make([]byte, transformHeaderSize, transformHeaderSize+len(msg))
	copy(hdr[0:4], transformProtocolID)
	nonce := hdr[20 : 20+ccmNonceSize]
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	encoding.PutUint32LE(hdr[36:40], uint32(len(msg)))
	encoding.PutUint16LE(hdr[42:44], transformFlagEncrypted)
	encoding.PutUint64LE(hdr[44:52], s.sessionID)

	// Authenticated data is everything after the signature
	ciphertext, tag := s.out.seal(nonce, msg, hdr[20:])
	copy(hdr[4:20], tag)
	return append(hdr, ciphertext...), nil
}

// open decrypts a transform message from the server
func (s *sealer) open(msg []byte) ([]byte, error) {
	if len(msg) < transformHeaderSize || !isTransform(msg) {
		return nil, errors.New("not a transform message")
	}
	if size := encoding.Uint32LE(msg[36:40]); int(size) != len(msg)-transformHeaderSize {
		return nil, fmt.Errorf("transform message size %d, have %d bytes", size, len(msg)-transformHeaderSize)
	}
	if id := encoding.Uint64LE(msg[44:52]); id != s.sessionID {
		return nil, fmt.Errorf("transform message for session 0x%x", id)
	}
	return s.in.open(msg[20:20+ccmNonceSize], msg[transformHeaderSize:], msg[4:20], msg[20:transformHeaderSize])
}

// ccm is the CCM mode of SP800-38C over AES. The nonce length picks the
// width of the length field, so any nonce from 7 to 13 bytes works.
type ccm struct {
	block   cipher.Block
	tagSize int
}

func newCCM(key []byte, tagSize int) (*ccm, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &ccm{block: block, tagSize: tagSize}, nil
}

func (c *ccm) seal(nonce, plaintext, aad []byte) (ciphertext, tag []byte) {
	tag = c.cbcMAC(nonce, plaintext, aad)
	ciphertext = make([]byte, len(plaintext))
	c.ctr(nonce, ciphertext, plaintext, tag)
	return ciphertext, tag
}

func (c *ccm) open(nonce, ciphertext, tag, aad []byte) ([]byte, error) {
	if len(tag) != c.tagSize {
		return nil, errDecrypt
	}
	plaintext := make([]byte, len(ciphertext))
	expected := append([]byte(nil), tag...)
	c.ctr(nonce, plaintext, ciphertext, expected)

	if !hmac.Equal(expected, c.cbcMAC(nonce, plaintext, aad)) {
		clear(plaintext)
		return nil, errDecrypt
	}
	return plaintext, nil
}

// counter returns counter block i
func (c *ccm) counter(nonce []byte, i byte) []byte {
	blk := make([]byte, aes.BlockSize)
	blk[0] = byte(14 - len(nonce))
	copy(blk[1:], nonce)
	blk[aes.BlockSize-1] = i
	return blk
}

// ctr XORs src into dst with the keystream from counter 1 and masks tag
// in place with the first keystream block
func (c *ccm) ctr(nonce, dst, src, tag []byte) {
	s0 := c.counter(nonce, 0)
	c.block.Encrypt(s0, s0)
	subtle.XORBytes(tag, tag, s0)
	cipher.NewCTR(c.block, c.counter(nonce, 1)).XORKeyStream(dst, src)
}

// cbcMAC returns the unmasked tag
func (c *ccm) cbcMAC(nonce, plaintext, aad []byte) []byte {
	q := 15 - len(nonce)
	x := make([]byte, aes.BlockSize)
	x[0] = byte((c.tagSize-2)/2<<3 | (q - 1))
	if len(aad) > 0 {
		x[0] |= 0x40
	}
	copy(x[1:], nonce)
	for i, n := aes.BlockSize-1, len(plaintext); i > len(nonce); i, n = i-1, n>>8 {
		x[i] = byte(n)
	}
	c.block.Encrypt(x, x)

	if len(aad) > 0 {
		c.absorb(x, append(encoding.AppendUint16BE(nil, uint16(len(aad))), aad...))
	}
	c.absorb(x, plaintext)
	return x[:c.tagSize]
}

// absorb runs data through CBC, zero padding the final block
func (c *ccm) absorb(x, data []byte) {
	for len(data) > 0 {
		n := min(len(data), aes.BlockSize)
		subtle.XORBytes(x[:n], x[:n], data[:n])
		c.block.Encrypt(x, x)
		data = data[n:]
	}
}
