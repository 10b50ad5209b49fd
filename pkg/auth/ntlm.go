package auth

import (
	"crypto/rand"
	"crypto/rc4"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

const ntlmSignature = "NTLMSSP\x00"

// NTLMSSP message types
const (
	messageNegotiate    uint32 = 1
	messageChallenge    uint32 = 2
	messageAuthenticate uint32 = 3
)

// NTLMSSP negotiate flags
const (
	FlagUnicode                 uint32 = 0x00000001
	FlagRequestTarget           uint32 = 0x00000004
	FlagSign                    uint32 = 0x00000010
	FlagNTLM                    uint32 = 0x00000200
	FlagAlwaysSign              uint32 = 0x00008000
	FlagExtendedSessionSecurity uint32 = 0x00080000
	FlagTargetInfo              uint32 = 0x00800000
	FlagVersion                 uint32 = 0x02000000
	Flag128                     uint32 = 0x20000000
	FlagKeyExchange             uint32 = 0x40000000
	Flag56                      uint32 = 0x80000000
)

// clientFlags are offered in NEGOTIATE_MESSAGE
const clientFlags = FlagUnicode | FlagRequestTarget | FlagNTLM | FlagAlwaysSign |
	FlagExtendedSessionSecurity | FlagTargetInfo | FlagVersion |
	Flag128 | FlagKeyExchange | Flag56

// msvAvTimestamp is the AV_PAIR id of the server FILETIME
const msvAvTimestamp uint16 = 0x0007

// filetimeEpoch is 1601-01-01 in 100ns ticks before the Unix epoch
const filetimeEpoch = 116444736000000000

// Errors
var (
	ErrBadMessage = errors.New("malformed NTLMSSP message")
	ErrNoSecret   = errors.New("credentials carry no NTLM secret")
)

// NTLMVersion is the VERSION structure of NTLMSSP messages
type NTLMVersion struct {
	Major    uint8
	Minor    uint8
	Build    uint16
	Revision uint8
}

// clientVersion is what we claim to be: Windows 10, NTLMSSP_REVISION_W2K3
var clientVersion = NTLMVersion{Major: 10, Minor: 0, Build: 19041, Revision: 15}

func (v NTLMVersion) appendTo(b []byte) []byte {
	b = append(b, v.Major, v.Minor)
	b = encoding.AppendUint16LE(b, v.Build)
	return append(b, 0, 0, 0, v.Revision)
}

// IsZero reports whether no version was received
func (v NTLMVersion) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Build == 0
}

// String formats the version as major.minor.build
func (v NTLMVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// NTLMClient runs the client side of one NTLMv2 exchange
type NTLMClient struct {
	creds       Secret
	Workstation string

	serverVersion NTLMVersion
	sessionKey    []byte

	now    func() time.Time
	random io.Reader
}

// NewNTLMClient returns a client for creds, which must carry an NT hash
func NewNTLMClient(creds Credentials) (*NTLMClient, error) {
	secret, ok := creds.(Secret)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNoSecret, creds)
	}
	return &NTLMClient{
		creds:       secret,
		Workstation: "WORKSTATION",
		now:         time.Now,
		random:      rand.Reader,
	}, nil
}

// Negotiate returns the NEGOTIATE_MESSAGE with empty domain and workstation
func (c *NTLMClient) Negotiate() []byte {
	b := make([]byte, 0, 40)
	b = append(b, ntlmSignature...)
	b = encoding.AppendUint32LE(b, messageNegotiate)
	b = encoding.AppendUint32LE(b, clientFlags)
	b = appendField(b, 0, 0)
	b = appendField(b, 0, 0)
	return clientVersion.appendTo(b)
}

// Authenticate answers a CHALLENGE_MESSAGE with the AUTHENTICATE_MESSAGE
func (c *NTLMClient) Authenticate(challengeMsg []byte) ([]byte, error) {
	ch, err := parseChallenge(challengeMsg)
	if err != nil {
		return nil, err
	}
	c.serverVersion = ch.version

	clientChallenge := make([]byte, 8)
	if _, err := io.ReadFull(c.random, clientChallenge); err != nil {
		return nil, err
	}
	timestamp := ch.timestamp()
	if timestamp == nil {
		timestamp = encoding.AppendUint64LE(nil, uint64(c.now().UnixNano()/100+filetimeEpoch))
	}

	key := NTOWFv2(c.creds.NTHash(), c.creds.Username(), c.creds.Domain())
	nt, baseKey := ntlmv2Response(key, ch.serverChallenge[:], clientChallenge, timestamp, ch.targetInfo)
	lm := lmv2Response(key, ch.serverChallenge[:], clientChallenge)

	// With key exchange the exported key is random and travels RC4
	// encrypted under the base key
	c.sessionKey = baseKey
	var encryptedKey []byte
	if ch.flags&FlagKeyExchange != 0 {
		exported := make([]byte, 16)
		if _, err := io.ReadFull(c.random, exported); err != nil {
			return nil, err
		}
		cipher, err := rc4.NewCipher(baseKey)
		if err != nil {
			return nil, err
		}
		encryptedKey = make([]byte, 16)
		cipher.XORKeyStream(encryptedKey, exported)
		c.sessionKey = exported
	}

	return marshalAuthenticate(ch.flags,
		lm,
		nt,
		encoding.ToUTF16LE(c.creds.Domain()),
		encoding.ToUTF16LE(c.creds.Username()),
		encoding.ToUTF16LE(c.Workstation),
		encryptedKey,
	), nil
}

// SessionKey returns the exported session key once Authenticate succeeded
func (c *NTLMClient) SessionKey() []byte {
	return c.sessionKey
}

// ServerVersion returns the VERSION the server sent in its challenge
func (c *NTLMClient) ServerVersion() NTLMVersion {
	return c.serverVersion
}

// challenge holds the parts of CHALLENGE_MESSAGE we use
type challenge struct {
	flags           uint32
	serverChallenge [8]byte
	targetInfo      []byte
	version         NTLMVersion
}

func parseChallenge(b []byte) (*challenge, error) {
	if len(b) < 32 {
		return nil, fmt.Errorf("%w: challenge is %d bytes", ErrBadMessage, len(b))
	}
	if string(b[:8]) != ntlmSignature {
		return nil, fmt.Errorf("%w: bad signature", ErrBadMessage)
	}
	if t := encoding.Uint32LE(b[8:12]); t != messageChallenge {
		return nil, fmt.Errorf("%w: message type %d", ErrBadMessage, t)
	}

	ch := &challenge{flags: encoding.Uint32LE(b[20:24])}
	copy(ch.serverChallenge[:], b[24:32])
	if len(b) >= 48 {
		ch.targetInfo = field(b, 40)
	}
	if len(b) >= 56 && ch.flags&FlagVersion != 0 {
		ch.version = NTLMVersion{
			Major:    b[48],
			Minor:    b[49],
			Build:    encoding.Uint16LE(b[50:52]),
			Revision: b[55],
		}
	}
	return ch, nil
}

// timestamp returns MsvAvTimestamp from the target info, if present
func (ch *challenge) timestamp() []byte {
	info := ch.targetInfo
	for len(info) >= 4 {
		id := encoding.Uint16LE(info[0:2])
		n := int(encoding.Uint16LE(info[2:4]))
		info = info[4:]
		if id == 0 || n > len(info) {
			return nil
		}
		if id == msvAvTimestamp && n == 8 {
			return info[:n]
		}
		info = info[n:]
	}
	return nil
}

// field copies the payload a len/maxlen/offset descriptor at `at` points to.
// Out-of-range descriptors yield nil.
func field(msg []byte, at int) []byte {
	n := int(encoding.Uint16LE(msg[at : at+2]))
	off := int(encoding.Uint32LE(msg[at+4 : at+8]))
	if n == 0 || off+n > len(msg) {
		return nil
	}
	return append([]byte(nil), msg[off:off+n]...)
}

func appendField(b []byte, n, offset int) []byte {
	b = encoding.AppendUint16LE(b, uint16(n))
	b = encoding.AppendUint16LE(b, uint16(n))
	return encoding.AppendUint32LE(b, uint32(offset))
}

// marshalAuthenticate lays out AUTHENTICATE_MESSAGE: the fixed part with a
// zero MIC, then lm, nt, domain, user, workstation and session key
func marshalAuthenticate(flags uint32, payload ...[]byte) []byte {
	const fixedLen = 88

	size := fixedLen
	for _, p := range payload {
		size += len(p)
	}

	b := make([]byte, 0, size)
	b = append(b, ntlmSignature...)
	b = encoding.AppendUint32LE(b, messageAuthenticate)
	offset := fixedLen
	for _, p := range payload {
		b = appendField(b, len(p), offset)
		offset += len(p)
	}
	b = encoding.AppendUint32LE(b, flags)
	b = clientVersion.appendTo(b)
	b = append(b, make([]byte, 16)...)
	for _, p := range payload {
		b = append(b, p...)
	}
	return b
}

// ntlmv2Response returns NTProofStr||temp and the session base key
func ntlmv2Response(key, serverChallenge, clientChallenge, timestamp, targetInfo []byte) (response, baseKey []byte) {
	temp := make([]byte, 0, 32+len(targetInfo))
	temp = append(temp, 1, 1, 0, 0, 0, 0, 0, 0)
	temp = append(temp, timestamp...)
	temp = append(temp, clientChallenge...)
	temp = append(temp, 0, 0, 0, 0)
	temp = append(temp, targetInfo...)
	temp = append(temp, 0, 0, 0, 0)

	proof := hmacMD5(key, serverChallenge, temp)
	return append(proof, temp...), hmacMD5(key, proof)
}

// lmv2Response is HMAC-MD5(key, server||client challenge)||client challenge
func lmv2Response(key, serverChallenge, clientChallenge []byte) []byte {
	return append(hmacMD5(key, serverChallenge, clientChallenge), clientChallenge...)
}
