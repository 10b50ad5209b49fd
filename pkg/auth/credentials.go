// Package auth holds the credentials used for SMB session setup: NTLMv2 over
// password or NT hash, and Kerberos through gokrb5.
package auth

import (
	"crypto/hmac"
	"crypto/md5"
	"strings"

	"golang.org/x/crypto/md4"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// Credentials identify the account a session authenticates as
type Credentials interface {
	Domain() string
	Username() string
	IsHashAuth() bool
}

// KerberosProvider is implemented by credentials that can produce a SPNEGO
// Kerberos token
type KerberosProvider interface {
	Credentials
	IsKerberos() bool
	GetSPNEGOToken(spn string) ([]byte, error)
}

// Secret is implemented by credentials usable for NTLM
type Secret interface {
	Credentials
	NTHash() []byte
}

type identity struct {
	domain   string
	username string
}

// Domain returns the domain name
func (i identity) Domain() string { return i.domain }

// Username returns the username
func (i identity) Username() string { return i.username }

// PasswordCredentials authenticate with a cleartext password
type PasswordCredentials struct {
	identity
	password string
}

// NewPasswordCredentials creates password-based credentials
func NewPasswordCredentials(domain, username, password string) *PasswordCredentials {
	return &PasswordCredentials{identity{domain, username}, password}
}

// IsHashAuth returns false
func (c *PasswordCredentials) IsHashAuth() bool { return false }

// NTHash derives the NT hash of the password
func (c *PasswordCredentials) NTHash() []byte { return NTHash(c.password) }

// HashCredentials pass the hash
type HashCredentials struct {
	identity
	ntHash [16]byte
}

// NewHashCredentials creates hash-based credentials. Short hashes are zero
// padded.
func NewHashCredentials(domain, username string, ntHash []byte) *HashCredentials {
	c := &HashCredentials{identity: identity{domain, username}}
	copy(c.ntHash[:], ntHash)
	return c
}

// IsHashAuth returns true
func (c *HashCredentials) IsHashAuth() bool { return true }

// NTHash returns a copy of the NT hash
func (c *HashCredentials) NTHash() []byte {
	h := c.ntHash
	return h[:]
}

// NTHash is MD4(UTF-16LE(password))
func NTHash(password string) []byte {
	h := md4.New()
	h.Write(encoding.ToUTF16LE(password))
	return h.Sum(nil)
}

// NTOWFv2 is HMAC-MD5(NT hash, UTF-16LE(UPPER(user) + domain))
func NTOWFv2(ntHash []byte, username, domain string) []byte {
	return hmacMD5(ntHash, encoding.ToUTF16LE(strings.ToUpper(username)+domain))
}

func hmacMD5(key []byte, data ...[]byte) []byte {
	h := hmac.New(md5.New, key)
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
