package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/ineffectivecoder/SpoolGooser/pkg/auth"
)

// credentials picks an auth method from the flags. The returned cleanup
// destroys any Kerberos client.
func credentials(opts *options) (auth.Credentials, func(), error) {
	noop := func() {}

	// Check for KRB5CCNAME environment variable if no explicit ccache
	if opts.kerberos && opts.ccache == "" && opts.keytab == "" && opts.password == "" {
		if envCcache := os.Getenv("KRB5CCNAME"); envCcache != "" {
			opts.ccache = strings.TrimPrefix(envCcache, "FILE:")
			console.Debug("Using KRB5CCNAME: %s", opts.ccache)
		}
	}

	hasKerberos := opts.ccache != "" || opts.keytab != "" || opts.kerberos
	if hasKerberos && opts.domain == "" {
		return nil, noop, errors.New("Kerberos requires realm (-d)")
	}
	auth.KDC = opts.dc

	if opts.ccache == "" && opts.keytab == "" && opts.password == "" && opts.hash == "" {
		if opts.username == "" || (opts.domain == "" && opts.kerberos) {
			return nil, noop, errors.New("Missing credentials (-u, -d) or Kerberos ticket (-k / $KRB5CCNAME)")
		}
		pass, err := promptPassword()
		if err != nil {
			return nil, noop, err
		}
		opts.password = pass
	}

	switch {
	case opts.ccache != "":
		console.Status("Authenticating with Kerberos ccache...")
		creds, err := auth.NewKerberosCredentialsFromCCache(opts.ccache, opts.domain)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to load ccache: %w", err)
		}
		return kerberosLogin(creds)
	case opts.keytab != "":
		if opts.username == "" {
			return nil, noop, errors.New("Keytab requires username (-u)")
		}
		console.Status("Authenticating with Kerberos keytab...")
		creds, err := auth.NewKerberosCredentialsFromKeytab(opts.keytab, opts.username, opts.domain)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to load keytab: %w", err)
		}
		return kerberosLogin(creds)
	case opts.kerberos:
		console.Status("Requesting a TGT for %s@%s...", opts.username, strings.ToUpper(opts.domain))
		creds, err := auth.NewKerberosCredentialsFromPassword(opts.username, opts.domain, opts.password)
		if err != nil {
			return nil, noop, err
		}
		return kerberosLogin(creds)
	case opts.hash != "":
		hash, err := parseHash(opts.hash)
		if err != nil {
			return nil, noop, err
		}
		console.Status("Authenticating with hash (pass-the-hash)...")
		return auth.NewHashCredentials(opts.domain, opts.username, hash), noop, nil
	default:
		console.Status("Authenticating as %s\\%s...", opts.domain, opts.username)
		return auth.NewPasswordCredentials(opts.domain, opts.username, opts.password), noop, nil
	}
}

func kerberosLogin(creds *auth.KerberosCredentials) (auth.Credentials, func(), error) {
	if err := creds.Login(); err != nil {
		creds.Close()
		return nil, func() {}, fmt.Errorf("Kerberos login failed: %w", err)
	}
	console.Debug("Kerberos auth as %s@%s", creds.Username(), creds.Domain())
	return creds, creds.Close, nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Print newline after password entry
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passBytes), nil
}

// parseHash accepts NT or LM:NT
func parseHash(hash string) ([]byte, error) {
	hash = strings.TrimSpace(hash)
	if _, nt, ok := strings.Cut(hash, ":"); ok {
		hash = nt
	}
	if len(hash) != 32 {
		return nil, errors.New("Invalid hash length (expected 32 hex chars)")
	}

	b, err := hex.DecodeString(hash)
	if err != nil {
		return nil, fmt.Errorf("invalid hash: %w", err)
	}
	return b, nil
}
