package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jcmturner/gokrb5/v8/client"
	"github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/keytab"
	"github.com/jcmturner/gokrb5/v8/spnego"
)

// KDC overrides KDC discovery when set (host or host:port)
var KDC string

var errNoKerberosClient = errors.New("Kerberos client not initialized")

// KerberosCredentials authenticate with a gokrb5 client
type KerberosCredentials struct {
	identity
	krbClient *client.Client
}

func newKerberos(username, realm string, build func(*config.Config) (*client.Client, error)) (*KerberosCredentials, error) {
	cfg, err := loadKrb5Config(realm)
	if err != nil {
		return nil, err
	}
	krbClient, err := build(cfg)
	if err != nil {
		return nil, err
	}
	return &KerberosCredentials{
		identity:  identity{strings.ToUpper(realm), username},
		krbClient: krbClient,
	}, nil
}

// NewKerberosCredentialsFromCCache uses the tickets in a ccache file. The
// username is the ccache's default principal.
func NewKerberosCredentialsFromCCache(ccachePath, realm string) (*KerberosCredentials, error) {
	ccache, err := credentials.LoadCCache(ccachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ccache: %w", err)
	}

	username := ""
	if names := ccache.DefaultPrincipal.PrincipalName.NameString; len(names) > 0 {
		username = names[0]
	}

	return newKerberos(username, realm, func(cfg *config.Config) (*client.Client, error) {
		c, err := client.NewFromCCache(ccache, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kerberos client: %w", err)
		}
		return c, nil
	})
}

// NewKerberosCredentialsFromKeytab uses a keytab for the AS exchange
func NewKerberosCredentialsFromKeytab(keytabPath, username, realm string) (*KerberosCredentials, error) {
	kt, err := keytab.Load(keytabPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keytab: %w", err)
	}
	return newKerberos(username, realm, func(cfg *config.Config) (*client.Client, error) {
		return client.NewWithKeytab(username, realm, kt, cfg), nil
	})
}

// NewKerberosCredentialsFromPassword uses a password for the AS exchange
func NewKerberosCredentialsFromPassword(username, realm, password string) (*KerberosCredentials, error) {
	return newKerberos(username, realm, func(cfg *config.Config) (*client.Client, error) {
		return client.NewWithPassword(username, realm, password, cfg), nil
	})
}

// IsHashAuth returns false
func (k *KerberosCredentials) IsHashAuth() bool { return false }

// IsKerberos returns true
func (k *KerberosCredentials) IsKerberos() bool { return true }

// Login performs the AS exchange. Ccache clients already hold a TGT.
func (k *KerberosCredentials) Login() error {
	if k.krbClient == nil {
		return errNoKerberosClient
	}
	return k.krbClient.Login()
}

// GetSPNEGOToken returns a marshalled NegTokenInit for spn
func (k *KerberosCredentials) GetSPNEGOToken(spn string) ([]byte, error) {
	if k.krbClient == nil {
		return nil, errNoKerberosClient
	}

	token, err := spnego.SPNEGOClient(k.krbClient, spn).InitSecContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create SPNEGO token: %w", err)
	}
	return token.Marshal()
}

// Close destroys the Kerberos client
func (k *KerberosCredentials) Close() {
	if k.krbClient != nil {
		k.krbClient.Destroy()
	}
}

// loadKrb5Config pins the KDC when one was given, otherwise loads krb5.conf
// from the usual places and falls back to DNS discovery
func loadKrb5Config(realm string) (*config.Config, error) {
	realm = strings.ToUpper(realm)
	if KDC != "" {
		return config.NewFromString(kdcConfig(realm, KDC))
	}

	for _, path := range []string{"/etc/krb5.conf", "/etc/krb5/krb5.conf", os.Getenv("KRB5_CONFIG")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return config.Load(path)
		}
	}

	if realm == "" {
		realm = "DOMAIN.LOCAL"
	}
	return config.NewFromString(fmt.Sprintf(`[libdefaults]
default_realm = %s
dns_lookup_realm = true
dns_lookup_kdc = true
`, realm))
}

// kdcConfig pins realm to a single KDC
func kdcConfig(realm, kdc string) string {
	if !strings.Contains(kdc, ":") {
		kdc += ":88"
	}
	return fmt.Sprintf(`[libdefaults]
default_realm = %[1]s
dns_lookup_realm = false
dns_lookup_kdc = false

[realms]
%[1]s = {
 kdc = %[2]s
}
`, realm, kdc)
}
