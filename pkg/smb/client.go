// Package smb provides the SMB2/SMB3 client used to reach named pipes.
//
// It covers dialect negotiation, NTLM (password or pass-the-hash) and
// Kerberos session setup, signing and encryption, IPC$ tree connection and
// the CREATE/READ/WRITE/IOCTL calls a pipe needs.
//
// Basic usage:
//
//	client := smb.NewClient()
//	if err := client.Connect(ctx, "192.168.1.100", 445); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	creds := auth.NewPasswordCredentials("DOMAIN", "user", "password")
//	if err := client.Authenticate(ctx, creds); err != nil {
//	    log.Fatal(err)
//	}
//
//	tree, err := client.GetIPCTree(ctx)
package smb

import (
	"context"
	"fmt"
	"time"

	"github.com/ineffectivecoder/SpoolGooser/pkg/auth"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

// Client represents an SMB2/SMB3 client
type Client struct {
	config    ClientConfig
	transport *Transport
	session   *Session
	negResult *NegotiateResult
	ipcTree   *Tree
}

// ClientConfig configures client behavior
type ClientConfig struct {
	Timeout        time.Duration
	MaxDialect     types.Dialect // zero offers every supported dialect
	RequireSigning bool          // sign even when the server does not ask
	Socks5URL      string        // e.g. "socks5://127.0.0.1:1080"
}

// DefaultClientConfig returns default client configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a new SMB client with default configuration
func NewClient() *Client {
	return NewClientWithConfig(DefaultClientConfig())
}

// NewClientWithConfig creates a new SMB client with custom configuration
func NewClientWithConfig(config ClientConfig) *Client {
	return &Client{
		config: config,
	}
}

// Connect dials the server and negotiates a dialect
func (c *Client) Connect(ctx context.Context, host string, port int) error {
	transport, err := DialWithConfig(ctx, host, port, TransportConfig{
		Timeout:   c.config.Timeout,
		Socks5URL: c.config.Socks5URL,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	c.transport = transport

	negResult, err := negotiate(ctx, transport, c.config.MaxDialect)
	if err != nil {
		c.transport.Close()
		c.transport = nil
		return fmt.Errorf("negotiation failed: %w", err)
	}
	if c.config.RequireSigning {
		negResult.RequiresSigning = true
	}
	c.negResult = negResult

	return nil
}

// Authenticate sets up a session with the given credentials
func (c *Client) Authenticate(ctx context.Context, creds auth.Credentials) error {
	if c.transport == nil || c.negResult == nil {
		return ErrNotConnected
	}

	c.session = NewSession(c.transport, c.negResult)
	return c.session.Authenticate(ctx, creds)
}

// GetIPCTree returns the IPC$ tree, connecting it on first use
func (c *Client) GetIPCTree(ctx context.Context) (*Tree, error) {
	if c.session == nil || !c.session.IsAuthenticated() {
		return nil, ErrNotConnected
	}
	if c.ipcTree != nil {
		return c.ipcTree, nil
	}

	tree, err := c.session.TreeConnect(ctx, "IPC$")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IPC$: %w", err)
	}
	c.ipcTree = tree
	return tree, nil
}

// Close disconnects IPC$, logs off and closes the connection
func (c *Client) Close() error {
	if c.ipcTree != nil && c.session != nil {
		c.session.TreeDisconnect(context.Background(), c.ipcTree)
		c.ipcTree = nil
	}

	if c.session != nil {
		c.session.Close()
		c.session = nil
	}

	if c.transport != nil {
		err := c.transport.Close()
		c.transport = nil
		return err
	}

	return nil
}

// Session returns the current session
func (c *Client) Session() *Session {
	return c.session
}

// ServerVersion returns the OS version reported by the server, or the zero
// version when none was seen
func (c *Client) ServerVersion() auth.NTLMVersion {
	if c.session == nil {
		return auth.NTLMVersion{}
	}
	return c.session.ServerVersion()
}

// Dialect returns the negotiated dialect
func (c *Client) Dialect() types.Dialect {
	if c.negResult != nil {
		return c.negResult.Dialect
	}
	return 0
}

// DialectName returns the negotiated dialect as a string
func (c *Client) DialectName() string {
	return DialectName(c.Dialect())
}
