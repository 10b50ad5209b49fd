// Package remote carries printnightmare sessions over SMB named pipes.
package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/auth"
	"github.com/ineffectivecoder/SpoolGooser/pkg/dcerpc"
	"github.com/ineffectivecoder/SpoolGooser/pkg/debug"
	"github.com/ineffectivecoder/SpoolGooser/pkg/pipe"
	"github.com/ineffectivecoder/SpoolGooser/pkg/printnightmare"
	"github.com/ineffectivecoder/SpoolGooser/pkg/rprn"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb"
)

// DefaultPort is the SMB port
const DefaultPort = 445

// Config describes the target and how to log on to it
type Config struct {
	Host        string
	Port        int
	Credentials auth.Credentials
	SMB         smb.ClientConfig
}

// Target is an SMB connection to one host that binds RPC interfaces on its
// IPC$ pipes
type Target struct {
	config Config
	client *smb.Client
	pipe   *pipe.Pipe
	rpc    *dcerpc.Client
	arch   dcerpc.Arch
}

var _ printnightmare.Transport = (*Target)(nil)

// New creates an unconnected target
func New(config Config) *Target {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	return &Target{config: config}
}

// Connect dials the host and negotiates SMB
func (t *Target) Connect(ctx context.Context) error {
	t.client = smb.NewClientWithConfig(t.config.SMB)
	if err := t.client.Connect(ctx, t.config.Host, t.config.Port); err != nil {
		return err
	}
	debug.Printf("Connected to %s:%d, dialect %s\n", t.config.Host, t.config.Port, t.client.DialectName())
	return nil
}

// Authenticate sets up the SMB session
func (t *Target) Authenticate(ctx context.Context) error {
	if t.client == nil {
		return smb.ErrNotConnected
	}
	if t.config.Credentials == nil {
		return fmt.Errorf("%w: no credentials", smb.ErrAuthFailed)
	}
	if err := t.client.Authenticate(ctx, t.config.Credentials); err != nil {
		return err
	}

	s := t.client.Session()
	debug.Printf("Session 0x%x established (guest %v, signed %v, encrypted %v)\n",
		s.SessionID(), s.IsGuest(), s.IsSigned(), s.IsEncrypted())
	return nil
}

// Bind opens pipeName on IPC$ and binds iface on it. Any previous binding is
// dropped first, so Bind also serves to reconnect after the pipe breaks.
func (t *Target) Bind(ctx context.Context, iface dcerpc.UUID, major, minor uint16, pipeName string) (printnightmare.Binding, error) {
	binding := printnightmare.Binding{
		Interface: iface,
		Major:     major,
		Minor:     minor,
		Host:      t.config.Host,
		Pipe:      pipeName,
	}
	t.closePipe()

	p, err := t.openPipe(ctx, pipeName)
	if err != nil {
		return binding, rprn.WrapTransportError("bind", err)
	}

	rpc := dcerpc.NewClient(p)
	arch, err := rpc.Bind(ctx, iface, dcerpc.Version(major, minor))
	if err != nil {
		p.Close()
		return binding, rprn.WrapTransportError("bind", err)
	}

	t.pipe = p
	t.rpc = rpc
	t.arch = arch
	return binding, nil
}

// openPipe opens pipeName, logging on again once if the SMB session is gone
func (t *Target) openPipe(ctx context.Context, pipeName string) (*pipe.Pipe, error) {
	if t.client == nil {
		return nil, smb.ErrNotConnected
	}

	p, err := t.tryOpen(ctx, pipeName)
	if err == nil || !sessionLost(err) {
		return p, err
	}

	debug.Printf("SMB session lost (%v), logging on again\n", err)
	t.client.Close()
	if err := t.Connect(ctx); err != nil {
		return nil, err
	}
	if err := t.Authenticate(ctx); err != nil {
		return nil, err
	}
	return t.tryOpen(ctx, pipeName)
}

func (t *Target) tryOpen(ctx context.Context, pipeName string) (*pipe.Pipe, error) {
	tree, err := t.client.GetIPCTree(ctx)
	if err != nil {
		return nil, err
	}

	p, err := pipe.Open(ctx, tree, pipeName)
	debug.Printf("Pipe %s: %s\n", pipeName, pipe.Classify(err))
	return p, err
}

// sessionLost reports whether err means the SMB session must be rebuilt
func sessionLost(err error) bool {
	return errors.Is(err, smb.ErrNotConnected) || errors.Is(err, smb.ErrSessionExpired) ||
		errors.Is(err, smb.ErrConnectionFailed)
}

// Call sends one request on the bound interface
func (t *Target) Call(ctx context.Context, opnum uint16, stub []byte) ([]byte, error) {
	if t.rpc == nil {
		return nil, dcerpc.ErrNotBound
	}
	return t.rpc.Call(ctx, opnum, stub)
}

// Arch returns the architecture learned during the last bind
func (t *Target) Arch() dcerpc.Arch {
	return t.arch
}

// OSVersion returns the Windows build the server advertised during NTLM
// authentication
func (t *Target) OSVersion() string {
	if t.client == nil {
		return "unknown"
	}
	v := t.client.ServerVersion()
	if v.IsZero() {
		return "unknown"
	}
	return v.String()
}

// Host returns the target host
func (t *Target) Host() string {
	return t.config.Host
}

func (t *Target) closePipe() {
	if t.rpc != nil {
		t.rpc.Close()
		t.rpc = nil
	}
	if t.pipe != nil {
		t.pipe.Close()
		t.pipe = nil
	}
}

// Close releases the pipe and the SMB connection
func (t *Target) Close() error {
	t.closePipe()
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}
