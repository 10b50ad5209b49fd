package printnightmare

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
	"github.com/ineffectivecoder/SpoolGooser/pkg/dcerpc"
	"github.com/ineffectivecoder/SpoolGooser/pkg/ndr"
	"github.com/ineffectivecoder/SpoolGooser/pkg/rprn"
	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

// fakeTransport answers RPRN calls through handle
type fakeTransport struct {
	connectErr error
	authErr    error
	bindErrs   []error // consumed one per Bind
	arch       dcerpc.Arch
	handle     func(opnum uint16, stub []byte) ([]byte, error)

	binds int
	calls []uint16
	stubs [][]byte
}

func (f *fakeTransport) Connect(ctx context.Context) error      { return f.connectErr }
func (f *fakeTransport) Authenticate(ctx context.Context) error { return f.authErr }
func (f *fakeTransport) Arch() dcerpc.Arch                      { return f.arch }
func (f *fakeTransport) OSVersion() string                      { return "10.0.17763" }
func (f *fakeTransport) Host() string                           { return "192.168.1.10" }
func (f *fakeTransport) Close() error                           { return nil }

func (f *fakeTransport) Bind(ctx context.Context, iface dcerpc.UUID, major, minor uint16, pipe string) (Binding, error) {
	f.binds++
	if len(f.bindErrs) > 0 {
		err := f.bindErrs[0]
		f.bindErrs = f.bindErrs[1:]
		if err != nil {
			return Binding{}, err
		}
	}
	return Binding{Interface: iface, Major: major, Minor: minor, Host: f.Host(), Pipe: pipe}, nil
}

func (f *fakeTransport) Call(ctx context.Context, opnum uint16, stub []byte) ([]byte, error) {
	f.calls = append(f.calls, opnum)
	f.stubs = append(f.stubs, stub)
	if f.handle == nil {
		return nil, fmt.Errorf("no handler for opnum %d", opnum)
	}
	return f.handle(opnum, stub)
}

// count returns how many calls were made with opnum
func (f *fakeTransport) count(opnum uint16) int {
	n := 0
	for _, c := range f.calls {
		if c == opnum {
			n++
		}
	}
	return n
}

// recorder keeps every reported line with its level prefix
type recorder struct {
	lines []string
}

func (r *recorder) add(prefix, format string, args []any) {
	r.lines = append(r.lines, prefix+" "+fmt.Sprintf(format, args...))
}

func (r *recorder) Status(format string, args ...any) { r.add("[*]", format, args) }
func (r *recorder) Good(format string, args ...any)   { r.add("[+]", format, args) }
func (r *recorder) Warn(format string, args ...any)   { r.add("[!]", format, args) }
func (r *recorder) Error(format string, args ...any)  { r.add("[-]", format, args) }
func (r *recorder) Debug(format string, args ...any)  { r.add("[D]", format, args) }

func (r *recorder) contains(s string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// fixedRandom returns the shortest string of a constant character
type fixedRandom struct{}

func (fixedRandom) Alphanumeric(min, max int) string { return strings.Repeat("a", min) }
func (fixedRandom) UpperAlpha(min, max int) string   { return strings.Repeat("A", min) }
func (fixedRandom) Numeric(min, max int) string      { return strings.Repeat("1", min) }

// ntStatus mimics an SMB error carrying an NT status
type ntStatus uint32

func (s ntStatus) Error() string    { return fmt.Sprintf("NT status 0x%08X", uint32(s)) }
func (s ntStatus) NTStatus() uint32 { return uint32(s) }

var errPipeBroken = ntStatus(winerror.StatusPipeBroken)

func newTestSession(tr *fakeTransport, config Config) (*Session, *recorder, *[]time.Duration) {
	rep := &recorder{}
	s := NewSession(tr, rep, fixedRandom{}, config)
	var sleeps []time.Duration
	s.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return s, rep, &sleeps
}

// cbBuf is the trailing buffer size of an enum or directory request
func cbBuf(stub []byte) uint32 {
	return encoding.Uint32LE(stub[len(stub)-4:])
}

// driverRecord is one DRIVER_INFO_2 with its strings after the header
func driverRecord(name, env, driverPath string) []byte {
	buf := make([]byte, 24)
	encoding.PutUint32LE(buf[0:4], 3)
	for i, s := range []string{name, env, driverPath, "unidrv.dll", "ps5ui.dll"} {
		encoding.PutUint32LE(buf[4+4*i:], uint32(len(buf)))
		buf = append(buf, encoding.ToUTF16LEWithNull(s)...)
	}
	return buf
}

// twoPhase answers size queries with len(data) and full requests with data
func twoPhase(stub, data []byte, extra ...uint32) []byte {
	w := ndr.NewWriter()
	needed := uint32(len(data))
	if cbBuf(stub) == 0 {
		w.WriteNullPointer()
		w.WriteUint32(needed)
		for range extra {
			w.WriteUint32(0)
		}
		w.WriteUint32(winerror.ErrorInsufficientBuffer)
		return w.Bytes()
	}
	w.WriteUniqueBytes(0x00020000, data)
	w.WriteUint32(needed)
	for _, v := range extra {
		w.WriteUint32(v)
	}
	w.WriteUint32(winerror.ErrorSuccess)
	return w.Bytes()
}

func statusStub(status uint32) []byte {
	return encoding.AppendUint32LE(nil, status)
}

const (
	testDriverPath = `C:\Windows\System32\DRIVERS\ps5ui.dll`
	testDriverDir  = `C:\Windows\system32\spool\DRIVERS\x64`
)

// spooler answers enum and directory calls and delegates installs to add
func spooler(add func(stub []byte) ([]byte, error)) func(uint16, []byte) ([]byte, error) {
	return func(opnum uint16, stub []byte) ([]byte, error) {
		switch opnum {
		case rprn.OpnumEnumPrinterDrivers:
			return twoPhase(stub, driverRecord("Microsoft XPS Document Writer v4", rprn.EnvironmentX64, testDriverPath), 1), nil
		case rprn.OpnumGetPrinterDriverDirectory:
			return twoPhase(stub, encoding.ToUTF16LEWithNull(testDriverDir)), nil
		case rprn.OpnumAddPrinterDriverEx:
			return add(stub)
		}
		return nil, fmt.Errorf("unexpected opnum %d", opnum)
	}
}

func addStatus(status uint32) func([]byte) ([]byte, error) {
	return func([]byte) ([]byte, error) { return statusStub(status), nil }
}
