package printnightmare

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
	"github.com/ineffectivecoder/SpoolGooser/pkg/dcerpc"
	"github.com/ineffectivecoder/SpoolGooser/pkg/rprn"
	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status uint32
		want   CheckCode
	}{
		{winerror.ErrorAccessDenied, CheckSafe},
		{winerror.ErrorPathNotFound, CheckVulnerable},
		{winerror.ErrorBadNetName, CheckVulnerable},
		{winerror.ErrorInvalidParameter, CheckDetected},
		{winerror.ErrorSuccess, CheckDetected},
		{1, CheckDetected},    // ERROR_INVALID_FUNCTION
		{32, CheckDetected},   // ERROR_SHARING_VIOLATION
		{65, CheckDetected},   // ERROR_NETWORK_ACCESS_DENIED
		{123, CheckDetected},  // ERROR_INVALID_NAME
		{1326, CheckDetected}, // ERROR_LOGON_FAILURE
		{3012, CheckDetected}, // ERROR_PRINTER_NOT_FOUND
		{0xDEADBEEF, CheckUnknown},
	}

	for _, tt := range tests {
		got := Classify(tt.status)
		if got.Code != tt.want {
			t.Errorf("status 0x%X: expected %s, got %s (%s)", tt.status, tt.want, got.Code, got.Reason)
		}
	}

	if r := Classify(winerror.ErrorBadNetName).Reason; !strings.Contains(r, "ERROR_BAD_NET_NAME") {
		t.Errorf("expected status name in reason, got %q", r)
	}
}

func TestCheckX64Vulnerable(t *testing.T) {
	tr := &fakeTransport{arch: dcerpc.ArchX64, handle: spooler(addStatus(winerror.ErrorPathNotFound))}
	s, rep, _ := newTestSession(tr, DefaultConfig())

	report := s.Check(context.Background())
	if report.Code != CheckVulnerable {
		t.Fatalf("expected vulnerable, got %s (%s)", report.Code, report.Reason)
	}

	env := report.Environment
	if env.Label != "Windows x64" {
		t.Errorf("expected Windows x64, got %s", env.Label)
	}
	if env.DriverPath != `C:\Windows\System32\DRIVERS\UNIDRV.DLL` {
		t.Errorf("expected UNIDRV.DLL beside ps5ui.dll, got %s", env.DriverPath)
	}
	if env.DriverDirectory != testDriverDir {
		t.Errorf("expected %s, got %s", testDriverDir, env.DriverDirectory)
	}
	if !rep.contains("Target environment: Windows v10.0.17763 (x64)") {
		t.Errorf("expected target environment line, got %q", rep.lines)
	}

	if tr.count(rprn.OpnumEnumPrinterDrivers) != 2 || tr.count(rprn.OpnumGetPrinterDriverDirectory) != 2 {
		t.Errorf("expected two-phase enum and directory calls, got %v", tr.calls)
	}

	add := tr.stubs[len(tr.stubs)-1]
	for _, want := range []string{`\\192.168.1.10`, `\??\UNC\127.0.0.1\aaaa\aaaa.dll`, configFile, "AA 11"} {
		if !bytes.Contains(add, encoding.ToUTF16LEWithNull(want)) {
			t.Errorf("expected %q in probe container", want)
		}
	}
}

func TestCheckX86Label(t *testing.T) {
	tr := &fakeTransport{arch: dcerpc.ArchX86, handle: spooler(addStatus(winerror.ErrorAccessDenied))}
	s, _, _ := newTestSession(tr, DefaultConfig())

	report := s.Check(context.Background())
	if report.Code != CheckSafe {
		t.Errorf("expected safe, got %s", report.Code)
	}
	if report.Environment.Label != rprn.EnvironmentX86 {
		t.Errorf("expected %s, got %s", rprn.EnvironmentX86, report.Environment.Label)
	}
}

func TestCheckEarlyExits(t *testing.T) {
	tests := []struct {
		name   string
		tr     *fakeTransport
		code   CheckCode
		reason string
	}{
		{
			name:   "connect",
			tr:     &fakeTransport{connectErr: errors.New("refused")},
			code:   CheckUnknown,
			reason: "Failed to connect to the remote service.",
		},
		{
			name:   "authenticate",
			tr:     &fakeTransport{authErr: errors.New("logon failure")},
			code:   CheckUnknown,
			reason: "Failed to authenticate to the remote service.",
		},
		{
			name:   "unsupported arch",
			tr:     &fakeTransport{arch: dcerpc.ArchUnknown},
			code:   CheckDetected,
			reason: "Successfully bound to the remote service.",
		},
		{
			name:   "bind access denied",
			tr:     &fakeTransport{bindErrs: []error{&rprn.TransportFault{Op: "bind", Status: winerror.StatusAccessDenied}}},
			code:   CheckSafe,
			reason: "The DCERPC bind failed with error STATUS_ACCESS_DENIED",
		},
		{
			name:   "bind rejected",
			tr:     &fakeTransport{bindErrs: []error{dcerpc.ErrBindFailed}},
			code:   CheckUnknown,
			reason: "bind failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(tt.tr, DefaultConfig())
			report := s.Check(context.Background())
			if report.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, report.Code)
			}
			if !strings.Contains(report.Reason, tt.reason) {
				t.Errorf("expected reason containing %q, got %q", tt.reason, report.Reason)
			}
			if len(tt.tr.calls) != 0 {
				t.Errorf("expected no RPC calls, got %v", tt.tr.calls)
			}
		})
	}
}

func TestCheckSpoolerDisabled(t *testing.T) {
	tr := &fakeTransport{bindErrs: []error{&rprn.TransportFault{Op: "bind", Status: winerror.StatusObjectNameNotFound}}}
	s, rep, _ := newTestSession(tr, DefaultConfig())

	report := s.Check(context.Background())
	if report.Code != CheckSafe {
		t.Errorf("expected safe, got %s", report.Code)
	}
	if !rep.contains("The 'Print Spooler' service is disabled.") {
		t.Errorf("expected disabled spooler message, got %q", rep.lines)
	}
}

func TestCheckUnknownStatus(t *testing.T) {
	tr := &fakeTransport{arch: dcerpc.ArchX64, handle: spooler(addStatus(0x12345678))}
	s, _, _ := newTestSession(tr, DefaultConfig())

	report := s.Check(context.Background())
	if report.Code != CheckUnknown {
		t.Errorf("expected unknown, got %s", report.Code)
	}
	if report.Environment.DriverDirectory == "" {
		t.Error("expected environment to survive an unknown verdict")
	}
}

func TestCheckInstallFault(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   CheckCode
		reason string
	}{
		{
			name:   "nt status",
			err:    ntStatus(winerror.StatusAccessDenied),
			code:   CheckDetected,
			reason: "Successfully bound to the remote service.",
		},
		{
			name:   "rpc fault",
			err:    &dcerpc.FaultError{Status: winerror.RPCCallFailed},
			code:   CheckUnknown,
			reason: "RpcAddPrinterDriverEx failed",
		},
		{
			name:   "pipe broken twice",
			err:    errPipeBroken,
			code:   CheckUnknown,
			reason: "STATUS_PIPE_BROKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTransport{
				arch:   dcerpc.ArchX64,
				handle: spooler(func([]byte) ([]byte, error) { return nil, tt.err }),
			}
			s, rep, _ := newTestSession(tr, DefaultConfig())

			report := s.Check(context.Background())
			if report.Code != tt.code {
				t.Errorf("expected %s, got %s (%s)", tt.code, report.Code, report.Reason)
			}
			if !strings.Contains(report.Reason, tt.reason) {
				t.Errorf("expected reason containing %q, got %q", tt.reason, report.Reason)
			}
			if tt.code == CheckDetected && !rep.contains("STATUS_ACCESS_DENIED") {
				t.Errorf("expected the install status to be logged, got %q", rep.lines)
			}
		})
	}
}

func TestCheckUnsupportedArchSkipsEnvironmentLine(t *testing.T) {
	tr := &fakeTransport{arch: dcerpc.ArchUnknown}
	s, rep, _ := newTestSession(tr, DefaultConfig())

	s.Check(context.Background())
	if rep.contains("Target environment") {
		t.Errorf("expected no environment line for an unsupported architecture, got %q", rep.lines)
	}
}

func TestCheckFaultDuringEnum(t *testing.T) {
	tr := &fakeTransport{
		arch: dcerpc.ArchX64,
		handle: func(opnum uint16, stub []byte) ([]byte, error) {
			return nil, &dcerpc.FaultError{Status: winerror.RPCAccessDenied}
		},
	}
	s, _, _ := newTestSession(tr, DefaultConfig())

	report := s.Check(context.Background())
	if report.Code != CheckUnknown {
		t.Errorf("expected unknown, got %s", report.Code)
	}
	if !strings.Contains(report.Reason, "RpcEnumPrinterDrivers") {
		t.Errorf("expected failing operation in reason, got %q", report.Reason)
	}
	if report.Environment.Label != rprn.EnvironmentX64 || report.Environment.DriverPath != "" {
		t.Errorf("unexpected environment %+v", report.Environment)
	}
}

func TestCheckMalformedDrivers(t *testing.T) {
	tr := &fakeTransport{
		arch: dcerpc.ArchX64,
		handle: func(opnum uint16, stub []byte) ([]byte, error) {
			bad := make([]byte, 24)
			encoding.PutUint32LE(bad[4:], 500)
			return twoPhase(stub, bad, 1), nil
		},
	}
	s, _, _ := newTestSession(tr, DefaultConfig())

	report := s.Check(context.Background())
	if report.Code != CheckUnknown || !strings.Contains(report.Reason, "malformed structure") {
		t.Errorf("expected unknown with malformed structure, got %s (%s)", report.Code, report.Reason)
	}
}
