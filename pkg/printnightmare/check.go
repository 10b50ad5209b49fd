package printnightmare

import (
	"context"
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/rprn"
	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

// CheckCode is the verdict of a vulnerability check
type CheckCode int

// Check verdicts
const (
	CheckUnknown CheckCode = iota
	CheckSafe
	CheckDetected
	CheckVulnerable
)

// String returns the verdict name
func (c CheckCode) String() string {
	switch c {
	case CheckSafe:
		return "safe"
	case CheckDetected:
		return "detected"
	case CheckVulnerable:
		return "vulnerable"
	}
	return "unknown"
}

// Outcome is a verdict with the reason behind it
type Outcome struct {
	Code   CheckCode
	Reason string
}

func outcome(code CheckCode, format string, args ...any) Outcome {
	return Outcome{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// Report is the result of Check. Environment holds whatever was learned
// before the check stopped.
type Report struct {
	Outcome
	Environment Environment
}

// Classify turns the Win32 status of the probe install into a verdict
func Classify(status uint32) Outcome {
	entry, ok := winerror.LookupWin32(status)
	if !ok {
		return outcome(CheckUnknown, "Received unknown status code, implying the target is not vulnerable.")
	}

	switch status {
	case winerror.ErrorPathNotFound, winerror.ErrorBadNetName:
		return outcome(CheckVulnerable, "Received %s, implying the target is vulnerable.", entry.Name)
	case winerror.ErrorAccessDenied:
		return outcome(CheckSafe, "Received %s, implying the target is patched.", entry.Name)
	}
	return outcome(CheckDetected, "Successfully bound to the remote service.")
}

// Check probes the target with an inert driver install. It never fails;
// every error resolves to a verdict.
func (s *Session) Check(ctx context.Context) Report {
	var report Report
	report.Outcome = s.check(ctx, &report.Environment)
	return report
}

func (s *Session) check(ctx context.Context, env *Environment) Outcome {
	if err := s.transport.Connect(ctx); err != nil {
		s.reporter.Debug("Connect: %v", err)
		return outcome(CheckUnknown, "Failed to connect to the remote service.")
	}
	if err := s.transport.Authenticate(ctx); err != nil {
		s.reporter.Debug("Authenticate: %v", err)
		return outcome(CheckUnknown, "Failed to authenticate to the remote service.")
	}

	if err := s.bind(ctx); err != nil {
		var fault *rprn.TransportFault
		if !errors.As(err, &fault) {
			return outcome(CheckUnknown, "The DCERPC bind failed: %v", err)
		}
		if !fault.RPC && fault.Status == winerror.StatusObjectNameNotFound {
			s.reporter.Error("The 'Print Spooler' service is disabled.")
		}
		return outcome(CheckSafe, "The DCERPC bind failed with error %s.", faultName(fault))
	}

	arch := s.transport.Arch()
	label, ok := environmentLabel(arch)
	if !ok {
		return outcome(CheckDetected, "Successfully bound to the remote service.")
	}
	env.Label = label
	s.reporter.Status("Target environment: Windows v%s (%s)", s.transport.OSVersion(), arch)

	s.reporter.Status("Enumerating the installed printer drivers...")
	driverPath, err := s.firstDriverPath(ctx, label)
	if err != nil {
		return errorOutcome(err)
	}
	env.DriverPath = driverPath
	s.reporter.Debug("Using driver path: %s", driverPath)

	s.reporter.Status("Retrieving the path of the printer driver directory...")
	dir, err := s.driverDirectory(ctx, label)
	if err != nil {
		return errorOutcome(err)
	}
	env.DriverDirectory = dir
	s.reporter.Debug("Using driver directory: %s", dir)

	data := fmt.Sprintf(`\??\UNC\127.0.0.1\%s\%s.dll`, s.random.Alphanumeric(4, 8), s.random.Alphanumeric(4, 8))
	status, err := s.addDriver(ctx, s.container(*env, configFile, data))
	if err != nil {
		if pipeStatusFault(err) {
			return outcome(CheckDetected, "Successfully bound to the remote service.")
		}
		return errorOutcome(err)
	}
	return Classify(status)
}

// pipeStatusFault reports whether the test install failed with an NT status on
// the pipe. addDriver has already logged it, and the status matches none of
// the Win32 verdicts, so the spooler only counts as reachable.
func pipeStatusFault(err error) bool {
	var failure *Failure
	if errors.As(err, &failure) {
		return false
	}
	var fault *rprn.TransportFault
	return errors.As(err, &fault) && !fault.RPC
}

// faultName renders a fault as NAME (description), or its raw value
func faultName(fault *rprn.TransportFault) string {
	if e, ok := fault.Lookup(); ok {
		return e.String()
	}
	return fmt.Sprintf("0x%08X", fault.Status)
}

// errorOutcome resolves a failed probe step to an unknown verdict
func errorOutcome(err error) Outcome {
	var fault *rprn.TransportFault
	if errors.As(err, &fault) {
		return outcome(CheckUnknown, "%s failed with error %s.", fault.Op, faultName(fault))
	}
	var failure *Failure
	if errors.As(err, &failure) {
		return outcome(CheckUnknown, "%s", failure.Message)
	}
	return outcome(CheckUnknown, "%v", err)
}
