package printnightmare

import (
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

// Connectivity errors
var (
	ErrConnect      = errors.New("failed to connect")
	ErrAuthenticate = errors.New("failed to authenticate")
	ErrBind         = errors.New("failed to bind")
)

// Reason classifies why a session stopped
type Reason int

// Failure reasons
const (
	Unknown Reason = iota
	NoTarget
	BadConfig
	NotVulnerable
	UnexpectedReply
	Disconnected
	Unreachable
)

var reasonNames = map[Reason]string{
	Unknown:         "unknown",
	NoTarget:        "no-target",
	BadConfig:       "bad-config",
	NotVulnerable:   "not-vulnerable",
	UnexpectedReply: "unexpected-reply",
	Disconnected:    "disconnected",
	Unreachable:     "unreachable",
}

// String returns the reason name
func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Failure is a fatal, operator visible end to a session
type Failure struct {
	Reason  Reason
	Message string
	Err     error
}

// Error implements the error interface
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Reason, f.Message)
}

// Unwrap returns the cause, if any
func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(reason Reason, err error, format string, args ...any) *Failure {
	return &Failure{Reason: reason, Message: fmt.Sprintf(format, args...), Err: err}
}

// Win32Error is a failing status returned inside an RPRN response
type Win32Error struct {
	Op     string
	Status uint32
}

// Error implements the error interface
func (e *Win32Error) Error() string {
	return fmt.Sprintf("%s returned %s", e.Op, winerror.Describe(e.Status, winerror.LookupWin32))
}

func statusError(op string, status uint32) error {
	return &Win32Error{Op: op, Status: status}
}
