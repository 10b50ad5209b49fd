package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
	"github.com/ineffectivecoder/SpoolGooser/pkg/printnightmare"
	"github.com/ineffectivecoder/SpoolGooser/pkg/rprn"
)

func init() {
	color.NoColor = true
}

func TestConsolePrefixes(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	c.Status("binding %s", "spoolss")
	c.Good("done")
	c.Debug("hidden")

	got := buf.String()
	if !strings.Contains(got, "binding spoolss\n") {
		t.Errorf("expected status line, got %q", got)
	}
	if !strings.Contains(got, "] done\n") {
		t.Errorf("expected good line, got %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Error("expected debug line to be suppressed")
	}

	c.Verbose = true
	c.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected debug line in verbose mode")
	}
}

func TestVerdict(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	c.Verdict("10.0.0.5", printnightmare.Report{
		Outcome: printnightmare.Classify(3), // ERROR_PATH_NOT_FOUND
	})
	if !strings.Contains(buf.String(), "10.0.0.5 - The target is vulnerable.") {
		t.Errorf("unexpected verdict %q", buf.String())
	}
}

func TestFailure(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	c.Failure(&printnightmare.Failure{Reason: printnightmare.Disconnected, Message: "The named pipe connection was broken."})
	if !strings.Contains(buf.String(), "disconnected: The named pipe connection was broken.") {
		t.Errorf("unexpected failure line %q", buf.String())
	}

	buf.Reset()
	c.Failure(errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected plain error, got %q", buf.String())
	}
}

func TestDriverTable(t *testing.T) {
	var buf bytes.Buffer
	DriverTable(&buf, []rprn.DriverInfo2{{
		Version:     3,
		Name:        encoding.ToUTF16LE("Microsoft Print To PDF"),
		Environment: encoding.ToUTF16LE(rprn.EnvironmentX64),
		DriverPath:  encoding.ToUTF16LE(`C:\Windows\System32\DriverStore\mxdwdrv.dll`),
	}})

	got := buf.String()
	for _, want := range []string{"DRIVER PATH", "Microsoft Print To PDF", `mxdwdrv.dll`, "Windows x64"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in table, got:\n%s", want, got)
		}
	}
}
