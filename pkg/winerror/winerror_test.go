package winerror

import (
	"strings"
	"testing"
)

func TestLookupWin32(t *testing.T) {
	tests := []struct {
		code uint32
		name string
	}{
		{ErrorPathNotFound, "ERROR_PATH_NOT_FOUND"},
		{ErrorAccessDenied, "ERROR_ACCESS_DENIED"},
		{ErrorBadNetName, "ERROR_BAD_NET_NAME"},
		{ErrorInvalidEnvironment, "ERROR_INVALID_ENVIRONMENT"},
		{1, "ERROR_INVALID_FUNCTION"},
		{65, "ERROR_NETWORK_ACCESS_DENIED"},
		{123, "ERROR_INVALID_NAME"},
		{1231, "ERROR_NETWORK_UNREACHABLE"},
		{1326, "ERROR_LOGON_FAILURE"},
		{3019, "ERROR_PRINTER_DRIVER_DOWNLOAD_NEEDED"},
	}

	for _, tt := range tests {
		e, ok := LookupWin32(tt.code)
		if !ok {
			t.Errorf("expected 0x%X to be mapped", tt.code)
			continue
		}
		if e.Name != tt.name {
			t.Errorf("expected %s, got %s", tt.name, e.Name)
		}
		if e.Code != tt.code {
			t.Errorf("expected code %d, got %d", tt.code, e.Code)
		}
	}
}

func TestLookupUnmapped(t *testing.T) {
	if _, ok := LookupWin32(0xDEADBEEF); ok {
		t.Error("expected unmapped Win32 code")
	}
	if _, ok := LookupNTStatus(0x12345678); ok {
		t.Error("expected unmapped NT status")
	}
	if _, ok := LookupRPC(0xFFFFFFFF); ok {
		t.Error("expected unmapped RPC status")
	}
}

func TestLookupNTStatus(t *testing.T) {
	e, ok := LookupNTStatus(StatusPipeBroken)
	if !ok || e.Name != "STATUS_PIPE_BROKEN" {
		t.Errorf("expected STATUS_PIPE_BROKEN, got %v (ok=%v)", e, ok)
	}

	e, ok = LookupNTStatus(StatusObjectNameNotFound)
	if !ok || e.Name != "STATUS_OBJECT_NAME_NOT_FOUND" {
		t.Errorf("expected STATUS_OBJECT_NAME_NOT_FOUND, got %v (ok=%v)", e, ok)
	}
}

func TestLookupRPCFallsBackToWin32(t *testing.T) {
	e, ok := LookupRPC(ErrorInvalidParameter)
	if !ok || e.Name != "ERROR_INVALID_PARAMETER" {
		t.Errorf("expected ERROR_INVALID_PARAMETER, got %v (ok=%v)", e, ok)
	}

	e, ok = LookupRPC(RPCOpRangeError)
	if !ok || e.Name != "NCA_S_OP_RNG_ERROR" {
		t.Errorf("expected NCA_S_OP_RNG_ERROR, got %v (ok=%v)", e, ok)
	}
}

func TestDescribe(t *testing.T) {
	s := Describe(ErrorAccessDenied, LookupWin32)
	if !strings.HasPrefix(s, "ERROR_ACCESS_DENIED (0x00000005)") {
		t.Errorf("unexpected description: %s", s)
	}

	s = Describe(0xABCD, LookupWin32)
	if s != "unknown status 0x0000ABCD" {
		t.Errorf("unexpected description: %s", s)
	}
}

func TestEntryString(t *testing.T) {
	e, _ := LookupWin32(ErrorBadNetName)
	if e.String() != "ERROR_BAD_NET_NAME (The network name cannot be found.)" {
		t.Errorf("unexpected string: %s", e.String())
	}
}

func TestWin32TableConsistent(t *testing.T) {
	if len(win32) < 250 {
		t.Errorf("expected a full Win32 table, got %d entries", len(win32))
	}
	for code, e := range win32 {
		if e.Code != code {
			t.Errorf("entry %s keyed by %d, carries %d", e.Name, code, e.Code)
		}
		if e.Name == "" || e.Description == "" {
			t.Errorf("entry %d is missing a name or description", code)
		}
	}
}
