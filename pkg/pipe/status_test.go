package pipe

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ineffectivecoder/SpoolGooser/pkg/smb"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Status
	}{
		{nil, StatusAvailable},
		{fmt.Errorf("open: %w", &smb.NTStatusError{Status: types.StatusAccessDenied}), StatusAccessDenied},
		{fmt.Errorf("open: %w", &smb.NTStatusError{Status: types.StatusObjectNameNotFound}), StatusNotFound},
		{smb.ErrBadNetworkName, StatusNotFound},
		{errors.New("reset by peer"), StatusError},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v): expected %s, got %s", tt.err, tt.want, got)
		}
	}
}

func TestStatusString(t *testing.T) {
	if StatusAccessDenied.String() != "access denied" {
		t.Errorf("expected access denied, got %s", StatusAccessDenied)
	}
	if Status(42).String() != "error" {
		t.Errorf("expected error for unknown status, got %s", Status(42))
	}
}
