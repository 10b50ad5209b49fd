package rprn

import (
	"context"
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/dcerpc"
	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

// Caller sends one request stub on a bound RPC connection
type Caller interface {
	Call(ctx context.Context, opnum uint16, stub []byte) ([]byte, error)
}

// ntStatusError is satisfied by transport errors that carry an NT status
type ntStatusError interface {
	NTStatus() uint32
}

// Client issues MS-RPRN operations over a Caller
type Client struct {
	caller Caller
}

// NewClient creates an MS-RPRN client
func NewClient(caller Caller) *Client {
	return &Client{caller: caller}
}

// Call runs one operation from the op table
func (c *Client) Call(ctx context.Context, op Op, params any) (any, error) {
	o, ok := ops[op]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperation, int(op))
	}

	stub, err := o.build(params)
	if err != nil {
		return nil, err
	}

	resp, err := c.caller.Call(ctx, o.opnum, stub)
	if err != nil {
		return nil, WrapTransportError(o.name, err)
	}
	return o.parse(resp)
}

// WrapTransportError turns a status-bearing transport error into a
// TransportFault. Other errors are wrapped with op.
func WrapTransportError(op string, err error) error {
	var fault *dcerpc.FaultError
	if errors.As(err, &fault) {
		return &TransportFault{Op: op, Status: fault.Status, RPC: true, Err: err}
	}
	var nt ntStatusError
	if errors.As(err, &nt) {
		return &TransportFault{Op: op, Status: nt.NTStatus(), Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// EnumPrinterDrivers lists the installed drivers for an environment. The
// returned Drivers buffer holds Returned DRIVER_INFO records of the given
// level.
func (c *Client) EnumPrinterDrivers(ctx context.Context, server, environment string, level uint32) (*EnumDriversResponse, error) {
	req := &EnumDriversRequest{Server: server, Environment: environment, Level: level}

	v, err := c.Call(ctx, OpEnumPrinterDrivers, req)
	if err != nil {
		return nil, err
	}
	needed := v.(*EnumDriversResponse).Needed

	req.Buffer = make([]byte, needed)
	v, err = c.Call(ctx, OpEnumPrinterDrivers, req)
	if err != nil {
		return nil, err
	}

	resp := v.(*EnumDriversResponse)
	if len(resp.Drivers) == 0 {
		return nil, fmt.Errorf("%w: RpcEnumPrinterDrivers returned no drivers (%s)",
			ErrUnexpectedReply, winerror.Describe(resp.Status, winerror.LookupWin32))
	}
	return resp, nil
}

// GetPrinterDriverDirectory fetches the server's driver directory for an
// environment as raw UTF-16LE
func (c *Client) GetPrinterDriverDirectory(ctx context.Context, server, environment string, level uint32) (*DriverDirectoryResponse, error) {
	req := &DriverDirectoryRequest{Server: server, Environment: environment, Level: level}

	v, err := c.Call(ctx, OpGetPrinterDriverDirectory, req)
	if err != nil {
		return nil, err
	}
	needed := v.(*DriverDirectoryResponse).Needed

	req.Buffer = make([]byte, needed)
	v, err = c.Call(ctx, OpGetPrinterDriverDirectory, req)
	if err != nil {
		return nil, err
	}

	resp := v.(*DriverDirectoryResponse)
	if len(resp.Directory) == 0 {
		return nil, fmt.Errorf("%w: RpcGetPrinterDriverDirectory returned no directory (%s)",
			ErrUnexpectedReply, winerror.Describe(resp.Status, winerror.LookupWin32))
	}
	return resp, nil
}

// AddPrinterDriverEx installs a driver and returns the Win32 status
func (c *Client) AddPrinterDriverEx(ctx context.Context, server string, container DriverContainer, flags uint32) (uint32, error) {
	v, err := c.Call(ctx, OpAddPrinterDriverEx, &AddDriverRequest{
		Server:    server,
		Container: container,
		Flags:     flags,
	})
	if err != nil {
		return 0, err
	}
	return v.(*AddDriverResponse).Status, nil
}
