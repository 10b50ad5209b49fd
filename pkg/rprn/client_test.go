package rprn

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
	"github.com/ineffectivecoder/SpoolGooser/pkg/dcerpc"
	"github.com/ineffectivecoder/SpoolGooser/pkg/ndr"
	"github.com/ineffectivecoder/SpoolGooser/pkg/winerror"
)

type call struct {
	opnum uint16
	stub  []byte
}

// fakeCaller returns queued replies and records every request
type fakeCaller struct {
	replies []func(stub []byte) ([]byte, error)
	calls   []call
}

func (f *fakeCaller) Call(ctx context.Context, opnum uint16, stub []byte) ([]byte, error) {
	f.calls = append(f.calls, call{opnum, stub})
	if len(f.replies) == 0 {
		return nil, errors.New("unexpected call")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply(stub)
}

func reply(stub []byte) func([]byte) ([]byte, error) {
	return func([]byte) ([]byte, error) { return stub, nil }
}

func fail(err error) func([]byte) ([]byte, error) {
	return func([]byte) ([]byte, error) { return nil, err }
}

func enumReply(data []byte, needed, returned, status uint32) []byte {
	w := ndr.NewWriter()
	w.WriteUniqueBytes(0x00020000, data)
	w.WriteUint32(needed)
	w.WriteUint32(returned)
	w.WriteUint32(status)
	return w.Bytes()
}

func directoryReply(data []byte, needed, status uint32) []byte {
	w := ndr.NewWriter()
	w.WriteUniqueBytes(0x00020000, data)
	w.WriteUint32(needed)
	w.WriteUint32(status)
	return w.Bytes()
}

func TestEnumPrinterDriversTwoPhase(t *testing.T) {
	records := driverRecords([5]string{"drv", EnvironmentX64, `C:\x\ps5ui.dll`, "d", "c"})
	needed := uint32(len(records))

	caller := &fakeCaller{replies: []func([]byte) ([]byte, error){
		reply(enumReply(nil, needed, 0, winerror.ErrorInsufficientBuffer)),
		reply(enumReply(records, needed, 1, winerror.ErrorSuccess)),
	}}

	resp, err := NewClient(caller).EnumPrinterDrivers(context.Background(), `\\host`, EnvironmentX64, 2)
	if err != nil {
		t.Fatalf("EnumPrinterDrivers failed: %v", err)
	}
	if resp.Returned != 1 {
		t.Errorf("expected 1 driver, got %d", resp.Returned)
	}

	if len(caller.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(caller.calls))
	}
	for _, c := range caller.calls {
		if c.opnum != OpnumEnumPrinterDrivers {
			t.Errorf("expected opnum %d, got %d", OpnumEnumPrinterDrivers, c.opnum)
		}
	}

	first, second := caller.calls[0].stub, caller.calls[1].stub
	if cb := encoding.Uint32LE(first[len(first)-4:]); cb != 0 {
		t.Errorf("expected cbBuf 0 in phase one, got %d", cb)
	}
	if cb := encoding.Uint32LE(second[len(second)-4:]); cb != needed {
		t.Errorf("expected cbBuf %d in phase two, got %d", needed, cb)
	}
	if len(second)-len(first) < int(needed) {
		t.Errorf("expected phase two to carry a %d byte buffer", needed)
	}
}

func TestEnumPrinterDriversEmptyPayload(t *testing.T) {
	caller := &fakeCaller{replies: []func([]byte) ([]byte, error){
		reply(enumReply(nil, 64, 0, winerror.ErrorInsufficientBuffer)),
		reply(enumReply(nil, 64, 0, winerror.ErrorInvalidEnvironment)),
	}}

	_, err := NewClient(caller).EnumPrinterDrivers(context.Background(), `\\host`, EnvironmentX64, 2)
	if !errors.Is(err, ErrUnexpectedReply) {
		t.Errorf("expected ErrUnexpectedReply, got %v", err)
	}
}

func TestGetPrinterDriverDirectory(t *testing.T) {
	dir := encoding.ToUTF16LEWithNull(`C:\Windows\system32\spool\DRIVERS\x64`)
	needed := uint32(len(dir))

	caller := &fakeCaller{replies: []func([]byte) ([]byte, error){
		reply(directoryReply(nil, needed, winerror.ErrorInsufficientBuffer)),
		reply(directoryReply(dir, needed, winerror.ErrorSuccess)),
	}}

	resp, err := NewClient(caller).GetPrinterDriverDirectory(context.Background(), `\\host`, EnvironmentX64, 2)
	if err != nil {
		t.Fatalf("GetPrinterDriverDirectory failed: %v", err)
	}
	got, err := DecodeDriverDirectory(resp.Directory)
	if err != nil {
		t.Fatalf("DecodeDriverDirectory failed: %v", err)
	}
	if got != `C:\Windows\system32\spool\DRIVERS\x64` {
		t.Errorf("unexpected directory %s", got)
	}
	if caller.calls[1].opnum != OpnumGetPrinterDriverDirectory {
		t.Errorf("expected opnum %d, got %d", OpnumGetPrinterDriverDirectory, caller.calls[1].opnum)
	}
}

func TestAddPrinterDriverExStatus(t *testing.T) {
	caller := &fakeCaller{replies: []func([]byte) ([]byte, error){
		reply([]byte{0x05, 0, 0, 0}),
	}}
	container := NewDriverContainer(NewDriverInfo2("AB 12", EnvironmentX64, "p", "d", "c"))

	status, err := NewClient(caller).AddPrinterDriverEx(context.Background(), `\\host`, container, AddDriverFlags)
	if err != nil {
		t.Fatalf("AddPrinterDriverEx failed: %v", err)
	}
	if status != winerror.ErrorAccessDenied {
		t.Errorf("expected ERROR_ACCESS_DENIED, got %d", status)
	}

	stub := caller.calls[0].stub
	if flags := encoding.Uint32LE(stub[len(stub)-4:]); flags != 0x8014 {
		t.Errorf("expected flags 0x8014, got 0x%X", flags)
	}
}

func TestAddPrinterDriverExInvalidEnvironment(t *testing.T) {
	caller := &fakeCaller{}
	container := NewDriverContainer(NewDriverInfo2("n", "bogus", "p", "d", "c"))

	if _, err := NewClient(caller).AddPrinterDriverEx(context.Background(), `\\host`, container, 0); !errors.Is(err, ErrInvalidEnvironment) {
		t.Errorf("expected ErrInvalidEnvironment, got %v", err)
	}
	if len(caller.calls) != 0 {
		t.Error("expected nothing sent for an invalid container")
	}
}

// pipeStatus mimics an SMB error carrying an NT status
type pipeStatus uint32

func (p pipeStatus) Error() string    { return fmt.Sprintf("status 0x%08X", uint32(p)) }
func (p pipeStatus) NTStatus() uint32 { return uint32(p) }

func TestTransportFaults(t *testing.T) {
	container := NewDriverContainer(NewDriverInfo2("n", EnvironmentX64, "p", "d", "c"))

	t.Run("pipe broken", func(t *testing.T) {
		caller := &fakeCaller{replies: []func([]byte) ([]byte, error){
			fail(fmt.Errorf("transact on spoolss: %w", pipeStatus(winerror.StatusPipeBroken))),
		}}
		_, err := NewClient(caller).AddPrinterDriverEx(context.Background(), `\\host`, container, 0)

		var fault *TransportFault
		if !errors.As(err, &fault) {
			t.Fatalf("expected *TransportFault, got %v", err)
		}
		if fault.RPC || fault.Op != "RpcAddPrinterDriverEx" {
			t.Errorf("unexpected fault %+v", fault)
		}
		if !IsPipeBroken(err) {
			t.Error("expected IsPipeBroken")
		}
	})

	t.Run("rpc fault", func(t *testing.T) {
		caller := &fakeCaller{replies: []func([]byte) ([]byte, error){
			fail(&dcerpc.FaultError{Status: winerror.RPCUnknownInterface}),
		}}
		_, err := NewClient(caller).AddPrinterDriverEx(context.Background(), `\\host`, container, 0)

		var fault *TransportFault
		if !errors.As(err, &fault) || !fault.RPC {
			t.Fatalf("expected RPC TransportFault, got %v", err)
		}
		if e, ok := fault.Lookup(); !ok || e.Name != "NCA_S_UNK_IF" {
			t.Errorf("expected NCA_S_UNK_IF, got %+v", e)
		}
		if IsPipeBroken(err) {
			t.Error("RPC fault must not count as a broken pipe")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		sentinel := errors.New("eof")
		caller := &fakeCaller{replies: []func([]byte) ([]byte, error){fail(sentinel)}}
		_, err := NewClient(caller).AddPrinterDriverEx(context.Background(), `\\host`, container, 0)

		var fault *TransportFault
		if errors.As(err, &fault) {
			t.Error("expected no TransportFault for a status-less error")
		}
		if !errors.Is(err, sentinel) {
			t.Errorf("expected wrapped sentinel, got %v", err)
		}
	})
}

func TestUnknownOp(t *testing.T) {
	if _, err := NewClient(&fakeCaller{}).Call(context.Background(), Op(42), nil); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("expected ErrUnknownOperation, got %v", err)
	}
	if Op(42).String() != "Op(42)" {
		t.Errorf("unexpected name %s", Op(42))
	}
	if OpAddPrinterDriverEx.String() != "RpcAddPrinterDriverEx" {
		t.Errorf("unexpected name %s", OpAddPrinterDriverEx)
	}
}

func TestBadParameters(t *testing.T) {
	if _, err := NewClient(&fakeCaller{}).Call(context.Background(), OpEnumPrinterDrivers, "nope"); !errors.Is(err, ErrBadParameters) {
		t.Errorf("expected ErrBadParameters, got %v", err)
	}
}
