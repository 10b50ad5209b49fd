package dcerpc

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// fakeConn replays canned replies and records what the client sent
type fakeConn struct {
	transacts [][]byte // replies to Transact, in order
	reads     [][]byte // replies to Read, in order
	sent      [][]byte
	writes    int
	err       error
}

func (f *fakeConn) Transact(ctx context.Context, req []byte) ([]byte, error) {
	f.sent = append(f.sent, req)
	if f.err != nil {
		return nil, f.err
	}
	resp := f.transacts[0]
	f.transacts = f.transacts[1:]
	return resp, nil
}

func (f *fakeConn) Read(p []byte) (int, error) {
	if len(f.reads) == 0 {
		return 0, errors.New("no more data")
	}
	n := copy(p, f.reads[0])
	f.reads = f.reads[1:]
	return n, nil
}

func (f *fakeConn) Write(p []byte) (int, error) {
	f.sent = append(f.sent, p)
	f.writes++
	return len(p), nil
}

func pduHeader(pt PacketType, flags uint8, callID uint32, length int) []byte {
	h := CommonHeader{
		Version:            RPCVersionMajor,
		PacketType:         pt,
		PacketFlags:        flags,
		DataRepresentation: NDRDataRepresentation,
		FragLength:         uint16(length),
		CallID:             callID,
	}
	return h.Marshal()
}

func bindAckPDU(results ...uint16) []byte {
	secAddr := []byte("\\PIPE\\spoolss\x00")
	body := encoding.AppendUint16LE(nil, 4280)
	body = encoding.AppendUint16LE(body, 4280)
	body = encoding.AppendUint32LE(body, 0x1234)
	body = encoding.AppendUint16LE(body, uint16(len(secAddr)))
	body = append(body, secAddr...)
	for (16+len(body))%4 != 0 {
		body = append(body, 0)
	}
	body = append(body, byte(len(results)), 0, 0, 0)
	for _, r := range results {
		body = encoding.AppendUint16LE(body, r)
		body = encoding.AppendUint16LE(body, 0)
		syntax := NDRSyntax
		body = append(body, syntax.Marshal()...)
	}
	return append(pduHeader(PacketTypeBindAck, PacketFlagFirstFrag|PacketFlagLastFrag, 1, 16+len(body)), body...)
}

func responsePDU(flags uint8, callID uint32, stub []byte) []byte {
	body := encoding.AppendUint32LE(nil, uint32(len(stub)))
	body = append(body, 0, 0, 0, 0)
	body = append(body, stub...)
	return append(pduHeader(PacketTypeResponse, flags, callID, 16+len(body)), body...)
}

func faultPDU(callID, status uint32) []byte {
	body := make([]byte, 16)
	encoding.PutUint32LE(body[8:12], status)
	return append(pduHeader(PacketTypeFault, PacketFlagFirstFrag|PacketFlagLastFrag, callID, 32), body...)
}

func TestBindRequestOffersNDR64(t *testing.T) {
	data := NewBindRequest(testIface, Version(1, 0), 1).Marshal()
	if len(data) != 116 {
		t.Fatalf("expected 116 bytes, got %d", len(data))
	}
	if data[28] != 2 {
		t.Errorf("expected 2 context items, got %d", data[28])
	}
	if !bytes.Contains(data, NDR64Syntax.Marshal()) {
		t.Error("expected NDR64 transfer syntax in bind")
	}
	if encoding.Uint16LE(data[8:10]) != 116 {
		t.Errorf("expected frag length 116, got %d", encoding.Uint16LE(data[8:10]))
	}
}

func TestBindArch(t *testing.T) {
	tests := []struct {
		name    string
		results []uint16
		want    Arch
	}{
		{"ndr64 accepted", []uint16{ResultAcceptance, ResultAcceptance}, ArchX64},
		{"ndr64 rejected", []uint16{ResultAcceptance, ResultProviderRejection}, ArchX86},
		{"single result", []uint16{ResultAcceptance}, ArchUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &fakeConn{transacts: [][]byte{bindAckPDU(tt.results...)}}
			c := NewClient(conn)

			arch, err := c.Bind(context.Background(), testIface, Version(1, 0))
			if err != nil {
				t.Fatalf("Bind failed: %v", err)
			}
			if arch != tt.want {
				t.Errorf("expected %s, got %s", tt.want, arch)
			}
			if !c.IsBound() || c.Arch() != tt.want {
				t.Error("expected client to record the binding")
			}
		})
	}
}

func TestBindRejected(t *testing.T) {
	conn := &fakeConn{transacts: [][]byte{bindAckPDU(ResultProviderRejection, ResultProviderRejection)}}
	_, err := NewClient(conn).Bind(context.Background(), testIface, 1)

	var bindErr *BindError
	if !errors.As(err, &bindErr) {
		t.Fatalf("expected *BindError, got %v", err)
	}
	if !errors.Is(err, ErrBindFailed) {
		t.Error("expected BindError to match ErrBindFailed")
	}
}

func TestBindTransportError(t *testing.T) {
	sentinel := errors.New("pipe broken")
	conn := &fakeConn{err: sentinel}
	if _, err := NewClient(conn).Bind(context.Background(), testIface, 1); !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
}

func TestCallNotBound(t *testing.T) {
	if _, err := NewClient(&fakeConn{}).Call(context.Background(), 10, nil); err != ErrNotBound {
		t.Errorf("expected ErrNotBound, got %v", err)
	}
}

func boundClient(conn *fakeConn) *Client {
	c := NewClient(conn)
	c.isBound = true
	c.callID = 2
	return c
}

func TestCallFault(t *testing.T) {
	conn := &fakeConn{transacts: [][]byte{faultPDU(2, 0x1C010003)}}
	_, err := boundClient(conn).Call(context.Background(), 89, []byte{1, 2, 3, 4})

	var fault *FaultError
	if !errors.As(err, &fault) {
		t.Fatalf("expected *FaultError, got %v", err)
	}
	if fault.Status != 0x1C010003 {
		t.Errorf("expected 0x1C010003, got 0x%08X", fault.Status)
	}
	if !errors.Is(err, ErrCallFailed) {
		t.Error("expected fault to match ErrCallFailed")
	}
}

func TestCallReassemblesFragments(t *testing.T) {
	conn := &fakeConn{
		transacts: [][]byte{responsePDU(PacketFlagFirstFrag, 2, []byte("abcd"))},
		reads:     [][]byte{responsePDU(PacketFlagLastFrag, 2, []byte("efgh"))},
	}

	stub, err := boundClient(conn).Call(context.Background(), 10, []byte{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if string(stub) != "abcdefgh" {
		t.Errorf("expected abcdefgh, got %q", stub)
	}
}

func TestCallSplitsCoalescedFragments(t *testing.T) {
	both := append(responsePDU(PacketFlagFirstFrag, 2, []byte("1234")),
		responsePDU(PacketFlagLastFrag, 2, []byte("5678"))...)
	conn := &fakeConn{transacts: [][]byte{both}}

	stub, err := boundClient(conn).Call(context.Background(), 10, nil)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if string(stub) != "12345678" {
		t.Errorf("expected 12345678, got %q", stub)
	}
}

func TestCallFragmentsLargeRequest(t *testing.T) {
	conn := &fakeConn{
		transacts: [][]byte{responsePDU(PacketFlagFirstFrag|PacketFlagLastFrag, 2, []byte{0, 0, 0, 0})},
	}
	c := boundClient(conn)
	c.maxXmitFrag = requestHeaderSize + 16

	stub := bytes.Repeat([]byte{0x41}, 40)
	if _, err := c.Call(context.Background(), 89, stub); err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	if len(conn.sent) != 3 || conn.writes != 2 {
		t.Fatalf("expected 2 writes and 1 transact, got %d sends with %d writes", len(conn.sent), conn.writes)
	}

	wantFlags := []uint8{PacketFlagFirstFrag, 0, PacketFlagLastFrag}
	wantHints := []uint32{40, 24, 8}
	var joined []byte
	for i, frag := range conn.sent {
		if frag[3] != wantFlags[i] {
			t.Errorf("fragment %d: expected flags 0x%02X, got 0x%02X", i, wantFlags[i], frag[3])
		}
		if hint := encoding.Uint32LE(frag[16:20]); hint != wantHints[i] {
			t.Errorf("fragment %d: expected alloc hint %d, got %d", i, wantHints[i], hint)
		}
		if opnum := encoding.Uint16LE(frag[22:24]); opnum != 89 {
			t.Errorf("fragment %d: expected opnum 89, got %d", i, opnum)
		}
		joined = append(joined, frag[requestHeaderSize:]...)
	}
	if !bytes.Equal(joined, stub) {
		t.Error("fragments do not reassemble to the stub")
	}
}

func TestCallRejectsWrongCallID(t *testing.T) {
	conn := &fakeConn{transacts: [][]byte{responsePDU(PacketFlagFirstFrag|PacketFlagLastFrag, 9, nil)}}
	if _, err := boundClient(conn).Call(context.Background(), 10, nil); !errors.Is(err, ErrBadFragment) {
		t.Errorf("expected ErrBadFragment, got %v", err)
	}
}

func TestArchString(t *testing.T) {
	if ArchX64.String() != "x64" || ArchX86.String() != "x86" || ArchUnknown.String() != "unknown" {
		t.Error("unexpected Arch strings")
	}
}

func TestBindAckFields(t *testing.T) {
	var ack BindAck
	if err := ack.Unmarshal(bindAckPDU(ResultAcceptance, ResultProviderRejection)); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if ack.SecAddr != `\PIPE\spoolss` {
		t.Errorf("expected \\PIPE\\spoolss, got %q", ack.SecAddr)
	}
	if ack.AssocGroup != 0x1234 || ack.MaxRecvFrag != 4280 {
		t.Errorf("unexpected fixed fields %+v", ack)
	}
	if len(ack.Results) != 2 || !ack.IsAccepted() || ack.Arch() != ArchX86 {
		t.Errorf("unexpected results %+v", ack.Results)
	}

	if err := ack.Unmarshal(bindAckPDU()[:20]); err != ErrBufferTooSmall {
		t.Errorf("expected ErrBufferTooSmall, got %v", err)
	}
}
