package dcerpc

import (
	"context"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
	"github.com/ineffectivecoder/SpoolGooser/pkg/debug"
)

// Conn is the message-mode byte stream an RPC client runs over, normally a
// named pipe. Transact writes one PDU and returns the first reply message.
type Conn interface {
	Transact(ctx context.Context, request []byte) ([]byte, error)
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// Client represents a DCE/RPC client over a named pipe
type Client struct {
	conn        Conn
	callID      uint32
	arch        Arch
	maxXmitFrag uint16
	maxRecvFrag uint16
	isBound     bool

	// bytes read past the end of the last fragment
	pending []byte
}

// NewClient creates a new RPC client over a named pipe
func NewClient(conn Conn) *Client {
	return &Client{
		conn:        conn,
		callID:      1,
		maxXmitFrag: defaultMaxXmitFrag,
		maxRecvFrag: defaultMaxRecvFrag,
	}
}

// Bind binds to an RPC interface and reports the architecture the server
// revealed through its answer to the NDR64 context
func (c *Client) Bind(ctx context.Context, interfaceUUID UUID, version uint32) (Arch, error) {
	bindReq := NewBindRequest(interfaceUUID, version, c.nextCallID())

	response, err := c.conn.Transact(ctx, bindReq.Marshal())
	if err != nil {
		return ArchUnknown, fmt.Errorf("bind transact failed: %w", err)
	}

	var header CommonHeader
	if err := header.Unmarshal(response); err != nil {
		return ArchUnknown, fmt.Errorf("failed to parse response header: %w", err)
	}

	switch header.PacketType {
	case PacketTypeBindAck:
	case PacketTypeBindNak:
		reason := uint16(0)
		if len(response) >= 18 {
			reason = encoding.Uint16LE(response[16:18])
		}
		return ArchUnknown, &BindError{Result: ResultProviderRejection, Reason: reason}
	default:
		return ArchUnknown, fmt.Errorf("%w: unexpected packet type %d", ErrBindFailed, header.PacketType)
	}

	var bindAck BindAck
	if err := bindAck.Unmarshal(response); err != nil {
		return ArchUnknown, fmt.Errorf("failed to parse bind ack: %w", err)
	}

	if !bindAck.IsAccepted() {
		if len(bindAck.Results) == 0 {
			return ArchUnknown, fmt.Errorf("%w: no context results", ErrBindFailed)
		}
		r := bindAck.Results[ndrContextID]
		return ArchUnknown, &BindError{Result: r.Result, Reason: r.Reason}
	}

	c.maxXmitFrag = bindAck.MaxXmitFrag
	c.maxRecvFrag = bindAck.MaxRecvFrag
	c.arch = bindAck.Arch()
	c.pending = nil
	c.isBound = true

	debug.Printf("Bound to %s v%d.%d at %q (xmit %d, recv %d, arch %s)\n",
		interfaceUUID, version&0xFFFF, version>>16, bindAck.SecAddr, c.maxXmitFrag, c.maxRecvFrag, c.arch)
	return c.arch, nil
}

// Call makes an RPC call and returns the reassembled response stub. A fault
// PDU is returned as *FaultError.
func (c *Client) Call(ctx context.Context, opnum uint16, stubData []byte) ([]byte, error) {
	if !c.isBound {
		return nil, ErrNotBound
	}

	callID := c.nextCallID()
	frags := fragmentRequest(opnum, stubData, callID, c.maxXmitFrag)
	debug.Printf("RPC call opnum %d: %d stub bytes in %d fragment(s)\n", opnum, len(stubData), len(frags))

	for _, frag := range frags[:len(frags)-1] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := c.conn.Write(frag); err != nil {
			return nil, fmt.Errorf("call write failed: %w", err)
		}
	}

	first, err := c.conn.Transact(ctx, frags[len(frags)-1])
	if err != nil {
		return nil, fmt.Errorf("call transact failed: %w", err)
	}
	c.pending = first

	var stub []byte
	for {
		frag, err := c.nextFragment(ctx)
		if err != nil {
			return nil, err
		}

		var header CommonHeader
		if err := header.Unmarshal(frag); err != nil {
			return nil, fmt.Errorf("failed to parse response header: %w", err)
		}
		if header.CallID != callID {
			return nil, fmt.Errorf("%w: call id %d, expected %d", ErrBadFragment, header.CallID, callID)
		}

		switch header.PacketType {
		case PacketTypeResponse:
		case PacketTypeFault:
			var fault Fault
			if err := fault.Unmarshal(frag); err != nil {
				return nil, fmt.Errorf("RPC fault (parse error: %w)", err)
			}
			c.pending = nil
			return nil, &FaultError{Status: fault.Status}
		default:
			return nil, fmt.Errorf("%w: unexpected packet type %d", ErrBadFragment, header.PacketType)
		}

		var resp Response
		if err := resp.Unmarshal(frag); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		stub = append(stub, resp.StubData...)

		if header.PacketFlags&PacketFlagLastFrag != 0 {
			return stub, nil
		}
	}
}

// nextFragment returns the next whole PDU, reading from the pipe until
// frag_length bytes are buffered
func (c *Client) nextFragment(ctx context.Context) ([]byte, error) {
	for {
		if len(c.pending) >= 16 {
			fragLen := int(encoding.Uint16LE(c.pending[8:10]))
			if fragLen < 16 {
				return nil, fmt.Errorf("%w: frag_length %d", ErrBadFragment, fragLen)
			}
			if len(c.pending) >= fragLen {
				frag := c.pending[:fragLen]
				c.pending = c.pending[fragLen:]
				return frag, nil
			}
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		buf := make([]byte, max(int(c.maxRecvFrag), 16))
		n, err := c.conn.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to read response fragment: %w", err)
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: empty read", ErrBadFragment)
		}
		c.pending = append(c.pending, buf[:n]...)
	}
}

// nextCallID returns the next call ID
func (c *Client) nextCallID() uint32 {
	id := c.callID
	c.callID++
	return id
}

// IsBound returns true if bound to an interface
func (c *Client) IsBound() bool {
	return c.isBound
}

// Arch returns the architecture learned during bind
func (c *Client) Arch() Arch {
	return c.arch
}

// Close forgets the binding. The pipe belongs to the caller.
func (c *Client) Close() error {
	c.isBound = false
	c.pending = nil
	return nil
}
