package smb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/proxy"
)

// Transport carries NetBIOS-framed SMB2 messages over TCP
type Transport struct {
	conn       net.Conn
	mu         sync.Mutex
	timeout    time.Duration
	remoteHost string
}

// TransportConfig configures transport behavior
type TransportConfig struct {
	Timeout   time.Duration // per read or write, and for the dial
	Socks5URL string        // socks5://[user:pass@]host:port
}

// DialWithConfig connects to host:port, through a SOCKS5 proxy when one is
// configured
func DialWithConfig(ctx context.Context, host string, port int, config TransportConfig) (*Transport, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	direct := &net.Dialer{Timeout: config.Timeout}

	var dialer proxy.ContextDialer = direct
	if config.Socks5URL != "" {
		d, err := socks5Dialer(config.Socks5URL, direct)
		if err != nil {
			return nil, err
		}
		dialer = d
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &Transport{conn: conn, timeout: config.Timeout, remoteHost: host}, nil
}

// socks5Dialer builds a SOCKS5 dialer from a proxy URL, taking credentials
// from its user info
func socks5Dialer(proxyURL string, forward *net.Dialer) (proxy.ContextDialer, error) {
	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid SOCKS5 URL: %w", err)
	}

	var auth *proxy.Auth
	if u.User != nil {
		pass, _ := u.User.Password()
		auth = &proxy.Auth{User: u.User.Username(), Password: pass}
	}

	d, err := proxy.SOCKS5("tcp", u.Host, auth, forward)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, errors.New("SOCKS5 dialer does not support contexts")
	}
	return cd, nil
}

// Send sends an SMB2 message behind a 4-byte NetBIOS session header
func (t *Transport) Send(msg []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return ErrNotConnected
	}
	if len(msg) > 0x00FFFFFF {
		return errors.New("message too large for NetBIOS framing")
	}

	if t.timeout > 0 {
		t.conn.SetWriteDeadline(time.Now().Add(t.timeout))
	}

	// Type 0x00 (session message) and a 24-bit big-endian length
	frame := make([]byte, 4+len(msg))
	frame[1] = byte(len(msg) >> 16)
	frame[2] = byte(len(msg) >> 8)
	frame[3] = byte(len(msg))
	copy(frame[4:], msg)

	if _, err := t.conn.Write(frame); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// Recv receives one NetBIOS-framed SMB2 message
func (t *Transport) Recv() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil, ErrNotConnected
	}

	if t.timeout > 0 {
		t.conn.SetReadDeadline(time.Now().Add(t.timeout))
	}

	var header [4]byte
	if _, err := io.ReadFull(t.conn, header[:]); err != nil {
		return nil, fmt.Errorf("failed to read NetBIOS header: %w", err)
	}

	msgLen := int(header[1])<<16 | int(header[2])<<8 | int(header[3])
	if msgLen == 0 {
		return nil, errors.New("received empty message")
	}
	if msgLen > maxMessageSize {
		return nil, fmt.Errorf("message too large: %d bytes", msgLen)
	}

	msg := make([]byte, msgLen)
	if _, err := io.ReadFull(t.conn, msg); err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}
	return msg, nil
}

// Close closes the transport connection
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}

	err := t.conn.Close()
	t.conn = nil
	return err
}

// RemoteAddr returns the remote network address
func (t *Transport) RemoteAddr() net.Addr {
	if t.conn == nil {
		return nil
	}
	return t.conn.RemoteAddr()
}

// RemoteHost returns the hostname of the remote server
func (t *Transport) RemoteHost() string {
	return t.remoteHost
}

// SendRecv sends msg and returns the next message received
func (t *Transport) SendRecv(msg []byte) ([]byte, error) {
	if err := t.Send(msg); err != nil {
		return nil, err
	}
	return t.Recv()
}
