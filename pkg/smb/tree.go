package smb

import (
	"context"
	"fmt"
	"net"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
	"github.com/ineffectivecoder/SpoolGooser/pkg/debug"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

// Tree represents a connected share
type Tree struct {
	session   *Session
	treeID    uint32
	shareType types.ShareType
	shareName string
}

// TreeConnect connects to a share
func (s *Session) TreeConnect(ctx context.Context, shareName string) (*Tree, error) {
	if !s.isAuthenticated {
		return nil, ErrNotConnected
	}

	addr := s.transport.RemoteAddr()
	if addr == nil {
		return nil, ErrNotConnected
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		host = addr.String()
	}

	unc := fmt.Sprintf(`\\%s\%s`, host, shareName)
	req := types.NewTreeConnectRequest(encoding.ToUTF16LE(unc))

	h, body, err := s.request(ctx, types.CommandTreeConnect, 0, req)
	if err != nil {
		return nil, fmt.Errorf("tree connect %s: %w", shareName, err)
	}

	var treeResp types.TreeConnectResponse
	if err := treeResp.Unmarshal(body); err != nil {
		return nil, fmt.Errorf("failed to parse tree connect response: %w", err)
	}

	debug.Printf("Tree %s connected as 0x%x (maximal access 0x%08X)\n", unc, h.TreeID, uint32(treeResp.MaximalAccess))
	return &Tree{
		session:   s,
		treeID:    h.TreeID,
		shareType: treeResp.ShareType,
		shareName: shareName,
	}, nil
}

// TreeDisconnect disconnects from a share
func (s *Session) TreeDisconnect(ctx context.Context, tree *Tree) error {
	if tree == nil {
		return nil
	}

	if _, _, err := s.request(ctx, types.CommandTreeDisconnect, tree.treeID, types.NewTreeDisconnectRequest()); err != nil {
		return fmt.Errorf("tree disconnect %s: %w", tree.shareName, err)
	}
	return nil
}

// request sends one command on this tree
func (t *Tree) request(ctx context.Context, cmd types.Command, body []byte) (*types.Header, []byte, error) {
	return t.session.request(ctx, cmd, t.treeID, body)
}

// IsPipe returns true if this is an IPC$ (named pipe) share
func (t *Tree) IsPipe() bool {
	return t.shareType == types.ShareTypePipe
}

// Session returns the parent session
func (t *Tree) Session() *Session {
	return t.session
}
