package smb

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/ineffectivecoder/SpoolGooser/pkg/debug"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

// NegotiateResult holds what session setup needs from NEGOTIATE
type NegotiateResult struct {
	Dialect         types.Dialect
	ServerGUID      uuid.UUID
	MaxTransactSize uint32
	MaxReadSize     uint32
	MaxWriteSize    uint32
	RequiresSigning bool
	Capabilities    types.Capabilities
}

// offeredDialects returns the client dialects up to and including
// maxDialect. Zero means no cap.
func offeredDialects(maxDialect types.Dialect) []types.Dialect {
	if maxDialect == 0 {
		return types.ClientDialects
	}
	return slices.DeleteFunc(slices.Clone(types.ClientDialects), func(d types.Dialect) bool {
		return d > maxDialect
	})
}

// negotiate sends NEGOTIATE with message ID 0
func negotiate(ctx context.Context, transport *Transport, maxDialect types.Dialect) (*NegotiateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dialects := offeredDialects(maxDialect)
	if len(dialects) == 0 {
		return nil, fmt.Errorf("no dialect at or below %s", DialectName(maxDialect))
	}

	req := types.NegotiateRequest{
		SecurityMode: types.NegotiateSigningEnabled,
		Capabilities: types.GlobalCapDFS | types.GlobalCapLargeMTU,
		ClientGUID:   uuid.New(),
		Dialects:     dialects,
	}
	if dialects[len(dialects)-1] >= types.DialectSMB3_0 {
		req.Capabilities |= types.GlobalCapEncryption
	}

	msg := append(types.NewHeader(types.CommandNegotiate, 0).Marshal(), req.Marshal()...)
	resp, err := transport.SendRecv(msg)
	if err != nil {
		return nil, err
	}
	if _, err := checkResponse(resp); err != nil {
		return nil, err
	}

	var negResp types.NegotiateResponse
	if err := negResp.Unmarshal(resp[types.SMB2HeaderSize:]); err != nil {
		return nil, fmt.Errorf("failed to parse negotiate response: %w", err)
	}
	if !slices.Contains(dialects, negResp.DialectRevision) {
		return nil, fmt.Errorf("server chose %s, which was not offered", DialectName(negResp.DialectRevision))
	}

	result := &NegotiateResult{
		Dialect:         negResp.DialectRevision,
		ServerGUID:      uuid.UUID(negResp.ServerGUID),
		MaxTransactSize: negResp.MaxTransactSize,
		MaxReadSize:     negResp.MaxReadSize,
		MaxWriteSize:    negResp.MaxWriteSize,
		RequiresSigning: negResp.RequiresSigning(),
		Capabilities:    negResp.Capabilities,
	}
	debug.Printf("Negotiated %s with server %s (signing required: %v)\n",
		DialectName(result.Dialect), result.ServerGUID, result.RequiresSigning)
	return result, nil
}

// DialectName returns a human-readable dialect name
func DialectName(d types.Dialect) string {
	switch d {
	case types.DialectSMB2_0_2:
		return "SMB 2.0.2"
	case types.DialectSMB2_1:
		return "SMB 2.1"
	case types.DialectSMB3_0:
		return "SMB 3.0"
	case types.DialectSMB3_0_2:
		return "SMB 3.0.2"
	case types.DialectSMB3_1_1:
		return "SMB 3.1.1"
	}
	return fmt.Sprintf("dialect 0x%04X", uint16(d))
}
