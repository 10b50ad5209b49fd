package smb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jcmturner/gofork/encoding/asn1"
	"github.com/jcmturner/gokrb5/v8/spnego"

	"github.com/ineffectivecoder/SpoolGooser/pkg/auth"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

// Session represents an authenticated SMB session
type Session struct {
	transport       *Transport
	sessionID       uint64
	messageID       uint64
	signingRequired bool
	dialect         types.Dialect
	maxTransactSize uint32
	maxReadSize     uint32
	maxWriteSize    uint32

	// Set once NTLM succeeds. A sealed session is never also signed.
	signer *signer
	sealer *sealer

	isAuthenticated bool
	isGuest         bool

	// Reported by the NTLM challenge; zero after Kerberos
	serverVersion auth.NTLMVersion
}

// NewSession creates a new session from a negotiation result
func NewSession(transport *Transport, negResult *NegotiateResult) *Session {
	return &Session{
		transport:       transport,
		signingRequired: negResult.RequiresSigning,
		dialect:         negResult.Dialect,
		maxTransactSize: negResult.MaxTransactSize,
		maxReadSize:     negResult.MaxReadSize,
		maxWriteSize:    negResult.MaxWriteSize,
		messageID:       1, // Negotiate used MessageID 0
	}
}

// Authenticate performs NTLM or Kerberos session setup
func (s *Session) Authenticate(ctx context.Context, creds auth.Credentials) error {
	if krbCreds, ok := creds.(auth.KerberosProvider); ok && krbCreds.IsKerberos() {
		return s.authenticateKerberos(ctx, krbCreds)
	}
	return s.authenticateNTLM(ctx, creds)
}

// sessionSetup sends one SESSION_SETUP leg. STATUS_MORE_PROCESSING_REQUIRED
// is not an error here; the caller checks the returned header.
func (s *Session) sessionSetup(ctx context.Context, token []byte) (*types.Header, *types.SessionSetupResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	header := types.NewHeader(types.CommandSessionSetup, s.nextMessageID())
	header.SessionID = s.sessionID

	resp, err := s.sendRecv(header, types.NewSessionSetupRequest(token))
	if err != nil {
		return nil, nil, err
	}

	h, err := checkResponse(resp)
	if err != nil && (h == nil || h.Status != types.StatusMoreProcessingReq) {
		return h, nil, err
	}
	s.sessionID = h.SessionID

	var setupResp types.SessionSetupResponse
	if err := setupResp.Unmarshal(resp[types.SMB2HeaderSize:]); err != nil {
		return h, nil, fmt.Errorf("failed to parse session setup response: %w", err)
	}
	return h, &setupResp, nil
}

// authenticateKerberos performs Kerberos/SPNEGO authentication against the
// cifs/<host> SPN
func (s *Session) authenticateKerberos(ctx context.Context, krbCreds auth.KerberosProvider) error {
	token, err := krbCreds.GetSPNEGOToken("cifs/" + s.transport.RemoteHost())
	if err != nil {
		return fmt.Errorf("failed to get SPNEGO token: %w", err)
	}

	h, setupResp, err := s.sessionSetup(ctx, token)
	if err != nil {
		return fmt.Errorf("kerberos session setup failed: %w", err)
	}

	// Mutual authentication: the AP-REP is not verified, an empty leg
	// completes the exchange
	if h.Status == types.StatusMoreProcessingReq {
		h, setupResp, err = s.sessionSetup(ctx, nil)
		if err != nil {
			return fmt.Errorf("kerberos session setup continuation failed: %w", err)
		}
		if h.Status != types.StatusSuccess {
			return StatusToError(h.Status)
		}
	}

	// No session key is taken from the AP-REP, so there is nothing to
	// sign or seal with
	if setupResp.SessionFlags&types.SessionFlagEncryptData != 0 {
		return errors.New("server requires encryption, which is only supported with NTLM")
	}

	s.isAuthenticated = true
	s.isGuest = setupResp.IsGuest()
	return nil
}

// authenticateNTLM performs the NTLMSSP exchange inside SPNEGO
func (s *Session) authenticateNTLM(ctx context.Context, creds auth.Credentials) error {
	ntlm, err := auth.NewNTLMClient(creds)
	if err != nil {
		return err
	}
	token, err := spnegoInit(ntlm.Negotiate())
	if err != nil {
		return err
	}

	h, setupResp, err := s.sessionSetup(ctx, token)
	if err != nil {
		return fmt.Errorf("session setup (negotiate) failed: %w", err)
	}
	if h.Status != types.StatusMoreProcessingReq {
		return fmt.Errorf("session setup (negotiate): unexpected status 0x%08X", uint32(h.Status))
	}

	challenge := unwrapNTLMSSP(setupResp.SecurityBuffer)
	if challenge == nil {
		return errors.New("failed to extract NTLMSSP challenge")
	}
	authenticate, err := ntlm.Authenticate(challenge)
	if err != nil {
		return fmt.Errorf("failed to answer challenge: %w", err)
	}
	s.serverVersion = ntlm.ServerVersion()

	token, err = spnegoResponse(authenticate)
	if err != nil {
		return err
	}

	h, setupResp, err = s.sessionSetup(ctx, token)
	if err != nil {
		return fmt.Errorf("session setup (authenticate) failed: %w", err)
	}
	if h.Status != types.StatusSuccess {
		return StatusToError(h.Status)
	}

	if err := s.installKeys(ntlm.SessionKey(), setupResp.SessionFlags); err != nil {
		return err
	}
	s.isAuthenticated = true
	s.isGuest = setupResp.IsGuest()
	return nil
}

// installKeys prepares signing, or sealing when the server set
// SMB2_SESSION_FLAG_ENCRYPT_DATA
func (s *Session) installKeys(sessionKey []byte, flags uint16) error {
	if flags&types.SessionFlagEncryptData != 0 {
		if s.dialect < types.DialectSMB3_0 {
			return fmt.Errorf("server requires encryption on %s", DialectName(s.dialect))
		}
		sl, err := newSealer(sessionKey, s.sessionID)
		if err != nil {
			return fmt.Errorf("failed to derive encryption keys: %w", err)
		}
		s.sealer = sl
		return nil
	}

	if s.signingRequired {
		sg, err := newSigner(s.dialect, sessionKey)
		if err != nil {
			return fmt.Errorf("failed to derive signing key: %w", err)
		}
		s.signer = sg
	}
	return nil
}

// request sends one command on treeID and returns the response header and
// body. A failing status is returned as an *NTStatusError alongside the
// header.
func (s *Session) request(ctx context.Context, cmd types.Command, treeID uint32, body []byte) (*types.Header, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	header := types.NewHeader(cmd, s.nextMessageID())
	header.SessionID = s.sessionID
	header.TreeID = treeID

	resp, err := s.sendRecv(header, body)
	if err != nil {
		return nil, nil, err
	}

	h, err := checkResponse(resp)
	if err != nil {
		return h, nil, err
	}
	return h, resp[types.SMB2HeaderSize:], nil
}

// sendRecv sends a request and receives the response
func (s *Session) sendRecv(header *types.Header, payload []byte) ([]byte, error) {
	if s.sealer == nil && s.signer != nil {
		header.Flags |= types.FlagsSigned
	}
	msg := append(header.Marshal(), payload...)

	switch {
	case s.sealer != nil:
		sealed, err := s.sealer.seal(msg)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt message: %w", err)
		}
		msg = sealed
	case s.signer != nil:
		s.signer.sign(msg)
	}

	if err := s.transport.Send(msg); err != nil {
		return nil, err
	}
	return s.recvResponse()
}

// recvResponse receives a response, skipping interim STATUS_PENDING replies
func (s *Session) recvResponse() ([]byte, error) {
	for {
		resp, err := s.transport.Recv()
		if err != nil {
			return nil, err
		}

		sealed := isTransform(resp)
		if sealed {
			if s.sealer == nil {
				return nil, errors.New("encrypted response on an unencrypted session")
			}
			if resp, err = s.sealer.open(resp); err != nil {
				return nil, fmt.Errorf("failed to decrypt response: %w", err)
			}
		}

		var h types.Header
		if len(resp) < types.SMB2HeaderSize || h.Unmarshal(resp) != nil {
			return resp, nil
		}
		if h.Status == types.StatusPending {
			continue
		}

		if !sealed && s.signer != nil && h.IsSigned() && !s.signer.verify(resp) {
			return nil, errors.New("invalid message signature")
		}
		return resp, nil
	}
}

// nextMessageID returns the next message ID
func (s *Session) nextMessageID() uint64 {
	id := s.messageID
	s.messageID++
	return id
}

// SessionID returns the session ID
func (s *Session) SessionID() uint64 {
	return s.sessionID
}

// IsAuthenticated returns true if authenticated
func (s *Session) IsAuthenticated() bool {
	return s.isAuthenticated
}

// IsGuest returns true if this is a guest session
func (s *Session) IsGuest() bool {
	return s.isGuest
}

// Dialect returns the negotiated dialect
func (s *Session) Dialect() types.Dialect {
	return s.dialect
}

// ServerVersion returns the OS version the server reported during NTLM
// authentication
func (s *Session) ServerVersion() auth.NTLMVersion {
	return s.serverVersion
}

// IsSigned reports whether requests are signed
func (s *Session) IsSigned() bool {
	return s.signer != nil && s.sealer == nil
}

// IsEncrypted reports whether requests are sealed
func (s *Session) IsEncrypted() bool {
	return s.sealer != nil
}

// Close sends LOGOFF
func (s *Session) Close() error {
	if !s.isAuthenticated {
		return nil
	}

	_, _, err := s.request(context.Background(), types.CommandLogoff, 0, types.NewLogoffRequest())
	s.isAuthenticated = false
	if err != nil {
		return fmt.Errorf("logoff failed: %w", err)
	}
	return nil
}

// NTLMSSP mechanism OID 1.3.6.1.4.1.311.2.2.10
var oidNTLMSSP = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 311, 2, 2, 10}

// ntlmSignature prefixes every NTLMSSP message
var ntlmSignature = []byte("NTLMSSP\x00")

// spnegoInit wraps the NTLM negotiate message in a GSS-API NegTokenInit
func spnegoInit(ntlmssp []byte) ([]byte, error) {
	tok := spnego.SPNEGOToken{
		Init: true,
		NegTokenInit: spnego.NegTokenInit{
			MechTypes:      []asn1.ObjectIdentifier{oidNTLMSSP},
			MechTokenBytes: ntlmssp,
		},
	}
	b, err := tok.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to build SPNEGO init token: %w", err)
	}
	return b, nil
}

// spnegoResponse wraps the NTLM authenticate message in a NegTokenResp
func spnegoResponse(ntlmssp []byte) ([]byte, error) {
	tok := spnego.SPNEGOToken{
		Resp: true,
		NegTokenResp: spnego.NegTokenResp{
			NegState:      asn1.Enumerated(spnego.NegStateAcceptIncomplete),
			ResponseToken: ntlmssp,
		},
	}
	b, err := tok.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to build SPNEGO response token: %w", err)
	}
	return b, nil
}

// unwrapNTLMSSP extracts the NTLMSSP message from a SPNEGO reply, or from a
// raw token when the server skipped SPNEGO
func unwrapNTLMSSP(data []byte) []byte {
	var tok spnego.SPNEGOToken
	if err := tok.Unmarshal(data); err == nil && tok.Resp {
		if bytes.HasPrefix(tok.NegTokenResp.ResponseToken, ntlmSignature) {
			return tok.NegTokenResp.ResponseToken
		}
	}
	if i := bytes.Index(data, ntlmSignature); i >= 0 {
		return data[i:]
	}
	return nil
}
