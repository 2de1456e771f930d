package signer

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RemoteSigner signs digests through a remote signing API.
type RemoteSigner struct {
	endpoint string
	address  string
	apiKey   string
	client   *http.Client
	logger   zerolog.Logger
}

// RemoteOption configures a RemoteSigner.
type RemoteOption func(*RemoteSigner)

// WithAPIKey sets the key sent in the x-api-key header.
func WithAPIKey(apiKey string) RemoteOption {
	return func(s *RemoteSigner) { s.apiKey = apiKey }
}

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(s *RemoteSigner) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger sets the logger used for failed signing calls.
func WithLogger(logger zerolog.Logger) RemoteOption {
	return func(s *RemoteSigner) { s.logger = logger }
}

// NewRemoteSigner creates a signer that posts digests to endpoint. address is
// the account the remote key belongs to.
func NewRemoteSigner(endpoint, address string, opts ...RemoteOption) (Signer, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("endpoint required")
	}

	s := &RemoteSigner{
		endpoint: endpoint,
		address:  address,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sign posts the digest and returns the 65-byte signature from the service.
func (s *RemoteSigner) Sign(ctx context.Context, hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("payload must be 32 bytes, got %d", len(hash))
	}

	reqBody, err := json.Marshal(map[string]any{
		"payload_hex": hex.EncodeToString(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call remote signer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn().Str("endpoint", s.endpoint).Int("status", resp.StatusCode).Msg("remote signer rejected request")
		return nil, fmt.Errorf("remote signer http %d", resp.StatusCode)
	}

	var out struct {
		SignatureHex string `json:"signature_hex"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode remote signer response: %w", err)
	}

	sig, err := hex.DecodeString(strings.TrimPrefix(out.SignatureHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature hex: %w", err)
	}
	if len(sig) != 65 {
		return nil, fmt.Errorf("invalid signature length %d", len(sig))
	}

	return sig, nil
}

// Address returns the account address the signer was configured with.
func (s *RemoteSigner) Address() string {
	return s.address
}
