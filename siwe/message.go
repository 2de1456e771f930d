package siwe

import (
	"fmt"
	"time"
)

// isoLayout matches the millisecond UTC layout wallets emit for EIP-4361 timestamps.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Message is the construction record for an EIP-4361 message.
//
// Optional fields are pointers; nil means the field is not present. A pointer
// to an empty string is rendered the same as nil. Resources distinguishes nil
// (absent) from an empty, non-nil slice (bare "Resources:" line).
type Message struct {
	Address string `json:"address"`
	Domain  string `json:"domain"`
	URI     string `json:"uri"`
	Version string `json:"version"`
	ChainID int64  `json:"chainId"`
	Nonce   string `json:"nonce"`
	// IssuedAt defaults to the configured clock when nil.
	IssuedAt *time.Time `json:"issuedAt,omitempty"`

	Scheme         *string    `json:"scheme,omitempty"`
	Statement      *string    `json:"statement,omitempty"`
	ExpirationTime *time.Time `json:"expirationTime,omitempty"`
	NotBefore      *time.Time `json:"notBefore,omitempty"`
	RequestID      *string    `json:"requestId,omitempty"`
	Resources      []string   `json:"resources,omitempty"`
}

// ParsedMessage is the partial record recovered by ParseMessage.
// Every field is nil when the text did not yield it.
type ParsedMessage struct {
	// Address is kept verbatim as it appeared in the text.
	Address *string
	Domain  *string
	URI     *string
	Version *string
	ChainID *int64
	Nonce   *string

	IssuedAt       *time.Time
	Scheme         *string
	Statement      *string
	ExpirationTime *time.Time
	NotBefore      *time.Time
	RequestID      *string
	Resources      []string
}

// Message converts the parsed record into a construction record. It fails
// with ErrMissingField when a required field is absent; it does not run
// field validation, call Validate on the result for that.
func (p *ParsedMessage) Message() (*Message, error) {
	required := []struct {
		name    string
		present bool
	}{
		{"address", p.Address != nil},
		{"domain", p.Domain != nil},
		{"uri", p.URI != nil},
		{"version", p.Version != nil},
		{"chainId", p.ChainID != nil},
		{"nonce", p.Nonce != nil},
		{"issuedAt", p.IssuedAt != nil},
	}
	for _, f := range required {
		if !f.present {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	m := &Message{
		Address:        *p.Address,
		Domain:         *p.Domain,
		URI:            *p.URI,
		Version:        *p.Version,
		ChainID:        *p.ChainID,
		Nonce:          *p.Nonce,
		IssuedAt:       p.IssuedAt,
		Scheme:         p.Scheme,
		Statement:      p.Statement,
		ExpirationTime: p.ExpirationTime,
		NotBefore:      p.NotBefore,
		RequestID:      p.RequestID,
	}
	if p.Resources != nil {
		m.Resources = append([]string{}, p.Resources...)
	}
	return m, nil
}

// Ptr returns a pointer to v. Handy for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func present(s *string) bool {
	return s != nil && *s != ""
}
