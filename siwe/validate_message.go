package siwe

import (
	"strings"
	"time"
)

// ValidateParams holds the values a parsed message is expected to carry.
// Empty strings are not checked.
type ValidateParams struct {
	Address string
	Domain  string
	Nonce   string
	Scheme  string
	// Time is the instant checked against the validity window. Defaults to
	// the configured clock.
	Time *time.Time
}

// ValidateMessage reports whether msg matches params and is inside its
// validity window. It does not check any signature.
func ValidateMessage(msg *ParsedMessage, params ValidateParams, opts ...Option) bool {
	if msg == nil {
		return false
	}
	o := newOptions(opts...)

	now := o.now()
	if params.Time != nil {
		now = *params.Time
	}

	if params.Domain != "" && !equalPtr(msg.Domain, params.Domain) {
		return false
	}
	if params.Nonce != "" && !equalPtr(msg.Nonce, params.Nonce) {
		return false
	}
	if params.Scheme != "" && !equalPtr(msg.Scheme, params.Scheme) {
		return false
	}
	if msg.ExpirationTime != nil && !now.Before(*msg.ExpirationTime) {
		return false
	}
	if msg.NotBefore != nil && now.Before(*msg.NotBefore) {
		return false
	}

	if msg.Address == nil || !addressPattern.MatchString(*msg.Address) {
		return false
	}
	if params.Address != "" && !strings.EqualFold(*msg.Address, params.Address) {
		return false
	}
	return true
}

func equalPtr(p *string, want string) bool {
	return p != nil && *p == want
}
