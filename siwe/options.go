package siwe

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures CreateMessage and ParseMessage.
type Option func(*options)

type options struct {
	now              func() time.Time
	normalizeAddress AddressNormalizer
	logger           zerolog.Logger
}

// WithClock sets the clock used when a message has no IssuedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithAddressNormalizer replaces the default go-ethereum backed address normalizer.
func WithAddressNormalizer(fn AddressNormalizer) Option {
	return func(o *options) {
		if fn != nil {
			o.normalizeAddress = fn
		}
	}
}

// WithLogger sets the logger. Logging is disabled by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		now:              time.Now,
		normalizeAddress: NormalizeAddress,
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
