package siwe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const headerSuffix = " wants you to sign in with your Ethereum account:"

// CreateMessage validates m and renders it as an EIP-4361 message.
//
// Field errors are returned as *InvalidFieldError, address failures wrap
// ErrInvalidAddress. When m.IssuedAt is nil the configured clock is read.
//
// See https://eips.ethereum.org/EIPS/eip-4361
func CreateMessage(m Message, opts ...Option) (string, error) {
	o := newOptions(opts...)

	if err := m.Validate(); err != nil {
		o.logger.Debug().Err(err).Msg("siwe message rejected")
		return "", err
	}

	address, err := o.normalizeAddress(m.Address)
	if err != nil {
		if !errors.Is(err, ErrInvalidAddress) {
			err = fmt.Errorf("%w: %w", ErrInvalidAddress, err)
		}
		o.logger.Debug().Err(err).Str("address", m.Address).Msg("siwe address rejected")
		return "", err
	}

	issuedAt := o.now()
	if m.IssuedAt != nil {
		issuedAt = *m.IssuedAt
	}

	var b strings.Builder
	if present(m.Scheme) {
		b.WriteString(*m.Scheme)
		b.WriteString("://")
	}
	b.WriteString(m.Domain)
	b.WriteString(headerSuffix)
	b.WriteString("\n")
	b.WriteString(address.Hex())
	b.WriteString("\n")
	if present(m.Statement) {
		b.WriteString("\n" + *m.Statement + "\n")
	}

	b.WriteString("\nURI: " + m.URI)
	b.WriteString("\nVersion: " + m.Version)
	b.WriteString("\nChain ID: " + strconv.FormatInt(m.ChainID, 10))
	b.WriteString("\nNonce: " + m.Nonce)
	b.WriteString("\nIssued At: " + formatTime(issuedAt))

	if m.ExpirationTime != nil {
		b.WriteString("\nExpiration Time: " + formatTime(*m.ExpirationTime))
	}
	if m.NotBefore != nil {
		b.WriteString("\nNot Before: " + formatTime(*m.NotBefore))
	}
	if present(m.RequestID) {
		b.WriteString("\nRequest ID: " + *m.RequestID)
	}
	if m.Resources != nil {
		b.WriteString("\nResources:")
		for _, resource := range m.Resources {
			b.WriteString("\n- " + resource)
		}
	}

	return b.String(), nil
}
