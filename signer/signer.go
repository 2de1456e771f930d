// Package signer signs rendered SIWE messages with secp256k1 keys, either
// locally or through a remote signing service.
package signer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs 32-byte digests.
type Signer interface {
	Sign(ctx context.Context, hash []byte) ([]byte, error)
	// Address returns the EIP-55 checksummed address of the signing key.
	Address() string
}

// DefaultSigner signs with an in-memory private key.
type DefaultSigner struct {
	priv *ecdsa.PrivateKey
}

// NewDefaultSigner creates a signer from a hex private key, with or without 0x prefix.
func NewDefaultSigner(privHex string) (Signer, error) {
	priv, err := crypto.HexToECDSA(strings.TrimPrefix(privHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return &DefaultSigner{priv: priv}, nil
}

// Sign signs the digest and returns a 65-byte [R || S || V] signature with V in {0, 1}.
func (s *DefaultSigner) Sign(_ context.Context, hash []byte) ([]byte, error) {
	signature, err := crypto.Sign(hash, s.priv)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payload: %w", err)
	}

	if len(signature) != 65 {
		return nil, fmt.Errorf("invalid signature length: expected 65 bytes, got %d", len(signature))
	}

	return signature, nil
}

// Address returns the EIP-55 checksummed address of the signing key.
func (s *DefaultSigner) Address() string {
	return crypto.PubkeyToAddress(s.priv.PublicKey).Hex()
}

// Hash returns the EIP-191 personal message digest of a rendered message:
// keccak256("\x19Ethereum Signed Message:\n" + len(message) + message).
func Hash(message string) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(message))
	return crypto.Keccak256([]byte(prefix), []byte(message))
}

// SignMessage hashes the rendered message and signs it. The returned
// signature uses V in {27, 28}, as wallets do for personal_sign.
func SignMessage(ctx context.Context, s Signer, message string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("signer is nil")
	}

	sig, err := s.Sign(ctx, Hash(message))
	if err != nil {
		return nil, err
	}
	if len(sig) != 65 {
		return nil, fmt.Errorf("invalid signature length: expected 65 bytes, got %d", len(sig))
	}

	out := make([]byte, 65)
	copy(out, sig)
	if out[64] < 27 {
		out[64] += 27
	}
	return out, nil
}
