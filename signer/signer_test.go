package signer

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "0x8f49e4492f97ca6334e15117fc6c4c06f4652cac7fb27ed4ecc5ef9ea6ad5820"

const testMessage = "example.com wants you to sign in with your Ethereum account:\n" +
	"0x36E4418Dafb9D1E5fff7408F5A57981E240c8F8E\n" +
	"\n" +
	"URI: https://example.com/path\n" +
	"Version: 1\n" +
	"Chain ID: 1\n" +
	"Nonce: foobarbaz\n" +
	"Issued At: 2023-01-01T00:00:00.000Z"

func recoverAddress(t *testing.T, message string, sig []byte) string {
	t.Helper()
	raw := make([]byte, 65)
	copy(raw, sig)
	raw[64] -= 27

	pub, err := crypto.SigToPub(Hash(message), raw)
	require.NoError(t, err)
	return crypto.PubkeyToAddress(*pub).Hex()
}

func TestHash(t *testing.T) {
	hash := Hash("hello")
	assert.Len(t, hash, 32)
	// keccak256("\x19Ethereum Signed Message:\n5hello")
	assert.Equal(t, "50b2c43fd39106bafbba0da34fc430e1f91e3c96ea2acee2bc34119f92b37750", hex.EncodeToString(hash))
}

func TestNewDefaultSigner(t *testing.T) {
	tests := []struct {
		name        string
		privHex     string
		expectError bool
	}{
		{"With prefix", testPrivateKey, false},
		{"Without prefix", testPrivateKey[2:], false},
		{"Invalid hex", "0xnothex", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewDefaultSigner(tt.privHex)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Regexp(t, `^0x[0-9a-fA-F]{40}$`, s.Address())
		})
	}
}

func TestSignMessage(t *testing.T) {
	s, err := NewDefaultSigner(testPrivateKey)
	require.NoError(t, err)

	sig, err := SignMessage(context.Background(), s, testMessage)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	assert.Equal(t, s.Address(), recoverAddress(t, testMessage, sig))
}

func TestSignMessage_NilSigner(t *testing.T) {
	_, err := SignMessage(context.Background(), nil, testMessage)
	assert.Error(t, err)
}
