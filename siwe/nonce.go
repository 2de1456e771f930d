package siwe

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	nonceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	nonceLength   = 96
)

// GenerateNonce returns a random alphanumeric nonce suitable for Message.Nonce.
func GenerateNonce() (string, error) {
	nonce, err := gonanoid.Generate(nonceAlphabet, nonceLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}
