package siwe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AddressNormalizer turns a raw hex address into a checksummed address.
type AddressNormalizer func(raw string) (common.Address, error)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// NormalizeAddress parses a 0x-prefixed hex address. Lowercase input is
// accepted as is; any other casing must already carry a valid EIP-55 checksum.
func NormalizeAddress(raw string) (common.Address, error) {
	if !addressPattern.MatchString(raw) {
		return common.Address{}, fmt.Errorf("%w: %q is not a 20-byte hex address", ErrInvalidAddress, raw)
	}

	addr := common.HexToAddress(raw)
	if raw != strings.ToLower(raw) && addr.Hex() != raw {
		return common.Address{}, fmt.Errorf("%w: %q has an invalid EIP-55 checksum", ErrInvalidAddress, raw)
	}
	return addr, nil
}
