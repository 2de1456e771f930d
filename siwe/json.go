package siwe

import (
	"encoding/json"
	"fmt"
	"math"
)

// UnmarshalJSON decodes a message from its camelCase JSON form. Chain ids
// arrive as arbitrary JSON numbers here, so the whole-number rule is
// enforced during decoding.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	aux := struct {
		*alias
		ChainID json.Number `json:"chainId"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("failed to unmarshal siwe message: %w", err)
	}

	// a missing key leaves the current value alone, as encoding/json does
	if aux.ChainID == "" {
		return nil
	}

	chainID, err := wholeNumber(aux.ChainID)
	if err != nil {
		return invalidField("chainId", aux.ChainID.String(), reasonChainID)
	}
	m.ChainID = chainID
	return nil
}

func wholeNumber(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Floor(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("chain id %s is not a whole number", n)
	}
	return int64(f), nil
}
