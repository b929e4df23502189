package cli

import (
	"fmt"
	"math/big"
	"strings"
)

const etherDecimals = 18

// parseAmount reads an ether amount such as "0.1" or "0.1eth", or a raw wei
// amount with a "wei" suffix.
func parseAmount(s string) (*big.Int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("amount is required")
	}

	if raw, ok := strings.CutSuffix(s, "wei"); ok {
		wei, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
		if !ok || wei.Sign() < 0 {
			return nil, fmt.Errorf("invalid wei amount %q", s)
		}
		return wei, nil
	}

	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "ether"), "eth"))
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > etherDecimals {
		return nil, fmt.Errorf("invalid amount %q: more than %d decimals", s, etherDecimals)
	}
	digits := whole + frac + strings.Repeat("0", etherDecimals-len(frac))
	if strings.ContainsAny(digits, "+-") {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	wei, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return wei, nil
}

// parseTokenID reads a decimal or 0x-prefixed token id
func parseTokenID(s string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid token id %q", s)
	}
	return id, nil
}
