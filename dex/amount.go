package dex

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
)

// Decimals is the token precision of the pool contract.
const Decimals = 18

// ParseAmount converts a human decimal quantity ("1000", "0.25") to an integer
// scaled by 10^decimals. The conversion is exact: more fractional digits than
// decimals, signs, exponents and values that do not fit a uint256 are rejected
// with ErrInvalidAmount.
func ParseAmount(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if hasDot && frac == "" && whole == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return nil, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, s)
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, s, decimals)
	}

	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return new(big.Int), nil
	}

	v, ok := math.ParseBig256(digits)
	if !ok {
		return nil, fmt.Errorf("%w: %q overflows uint256", ErrInvalidAmount, s)
	}
	return v, nil
}

// ParseAmounts formats every quantity of an operation, in order.
func ParseAmounts(op Operation, amounts []string) ([]*big.Int, error) {
	if len(amounts) != op.Arity() {
		return nil, fmt.Errorf("%w: %s takes %d amounts, got %d", ErrInvalidAmount, op.Name, op.Arity(), len(amounts))
	}
	out := make([]*big.Int, 0, len(amounts))
	for i, a := range amounts {
		v, err := ParseAmount(a, Decimals)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op.Args[i], err)
		}
		out = append(out, v)
	}
	return out, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
