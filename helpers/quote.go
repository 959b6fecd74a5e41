package helpers

import (
	"errors"
	"fmt"
	"math/big"
)

// SwapQuote is a local estimate of a pool swap, computed from reserves the
// client last read with getReserves.
type SwapQuote struct {
	AmountIn       *big.Int // Input amount, base units
	AmountOut      *big.Int // Expected output amount, base units
	ReserveIn      *big.Int
	ReserveOut     *big.Int
	PriceImpact    float64 // Percent worse than the spot price
	EffectivePrice float64 // Output per input
}

// ErrEmptyPool is returned when either reserve is zero.
var ErrEmptyPool = errors.New("pool has no liquidity")

// EstimateSwap applies the constant product rule without fee:
// amountOut = reserveOut - reserveIn*reserveOut / (reserveIn + amountIn)
func EstimateSwap(reserveIn, reserveOut, amountIn *big.Int) (*SwapQuote, error) {
	if reserveIn == nil || reserveOut == nil || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, ErrEmptyPool
	}
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}

	k := new(big.Int).Mul(reserveIn, reserveOut)
	newReserveOut := new(big.Int).Quo(k, new(big.Int).Add(reserveIn, amountIn))
	amountOut := new(big.Int).Sub(reserveOut, newReserveOut)

	amountInFloat := new(big.Float).SetInt(amountIn)
	effective, _ := new(big.Float).Quo(new(big.Float).SetInt(amountOut), amountInFloat).Float64()
	spot, _ := new(big.Float).Quo(new(big.Float).SetInt(reserveOut), new(big.Float).SetInt(reserveIn)).Float64()

	impact := 0.0
	if spot > 0 {
		impact = (spot - effective) / spot * 100
	}

	return &SwapQuote{
		AmountIn:       amountIn,
		AmountOut:      amountOut,
		ReserveIn:      reserveIn,
		ReserveOut:     reserveOut,
		PriceImpact:    impact,
		EffectivePrice: effective,
	}, nil
}

// FormatSwapQuote returns a human-readable string for a swap quote
func FormatSwapQuote(quote *SwapQuote, tokenInSymbol, tokenOutSymbol string, decimals uint8) string {
	if quote == nil {
		return "No quote available"
	}
	return fmt.Sprintf("%s → %s (impact: %.2f%%)",
		FormatToken(quote.AmountIn, decimals, tokenInSymbol),
		FormatToken(quote.AmountOut, decimals, tokenOutSymbol),
		quote.PriceImpact)
}
