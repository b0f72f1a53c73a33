package math

import (
	"errors"
	stdmath "math"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	MinTickIndex int32 = -443636
	MaxTickIndex int32 = 443636

	// TicksPerArray is the tick capacity of one tick-array account.
	TicksPerArray int32 = 88
)

var ErrTickOutOfRange = errors.New("tick index out of range")

// GetTickIndexFromPrice returns the largest tick whose price does not exceed
// the given UI price. The price is adjusted for mint decimals first.
func GetTickIndexFromPrice(price decimal.Decimal, tokenADecimal, tokenBDecimal uint8) (int32, error) {
	if price.Sign() <= 0 {
		return 0, errors.New("price must be greater than 0")
	}
	adjusted := price.Div(decimal.New(1, int32(tokenADecimal)-int32(tokenBDecimal)))
	f, _ := adjusted.Float64()
	tick := int32(stdmath.Floor(stdmath.Log(f) / stdmath.Log(1.0001)))
	if tick < MinTickIndex || tick > MaxTickIndex {
		return 0, ErrTickOutOfRange
	}
	return tick, nil
}

// AlignTickIndex snaps a tick to the pool's tick spacing, rounding toward
// negative infinity so the aligned tick never sits above the requested one.
func AlignTickIndex(tick int32, tickSpacing uint16) int32 {
	spacing := int32(tickSpacing)
	aligned := tick / spacing * spacing
	if tick < 0 && tick%spacing != 0 {
		aligned -= spacing
	}
	return aligned
}

// FullRangeTickIndexes returns the widest usable range for a tick spacing.
// Splash pools always open their seed position across this range.
func FullRangeTickIndexes(tickSpacing uint16) (int32, int32) {
	spacing := int32(tickSpacing)
	max := MaxTickIndex / spacing * spacing
	return -max, max
}

// TickArrayStartIndex returns the start tick of the array holding tick.
func TickArrayStartIndex(tick int32, tickSpacing uint16) int32 {
	span := int32(tickSpacing) * TicksPerArray
	start := tick / span * span
	if tick < 0 && tick%span != 0 {
		start -= span
	}
	return start
}

// GetSqrtPriceFromTickIndex returns the Q64.64 sqrt price at a tick. The
// result is an estimate for quoting; the program recomputes it exactly.
func GetSqrtPriceFromTickIndex(tick int32) *big.Int {
	sqrtPrice := stdmath.Pow(1.0001, float64(tick)/2)
	value := new(big.Float).SetPrec(256).SetFloat64(sqrtPrice)
	value.Mul(value, new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), 64)))
	out, _ := value.Int(nil)
	return out
}
