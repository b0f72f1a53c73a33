package math

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSqrtPriceFromPrice(t *testing.T) {
	one := new(big.Int).Lsh(big.NewInt(1), 64)

	// Price 1 with equal decimals is exactly 1 << 64.
	assert.Zero(t, GetSqrtPriceFromPrice(decimal.NewFromInt(1), 6, 6).Cmp(one))

	// Price 4 doubles the sqrt price.
	four := GetSqrtPriceFromPrice(decimal.NewFromInt(4), 6, 6)
	assert.Zero(t, four.Cmp(new(big.Int).Lsh(big.NewInt(1), 65)))

	// Decimal adjustment: 9/6 decimals divides the raw price by 10^3.
	adjusted := GetSqrtPriceFromPrice(decimal.NewFromInt(1), 9, 6)
	assert.Less(t, adjusted.Cmp(one), 0)
}

func TestPriceSqrtPriceRoundTrip(t *testing.T) {
	for _, raw := range []string{"0.000133", "1", "25.5", "143000"} {
		price := decimal.RequireFromString(raw)
		sqrtPrice := GetSqrtPriceFromPrice(price, 9, 6)
		back := GetPriceFromSqrtPrice(sqrtPrice, 9, 6)

		diff := back.Sub(price).Abs()
		tolerance := price.Mul(decimal.RequireFromString("0.000001"))
		assert.True(t, diff.LessThanOrEqual(tolerance), "price %s round-tripped to %s", price, back)
	}
}

func TestGetBaseUnitAmount(t *testing.T) {
	assert.Equal(t, int64(1_500_000), GetBaseUnitAmount(decimal.RequireFromString("1.5"), 6).Int64())
	assert.Equal(t, int64(1), GetBaseUnitAmount(decimal.RequireFromString("0.000000001"), 9).Int64())
	// Sub-base-unit dust truncates.
	assert.Equal(t, int64(0), GetBaseUnitAmount(decimal.RequireFromString("0.0000001"), 6).Int64())
}

func TestLiquidityEstimates(t *testing.T) {
	sqrtLower := GetSqrtPriceFromTickIndex(-1000)
	sqrtCurrent := GetSqrtPriceFromTickIndex(0)
	sqrtUpper := GetSqrtPriceFromTickIndex(1000)

	amountA := big.NewInt(1_000_000_000)
	liquidity := GetLiquidityFromTokenA(amountA, sqrtCurrent, sqrtUpper)
	require.Positive(t, liquidity.Sign())

	// Converting the liquidity back must not require more than the input.
	backA := GetTokenAFromLiquidity(liquidity, sqrtCurrent, sqrtUpper, false)
	assert.LessOrEqual(t, backA.Cmp(amountA), 0)

	amountB := big.NewInt(1_000_000_000)
	liquidityB := GetLiquidityFromTokenB(amountB, sqrtLower, sqrtCurrent)
	require.Positive(t, liquidityB.Sign())
	backB := GetTokenBFromLiquidity(liquidityB, sqrtLower, sqrtCurrent, false)
	assert.LessOrEqual(t, backB.Cmp(amountB), 0)
}

func TestGetTokenAmountsFromLiquidity(t *testing.T) {
	sqrtLower := GetSqrtPriceFromTickIndex(-1000)
	sqrtUpper := GetSqrtPriceFromTickIndex(1000)
	liquidity := big.NewInt(1_000_000_000)

	// In range: both sides contribute.
	a, b := GetTokenAmountsFromLiquidity(liquidity, GetSqrtPriceFromTickIndex(0), sqrtLower, sqrtUpper, true)
	assert.Positive(t, a.Sign())
	assert.Positive(t, b.Sign())

	// Below range: token A only.
	a, b = GetTokenAmountsFromLiquidity(liquidity, GetSqrtPriceFromTickIndex(-2000), sqrtLower, sqrtUpper, true)
	assert.Positive(t, a.Sign())
	assert.Zero(t, b.Sign())

	// Above range: token B only.
	a, b = GetTokenAmountsFromLiquidity(liquidity, GetSqrtPriceFromTickIndex(2000), sqrtLower, sqrtUpper, true)
	assert.Zero(t, a.Sign())
	assert.Positive(t, b.Sign())
}

func TestAdjustForSlippage(t *testing.T) {
	amount := big.NewInt(10_000)

	assert.Equal(t, int64(10_100), AdjustForSlippage(amount, 100, true).Int64())
	assert.Equal(t, int64(9_900), AdjustForSlippage(amount, 100, false).Int64())
	assert.Equal(t, int64(10_000), AdjustForSlippage(amount, 0, true).Int64())

	// Rounding up never undershoots.
	odd := big.NewInt(3)
	assert.Equal(t, int64(4), AdjustForSlippage(odd, 100, true).Int64())
}

func TestUint128FromBigInt(t *testing.T) {
	small, err := Uint128FromBigInt(big.NewInt(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), small.Lo)
	assert.Equal(t, uint64(0), small.Hi)

	wide, err := Uint128FromBigInt(new(big.Int).Lsh(big.NewInt(3), 64))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), wide.Lo)
	assert.Equal(t, uint64(3), wide.Hi)

	_, err = Uint128FromBigInt(big.NewInt(-1))
	assert.Error(t, err)

	_, err = Uint128FromBigInt(new(big.Int).Lsh(big.NewInt(1), 128))
	assert.Error(t, err)
}
