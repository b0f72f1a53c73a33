package builders

import (
	"errors"
	"math/big"

	"github.com/solrealms/proposal-go/form"
	"github.com/solrealms/proposal-go/whirlpool"
	wmath "github.com/solrealms/proposal-go/whirlpool/math"
)

var (
	errPriceAboveRange = errors.New("pool price is above the range, provide the token B amount")
	errPriceBelowRange = errors.New("pool price is below the range, provide the token A amount")
)

// quoteDeposit derives the liquidity estimate and slippage-padded maximum
// deposits from the single token amount present in the form values.
func quoteDeposit(
	values form.Values,
	pool *whirlpool.Pool,
	decimalsA, decimalsB uint8,
	lowerTick, upperTick int32,
) (liquidity, maxA, maxB *big.Int, err error) {
	amountA, err := values.Decimal("tokenAmountA")
	if err != nil {
		return nil, nil, nil, err
	}
	amountB, err := values.Decimal("tokenAmountB")
	if err != nil {
		return nil, nil, nil, err
	}
	slippageBps, err := values.Uint64("slippageBps")
	if err != nil {
		return nil, nil, nil, err
	}

	sqrtLower := wmath.GetSqrtPriceFromTickIndex(lowerTick)
	sqrtUpper := wmath.GetSqrtPriceFromTickIndex(upperTick)

	// Clamp the pool price into the range; outside of it the position is
	// single sided.
	sqrtCurrent := pool.SqrtPrice.BigInt()
	if sqrtCurrent.Cmp(sqrtLower) < 0 {
		sqrtCurrent = sqrtLower
	}
	if sqrtCurrent.Cmp(sqrtUpper) > 0 {
		sqrtCurrent = sqrtUpper
	}

	switch {
	case amountA.Sign() > 0:
		if sqrtCurrent.Cmp(sqrtUpper) == 0 {
			return nil, nil, nil, errPriceAboveRange
		}
		base := wmath.GetBaseUnitAmount(amountA, decimalsA)
		liquidity = wmath.GetLiquidityFromTokenA(base, sqrtCurrent, sqrtUpper)
	default:
		if sqrtCurrent.Cmp(sqrtLower) == 0 {
			return nil, nil, nil, errPriceBelowRange
		}
		base := wmath.GetBaseUnitAmount(amountB, decimalsB)
		liquidity = wmath.GetLiquidityFromTokenB(base, sqrtLower, sqrtCurrent)
	}

	needA, needB := wmath.GetTokenAmountsFromLiquidity(liquidity, sqrtCurrent, sqrtLower, sqrtUpper, true)
	maxA = wmath.AdjustForSlippage(needA, uint16(slippageBps), true)
	maxB = wmath.AdjustForSlippage(needB, uint16(slippageBps), true)
	return liquidity, maxA, maxB, nil
}
