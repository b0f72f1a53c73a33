package math

import (
	"math/big"
)

// GetLiquidityFromTokenA estimates the liquidity a token A amount provides
// between two sqrt prices.
func GetLiquidityFromTokenA(amount, lowerSqrtPrice, upperSqrtPrice *big.Int) *big.Int {
	product := new(big.Int).Mul(amount, lowerSqrtPrice)
	product.Mul(product, upperSqrtPrice)
	product.Rsh(product, 64)
	denominator := new(big.Int).Sub(upperSqrtPrice, lowerSqrtPrice)
	return product.Div(product, denominator)
}

// GetLiquidityFromTokenB estimates the liquidity a token B amount provides
// between two sqrt prices.
func GetLiquidityFromTokenB(amount, lowerSqrtPrice, upperSqrtPrice *big.Int) *big.Int {
	product := new(big.Int).Lsh(amount, 64)
	denominator := new(big.Int).Sub(upperSqrtPrice, lowerSqrtPrice)
	return product.Div(product, denominator)
}

// GetTokenAFromLiquidity returns the token A owed for a liquidity delta
// between the current and upper sqrt prices.
func GetTokenAFromLiquidity(liquidity, currentSqrtPrice, upperSqrtPrice *big.Int, roundUp bool) *big.Int {
	numerator := new(big.Int).Lsh(liquidity, 64)
	numerator.Mul(numerator, new(big.Int).Sub(upperSqrtPrice, currentSqrtPrice))
	denominator := new(big.Int).Mul(upperSqrtPrice, currentSqrtPrice)
	return divRound(numerator, denominator, roundUp)
}

// GetTokenBFromLiquidity returns the token B owed for a liquidity delta
// between the lower and current sqrt prices.
func GetTokenBFromLiquidity(liquidity, lowerSqrtPrice, currentSqrtPrice *big.Int, roundUp bool) *big.Int {
	numerator := new(big.Int).Mul(liquidity, new(big.Int).Sub(currentSqrtPrice, lowerSqrtPrice))
	denominator := new(big.Int).Lsh(big.NewInt(1), 64)
	return divRound(numerator, denominator, roundUp)
}

// GetTokenAmountsFromLiquidity returns both token amounts a liquidity delta
// represents at the current price, clamped into the position range.
func GetTokenAmountsFromLiquidity(liquidity, currentSqrtPrice, lowerSqrtPrice, upperSqrtPrice *big.Int, roundUp bool) (*big.Int, *big.Int) {
	switch {
	case currentSqrtPrice.Cmp(lowerSqrtPrice) < 0:
		return GetTokenAFromLiquidity(liquidity, lowerSqrtPrice, upperSqrtPrice, roundUp), big.NewInt(0)
	case currentSqrtPrice.Cmp(upperSqrtPrice) >= 0:
		return big.NewInt(0), GetTokenBFromLiquidity(liquidity, lowerSqrtPrice, upperSqrtPrice, roundUp)
	default:
		amountA := GetTokenAFromLiquidity(liquidity, currentSqrtPrice, upperSqrtPrice, roundUp)
		amountB := GetTokenBFromLiquidity(liquidity, lowerSqrtPrice, currentSqrtPrice, roundUp)
		return amountA, amountB
	}
}

// AdjustForSlippage widens (roundUp) or shrinks an amount by slippage basis
// points, for max-in and min-out bounds respectively.
func AdjustForSlippage(amount *big.Int, slippageBps uint16, roundUp bool) *big.Int {
	scale := big.NewInt(10_000)
	if roundUp {
		out := new(big.Int).Mul(amount, big.NewInt(int64(10_000+uint32(slippageBps))))
		return divRound(out, scale, true)
	}
	out := new(big.Int).Mul(amount, big.NewInt(int64(10_000-uint32(slippageBps))))
	return out.Div(out, scale)
}

func divRound(numerator, denominator *big.Int, roundUp bool) *big.Int {
	quotient, remainder := new(big.Int).QuoRem(numerator, denominator, new(big.Int))
	if roundUp && remainder.Sign() != 0 {
		quotient.Add(quotient, big.NewInt(1))
	}
	return quotient
}
