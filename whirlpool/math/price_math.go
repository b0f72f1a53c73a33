package math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// GetSqrtPriceFromPrice converts a UI price (token B per token A) into the
// pool's Q64.64 sqrt price, adjusting for mint decimals.
func GetSqrtPriceFromPrice(price decimal.Decimal, tokenADecimal, tokenBDecimal uint8) *big.Int {
	adjusted := price.Div(decimal.New(1, int32(tokenADecimal)-int32(tokenBDecimal)))
	f, _ := new(big.Float).SetPrec(256).SetString(adjusted.String())
	if f == nil {
		return big.NewInt(0)
	}
	sqrtValue := new(big.Float).SetPrec(256).Sqrt(f)
	sqrtValue.Mul(sqrtValue, new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), 64)))
	sqrtValueX64, _ := sqrtValue.Int(nil)
	return sqrtValueX64
}

// GetPriceFromSqrtPrice converts a Q64.64 sqrt price back into a UI price.
func GetPriceFromSqrtPrice(sqrtPrice *big.Int, tokenADecimal, tokenBDecimal uint8) decimal.Decimal {
	decSqrt := decimal.NewFromBigInt(sqrtPrice, 0)
	return decSqrt.Mul(decSqrt).
		Mul(decimal.New(1, int32(tokenADecimal)-int32(tokenBDecimal))).
		Div(decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), 128), 0))
}

// GetBaseUnitAmount scales a UI amount by the mint's decimals, truncating
// anything below one base unit.
func GetBaseUnitAmount(amount decimal.Decimal, decimals uint8) *big.Int {
	return amount.Mul(decimal.New(1, int32(decimals))).Floor().BigInt()
}
