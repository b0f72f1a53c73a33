package math

import (
	"errors"
	"math/big"

	binary "github.com/gagliardetto/binary"
)

// Uint128FromBigInt converts a non-negative big integer into the
// little-endian u128 the program's instruction arguments use.
func Uint128FromBigInt(value *big.Int) (binary.Uint128, error) {
	if value.Sign() < 0 {
		return binary.Uint128{}, errors.New("value cannot be negative")
	}
	if value.BitLen() > 128 {
		return binary.Uint128{}, errors.New("value overflows Uint128")
	}
	v := new(big.Int).Set(value)
	out := binary.NewUint128LittleEndian()
	out.Lo = v.Uint64()
	out.Hi = v.Rsh(v, 64).Uint64()
	return *out, nil
}
