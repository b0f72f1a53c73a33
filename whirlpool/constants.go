package whirlpool

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ProgramID is the concentrated-liquidity AMM program.
var ProgramID = solana.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc")

// DefaultConfig is the program's mainnet pools config account.
var DefaultConfig = solana.MustPublicKeyFromBase58("2LecshUwdy9xi7meFgHtFJQNSKk4KdTrcpvaB56dP2NQ")

// MemoProgramID is the spl-memo deployment the v2 instructions reference.
var MemoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

const (
	// MinTickIndex and MaxTickIndex bound every position's price range.
	MinTickIndex int32 = -443636
	MaxTickIndex int32 = 443636

	// TicksPerArray is how many initialized ticks one tick-array account holds.
	TicksPerArray int32 = 88

	// SplashPoolTickSpacing marks full-range pools that behave like a
	// constant-product pair.
	SplashPoolTickSpacing uint16 = 32896

	AccountKeyWhirlpool = "Whirlpool"
	AccountKeyPosition  = "Position"
)

var (
	ErrInvalidTickRange = errors.New("lower tick must be less than upper tick")
	ErrAccountMismatch  = errors.New("unexpected account discriminator")
)
