package whirlpool

import (
	"bytes"
	"crypto/sha256"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Pool is the on-chain whirlpool account state.
type Pool struct {
	WhirlpoolsConfig solana.PublicKey
	WhirlpoolBump    [1]uint8
	TickSpacing      uint16
	TickSpacingSeed  [2]uint8
	FeeRate          uint16
	ProtocolFeeRate  uint16
	Liquidity        binary.Uint128
	SqrtPrice        binary.Uint128
	TickCurrentIndex int32
	ProtocolFeeOwedA uint64
	ProtocolFeeOwedB uint64
	TokenMintA       solana.PublicKey
	TokenVaultA      solana.PublicKey
	FeeGrowthGlobalA binary.Uint128
	TokenMintB       solana.PublicKey
	TokenVaultB      solana.PublicKey
	FeeGrowthGlobalB binary.Uint128

	RewardLastUpdatedTimestamp uint64
	RewardInfos                [3]PoolRewardInfo
}

type PoolRewardInfo struct {
	Mint                  solana.PublicKey
	Vault                 solana.PublicKey
	Authority             solana.PublicKey
	EmissionsPerSecondX64 binary.Uint128
	GrowthGlobalX64       binary.Uint128
}

// IsSplashPool reports whether the pool was initialized full range.
func (p *Pool) IsSplashPool() bool {
	return p.TickSpacing == SplashPoolTickSpacing
}

// Position is the on-chain position account state.
type Position struct {
	Whirlpool    solana.PublicKey
	PositionMint solana.PublicKey
	Liquidity    binary.Uint128

	TickLowerIndex int32
	TickUpperIndex int32

	FeeGrowthCheckpointA binary.Uint128
	FeeOwedA             uint64
	FeeGrowthCheckpointB binary.Uint128
	FeeOwedB             uint64

	RewardInfos [3]PositionRewardInfo
}

type PositionRewardInfo struct {
	GrowthInsideCheckpoint binary.Uint128
	AmountOwed             uint64
}

func accountDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	return hash[:8]
}

func decodeAccount(key string, data []byte, out interface{}) error {
	if len(data) < 8 || !bytes.Equal(data[:8], accountDiscriminator(key)) {
		return ErrAccountMismatch
	}
	return binary.NewBorshDecoder(data[8:]).Decode(out)
}

// ParsePool decodes a whirlpool account.
func ParsePool(data []byte) (*Pool, error) {
	pool := &Pool{}
	if err := decodeAccount(AccountKeyWhirlpool, data, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// ParsePosition decodes a position account.
func ParsePosition(data []byte) (*Position, error) {
	position := &Position{}
	if err := decodeAccount(AccountKeyPosition, data, position); err != nil {
		return nil, err
	}
	return position, nil
}
