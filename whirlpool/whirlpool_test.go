package whirlpool

import (
	"bytes"
	"testing"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMints(t *testing.T) {
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	first, second := OrderMints(a, b)
	again1, again2 := OrderMints(b, a)
	assert.Equal(t, first, again1)
	assert.Equal(t, second, again2)
	assert.Less(t, bytes.Compare(first.Bytes(), second.Bytes()), 0)
}

func TestDeriveWhirlpoolAddress(t *testing.T) {
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	pool, err := DeriveWhirlpoolAddress(DefaultConfig, a, b, 64)
	require.NoError(t, err)
	flipped, err := DeriveWhirlpoolAddress(DefaultConfig, b, a, 64)
	require.NoError(t, err)
	// The pair is canonicalized, argument order cannot matter.
	assert.Equal(t, pool, flipped)

	other, err := DeriveWhirlpoolAddress(DefaultConfig, a, b, 128)
	require.NoError(t, err)
	assert.NotEqual(t, pool, other)
}

func TestDeriveTickArrayAddress(t *testing.T) {
	pool := solana.NewWallet().PublicKey()

	positive, err := DeriveTickArrayAddress(pool, 5632)
	require.NoError(t, err)
	negative, err := DeriveTickArrayAddress(pool, -5632)
	require.NoError(t, err)
	assert.NotEqual(t, positive, negative)

	again, err := DeriveTickArrayAddress(pool, 5632)
	require.NoError(t, err)
	assert.Equal(t, positive, again)
}

func encodeAccount(t *testing.T, key string, state interface{}) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	buf.Write(accountDiscriminator(key))
	require.NoError(t, binary.NewBorshEncoder(buf).Encode(state))
	return buf.Bytes()
}

func TestParsePool(t *testing.T) {
	want := Pool{
		WhirlpoolsConfig: DefaultConfig,
		TickSpacing:      SplashPoolTickSpacing,
		SqrtPrice:        binary.Uint128{Hi: 1},
		TokenMintA:       solana.NewWallet().PublicKey(),
		TokenMintB:       solana.NewWallet().PublicKey(),
		TokenVaultA:      solana.NewWallet().PublicKey(),
		TokenVaultB:      solana.NewWallet().PublicKey(),
	}

	pool, err := ParsePool(encodeAccount(t, AccountKeyWhirlpool, want))
	require.NoError(t, err)
	assert.Equal(t, want.TokenMintA, pool.TokenMintA)
	assert.Equal(t, want.TickSpacing, pool.TickSpacing)
	assert.True(t, pool.IsSplashPool())

	// Wrong discriminator is rejected.
	_, err = ParsePool(encodeAccount(t, AccountKeyPosition, Position{}))
	assert.ErrorIs(t, err, ErrAccountMismatch)

	_, err = ParsePool([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrAccountMismatch)
}

func TestParsePosition(t *testing.T) {
	want := Position{
		Whirlpool:      solana.NewWallet().PublicKey(),
		PositionMint:   solana.NewWallet().PublicKey(),
		Liquidity:      binary.Uint128{Lo: 123456},
		TickLowerIndex: -128,
		TickUpperIndex: 128,
	}

	position, err := ParsePosition(encodeAccount(t, AccountKeyPosition, want))
	require.NoError(t, err)
	assert.Equal(t, want.Whirlpool, position.Whirlpool)
	assert.Equal(t, want.TickLowerIndex, position.TickLowerIndex)
	assert.Equal(t, want.Liquidity.Lo, position.Liquidity.Lo)
	assert.Equal(t, want.Liquidity.Hi, position.Liquidity.Hi)
}

func TestDeriveOracleAddress(t *testing.T) {
	pool := solana.NewWallet().PublicKey()

	oracle, err := DeriveOracleAddress(pool)
	require.NoError(t, err)
	assert.False(t, oracle.IsZero())
	assert.NotEqual(t, pool, oracle)

	again, err := DeriveOracleAddress(pool)
	require.NoError(t, err)
	assert.Equal(t, oracle, again)
}

func TestPoolTokenMintAOffset(t *testing.T) {
	want := Pool{TokenMintA: solana.NewWallet().PublicKey()}
	raw := encodeAccount(t, AccountKeyWhirlpool, want)

	// The mint-A program-account scan matches bytes 101..133.
	assert.Equal(t, want.TokenMintA.Bytes(), raw[101:133])
}

func TestNewInitializePoolInstruction(t *testing.T) {
	funder := solana.NewWallet().PublicKey()
	ix, err := NewInitializePoolInstruction(
		&InitializePoolArgs{TickSpacing: 64, InitialSqrtPrice: binary.Uint128{Hi: 1}},
		&InitializePoolAccounts{
			WhirlpoolsConfig: DefaultConfig,
			TokenMintA:       solana.NewWallet().PublicKey(),
			TokenMintB:       solana.NewWallet().PublicKey(),
			Funder:           funder,
			TokenProgramA:    solana.TokenProgramID,
			TokenProgramB:    solana.TokenProgramID,
		},
	)
	require.NoError(t, err)

	assert.Equal(t, ProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	// 8-byte selector + u16 tick spacing + u128 sqrt price.
	assert.Len(t, data, 8+2+16)
	assert.Equal(t, instructionDiscriminator("initialize_pool_v2"), data[:8])

	var funderMeta *solana.AccountMeta
	for _, meta := range ix.Accounts() {
		if meta.PublicKey.Equals(funder) {
			funderMeta = meta
		}
	}
	require.NotNil(t, funderMeta)
	assert.True(t, funderMeta.IsSigner)
	assert.True(t, funderMeta.IsWritable)
}

func metaKeys(ix solana.Instruction) map[solana.PublicKey]bool {
	keys := make(map[solana.PublicKey]bool)
	for _, meta := range ix.Accounts() {
		keys[meta.PublicKey] = true
	}
	return keys
}

func TestNewIncreaseLiquidityInstruction(t *testing.T) {
	ix, err := NewIncreaseLiquidityInstruction(
		&IncreaseLiquidityArgs{
			LiquidityAmount: binary.Uint128{Lo: 1000},
			TokenMaxA:       1,
			TokenMaxB:       2,
		},
		&IncreaseLiquidityAccounts{
			Whirlpool:     solana.NewWallet().PublicKey(),
			TokenProgramA: solana.TokenProgramID,
			TokenProgramB: solana.Token2022ProgramID,
			TokenMintA:    solana.NewWallet().PublicKey(),
			TokenMintB:    solana.NewWallet().PublicKey(),
		},
	)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	// selector + u128 + two u64 + absent remaining-accounts option.
	assert.Len(t, data, 8+16+8+8+1)
	assert.Equal(t, instructionDiscriminator("increase_liquidity_v2"), data[:8])
	assert.EqualValues(t, 0, data[len(data)-1])

	// A mixed legacy/token-2022 pair needs both token programs on the
	// instruction.
	keys := metaKeys(ix)
	assert.True(t, keys[solana.TokenProgramID])
	assert.True(t, keys[solana.Token2022ProgramID])
	assert.True(t, keys[MemoProgramID])
}

func TestNewCollectFeesInstruction(t *testing.T) {
	ix, err := NewCollectFeesInstruction(
		&CollectFeesArgs{},
		&CollectFeesAccounts{
			Whirlpool:     solana.NewWallet().PublicKey(),
			TokenProgramA: solana.TokenProgramID,
			TokenProgramB: solana.Token2022ProgramID,
		},
	)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Len(t, data, 8+1)
	assert.Equal(t, instructionDiscriminator("collect_fees_v2"), data[:8])

	keys := metaKeys(ix)
	assert.True(t, keys[solana.TokenProgramID])
	assert.True(t, keys[solana.Token2022ProgramID])
	assert.True(t, keys[MemoProgramID])
}
