package lockup

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLockupKind(t *testing.T) {
	for name, want := range map[string]LockupKind{
		"none":     LockupKindNone,
		"daily":    LockupKindDaily,
		"monthly":  LockupKindMonthly,
		"cliff":    LockupKindCliff,
		"constant": LockupKindConstant,
	} {
		kind, err := ParseLockupKind(name)
		require.NoError(t, err)
		assert.Equal(t, want, kind)
	}

	_, err := ParseLockupKind("weekly")
	assert.ErrorIs(t, err, ErrUnknownLockupKind)
}

func TestDeriveAddresses(t *testing.T) {
	realm := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	registrar, err := DeriveRegistrarAddress(realm, mint)
	require.NoError(t, err)
	assert.False(t, registrar.IsZero())

	again, err := DeriveRegistrarAddress(realm, mint)
	require.NoError(t, err)
	assert.Equal(t, registrar, again)

	voter, err := DeriveVoterAddress(registrar, authority)
	require.NoError(t, err)
	assert.NotEqual(t, registrar, voter)

	vault, err := DeriveVoterVaultAddress(voter, mint)
	require.NoError(t, err)
	assert.False(t, vault.IsZero())
}

func TestNewCreateDepositEntryInstruction(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	ix, err := NewCreateDepositEntryInstruction(
		&CreateDepositEntryArgs{
			DepositEntryIndex: 1,
			Kind:              uint8(LockupKindCliff),
			Periods:           12,
		},
		&CreateDepositEntryAccounts{
			Registrar:      solana.NewWallet().PublicKey(),
			Voter:          solana.NewWallet().PublicKey(),
			Vault:          solana.NewWallet().PublicKey(),
			VoterAuthority: authority,
			Payer:          authority,
			DepositMint:    solana.NewWallet().PublicKey(),
		},
	)
	require.NoError(t, err)
	assert.Equal(t, ProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	// 8-byte selector + u8 index + u8 kind + u64 start + u32 periods + bool.
	assert.Len(t, data, 8+1+1+8+4+1)
	assert.Equal(t, instructionDiscriminator("create_deposit_entry"), data[:8])
}

func TestNewDepositInstruction(t *testing.T) {
	ix, err := NewDepositInstruction(
		&DepositArgs{DepositEntryIndex: 1, Amount: 1_000_000},
		&DepositAccounts{
			Registrar:        solana.NewWallet().PublicKey(),
			Voter:            solana.NewWallet().PublicKey(),
			Vault:            solana.NewWallet().PublicKey(),
			DepositToken:     solana.NewWallet().PublicKey(),
			DepositAuthority: solana.NewWallet().PublicKey(),
		},
	)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, instructionDiscriminator("deposit"), data[:8])
	assert.Len(t, data, 8+1+8)
}
