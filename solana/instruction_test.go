package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
)

func TestMergeInstructions(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	createA := associatedtokenaccount.NewCreateInstruction(payer, owner, mintA).Build()
	createB := associatedtokenaccount.NewCreateInstruction(payer, owner, mintB).Build()

	transfer := token.NewTransferCheckedInstruction(
		1, 6,
		solana.NewWallet().PublicKey(),
		mintA,
		solana.NewWallet().PublicKey(),
		owner,
		[]solana.PublicKey{},
	).Build()

	// The duplicate creation of the same token account collapses, other
	// instructions pass through untouched.
	merged := MergeInstructions([]solana.Instruction{createA, transfer, createA, createB})
	assert.Len(t, merged, 3)

	merged = MergeInstructions([]solana.Instruction{createA, createB})
	assert.Len(t, merged, 2)

	assert.Empty(t, MergeInstructions(nil))
}
