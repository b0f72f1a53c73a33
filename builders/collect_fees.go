package builders

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solrealms/proposal-go/form"
	"github.com/solrealms/proposal-go/governance"
	solanago "github.com/solrealms/proposal-go/solana"
	"github.com/solrealms/proposal-go/whirlpool"
)

// CollectFeesBuilder proposes claiming a position's accrued trading fees
// into the treasury's token accounts.
type CollectFeesBuilder struct {
	client          *Client
	governedAccount solana.PublicKey
	values          form.Values
	schema          *form.Schema
}

func NewCollectFeesBuilder(client *Client, governedAccount solana.PublicKey, values form.Values) *CollectFeesBuilder {
	return &CollectFeesBuilder{
		client:          client,
		governedAccount: governedAccount,
		values:          values,
		schema: form.NewSchema(
			form.Field{Name: "position", Type: form.FieldTypePublicKey, Label: "Position", Required: true},
		),
	}
}

func (b *CollectFeesBuilder) Schema() *form.Schema { return b.schema }

func (b *CollectFeesBuilder) GovernedAccount() solana.PublicKey { return b.governedAccount }

func (b *CollectFeesBuilder) GetInstruction(ctx context.Context) (governance.UiInstruction, error) {
	if result := b.schema.Validate(b.values); !result.IsValid {
		return invalid(b.governedAccount), fmt.Errorf("form is invalid: %v", result.Errors)
	}

	positionAddress, err := b.values.PublicKey("position")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	position, err := b.client.positionState(ctx, positionAddress)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	pool, err := b.client.poolState(ctx, position.Whirlpool)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	tokenA, err := b.client.tokenInfo(ctx, pool.TokenMintA)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	tokenB, err := b.client.tokenInfo(ctx, pool.TokenMintB)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	positionTokenAccount, _, err := solana.FindAssociatedTokenAddress(b.governedAccount, position.PositionMint)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	var prereqs []solana.Instruction
	payer := b.client.payerOr(b.governedAccount)
	ownerAccountA, err := b.client.prepareTokenAccount(ctx, b.governedAccount, pool.TokenMintA, payer, &prereqs)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	ownerAccountB, err := b.client.prepareTokenAccount(ctx, b.governedAccount, pool.TokenMintB, payer, &prereqs)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	collectIx, err := whirlpool.NewCollectFeesInstruction(
		&whirlpool.CollectFeesArgs{},
		&whirlpool.CollectFeesAccounts{
			Whirlpool:            position.Whirlpool,
			PositionAuthority:    b.governedAccount,
			Position:             positionAddress,
			PositionTokenAccount: positionTokenAccount,
			TokenMintA:           pool.TokenMintA,
			TokenMintB:           pool.TokenMintB,
			TokenOwnerAccountA:   ownerAccountA,
			TokenVaultA:          pool.TokenVaultA,
			TokenOwnerAccountB:   ownerAccountB,
			TokenVaultB:          pool.TokenVaultB,
			TokenProgramA:        tokenProgramFor(tokenA),
			TokenProgramB:        tokenProgramFor(tokenB),
		},
	)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	serialized, err := governance.SerializeInstruction(collectIx)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	b.client.logger.Info("assembled collect fees",
		zap.String("position", positionAddress.String()),
	)

	return governance.UiInstruction{
		SerializedInstruction:    serialized,
		IsValid:                  true,
		Governance:               b.governedAccount,
		PrerequisiteInstructions: solanago.MergeInstructions(prereqs),
		ChunkBy:                  governance.DefaultChunkBy,
	}, nil
}
