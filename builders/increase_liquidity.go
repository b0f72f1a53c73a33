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
	wmath "github.com/solrealms/proposal-go/whirlpool/math"
)

// IncreaseLiquidityBuilder proposes adding liquidity to a position the
// treasury already holds. The range comes from the position itself, so the
// form only takes one token amount and a slippage bound.
type IncreaseLiquidityBuilder struct {
	client          *Client
	governedAccount solana.PublicKey
	values          form.Values
	schema          *form.Schema
}

func NewIncreaseLiquidityBuilder(client *Client, governedAccount solana.PublicKey, values form.Values) *IncreaseLiquidityBuilder {
	schema := form.NewSchema(
		form.Field{Name: "position", Type: form.FieldTypePublicKey, Label: "Position", Required: true},
		form.Field{Name: "tokenAmountA", Type: form.FieldTypeDecimal, Label: "Token A amount", Rules: []form.Rule{form.NonNegative()}},
		form.Field{Name: "tokenAmountB", Type: form.FieldTypeDecimal, Label: "Token B amount", Rules: []form.Rule{form.NonNegative()}},
		form.Field{Name: "slippageBps", Type: form.FieldTypeUint64, Label: "Slippage (bps)", Rules: []form.Rule{form.Range("0", "10000")}},
	).ExactlyOnePositive("tokenAmountA", "tokenAmountB")

	return &IncreaseLiquidityBuilder{
		client:          client,
		governedAccount: governedAccount,
		values:          values,
		schema:          schema,
	}
}

func (b *IncreaseLiquidityBuilder) Schema() *form.Schema { return b.schema }

func (b *IncreaseLiquidityBuilder) GovernedAccount() solana.PublicKey { return b.governedAccount }

func (b *IncreaseLiquidityBuilder) GetInstruction(ctx context.Context) (governance.UiInstruction, error) {
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

	liquidity, maxA, maxB, err := quoteDeposit(b.values, pool, tokenA.Decimals, tokenB.Decimals, position.TickLowerIndex, position.TickUpperIndex)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	liquidityAmount, err := wmath.Uint128FromBigInt(liquidity)
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

	lowerArray, err := whirlpool.DeriveTickArrayAddress(position.Whirlpool, wmath.TickArrayStartIndex(position.TickLowerIndex, pool.TickSpacing))
	if err != nil {
		return invalid(b.governedAccount), err
	}
	upperArray, err := whirlpool.DeriveTickArrayAddress(position.Whirlpool, wmath.TickArrayStartIndex(position.TickUpperIndex, pool.TickSpacing))
	if err != nil {
		return invalid(b.governedAccount), err
	}

	tokenMaxA, err := toUint64(maxA)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	tokenMaxB, err := toUint64(maxB)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	increaseIx, err := whirlpool.NewIncreaseLiquidityInstruction(
		&whirlpool.IncreaseLiquidityArgs{
			LiquidityAmount: liquidityAmount,
			TokenMaxA:       tokenMaxA,
			TokenMaxB:       tokenMaxB,
		},
		&whirlpool.IncreaseLiquidityAccounts{
			Whirlpool:            position.Whirlpool,
			TokenProgramA:        tokenProgramFor(tokenA),
			TokenProgramB:        tokenProgramFor(tokenB),
			PositionAuthority:    b.governedAccount,
			Position:             positionAddress,
			PositionTokenAccount: positionTokenAccount,
			TokenMintA:           pool.TokenMintA,
			TokenMintB:           pool.TokenMintB,
			TokenOwnerAccountA:   ownerAccountA,
			TokenOwnerAccountB:   ownerAccountB,
			TokenVaultA:          pool.TokenVaultA,
			TokenVaultB:          pool.TokenVaultB,
			TickArrayLower:       lowerArray,
			TickArrayUpper:       upperArray,
		},
	)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	serialized, err := governance.SerializeInstruction(increaseIx)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	b.client.logger.Info("assembled increase liquidity",
		zap.String("position", positionAddress.String()),
		zap.String("liquidity", liquidity.String()),
	)

	return governance.UiInstruction{
		SerializedInstruction:    serialized,
		IsValid:                  true,
		Governance:               b.governedAccount,
		PrerequisiteInstructions: solanago.MergeInstructions(prereqs),
		ChunkBy:                  governance.DefaultChunkBy,
	}, nil
}
