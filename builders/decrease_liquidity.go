package builders

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solrealms/proposal-go/form"
	"github.com/solrealms/proposal-go/governance"
	solanago "github.com/solrealms/proposal-go/solana"
	"github.com/solrealms/proposal-go/whirlpool"
	wmath "github.com/solrealms/proposal-go/whirlpool/math"
)

var errEmptyPosition = errors.New("position has no liquidity to withdraw")

// DecreaseLiquidityBuilder proposes withdrawing a percentage of a position's
// liquidity back to the treasury, with a slippage floor on both amounts.
type DecreaseLiquidityBuilder struct {
	client          *Client
	governedAccount solana.PublicKey
	values          form.Values
	schema          *form.Schema
}

func NewDecreaseLiquidityBuilder(client *Client, governedAccount solana.PublicKey, values form.Values) *DecreaseLiquidityBuilder {
	return &DecreaseLiquidityBuilder{
		client:          client,
		governedAccount: governedAccount,
		values:          values,
		schema: form.NewSchema(
			form.Field{Name: "position", Type: form.FieldTypePublicKey, Label: "Position", Required: true},
			form.Field{Name: "liquidityPercent", Type: form.FieldTypeUint64, Label: "Liquidity to withdraw (%)", Required: true, Rules: []form.Rule{form.Range("1", "100")}},
			form.Field{Name: "slippageBps", Type: form.FieldTypeUint64, Label: "Slippage (bps)", Rules: []form.Rule{form.Range("0", "10000")}},
		),
	}
}

func (b *DecreaseLiquidityBuilder) Schema() *form.Schema { return b.schema }

func (b *DecreaseLiquidityBuilder) GovernedAccount() solana.PublicKey { return b.governedAccount }

func (b *DecreaseLiquidityBuilder) GetInstruction(ctx context.Context) (governance.UiInstruction, error) {
	if result := b.schema.Validate(b.values); !result.IsValid {
		return invalid(b.governedAccount), fmt.Errorf("form is invalid: %v", result.Errors)
	}

	positionAddress, err := b.values.PublicKey("position")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	percent, err := b.values.Uint64("liquidityPercent")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	slippageBps, err := b.values.Uint64("slippageBps")
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

	liquidity := position.Liquidity.BigInt()
	liquidity.Mul(liquidity, new(big.Int).SetUint64(percent))
	liquidity.Div(liquidity, big.NewInt(100))
	if liquidity.Sign() == 0 {
		return invalid(b.governedAccount), errEmptyPosition
	}
	liquidityAmount, err := wmath.Uint128FromBigInt(liquidity)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	sqrtLower := wmath.GetSqrtPriceFromTickIndex(position.TickLowerIndex)
	sqrtUpper := wmath.GetSqrtPriceFromTickIndex(position.TickUpperIndex)
	outA, outB := wmath.GetTokenAmountsFromLiquidity(liquidity, pool.SqrtPrice.BigInt(), sqrtLower, sqrtUpper, false)
	minA := wmath.AdjustForSlippage(outA, uint16(slippageBps), false)
	minB := wmath.AdjustForSlippage(outB, uint16(slippageBps), false)

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

	tokenMinA, err := toUint64(minA)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	tokenMinB, err := toUint64(minB)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	decreaseIx, err := whirlpool.NewDecreaseLiquidityInstruction(
		&whirlpool.DecreaseLiquidityArgs{
			LiquidityAmount: liquidityAmount,
			TokenMinA:       tokenMinA,
			TokenMinB:       tokenMinB,
		},
		&whirlpool.DecreaseLiquidityAccounts{
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

	serialized, err := governance.SerializeInstruction(decreaseIx)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	b.client.logger.Info("assembled decrease liquidity",
		zap.String("position", positionAddress.String()),
		zap.Uint64("percent", percent),
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
