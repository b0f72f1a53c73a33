package builders

import (
	"context"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solrealms/proposal-go/form"
	"github.com/solrealms/proposal-go/governance"
	solanago "github.com/solrealms/proposal-go/solana"
	"github.com/solrealms/proposal-go/whirlpool"
	wmath "github.com/solrealms/proposal-go/whirlpool/math"
)

// OpenPositionBuilder proposes opening a liquidity position on an existing
// pool. The user enters a price range and exactly one token amount; the
// matching amount and the liquidity estimate are derived from pool state.
type OpenPositionBuilder struct {
	client          *Client
	governedAccount solana.PublicKey
	values          form.Values
	schema          *form.Schema
}

func NewOpenPositionBuilder(client *Client, governedAccount solana.PublicKey, values form.Values) *OpenPositionBuilder {
	schema := form.NewSchema(
		form.Field{Name: "pool", Type: form.FieldTypePublicKey, Label: "Pool", Required: true},
		form.Field{Name: "lowerPrice", Type: form.FieldTypeDecimal, Label: "Lower price", Required: true, Rules: []form.Rule{form.Positive()}},
		form.Field{Name: "upperPrice", Type: form.FieldTypeDecimal, Label: "Upper price", Required: true, Rules: []form.Rule{form.Positive()}},
		form.Field{Name: "tokenAmountA", Type: form.FieldTypeDecimal, Label: "Token A amount", Rules: []form.Rule{form.NonNegative()}},
		form.Field{Name: "tokenAmountB", Type: form.FieldTypeDecimal, Label: "Token B amount", Rules: []form.Rule{form.NonNegative()}},
		form.Field{Name: "slippageBps", Type: form.FieldTypeUint64, Label: "Slippage (bps)", Rules: []form.Rule{form.Range("0", "10000")}},
	).ExactlyOnePositive("tokenAmountA", "tokenAmountB")

	return &OpenPositionBuilder{
		client:          client,
		governedAccount: governedAccount,
		values:          values,
		schema:          schema,
	}
}

func (b *OpenPositionBuilder) Schema() *form.Schema { return b.schema }

func (b *OpenPositionBuilder) GovernedAccount() solana.PublicKey { return b.governedAccount }

func (b *OpenPositionBuilder) GetInstruction(ctx context.Context) (governance.UiInstruction, error) {
	if result := b.schema.Validate(b.values); !result.IsValid {
		return invalid(b.governedAccount), fmt.Errorf("form is invalid: %v", result.Errors)
	}

	poolAddress, err := b.values.PublicKey("pool")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	pool, err := b.client.poolState(ctx, poolAddress)
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

	var lowerTick, upperTick int32
	if pool.IsSplashPool() {
		lowerTick, upperTick = wmath.FullRangeTickIndexes(pool.TickSpacing)
	} else {
		lowerPrice, err := b.values.Decimal("lowerPrice")
		if err != nil {
			return invalid(b.governedAccount), err
		}
		upperPrice, err := b.values.Decimal("upperPrice")
		if err != nil {
			return invalid(b.governedAccount), err
		}

		lower, err := wmath.GetTickIndexFromPrice(lowerPrice, tokenA.Decimals, tokenB.Decimals)
		if err != nil {
			return invalid(b.governedAccount), err
		}
		upper, err := wmath.GetTickIndexFromPrice(upperPrice, tokenA.Decimals, tokenB.Decimals)
		if err != nil {
			return invalid(b.governedAccount), err
		}
		lowerTick = wmath.AlignTickIndex(lower, pool.TickSpacing)
		upperTick = wmath.AlignTickIndex(upper, pool.TickSpacing)
	}
	if lowerTick >= upperTick {
		return invalid(b.governedAccount), whirlpool.ErrInvalidTickRange
	}

	liquidity, maxA, maxB, err := quoteDeposit(b.values, pool, tokenA.Decimals, tokenB.Decimals, lowerTick, upperTick)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	liquidityAmount, err := wmath.Uint128FromBigInt(liquidity)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	positionMint := solana.NewWallet()
	position, positionBump, err := whirlpool.DerivePositionAddress(positionMint.PublicKey())
	if err != nil {
		return invalid(b.governedAccount), err
	}
	positionTokenAccount, _, err := solana.FindAssociatedTokenAddress(b.governedAccount, positionMint.PublicKey())
	if err != nil {
		return invalid(b.governedAccount), err
	}

	openIx, err := whirlpool.NewOpenPositionInstruction(
		&whirlpool.OpenPositionArgs{
			PositionBump:   positionBump,
			TickLowerIndex: lowerTick,
			TickUpperIndex: upperTick,
		},
		&whirlpool.OpenPositionAccounts{
			Funder:               b.governedAccount,
			Owner:                b.governedAccount,
			Position:             position,
			PositionMint:         positionMint.PublicKey(),
			PositionTokenAccount: positionTokenAccount,
			Whirlpool:            poolAddress,
		},
	)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	followUps, prereqs, err := b.liquidityFollowUps(ctx, pool, poolAddress, position, positionTokenAccount, lowerTick, upperTick, liquidityAmount, maxA, maxB, tokenProgramFor(tokenA), tokenProgramFor(tokenB))
	if err != nil {
		return invalid(b.governedAccount), err
	}

	serialized, err := governance.SerializeInstruction(openIx)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	additional, err := serializeAll(followUps)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	b.client.logger.Info("assembled open position",
		zap.String("pool", poolAddress.String()),
		zap.Int32("lowerTick", lowerTick),
		zap.Int32("upperTick", upperTick),
		zap.String("liquidity", liquidity.String()),
	)

	return governance.UiInstruction{
		SerializedInstruction:            serialized,
		IsValid:                          true,
		Governance:                       b.governedAccount,
		PrerequisiteInstructions:         prereqs,
		PrerequisiteInstructionsSigners:  []*solana.Wallet{positionMint},
		AdditionalSerializedInstructions: additional,
		ChunkBy:                          1,
	}, nil
}

// liquidityFollowUps builds the deposit instruction and the tick-array
// initializations it depends on. Missing treasury token accounts become
// prerequisite creations funded by the proposing wallet.
func (b *OpenPositionBuilder) liquidityFollowUps(
	ctx context.Context,
	pool *whirlpool.Pool,
	poolAddress solana.PublicKey,
	position solana.PublicKey,
	positionTokenAccount solana.PublicKey,
	lowerTick, upperTick int32,
	liquidityAmount binary.Uint128,
	maxA, maxB *big.Int,
	tokenProgramA, tokenProgramB solana.PublicKey,
) ([]solana.Instruction, []solana.Instruction, error) {
	var followUps []solana.Instruction

	seen := make(map[int32]struct{})
	for _, tick := range []int32{lowerTick, upperTick} {
		start := wmath.TickArrayStartIndex(tick, pool.TickSpacing)
		if _, ok := seen[start]; ok {
			continue
		}
		seen[start] = struct{}{}

		tickArray, err := whirlpool.DeriveTickArrayAddress(poolAddress, start)
		if err != nil {
			return nil, nil, err
		}
		exists, err := b.client.accountExists(ctx, tickArray)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			continue
		}
		ix, err := whirlpool.NewInitializeTickArrayInstruction(
			&whirlpool.InitializeTickArrayArgs{StartTickIndex: start},
			&whirlpool.InitializeTickArrayAccounts{
				Whirlpool: poolAddress,
				Funder:    b.governedAccount,
				TickArray: tickArray,
			},
		)
		if err != nil {
			return nil, nil, err
		}
		followUps = append(followUps, ix)
	}

	var prereqs []solana.Instruction
	payer := b.client.payerOr(b.governedAccount)

	ownerAccountA, err := b.client.prepareTokenAccount(ctx, b.governedAccount, pool.TokenMintA, payer, &prereqs)
	if err != nil {
		return nil, nil, err
	}
	ownerAccountB, err := b.client.prepareTokenAccount(ctx, b.governedAccount, pool.TokenMintB, payer, &prereqs)
	if err != nil {
		return nil, nil, err
	}

	lowerArray, err := whirlpool.DeriveTickArrayAddress(poolAddress, wmath.TickArrayStartIndex(lowerTick, pool.TickSpacing))
	if err != nil {
		return nil, nil, err
	}
	upperArray, err := whirlpool.DeriveTickArrayAddress(poolAddress, wmath.TickArrayStartIndex(upperTick, pool.TickSpacing))
	if err != nil {
		return nil, nil, err
	}

	tokenMaxA, err := toUint64(maxA)
	if err != nil {
		return nil, nil, err
	}
	tokenMaxB, err := toUint64(maxB)
	if err != nil {
		return nil, nil, err
	}

	increaseIx, err := whirlpool.NewIncreaseLiquidityInstruction(
		&whirlpool.IncreaseLiquidityArgs{
			LiquidityAmount: liquidityAmount,
			TokenMaxA:       tokenMaxA,
			TokenMaxB:       tokenMaxB,
		},
		&whirlpool.IncreaseLiquidityAccounts{
			Whirlpool:            poolAddress,
			TokenProgramA:        tokenProgramA,
			TokenProgramB:        tokenProgramB,
			PositionAuthority:    b.governedAccount,
			Position:             position,
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
		return nil, nil, err
	}

	return append(followUps, increaseIx), solanago.MergeInstructions(prereqs), nil
}
