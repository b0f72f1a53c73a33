package builders

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/solrealms/proposal-go/form"
	"github.com/solrealms/proposal-go/governance"
	"github.com/solrealms/proposal-go/whirlpool"
	wmath "github.com/solrealms/proposal-go/whirlpool/math"
)

var errSameMint = errors.New("token mints must differ")

// CreateSplashPoolBuilder proposes a full-range pool for a token pair. The
// only pricing input is the initial price; the position range is implied.
type CreateSplashPoolBuilder struct {
	client          *Client
	governedAccount solana.PublicKey
	values          form.Values
	schema          *form.Schema
}

func NewCreateSplashPoolBuilder(client *Client, governedAccount solana.PublicKey, values form.Values) *CreateSplashPoolBuilder {
	return &CreateSplashPoolBuilder{
		client:          client,
		governedAccount: governedAccount,
		values:          values,
		schema: form.NewSchema(
			form.Field{Name: "tokenAMint", Type: form.FieldTypePublicKey, Label: "Token A mint", Required: true},
			form.Field{Name: "tokenBMint", Type: form.FieldTypePublicKey, Label: "Token B mint", Required: true},
			form.Field{Name: "initialPrice", Type: form.FieldTypeDecimal, Label: "Initial price", Required: true, Rules: []form.Rule{form.Positive()}},
		),
	}
}

func (b *CreateSplashPoolBuilder) Schema() *form.Schema { return b.schema }

func (b *CreateSplashPoolBuilder) GovernedAccount() solana.PublicKey { return b.governedAccount }

func (b *CreateSplashPoolBuilder) GetInstruction(ctx context.Context) (governance.UiInstruction, error) {
	if result := b.schema.Validate(b.values); !result.IsValid {
		return invalid(b.governedAccount), fmt.Errorf("form is invalid: %v", result.Errors)
	}

	mintA, err := b.values.PublicKey("tokenAMint")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	mintB, err := b.values.PublicKey("tokenBMint")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	price, err := b.values.Decimal("initialPrice")
	if err != nil {
		return invalid(b.governedAccount), err
	}

	ui, err := buildInitializePool(ctx, b.client, b.governedAccount, mintA, mintB, price, whirlpool.SplashPoolTickSpacing)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	return ui, nil
}

// buildInitializePool assembles a pool initialization for any tick spacing.
// Mints are reordered into the program's canonical order; when the pair
// flips, the entered price flips with it.
func buildInitializePool(
	ctx context.Context,
	client *Client,
	governedAccount solana.PublicKey,
	mintA solana.PublicKey,
	mintB solana.PublicKey,
	initialPrice decimal.Decimal,
	tickSpacing uint16,
) (governance.UiInstruction, error) {
	if mintA.Equals(mintB) {
		return governance.UiInstruction{}, errSameMint
	}

	orderedA, orderedB := whirlpool.OrderMints(mintA, mintB)
	if !orderedA.Equals(mintA) {
		initialPrice = decimal.NewFromInt(1).Div(initialPrice)
	}

	tokenA, err := client.tokenInfo(ctx, orderedA)
	if err != nil {
		return governance.UiInstruction{}, fmt.Errorf("token A mint: %w", err)
	}
	tokenB, err := client.tokenInfo(ctx, orderedB)
	if err != nil {
		return governance.UiInstruction{}, fmt.Errorf("token B mint: %w", err)
	}

	initSqrtPrice, err := wmath.Uint128FromBigInt(
		wmath.GetSqrtPriceFromPrice(initialPrice, tokenA.Decimals, tokenB.Decimals),
	)
	if err != nil {
		return governance.UiInstruction{}, err
	}

	pool, err := whirlpool.DeriveWhirlpoolAddress(client.ammConfig, orderedA, orderedB, tickSpacing)
	if err != nil {
		return governance.UiInstruction{}, err
	}
	feeTier, err := whirlpool.DeriveFeeTierAddress(client.ammConfig, tickSpacing)
	if err != nil {
		return governance.UiInstruction{}, err
	}
	badgeA, err := whirlpool.DeriveTokenBadgeAddress(client.ammConfig, orderedA)
	if err != nil {
		return governance.UiInstruction{}, err
	}
	badgeB, err := whirlpool.DeriveTokenBadgeAddress(client.ammConfig, orderedB)
	if err != nil {
		return governance.UiInstruction{}, err
	}

	vaultA := solana.NewWallet()
	vaultB := solana.NewWallet()

	createIx, err := whirlpool.NewInitializePoolInstruction(
		&whirlpool.InitializePoolArgs{
			TickSpacing:      tickSpacing,
			InitialSqrtPrice: initSqrtPrice,
		},
		&whirlpool.InitializePoolAccounts{
			WhirlpoolsConfig: client.ammConfig,
			TokenMintA:       orderedA,
			TokenMintB:       orderedB,
			TokenBadgeA:      badgeA,
			TokenBadgeB:      badgeB,
			Funder:           governedAccount,
			Whirlpool:        pool,
			TokenVaultA:      vaultA.PublicKey(),
			TokenVaultB:      vaultB.PublicKey(),
			FeeTier:          feeTier,
			TokenProgramA:    tokenProgramFor(tokenA),
			TokenProgramB:    tokenProgramFor(tokenB),
		},
	)
	if err != nil {
		return governance.UiInstruction{}, err
	}

	// Seed the tick arrays covering the full range so the first position
	// can open without extra transactions.
	lowerTick, upperTick := wmath.FullRangeTickIndexes(tickSpacing)
	var tickArrayIxs []solana.Instruction
	seen := make(map[int32]struct{})
	for _, tick := range []int32{lowerTick, upperTick} {
		start := wmath.TickArrayStartIndex(tick, tickSpacing)
		if _, ok := seen[start]; ok {
			continue
		}
		seen[start] = struct{}{}

		tickArray, err := whirlpool.DeriveTickArrayAddress(pool, start)
		if err != nil {
			return governance.UiInstruction{}, err
		}
		ix, err := whirlpool.NewInitializeTickArrayInstruction(
			&whirlpool.InitializeTickArrayArgs{StartTickIndex: start},
			&whirlpool.InitializeTickArrayAccounts{
				Whirlpool: pool,
				Funder:    governedAccount,
				TickArray: tickArray,
			},
		)
		if err != nil {
			return governance.UiInstruction{}, err
		}
		tickArrayIxs = append(tickArrayIxs, ix)
	}

	serialized, err := governance.SerializeInstruction(createIx)
	if err != nil {
		return governance.UiInstruction{}, err
	}
	additional, err := serializeAll(tickArrayIxs)
	if err != nil {
		return governance.UiInstruction{}, err
	}

	client.logger.Info("assembled pool initialization",
		zap.String("pool", pool.String()),
		zap.Uint16("tickSpacing", tickSpacing),
		zap.Int("tickArrays", len(tickArrayIxs)),
	)

	return governance.UiInstruction{
		SerializedInstruction:            serialized,
		IsValid:                          true,
		Governance:                       governedAccount,
		PrerequisiteInstructionsSigners:  []*solana.Wallet{vaultA, vaultB},
		AdditionalSerializedInstructions: additional,
		ChunkBy:                          1,
	}, nil
}
