package builders

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"github.com/solrealms/proposal-go/form"
	"github.com/solrealms/proposal-go/governance"
	solanago "github.com/solrealms/proposal-go/solana"
	wmath "github.com/solrealms/proposal-go/whirlpool/math"
)

var errInsufficientFunds = errors.New("treasury balance is below the transfer amount")

// TreasuryTransferBuilder proposes a checked SPL transfer from the governed
// treasury to any destination owner.
type TreasuryTransferBuilder struct {
	client          *Client
	governedAccount solana.PublicKey
	values          form.Values
	schema          *form.Schema
}

func NewTreasuryTransferBuilder(client *Client, governedAccount solana.PublicKey, values form.Values) *TreasuryTransferBuilder {
	return &TreasuryTransferBuilder{
		client:          client,
		governedAccount: governedAccount,
		values:          values,
		schema: form.NewSchema(
			form.Field{Name: "destination", Type: form.FieldTypePublicKey, Label: "Destination owner", Required: true},
			form.Field{Name: "mint", Type: form.FieldTypePublicKey, Label: "Token mint", Required: true},
			form.Field{Name: "amount", Type: form.FieldTypeDecimal, Label: "Amount", Required: true, Rules: []form.Rule{form.Positive()}},
		),
	}
}

func (b *TreasuryTransferBuilder) Schema() *form.Schema { return b.schema }

func (b *TreasuryTransferBuilder) GovernedAccount() solana.PublicKey { return b.governedAccount }

func (b *TreasuryTransferBuilder) GetInstruction(ctx context.Context) (governance.UiInstruction, error) {
	if result := b.schema.Validate(b.values); !result.IsValid {
		return invalid(b.governedAccount), fmt.Errorf("form is invalid: %v", result.Errors)
	}

	destination, err := b.values.PublicKey("destination")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	mint, err := b.values.PublicKey("mint")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	amount, err := b.values.Decimal("amount")
	if err != nil {
		return invalid(b.governedAccount), err
	}

	tokenInfo, err := b.client.tokenInfo(ctx, mint)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	baseAmount := wmath.GetBaseUnitAmount(amount, tokenInfo.Decimals)
	transferAmount, err := toUint64(baseAmount)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	sourceAccount, _, err := solana.FindAssociatedTokenAddress(b.governedAccount, mint)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	balance, err := b.client.tokenBalance(ctx, sourceAccount)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	if balance.Cmp(baseAmount) < 0 {
		return invalid(b.governedAccount), errInsufficientFunds
	}

	var prereqs []solana.Instruction
	payer := b.client.payerOr(b.governedAccount)
	destinationAccount, err := b.client.prepareTokenAccount(ctx, destination, mint, payer, &prereqs)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	transferIx := token.NewTransferCheckedInstruction(
		transferAmount,
		tokenInfo.Decimals,
		sourceAccount,
		mint,
		destinationAccount,
		b.governedAccount,
		[]solana.PublicKey{},
	).Build()

	serialized, err := governance.SerializeInstruction(transferIx)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	b.client.logger.Info("assembled treasury transfer",
		zap.String("destination", destination.String()),
		zap.String("mint", mint.String()),
		zap.String("amount", baseAmount.String()),
	)

	return governance.UiInstruction{
		SerializedInstruction:    serialized,
		IsValid:                  true,
		Governance:               b.governedAccount,
		PrerequisiteInstructions: solanago.MergeInstructions(prereqs),
		ChunkBy:                  governance.DefaultChunkBy,
	}, nil
}
