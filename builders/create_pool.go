package builders

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solrealms/proposal-go/form"
	"github.com/solrealms/proposal-go/governance"
)

// CreatePoolBuilder proposes a concentrated pool with an explicit fee tier,
// selected through its tick spacing.
type CreatePoolBuilder struct {
	client          *Client
	governedAccount solana.PublicKey
	values          form.Values
	schema          *form.Schema
}

func NewCreatePoolBuilder(client *Client, governedAccount solana.PublicKey, values form.Values) *CreatePoolBuilder {
	return &CreatePoolBuilder{
		client:          client,
		governedAccount: governedAccount,
		values:          values,
		schema: form.NewSchema(
			form.Field{Name: "tokenAMint", Type: form.FieldTypePublicKey, Label: "Token A mint", Required: true},
			form.Field{Name: "tokenBMint", Type: form.FieldTypePublicKey, Label: "Token B mint", Required: true},
			form.Field{Name: "tickSpacing", Type: form.FieldTypeUint64, Label: "Tick spacing", Required: true, Rules: []form.Rule{form.Range("1", "32768")}},
			form.Field{Name: "initialPrice", Type: form.FieldTypeDecimal, Label: "Initial price", Required: true, Rules: []form.Rule{form.Positive()}},
		),
	}
}

func (b *CreatePoolBuilder) Schema() *form.Schema { return b.schema }

func (b *CreatePoolBuilder) GovernedAccount() solana.PublicKey { return b.governedAccount }

func (b *CreatePoolBuilder) GetInstruction(ctx context.Context) (governance.UiInstruction, error) {
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
	tickSpacing, err := b.values.Uint64("tickSpacing")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	price, err := b.values.Decimal("initialPrice")
	if err != nil {
		return invalid(b.governedAccount), err
	}

	ui, err := buildInitializePool(ctx, b.client, b.governedAccount, mintA, mintB, price, uint16(tickSpacing))
	if err != nil {
		return invalid(b.governedAccount), err
	}

	// Concentrated pools leave tick-array seeding to the first position.
	ui.AdditionalSerializedInstructions = nil
	return ui, nil
}
