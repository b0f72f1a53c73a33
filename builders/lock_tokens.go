package builders

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solrealms/proposal-go/form"
	"github.com/solrealms/proposal-go/governance"
	"github.com/solrealms/proposal-go/lockup"
	solanago "github.com/solrealms/proposal-go/solana"
	wmath "github.com/solrealms/proposal-go/whirlpool/math"
)

var errZeroPeriods = errors.New("timed lockups need at least one period")

// LockTokensBuilder proposes depositing treasury tokens into the
// token-locking program under a deposit entry with the chosen lockup kind.
type LockTokensBuilder struct {
	client          *Client
	governedAccount solana.PublicKey
	values          form.Values
	schema          *form.Schema
}

func NewLockTokensBuilder(client *Client, governedAccount solana.PublicKey, values form.Values) *LockTokensBuilder {
	return &LockTokensBuilder{
		client:          client,
		governedAccount: governedAccount,
		values:          values,
		schema: form.NewSchema(
			form.Field{Name: "realm", Type: form.FieldTypePublicKey, Label: "Realm", Required: true},
			form.Field{Name: "mint", Type: form.FieldTypePublicKey, Label: "Governing token mint", Required: true},
			form.Field{Name: "amount", Type: form.FieldTypeDecimal, Label: "Amount", Required: true, Rules: []form.Rule{form.Positive()}},
			form.Field{Name: "lockupKind", Type: form.FieldTypeString, Label: "Lockup kind", Required: true},
			form.Field{Name: "periods", Type: form.FieldTypeUint64, Label: "Lockup periods", Rules: []form.Rule{form.Range("0", "3650")}},
			form.Field{Name: "depositEntryIndex", Type: form.FieldTypeUint64, Label: "Deposit entry index", Rules: []form.Rule{form.Range("0", "255")}},
			form.Field{Name: "allowClawback", Type: form.FieldTypeBool, Label: "Allow clawback"},
		),
	}
}

func (b *LockTokensBuilder) Schema() *form.Schema { return b.schema }

func (b *LockTokensBuilder) GovernedAccount() solana.PublicKey { return b.governedAccount }

func (b *LockTokensBuilder) GetInstruction(ctx context.Context) (governance.UiInstruction, error) {
	if result := b.schema.Validate(b.values); !result.IsValid {
		return invalid(b.governedAccount), fmt.Errorf("form is invalid: %v", result.Errors)
	}

	realm, err := b.values.PublicKey("realm")
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
	kind, err := lockup.ParseLockupKind(b.values["lockupKind"])
	if err != nil {
		return invalid(b.governedAccount), err
	}
	periods, err := b.values.Uint64("periods")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	if kind != lockup.LockupKindNone && periods == 0 {
		return invalid(b.governedAccount), errZeroPeriods
	}
	entryIndex, err := b.values.Uint64("depositEntryIndex")
	if err != nil {
		return invalid(b.governedAccount), err
	}
	allowClawback, err := b.values.Bool("allowClawback")
	if err != nil {
		return invalid(b.governedAccount), err
	}

	token, err := b.client.tokenInfo(ctx, mint)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	baseAmount := wmath.GetBaseUnitAmount(amount, token.Decimals)
	depositAmount, err := toUint64(baseAmount)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	registrar, err := lockup.DeriveRegistrarAddress(realm, mint)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	voter, err := lockup.DeriveVoterAddress(registrar, b.governedAccount)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	vault, err := lockup.DeriveVoterVaultAddress(voter, mint)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	var prereqs []solana.Instruction
	payer := b.client.payerOr(b.governedAccount)
	depositToken, err := b.client.prepareTokenAccount(ctx, b.governedAccount, mint, payer, &prereqs)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	createIx, err := lockup.NewCreateDepositEntryInstruction(
		&lockup.CreateDepositEntryArgs{
			DepositEntryIndex: uint8(entryIndex),
			Kind:              uint8(kind),
			StartTs:           0,
			Periods:           uint32(periods),
			AllowClawback:     allowClawback,
		},
		&lockup.CreateDepositEntryAccounts{
			Registrar:      registrar,
			Voter:          voter,
			Vault:          vault,
			VoterAuthority: b.governedAccount,
			Payer:          b.governedAccount,
			DepositMint:    mint,
		},
	)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	depositIx, err := lockup.NewDepositInstruction(
		&lockup.DepositArgs{
			DepositEntryIndex: uint8(entryIndex),
			Amount:            depositAmount,
		},
		&lockup.DepositAccounts{
			Registrar:        registrar,
			Voter:            voter,
			Vault:            vault,
			DepositToken:     depositToken,
			DepositAuthority: b.governedAccount,
		},
	)
	if err != nil {
		return invalid(b.governedAccount), err
	}

	serialized, err := governance.SerializeInstruction(createIx)
	if err != nil {
		return invalid(b.governedAccount), err
	}
	additional, err := serializeAll([]solana.Instruction{depositIx})
	if err != nil {
		return invalid(b.governedAccount), err
	}

	b.client.logger.Info("assembled token lockup",
		zap.String("realm", realm.String()),
		zap.String("mint", mint.String()),
		zap.String("kind", b.values["lockupKind"]),
		zap.Uint64("periods", periods),
	)

	return governance.UiInstruction{
		SerializedInstruction:            serialized,
		IsValid:                          true,
		Governance:                       b.governedAccount,
		PrerequisiteInstructions:         solanago.MergeInstructions(prereqs),
		AdditionalSerializedInstructions: additional,
		ChunkBy:                          governance.DefaultChunkBy,
	}, nil
}
