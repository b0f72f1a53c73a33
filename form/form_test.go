package form

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RequiredFields(t *testing.T) {
	schema := NewSchema(
		Field{Name: "mint", Type: FieldTypePublicKey, Label: "Token mint", Required: true},
		Field{Name: "amount", Type: FieldTypeDecimal, Label: "Amount", Required: true},
		Field{Name: "note", Type: FieldTypeString, Label: "Note"},
	)

	result := schema.Validate(Values{})
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors["mint"], "required")
	assert.Contains(t, result.Errors["amount"], "required")
	assert.NotContains(t, result.Errors, "note")

	result = schema.Validate(Values{
		"mint":   solana.NewWallet().PublicKey().String(),
		"amount": "12.5",
	})
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidate_PublicKeyField(t *testing.T) {
	schema := NewSchema(
		Field{Name: "mint", Type: FieldTypePublicKey, Required: true},
	)

	for _, raw := range []string{
		"not-base58-0OIl",
		"abc",
		"3yZe7d",                     // valid base58, wrong length
		"IIIIIIIIIIIIIIIIIIIIIIIIII", // contains non-alphabet characters
	} {
		result := schema.Validate(Values{"mint": raw})
		assert.False(t, result.IsValid, "expected %q to be rejected", raw)
		assert.Contains(t, result.Errors["mint"], "not a valid account address")
	}

	result := schema.Validate(Values{"mint": solana.WrappedSol.String()})
	assert.True(t, result.IsValid)
}

func TestValidate_PositiveRule(t *testing.T) {
	schema := NewSchema(
		Field{Name: "price", Type: FieldTypeDecimal, Required: true, Rules: []Rule{Positive()}},
	)

	for raw, ok := range map[string]bool{
		"0":      false,
		"-1":     false,
		"0.0001": true,
		"250":    true,
	} {
		result := schema.Validate(Values{"price": raw})
		assert.Equal(t, ok, result.IsValid, "price %q", raw)
	}
}

func TestValidate_RangeRule(t *testing.T) {
	schema := NewSchema(
		Field{Name: "slippageBps", Type: FieldTypeUint64, Rules: []Rule{Range("0", "10000")}},
	)

	assert.True(t, schema.Validate(Values{"slippageBps": "100"}).IsValid)
	assert.True(t, schema.Validate(Values{"slippageBps": "0"}).IsValid)
	assert.False(t, schema.Validate(Values{"slippageBps": "10001"}).IsValid)
}

func TestValidate_MaxDecimalsRule(t *testing.T) {
	schema := NewSchema(
		Field{Name: "amount", Type: FieldTypeDecimal, Rules: []Rule{MaxDecimals("6")}},
	)

	assert.True(t, schema.Validate(Values{"amount": "1.123456"}).IsValid)
	assert.False(t, schema.Validate(Values{"amount": "1.1234567"}).IsValid)
}

func TestValidate_ExactlyOnePositive(t *testing.T) {
	schema := NewSchema(
		Field{Name: "tokenAmountA", Type: FieldTypeDecimal, Rules: []Rule{NonNegative()}},
		Field{Name: "tokenAmountB", Type: FieldTypeDecimal, Rules: []Rule{NonNegative()}},
	).ExactlyOnePositive("tokenAmountA", "tokenAmountB")

	result := schema.Validate(Values{"tokenAmountA": "1", "tokenAmountB": "2"})
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors["tokenAmountA"], "only one of")

	result = schema.Validate(Values{"tokenAmountA": "0", "tokenAmountB": "0"})
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors["tokenAmountB"], "must be greater than 0")

	assert.True(t, schema.Validate(Values{"tokenAmountA": "1"}).IsValid)
	assert.True(t, schema.Validate(Values{"tokenAmountB": "0.5"}).IsValid)
}

func TestValidate_FirstErrorPerFieldWins(t *testing.T) {
	schema := NewSchema(
		Field{Name: "amount", Type: FieldTypeDecimal, Required: true, Rules: []Rule{Positive(), MaxDecimals("2")}},
	)

	result := schema.Validate(Values{"amount": "-1.123"})
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors["amount"], "greater than 0")
}

func TestValues_Getters(t *testing.T) {
	key := solana.NewWallet().PublicKey()
	values := Values{
		"owner":   key.String(),
		"amount":  "1.25",
		"count":   "42",
		"enabled": "true",
	}

	owner, err := values.PublicKey("owner")
	require.NoError(t, err)
	assert.Equal(t, key, owner)

	amount, err := values.Decimal("amount")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1.25")))

	count, err := values.Uint64("count")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), count)

	enabled, err := values.Bool("enabled")
	require.NoError(t, err)
	assert.True(t, enabled)

	// Unset optional fields read as zero values.
	zero, err := values.Decimal("missing")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = values.PublicKey("missing")
	assert.Error(t, err)
}
