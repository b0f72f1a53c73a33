package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

// Values holds the transient form state, field name -> raw user input.
// Everything arrives as a string the way a UI submits it.
type Values map[string]string

// Result is recomputed on every validation attempt and never persisted.
type Result struct {
	IsValid bool
	Errors  map[string]string
}

func (r *Result) fail(field, msg string) {
	r.IsValid = false
	if _, ok := r.Errors[field]; !ok {
		r.Errors[field] = msg
	}
}

// Validate checks values against the schema. Field errors are scoped to the
// offending field, first error per field wins.
func (s *Schema) Validate(values Values) *Result {
	result := &Result{IsValid: true, Errors: make(map[string]string)}

	for i := range s.Fields {
		f := &s.Fields[i]
		raw := strings.TrimSpace(values[f.Name])

		if raw == "" {
			if f.Required {
				result.fail(f.Name, fmt.Sprintf("%s is required", label(f)))
			}
			continue
		}

		if err := checkType(f, raw); err != nil {
			result.fail(f.Name, err.Error())
			continue
		}

		for _, rule := range f.Rules {
			if err := checkRule(f, rule, raw); err != nil {
				result.fail(f.Name, err.Error())
				break
			}
		}
	}

	for _, pair := range s.exclusive {
		a := parseOrZero(values[pair.a])
		b := parseOrZero(values[pair.b])
		switch {
		case a.Sign() > 0 && b.Sign() > 0:
			msg := fmt.Sprintf("only one of %s and %s can be set", pair.a, pair.b)
			result.fail(pair.a, msg)
			result.fail(pair.b, msg)
		case a.Sign() <= 0 && b.Sign() <= 0:
			msg := fmt.Sprintf("one of %s and %s must be greater than 0", pair.a, pair.b)
			result.fail(pair.a, msg)
			result.fail(pair.b, msg)
		}
	}

	return result
}

func label(f *Field) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func checkType(f *Field, raw string) error {
	switch f.Type {
	case FieldTypePublicKey:
		buf, err := base58.Decode(raw)
		if err != nil || len(buf) != solana.PublicKeyLength {
			return fmt.Errorf("%s is not a valid account address", label(f))
		}
	case FieldTypeDecimal:
		if _, err := decimal.NewFromString(raw); err != nil {
			return fmt.Errorf("%s is not a valid number", label(f))
		}
	case FieldTypeUint64:
		if _, err := strconv.ParseUint(raw, 10, 64); err != nil {
			return fmt.Errorf("%s is not a valid unsigned integer", label(f))
		}
	case FieldTypeBool:
		if _, err := strconv.ParseBool(raw); err != nil {
			return fmt.Errorf("%s must be true or false", label(f))
		}
	case FieldTypeString:
	default:
		return fmt.Errorf("unknown field type %q", f.Type)
	}
	return nil
}

func checkRule(f *Field, rule Rule, raw string) error {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		// Non-numeric fields never match numeric rules.
		return nil
	}

	switch rule.Kind {
	case RulePositive:
		if value.Sign() <= 0 {
			return fmt.Errorf("%s %s", label(f), rule.Message)
		}
	case RuleNonNegative:
		if value.Sign() < 0 {
			return fmt.Errorf("%s %s", label(f), rule.Message)
		}
	case RuleMaxDecimals:
		max, err := strconv.Atoi(rule.Params["value"])
		if err != nil {
			return fmt.Errorf("invalid maxDecimals rule on %s", f.Name)
		}
		if int(-value.Exponent()) > max {
			return fmt.Errorf("%s allows at most %d decimal places", label(f), max)
		}
	case RuleRange:
		min, err := decimal.NewFromString(rule.Params["min"])
		if err != nil {
			return fmt.Errorf("invalid range rule on %s", f.Name)
		}
		max, err := decimal.NewFromString(rule.Params["max"])
		if err != nil {
			return fmt.Errorf("invalid range rule on %s", f.Name)
		}
		if value.Cmp(min) < 0 || value.Cmp(max) > 0 {
			return fmt.Errorf("%s must be between %s and %s", label(f), min, max)
		}
	}
	return nil
}

func parseOrZero(raw string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return value
}

// PublicKey returns the named field as an account address.
func (v Values) PublicKey(name string) (solana.PublicKey, error) {
	raw := strings.TrimSpace(v[name])
	if raw == "" {
		return solana.PublicKey{}, fmt.Errorf("%s is empty", name)
	}
	key, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%s: %w", name, err)
	}
	return key, nil
}

// Decimal returns the named field as a decimal, zero when unset.
func (v Values) Decimal(name string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(v[name])
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", name, err)
	}
	return value, nil
}

// Uint64 returns the named field as an unsigned integer, zero when unset.
func (v Values) Uint64(name string) (uint64, error) {
	raw := strings.TrimSpace(v[name])
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return value, nil
}

// Bool returns the named field as a boolean, false when unset.
func (v Values) Bool(name string) (bool, error) {
	raw := strings.TrimSpace(v[name])
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return value, nil
}
