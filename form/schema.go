package form

// FieldType is the set of input kinds a proposal form can carry.
type FieldType string

const (
	FieldTypePublicKey FieldType = "publicKey"
	FieldTypeDecimal   FieldType = "decimal"
	FieldTypeUint64    FieldType = "uint64"
	FieldTypeBool      FieldType = "bool"
	FieldTypeString    FieldType = "string"
)

const (
	RulePositive    = "positive"
	RuleNonNegative = "nonNegative"
	RuleMaxDecimals = "maxDecimals"
	RuleRange       = "range"
)

// Rule is a single declarative constraint attached to a field. Params carry
// rule thresholds as strings so schemas stay serializable.
type Rule struct {
	Kind    string
	Params  map[string]string
	Message string
}

func Positive() Rule {
	return Rule{Kind: RulePositive, Message: "value must be greater than 0"}
}

func NonNegative() Rule {
	return Rule{Kind: RuleNonNegative, Message: "value cannot be negative"}
}

func MaxDecimals(n string) Rule {
	return Rule{
		Kind:    RuleMaxDecimals,
		Params:  map[string]string{"value": n},
		Message: "value has too many decimal places",
	}
}

func Range(min, max string) Rule {
	return Rule{
		Kind:    RuleRange,
		Params:  map[string]string{"min": min, "max": max},
		Message: "value is out of range",
	}
}

// Field models an individual input of a proposal form.
type Field struct {
	Name     string
	Type     FieldType
	Label    string
	Required bool
	Rules    []Rule
}

// exclusivePair marks two amount fields of which exactly one must be
// positive. Both zero and both positive are invalid states.
type exclusivePair struct {
	a, b string
}

// Schema is the declarative validation schema of one proposal form.
type Schema struct {
	Fields    []Field
	exclusive []exclusivePair
}

func NewSchema(fields ...Field) *Schema {
	return &Schema{Fields: fields}
}

// ExactlyOnePositive declares that exactly one of the two named decimal
// fields must be greater than zero.
func (s *Schema) ExactlyOnePositive(a, b string) *Schema {
	s.exclusive = append(s.exclusive, exclusivePair{a: a, b: b})
	return s
}

func (s *Schema) field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}
