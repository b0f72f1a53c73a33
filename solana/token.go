package solana

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Token is a mint account plus the token program that owns it. Builders need
// both: decimals for base-unit conversion and the owner to pick the right
// token program account.
type Token struct {
	token.Mint
	Owner solana.PublicKey
}

// TokenLayout decodes raw mint account data.
type TokenLayout struct {
}

func (l *TokenLayout) Decode(data []byte) (*Token, error) {
	mint := token.Mint{}

	if err := mint.Decode(data); err != nil {
		return nil, err
	}
	return &Token{Mint: mint}, nil
}
