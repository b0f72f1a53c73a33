package solana

import "github.com/gagliardetto/solana-go"

// Filter narrows a program-account scan to accounts whose bytes at Offset
// match Owner.
type Filter struct {
	Owner  solana.PublicKey
	Offset uint64
}
