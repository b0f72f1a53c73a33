package governance

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// DefaultProgramID is the mainnet deployment of the governance program.
// Realms running a custom deployment pass their own id to the derivation
// functions instead.
var DefaultProgramID = solana.MustPublicKeyFromBase58("GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw")

// DefaultChunkBy is how many proposal instructions are placed into one
// transaction when a builder does not hint otherwise.
const DefaultChunkBy = 2

var (
	ErrInvalidInstruction = errors.New("instruction is invalid")
	ErrEmptyInstruction   = errors.New("serialized instruction is empty")
	ErrNoInstructions     = errors.New("no instructions registered")
)
