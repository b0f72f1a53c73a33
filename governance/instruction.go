package governance

import (
	"bytes"
	"encoding/base64"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// AccountMetaData mirrors the governance program's stored account reference.
type AccountMetaData struct {
	Pubkey     solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// InstructionData is the governance program's wrapper around one target
// instruction: the program to invoke, the accounts it references and its
// opaque payload. Proposals store instructions on chain in this layout.
type InstructionData struct {
	ProgramID solana.PublicKey
	Accounts  []AccountMetaData
	Data      []byte
}

// SerializeInstruction encodes an instruction into the base64 form the
// proposal flow submits to the governance program.
func SerializeInstruction(ix solana.Instruction) (string, error) {
	data, err := ix.Data()
	if err != nil {
		return "", fmt.Errorf("instruction data: %w", err)
	}

	wrapped := InstructionData{
		ProgramID: ix.ProgramID(),
		Data:      data,
	}
	for _, meta := range ix.Accounts() {
		wrapped.Accounts = append(wrapped.Accounts, AccountMetaData{
			Pubkey:     meta.PublicKey,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		})
	}

	buf := new(bytes.Buffer)
	if err := binary.NewBorshEncoder(buf).Encode(wrapped); err != nil {
		return "", fmt.Errorf("encode instruction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DeserializeInstruction is the inverse of SerializeInstruction.
func DeserializeInstruction(serialized string) (*InstructionData, error) {
	if serialized == "" {
		return nil, ErrEmptyInstruction
	}
	raw, err := base64.StdEncoding.DecodeString(serialized)
	if err != nil {
		return nil, fmt.Errorf("decode instruction: %w", err)
	}
	out := &InstructionData{}
	if err := binary.NewBorshDecoder(raw).Decode(out); err != nil {
		return nil, fmt.Errorf("decode instruction: %w", err)
	}
	return out, nil
}

// AsExecutableInstruction converts stored instruction data back into an
// instruction that can be placed into a transaction for simulation.
func (d *InstructionData) AsExecutableInstruction() solana.Instruction {
	metas := make(solana.AccountMetaSlice, len(d.Accounts))
	for i, acc := range d.Accounts {
		metas[i] = solana.NewAccountMeta(acc.Pubkey, acc.IsWritable, acc.IsSigner)
	}
	return solana.NewInstruction(d.ProgramID, metas, d.Data)
}

// UiInstruction is what one proposal form produces for the proposal
// assembler: the primary serialized instruction plus anything that must run
// before it lands on chain. It lives for a single build call.
type UiInstruction struct {
	SerializedInstruction string
	IsValid               bool
	Governance            solana.PublicKey

	// Instructions that must execute in the same proposal creation
	// transaction before the proposal instruction itself, e.g. creating a
	// missing token account, and the extra signers they need.
	PrerequisiteInstructions        []solana.Instruction
	PrerequisiteInstructionsSigners []*solana.Wallet

	// Further serialized instructions appended after the primary one.
	AdditionalSerializedInstructions []string

	// ChunkBy hints how many instructions the caller should place per
	// transaction. Zero means DefaultChunkBy.
	ChunkBy int
}
