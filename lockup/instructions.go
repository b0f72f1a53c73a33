package lockup

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

func instructionDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("global:" + name))
	return hash[:8]
}

func encodeInstructionData(name string, args interface{}) ([]byte, error) {
	payload, err := borsh.Serialize(args)
	if err != nil {
		return nil, fmt.Errorf("encode %s args: %w", name, err)
	}
	buf := new(bytes.Buffer)
	buf.Write(instructionDiscriminator(name))
	buf.Write(payload)
	return buf.Bytes(), nil
}

type CreateDepositEntryArgs struct {
	DepositEntryIndex uint8
	Kind              uint8
	StartTs           uint64
	Periods           uint32
	AllowClawback     bool
}

type CreateDepositEntryAccounts struct {
	Registrar      solana.PublicKey
	Voter          solana.PublicKey
	Vault          solana.PublicKey
	VoterAuthority solana.PublicKey
	Payer          solana.PublicKey
	DepositMint    solana.PublicKey
}

func NewCreateDepositEntryInstruction(args *CreateDepositEntryArgs, accounts *CreateDepositEntryAccounts) (solana.Instruction, error) {
	data, err := encodeInstructionData("create_deposit_entry", *args)
	if err != nil {
		return nil, err
	}

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Registrar, false, false),
		solana.NewAccountMeta(accounts.Voter, true, false),
		solana.NewAccountMeta(accounts.Vault, true, false),
		solana.NewAccountMeta(accounts.VoterAuthority, false, true),
		solana.NewAccountMeta(accounts.Payer, true, true),
		solana.NewAccountMeta(accounts.DepositMint, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SPLAssociatedTokenAccountProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

type DepositArgs struct {
	DepositEntryIndex uint8
	Amount            uint64
}

type DepositAccounts struct {
	Registrar        solana.PublicKey
	Voter            solana.PublicKey
	Vault            solana.PublicKey
	DepositToken     solana.PublicKey
	DepositAuthority solana.PublicKey
}

func NewDepositInstruction(args *DepositArgs, accounts *DepositAccounts) (solana.Instruction, error) {
	data, err := encodeInstructionData("deposit", *args)
	if err != nil {
		return nil, err
	}

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Registrar, false, false),
		solana.NewAccountMeta(accounts.Voter, true, false),
		solana.NewAccountMeta(accounts.Vault, true, false),
		solana.NewAccountMeta(accounts.DepositToken, true, false),
		solana.NewAccountMeta(accounts.DepositAuthority, false, true),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}
