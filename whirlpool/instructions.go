package whirlpool

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// instructionDiscriminator is the 8-byte anchor method selector.
func instructionDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("global:" + name))
	return hash[:8]
}

func encodeInstructionData(name string, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(instructionDiscriminator(name))
	if args != nil {
		if err := binary.NewBorshEncoder(buf).Encode(args); err != nil {
			return nil, fmt.Errorf("encode %s args: %w", name, err)
		}
	}
	return buf.Bytes(), nil
}

type InitializePoolArgs struct {
	TickSpacing      uint16
	InitialSqrtPrice binary.Uint128
}

type InitializePoolAccounts struct {
	WhirlpoolsConfig solana.PublicKey
	TokenMintA       solana.PublicKey
	TokenMintB       solana.PublicKey
	TokenBadgeA      solana.PublicKey
	TokenBadgeB      solana.PublicKey
	Funder           solana.PublicKey
	Whirlpool        solana.PublicKey
	TokenVaultA      solana.PublicKey
	TokenVaultB      solana.PublicKey
	FeeTier          solana.PublicKey
	TokenProgramA    solana.PublicKey
	TokenProgramB    solana.PublicKey
}

func NewInitializePoolInstruction(args *InitializePoolArgs, accounts *InitializePoolAccounts) (solana.Instruction, error) {
	data, err := encodeInstructionData("initialize_pool_v2", args)
	if err != nil {
		return nil, err
	}

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.WhirlpoolsConfig, false, false),
		solana.NewAccountMeta(accounts.TokenMintA, false, false),
		solana.NewAccountMeta(accounts.TokenMintB, false, false),
		solana.NewAccountMeta(accounts.TokenBadgeA, false, false),
		solana.NewAccountMeta(accounts.TokenBadgeB, false, false),
		solana.NewAccountMeta(accounts.Funder, true, true),
		solana.NewAccountMeta(accounts.Whirlpool, true, false),
		solana.NewAccountMeta(accounts.TokenVaultA, true, true),
		solana.NewAccountMeta(accounts.TokenVaultB, true, true),
		solana.NewAccountMeta(accounts.FeeTier, false, false),
		solana.NewAccountMeta(accounts.TokenProgramA, false, false),
		solana.NewAccountMeta(accounts.TokenProgramB, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

type InitializeTickArrayArgs struct {
	StartTickIndex int32
}

type InitializeTickArrayAccounts struct {
	Whirlpool solana.PublicKey
	Funder    solana.PublicKey
	TickArray solana.PublicKey
}

func NewInitializeTickArrayInstruction(args *InitializeTickArrayArgs, accounts *InitializeTickArrayAccounts) (solana.Instruction, error) {
	data, err := encodeInstructionData("initialize_tick_array", args)
	if err != nil {
		return nil, err
	}

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Whirlpool, false, false),
		solana.NewAccountMeta(accounts.Funder, true, true),
		solana.NewAccountMeta(accounts.TickArray, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

type OpenPositionArgs struct {
	PositionBump   uint8
	TickLowerIndex int32
	TickUpperIndex int32
}

type OpenPositionAccounts struct {
	Funder               solana.PublicKey
	Owner                solana.PublicKey
	Position             solana.PublicKey
	PositionMint         solana.PublicKey
	PositionTokenAccount solana.PublicKey
	Whirlpool            solana.PublicKey
}

func NewOpenPositionInstruction(args *OpenPositionArgs, accounts *OpenPositionAccounts) (solana.Instruction, error) {
	data, err := encodeInstructionData("open_position", args)
	if err != nil {
		return nil, err
	}

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Funder, true, true),
		solana.NewAccountMeta(accounts.Owner, false, false),
		solana.NewAccountMeta(accounts.Position, true, false),
		solana.NewAccountMeta(accounts.PositionMint, true, true),
		solana.NewAccountMeta(accounts.PositionTokenAccount, true, false),
		solana.NewAccountMeta(accounts.Whirlpool, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
		solana.NewAccountMeta(solana.SPLAssociatedTokenAccountProgramID, false, false),
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

// RemainingAccountsSlice tags a run of extra accounts appended to a v2
// instruction for transfer-hook mints.
type RemainingAccountsSlice struct {
	AccountsType uint8
	Length       uint8
}

type RemainingAccountsInfo struct {
	Slices []RemainingAccountsSlice
}

type IncreaseLiquidityArgs struct {
	LiquidityAmount       binary.Uint128
	TokenMaxA             uint64
	TokenMaxB             uint64
	RemainingAccountsInfo *RemainingAccountsInfo `bin:"optional"`
}

type liquidityAccounts struct {
	Whirlpool            solana.PublicKey
	TokenProgramA        solana.PublicKey
	TokenProgramB        solana.PublicKey
	PositionAuthority    solana.PublicKey
	Position             solana.PublicKey
	PositionTokenAccount solana.PublicKey
	TokenMintA           solana.PublicKey
	TokenMintB           solana.PublicKey
	TokenOwnerAccountA   solana.PublicKey
	TokenOwnerAccountB   solana.PublicKey
	TokenVaultA          solana.PublicKey
	TokenVaultB          solana.PublicKey
	TickArrayLower       solana.PublicKey
	TickArrayUpper       solana.PublicKey
}

// IncreaseLiquidityAccounts and DecreaseLiquidityAccounts share one layout.
type IncreaseLiquidityAccounts = liquidityAccounts

type DecreaseLiquidityAccounts = liquidityAccounts

func liquidityMetas(accounts *liquidityAccounts) solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Whirlpool, true, false),
		solana.NewAccountMeta(accounts.TokenProgramA, false, false),
		solana.NewAccountMeta(accounts.TokenProgramB, false, false),
		solana.NewAccountMeta(MemoProgramID, false, false),
		solana.NewAccountMeta(accounts.PositionAuthority, false, true),
		solana.NewAccountMeta(accounts.Position, true, false),
		solana.NewAccountMeta(accounts.PositionTokenAccount, false, false),
		solana.NewAccountMeta(accounts.TokenMintA, false, false),
		solana.NewAccountMeta(accounts.TokenMintB, false, false),
		solana.NewAccountMeta(accounts.TokenOwnerAccountA, true, false),
		solana.NewAccountMeta(accounts.TokenOwnerAccountB, true, false),
		solana.NewAccountMeta(accounts.TokenVaultA, true, false),
		solana.NewAccountMeta(accounts.TokenVaultB, true, false),
		solana.NewAccountMeta(accounts.TickArrayLower, true, false),
		solana.NewAccountMeta(accounts.TickArrayUpper, true, false),
	}
}

// The v2 variants carry the token programs per mint so token-2022 pools work
// the same as legacy ones.
func NewIncreaseLiquidityInstruction(args *IncreaseLiquidityArgs, accounts *IncreaseLiquidityAccounts) (solana.Instruction, error) {
	data, err := encodeInstructionData("increase_liquidity_v2", args)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, liquidityMetas(accounts), data), nil
}

type DecreaseLiquidityArgs struct {
	LiquidityAmount       binary.Uint128
	TokenMinA             uint64
	TokenMinB             uint64
	RemainingAccountsInfo *RemainingAccountsInfo `bin:"optional"`
}

func NewDecreaseLiquidityInstruction(args *DecreaseLiquidityArgs, accounts *DecreaseLiquidityAccounts) (solana.Instruction, error) {
	data, err := encodeInstructionData("decrease_liquidity_v2", args)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, liquidityMetas(accounts), data), nil
}

type CollectFeesArgs struct {
	RemainingAccountsInfo *RemainingAccountsInfo `bin:"optional"`
}

type CollectFeesAccounts struct {
	Whirlpool            solana.PublicKey
	PositionAuthority    solana.PublicKey
	Position             solana.PublicKey
	PositionTokenAccount solana.PublicKey
	TokenMintA           solana.PublicKey
	TokenMintB           solana.PublicKey
	TokenOwnerAccountA   solana.PublicKey
	TokenVaultA          solana.PublicKey
	TokenOwnerAccountB   solana.PublicKey
	TokenVaultB          solana.PublicKey
	TokenProgramA        solana.PublicKey
	TokenProgramB        solana.PublicKey
}

func NewCollectFeesInstruction(args *CollectFeesArgs, accounts *CollectFeesAccounts) (solana.Instruction, error) {
	data, err := encodeInstructionData("collect_fees_v2", args)
	if err != nil {
		return nil, err
	}

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Whirlpool, false, false),
		solana.NewAccountMeta(accounts.PositionAuthority, false, true),
		solana.NewAccountMeta(accounts.Position, true, false),
		solana.NewAccountMeta(accounts.PositionTokenAccount, false, false),
		solana.NewAccountMeta(accounts.TokenMintA, false, false),
		solana.NewAccountMeta(accounts.TokenMintB, false, false),
		solana.NewAccountMeta(accounts.TokenOwnerAccountA, true, false),
		solana.NewAccountMeta(accounts.TokenVaultA, true, false),
		solana.NewAccountMeta(accounts.TokenOwnerAccountB, true, false),
		solana.NewAccountMeta(accounts.TokenVaultB, true, false),
		solana.NewAccountMeta(accounts.TokenProgramA, false, false),
		solana.NewAccountMeta(accounts.TokenProgramB, false, false),
		solana.NewAccountMeta(MemoProgramID, false, false),
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}
