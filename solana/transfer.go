package solana

import (
	"context"
	"errors"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

var ErrAmountOverflow = errors.New("amount exceeds the uint64 range")

// TransferInstruction builds a checked SPL transfer between two owners,
// creating the missing token accounts first.
func TransferInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	sender solana.PublicKey,
	receiver solana.PublicKey,
	mint solana.PublicKey,
	decimals uint8,
	amount *big.Int,
) ([]solana.Instruction, error) {

	if !amount.IsUint64() {
		return nil, ErrAmountOverflow
	}

	var instructions []solana.Instruction

	sendTokenAccount, err := PrepareTokenATA(ctx, rpcClient, sender, mint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	receiveTokenAccount, err := PrepareTokenATA(ctx, rpcClient, receiver, mint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	transferIx := token.NewTransferCheckedInstruction(
		amount.Uint64(), // bounds checked above
		decimals,
		sendTokenAccount,
		mint,
		receiveTokenAccount,
		sender,
		[]solana.PublicKey{},
	).Build()

	return append(instructions, transferIx), nil
}
