package solana

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/tidwall/gjson"
)

var commitment = rpc.CommitmentFinalized

// SetCommitment changes the commitment level every helper queries with.
func SetCommitment(level rpc.CommitmentType) {
	if level != "" {
		commitment = level
	}
}

// Commitment reports the commitment level the helpers query with.
func Commitment() rpc.CommitmentType {
	return commitment
}

func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	return rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: commitment})
}

func GetMultipleAccountInfo(ctx context.Context, rpcClient *rpc.Client, accounts []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	return rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{Commitment: commitment, Encoding: solana.EncodingBase64})
}

func discriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out[:]
}

// GenProgramAccountFilter builds the memcmp filters for scanning one account
// type of an anchor program, optionally narrowed by an owner field.
func GenProgramAccountFilter(key string, filter *Filter) *rpc.GetProgramAccountsOpts {
	opt := &rpc.GetProgramAccountsOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  discriminator(key),
				},
			},
		},
	}
	if filter == nil {
		return opt
	}

	opt.Filters = append(opt.Filters, rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: filter.Offset,
			Bytes:  filter.Owner[:],
		},
	})
	return opt
}

// PrepareTokenATA checks if the owner's ATA exists and appends a create
// instruction when it does not.
func PrepareTokenATA(
	ctx context.Context,
	rpcClient *rpc.Client,
	owner solana.PublicKey,
	tokenMint solana.PublicKey,
	payer solana.PublicKey,
	instructions *[]solana.Instruction,
) (solana.PublicKey, error) {
	tokenATA, _, err := solana.FindAssociatedTokenAddress(
		owner,
		tokenMint,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}

	exists, err := GetAccountInfo(ctx, rpcClient, tokenATA)
	if err != nil && err != rpc.ErrNotFound {
		return solana.PublicKey{}, err
	}

	if exists == nil {
		ix := associatedtokenaccount.NewCreateInstruction(
			payer, owner, tokenMint,
		).Build()
		*instructions = append(*instructions, ix)
	}
	return tokenATA, nil
}

// GetMultipleToken fetches and decodes several mint accounts at once.
func GetMultipleToken(ctx context.Context, rpcClient *rpc.Client, tokens ...solana.PublicKey) ([]*Token, error) {
	outs, err := GetMultipleAccountInfo(ctx, rpcClient, tokens)
	if err != nil {
		return nil, err
	}
	list := make([]*Token, len(outs.Value))
	for i, out := range outs.Value {
		if out == nil {
			continue
		}

		token, err := new(TokenLayout).Decode(out.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		token.Owner = out.Owner

		list[i] = token
	}
	return list, nil
}

// GetTokenAccountBalance reads a token account's balance from the jsonParsed
// RPC encoding.
func GetTokenAccountBalance(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey) (*big.Int, error) {
	out, err := rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingJSONParsed,
	})
	if err != nil {
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, rpc.ErrNotFound
	}

	raw := gjson.GetBytes(out.Value.Data.GetRawJSON(), "parsed.info.tokenAmount.amount").String()
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("unexpected token amount %q", raw)
	}
	return amount, nil
}
