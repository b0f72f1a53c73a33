package whirlpool

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	solanago "github.com/solrealms/proposal-go/solana"
)

// Client reads AMM program state needed while assembling instructions.
type Client struct {
	rpcClient *rpc.Client
}

func NewClient(rpcClient *rpc.Client) *Client {
	return &Client{rpcClient: rpcClient}
}

// FetchPool loads and decodes one pool account.
func (c *Client) FetchPool(ctx context.Context, address solana.PublicKey) (*Pool, error) {
	out, err := solanago.GetAccountInfo(ctx, c.rpcClient, address)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("pool %s not found", address)
	}
	return ParsePool(out.Value.Data.GetBinary())
}

// FetchPosition loads and decodes one position account.
func (c *Client) FetchPosition(ctx context.Context, address solana.PublicKey) (*Position, error) {
	out, err := solanago.GetAccountInfo(ctx, c.rpcClient, address)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("position %s not found", address)
	}
	return ParsePosition(out.Value.Data.GetBinary())
}

// FetchPoolsByMintA scans the program for pools whose token A is mint.
func (c *Client) FetchPoolsByMintA(ctx context.Context, mint solana.PublicKey) (map[solana.PublicKey]*Pool, error) {
	opt := solanago.GenProgramAccountFilter(AccountKeyWhirlpool, &solanago.Filter{
		Owner: mint,
		// discriminator(8) + config(32) + bump(1) + tickSpacing(2) +
		// tickSpacingSeed(2) + feeRate(2) + protocolFeeRate(2) +
		// liquidity(16) + sqrtPrice(16) + tickCurrentIndex(4) +
		// protocolFeeOwedA(8) + protocolFeeOwedB(8)
		Offset: 101,
	})

	outs, err := c.rpcClient.GetProgramAccountsWithOpts(ctx, ProgramID, opt)
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	data := make(map[solana.PublicKey]*Pool)
	for _, out := range outs {
		pool, err := ParsePool(out.Account.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		data[out.Pubkey] = pool
	}
	return data, nil
}
