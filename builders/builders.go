package builders

import (
	"context"
	"errors"
	"math/big"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/solrealms/proposal-go/form"
	"github.com/solrealms/proposal-go/governance"
	solanago "github.com/solrealms/proposal-go/solana"
	"github.com/solrealms/proposal-go/whirlpool"
)

var (
	ErrMissingConnection = errors.New("rpc connection is required")
	ErrMintNotFound      = errors.New("mint account not found")

	errAmountOverflow = errors.New("amount exceeds the uint64 range")
)

// Builder is the contract every proposal form implements: a validation
// schema over its fields and one call producing the serialized instruction.
type Builder interface {
	Schema() *form.Schema
	GovernedAccount() solana.PublicKey
	GetInstruction(ctx context.Context) (governance.UiInstruction, error)
}

// Client bundles what every builder needs to assemble instructions. State
// lookups go through injectable funcs so assembly below the fetch boundary
// stays deterministic.
type Client struct {
	rpcClient *rpc.Client
	logger    *zap.Logger
	ammClient *whirlpool.Client

	ammConfig solana.PublicKey

	// payer funds prerequisite instructions, which run inside the
	// proposal-creation transaction signed by the proposing wallet.
	payer solana.PublicKey

	tokens    map[solana.PublicKey]*solanago.Token
	pools     map[solana.PublicKey]*whirlpool.Pool
	positions map[solana.PublicKey]*whirlpool.Position

	accountExists func(ctx context.Context, account solana.PublicKey) (bool, error)
	tokenBalance  func(ctx context.Context, account solana.PublicKey) (*big.Int, error)
}

type ClientOption func(*Client)

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithAmmConfig(config solana.PublicKey) ClientOption {
	return func(c *Client) {
		c.ammConfig = config
	}
}

// WithPayer sets the wallet funding prerequisite instructions.
func WithPayer(payer solana.PublicKey) ClientOption {
	return func(c *Client) {
		c.payer = payer
	}
}

// WithTokenInfo seeds the mint cache so no RPC lookup is needed.
func WithTokenInfo(mint solana.PublicKey, token *solanago.Token) ClientOption {
	return func(c *Client) {
		c.tokens[mint] = token
	}
}

// WithPoolState seeds the pool cache.
func WithPoolState(address solana.PublicKey, pool *whirlpool.Pool) ClientOption {
	return func(c *Client) {
		c.pools[address] = pool
	}
}

// WithPositionState seeds the position cache.
func WithPositionState(address solana.PublicKey, position *whirlpool.Position) ClientOption {
	return func(c *Client) {
		c.positions[address] = position
	}
}

// WithAccountExists overrides the on-chain account existence check.
func WithAccountExists(fn func(ctx context.Context, account solana.PublicKey) (bool, error)) ClientOption {
	return func(c *Client) {
		c.accountExists = fn
	}
}

// WithTokenBalance overrides the token account balance lookup.
func WithTokenBalance(fn func(ctx context.Context, account solana.PublicKey) (*big.Int, error)) ClientOption {
	return func(c *Client) {
		c.tokenBalance = fn
	}
}

func NewClient(rpcClient *rpc.Client, opts ...ClientOption) *Client {
	c := &Client{
		rpcClient: rpcClient,
		logger:    zap.NewNop(),
		ammConfig: whirlpool.DefaultConfig,
		tokens:    make(map[solana.PublicKey]*solanago.Token),
		pools:     make(map[solana.PublicKey]*whirlpool.Pool),
		positions: make(map[solana.PublicKey]*whirlpool.Position),
	}
	if rpcClient != nil {
		c.ammClient = whirlpool.NewClient(rpcClient)
	}
	for _, fn := range opts {
		fn(c)
	}

	if c.accountExists == nil {
		c.accountExists = func(ctx context.Context, account solana.PublicKey) (bool, error) {
			if c.rpcClient == nil {
				return false, ErrMissingConnection
			}
			out, err := solanago.GetAccountInfo(ctx, c.rpcClient, account)
			if err != nil {
				if err == rpc.ErrNotFound {
					return false, nil
				}
				return false, err
			}
			return out != nil && out.Value != nil, nil
		}
	}
	if c.tokenBalance == nil {
		c.tokenBalance = func(ctx context.Context, account solana.PublicKey) (*big.Int, error) {
			if c.rpcClient == nil {
				return nil, ErrMissingConnection
			}
			return solanago.GetTokenAccountBalance(ctx, c.rpcClient, account)
		}
	}
	return c
}

// tokenInfo resolves mint state from the cache, falling back to RPC.
func (c *Client) tokenInfo(ctx context.Context, mint solana.PublicKey) (*solanago.Token, error) {
	if token, ok := c.tokens[mint]; ok {
		return token, nil
	}
	if c.rpcClient == nil {
		return nil, ErrMissingConnection
	}
	tokens, err := solanago.GetMultipleToken(ctx, c.rpcClient, mint)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 || tokens[0] == nil {
		return nil, ErrMintNotFound
	}
	c.tokens[mint] = tokens[0]
	return tokens[0], nil
}

// poolState resolves an AMM pool from the cache, falling back to RPC.
func (c *Client) poolState(ctx context.Context, address solana.PublicKey) (*whirlpool.Pool, error) {
	if pool, ok := c.pools[address]; ok {
		return pool, nil
	}
	if c.ammClient == nil {
		return nil, ErrMissingConnection
	}
	pool, err := c.ammClient.FetchPool(ctx, address)
	if err != nil {
		return nil, err
	}
	c.pools[address] = pool
	return pool, nil
}

// positionState resolves an AMM position from the cache, falling back to RPC.
func (c *Client) positionState(ctx context.Context, address solana.PublicKey) (*whirlpool.Position, error) {
	if position, ok := c.positions[address]; ok {
		return position, nil
	}
	if c.ammClient == nil {
		return nil, ErrMissingConnection
	}
	position, err := c.ammClient.FetchPosition(ctx, address)
	if err != nil {
		return nil, err
	}
	c.positions[address] = position
	return position, nil
}

// prepareTokenAccount appends a create instruction for the owner's ATA when
// it does not exist yet and returns its address.
func (c *Client) prepareTokenAccount(
	ctx context.Context,
	owner solana.PublicKey,
	tokenMint solana.PublicKey,
	payer solana.PublicKey,
	instructions *[]solana.Instruction,
) (solana.PublicKey, error) {
	tokenATA, _, err := solana.FindAssociatedTokenAddress(owner, tokenMint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	exists, err := c.accountExists(ctx, tokenATA)
	if err != nil {
		return solana.PublicKey{}, err
	}

	if !exists {
		ix := associatedtokenaccount.NewCreateInstruction(
			payer, owner, tokenMint,
		).Build()
		*instructions = append(*instructions, ix)
	}
	return tokenATA, nil
}

func (c *Client) payerOr(fallback solana.PublicKey) solana.PublicKey {
	if !c.payer.IsZero() {
		return c.payer
	}
	return fallback
}

// invalid is the uniform failure output: the proposal flow only looks at
// IsValid and an empty serialized instruction.
func invalid(governedAccount solana.PublicKey) governance.UiInstruction {
	return governance.UiInstruction{
		SerializedInstruction: "",
		IsValid:               false,
		Governance:            governedAccount,
	}
}

// toUint64 guards the big.Int narrowing the instruction payloads need.
func toUint64(value *big.Int) (uint64, error) {
	if !value.IsUint64() {
		return 0, errAmountOverflow
	}
	return value.Uint64(), nil
}

// tokenProgramFor picks the token program owning a mint, defaulting to the
// legacy program when the account owner is not tracked.
func tokenProgramFor(token *solanago.Token) solana.PublicKey {
	if token.Owner.IsZero() {
		return solana.TokenProgramID
	}
	return token.Owner
}

// serializeAll base64-encodes a run of follow-up instructions.
func serializeAll(instructions []solana.Instruction) ([]string, error) {
	out := make([]string, 0, len(instructions))
	for _, ix := range instructions {
		serialized, err := governance.SerializeInstruction(ix)
		if err != nil {
			return nil, err
		}
		out = append(out, serialized)
	}
	return out, nil
}
