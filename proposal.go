package proposal

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solrealms/proposal-go/builders"
	"github.com/solrealms/proposal-go/config"
	"github.com/solrealms/proposal-go/governance"
	"github.com/solrealms/proposal-go/lockup"
	"github.com/solrealms/proposal-go/pkg/logger"
	solanago "github.com/solrealms/proposal-go/solana"
	"github.com/solrealms/proposal-go/whirlpool"
)

// NewFormClient creates the shared client the instruction builders run on.
//
// Example:
//
// client := NewFormClient(rpcClient, builders.WithPayer(wallet.PublicKey()))
//
// form := NewCreateSplashPoolForm(client, treasury, values)
var NewFormClient = builders.NewClient

// NewProposalBuilder creates the assembler that collects form outputs into
// transaction batches.
//
// Example:
//
// pb := NewProposalBuilder(governanceAddress)
//
// pb.Register(treasury, ui)
//
// batches, _ := pb.Batches()
var NewProposalBuilder = governance.NewProposalBuilder

// Form constructors, one per proposal operation.
var (
	NewCreatePoolForm        = builders.NewCreatePoolBuilder
	NewCreateSplashPoolForm  = builders.NewCreateSplashPoolBuilder
	NewOpenPositionForm      = builders.NewOpenPositionBuilder
	NewIncreaseLiquidityForm = builders.NewIncreaseLiquidityBuilder
	NewDecreaseLiquidityForm = builders.NewDecreaseLiquidityBuilder
	NewCollectFeesForm       = builders.NewCollectFeesBuilder
	NewLockTokensForm        = builders.NewLockTokensBuilder
	NewTreasuryTransferForm  = builders.NewTreasuryTransferBuilder
)

// TransferInstruction builds a direct checked SPL transfer, outside the
// proposal flow.
var TransferInstruction = solanago.TransferInstruction

// NewClientFromConfig wires the rpc connection, logger, commitment level and
// program-id overrides from a loaded yaml config.
func NewClientFromConfig(cfg *config.Config, opts ...builders.ClientOption) (*builders.Client, error) {
	log, err := logger.New(cfg.LogConf.ToLogOption())
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	solanago.SetCommitment(rpc.CommitmentType(cfg.RPCConf.Commitment))
	if err := applyProgramOverrides(&cfg.ProgramConf); err != nil {
		return nil, err
	}

	base := []builders.ClientOption{builders.WithLogger(log)}
	if cfg.ProgramConf.AmmConfig != "" {
		ammConfig, err := solana.PublicKeyFromBase58(cfg.ProgramConf.AmmConfig)
		if err != nil {
			return nil, fmt.Errorf("amm config address: %w", err)
		}
		base = append(base, builders.WithAmmConfig(ammConfig))
	}

	rpcClient := rpc.New(cfg.RPCConf.Endpoint)
	return builders.NewClient(rpcClient, append(base, opts...)...), nil
}

// applyProgramOverrides rebinds the package program ids for realms running
// their own deployments. Empty entries keep the mainnet defaults.
func applyProgramOverrides(programs *config.ProgramConfig) error {
	set := func(name, raw string, target *solana.PublicKey) error {
		if raw == "" {
			return nil
		}
		key, err := solana.PublicKeyFromBase58(raw)
		if err != nil {
			return fmt.Errorf("%s program address: %w", name, err)
		}
		*target = key
		return nil
	}

	if err := set("governance", programs.Governance, &governance.DefaultProgramID); err != nil {
		return err
	}
	if err := set("amm", programs.Amm, &whirlpool.ProgramID); err != nil {
		return err
	}
	return set("lockup", programs.Lockup, &lockup.ProgramID)
}
