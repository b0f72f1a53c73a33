package governance

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

type proposalEntry struct {
	governedAccount solana.PublicKey
	instruction     UiInstruction
}

// ProposalBuilder collects the instructions produced by individual proposal
// forms and turns them into the transaction batches the governance program
// expects. One builder per proposal; entries are kept in registration order.
type ProposalBuilder struct {
	governance solana.PublicKey
	logger     *zap.Logger
	entries    []proposalEntry
}

type ProposalOption func(*ProposalBuilder)

func WithProposalLogger(logger *zap.Logger) ProposalOption {
	return func(b *ProposalBuilder) {
		b.logger = logger
	}
}

func NewProposalBuilder(governance solana.PublicKey, opts ...ProposalOption) *ProposalBuilder {
	b := &ProposalBuilder{
		governance: governance,
		logger:     zap.NewNop(),
	}
	for _, fn := range opts {
		fn(b)
	}
	return b
}

// Register adds one form's output to the proposal. Invalid instructions are
// rejected so a proposal can never be assembled from a failed build.
func (b *ProposalBuilder) Register(governedAccount solana.PublicKey, ui UiInstruction) error {
	if !ui.IsValid {
		return ErrInvalidInstruction
	}
	if ui.SerializedInstruction == "" {
		return ErrEmptyInstruction
	}

	b.entries = append(b.entries, proposalEntry{
		governedAccount: governedAccount,
		instruction:     ui,
	})
	b.logger.Info("registered proposal instruction",
		zap.String("governedAccount", governedAccount.String()),
		zap.Int("prerequisites", len(ui.PrerequisiteInstructions)),
		zap.Int("additional", len(ui.AdditionalSerializedInstructions)),
	)
	return nil
}

// PrerequisiteInstructions returns the deduplicated instructions that must
// run in the proposal-creation transaction before any proposal instruction,
// e.g. creating missing token accounts. Duplicates across forms (two forms
// creating the same token account) collapse to one.
func (b *ProposalBuilder) PrerequisiteInstructions() ([]solana.Instruction, error) {
	var (
		out  []solana.Instruction
		seen = make(map[string]struct{})
	)
	for _, entry := range b.entries {
		for _, ix := range entry.instruction.PrerequisiteInstructions {
			key, err := SerializeInstruction(ix)
			if err != nil {
				return nil, fmt.Errorf("serialize prerequisite: %w", err)
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, ix)
		}
	}
	return out, nil
}

// Signers returns the extra signers the prerequisite instructions need.
func (b *ProposalBuilder) Signers() []*solana.Wallet {
	var out []*solana.Wallet
	for _, entry := range b.entries {
		out = append(out, entry.instruction.PrerequisiteInstructionsSigners...)
	}
	return out
}

// Batches splits the serialized proposal instructions into groups of at most
// chunkBy instructions, one group per InsertTransaction call. The effective
// chunk size is the smallest hint any registered form gave.
func (b *ProposalBuilder) Batches() ([][]string, error) {
	if len(b.entries) == 0 {
		return nil, ErrNoInstructions
	}

	chunkBy := DefaultChunkBy
	var serialized []string
	for _, entry := range b.entries {
		serialized = append(serialized, entry.instruction.SerializedInstruction)
		serialized = append(serialized, entry.instruction.AdditionalSerializedInstructions...)

		if hint := entry.instruction.ChunkBy; hint > 0 && hint < chunkBy {
			chunkBy = hint
		}
	}

	total := len(serialized)

	var batches [][]string
	for len(serialized) > 0 {
		n := chunkBy
		if n > len(serialized) {
			n = len(serialized)
		}
		batches = append(batches, serialized[:n])
		serialized = serialized[n:]
	}

	b.logger.Info("assembled proposal batches",
		zap.String("governance", b.governance.String()),
		zap.Int("instructions", total),
		zap.Int("batches", len(batches)),
		zap.Int("chunkBy", chunkBy),
	)
	return batches, nil
}

// Governance returns the governance account this proposal targets.
func (b *ProposalBuilder) Governance() solana.PublicKey {
	return b.governance
}
