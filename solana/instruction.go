package solana

import (
	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"
)

var (
	ataInstructionTypeID          = binary.NoTypeIDDefaultID
	closeAccountInstructionTypeID = binary.TypeIDFromUint8(token.Instruction_CloseAccount)
)

// MergeInstructions drops duplicate account-creation and account-close
// instructions that show up when several builders prepare the same token
// account. Order is otherwise preserved.
func MergeInstructions(oldInstructions []solana.Instruction) []solana.Instruction {
	var (
		ataCreateInstructions    []*associatedtokenaccount.Create
		closeAccountInstructions []*token.CloseAccount

		newInstructions []solana.Instruction
	)

	for _, v := range oldInstructions {
		switch inst := v.(type) {
		case *associatedtokenaccount.Instruction:
			if inst.TypeID != ataInstructionTypeID {
				newInstructions = append(newInstructions, v)
				break
			}

			ataCreate, ok := inst.Impl.(associatedtokenaccount.Create)
			if !ok {
				newInstructions = append(newInstructions, v)
				break
			}

			bSave := false
			for _, instruction := range ataCreateInstructions {
				if ataCreate.Mint != instruction.Mint ||
					ataCreate.Payer != instruction.Payer ||
					ataCreate.Wallet != instruction.Wallet {
					continue
				}

				bSave = true
				break
			}

			if !bSave {
				ataCreateInstructions = append(ataCreateInstructions, &ataCreate)
				newInstructions = append(newInstructions, v)
			}
		case *token.Instruction:
			if inst.TypeID != closeAccountInstructionTypeID {
				newInstructions = append(newInstructions, v)
				break
			}

			closeAccount, ok := inst.Impl.(token.CloseAccount)
			if !ok {
				newInstructions = append(newInstructions, v)
				break
			}

			bSave := false
			for _, instruction := range closeAccountInstructions {
				if closeAccount.GetAccount().PublicKey != instruction.GetAccount().PublicKey ||
					closeAccount.GetDestinationAccount().PublicKey != instruction.GetDestinationAccount().PublicKey ||
					closeAccount.GetOwnerAccount().PublicKey != instruction.GetOwnerAccount().PublicKey {
					continue
				}

				bSave = true
				break
			}

			if !bSave {
				closeAccountInstructions = append(closeAccountInstructions, &closeAccount)
				newInstructions = append(newInstructions, v)
			}
		default:
			newInstructions = append(newInstructions, v)
		}
	}

	return newInstructions
}
