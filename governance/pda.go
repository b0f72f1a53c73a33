package governance

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// DeriveRealmAddress derives the realm account from its name.
func DeriveRealmAddress(programID solana.PublicKey, name string) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("governance"), []byte(name)}

	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveGovernanceAddress derives the governance account controlling one
// governed account inside a realm.
func DeriveGovernanceAddress(programID, realm, governedAccount solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("account-governance"), realm.Bytes(), governedAccount.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveNativeTreasuryAddress derives the SOL treasury owned by a governance.
func DeriveNativeTreasuryAddress(programID, governance solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("native-treasury"), governance.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveTokenOwnerRecordAddress derives the record tying a token owner to a
// realm for one governing token mint.
func DeriveTokenOwnerRecordAddress(programID, realm, governingTokenMint, owner solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("governance"), realm.Bytes(), governingTokenMint.Bytes(), owner.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveProposalAddress derives a proposal account under a governance.
func DeriveProposalAddress(programID, governance, governingTokenMint, proposalSeed solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("governance"), governance.Bytes(), governingTokenMint.Bytes(), proposalSeed.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveProposalTransactionAddress derives the account storing one batch of
// proposal instructions.
func DeriveProposalTransactionAddress(programID, proposal solana.PublicKey, optionIndex uint8, index uint16) (solana.PublicKey, error) {
	indexBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(indexBytes, index)

	seeds := [][]byte{[]byte("governance"), proposal.Bytes(), {optionIndex}, indexBytes}

	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}
