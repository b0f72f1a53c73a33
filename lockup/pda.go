package lockup

import (
	"github.com/gagliardetto/solana-go"
)

// DeriveRegistrarAddress derives the per-realm registrar for one governing
// token mint.
func DeriveRegistrarAddress(realm, governingTokenMint solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{realm.Bytes(), []byte("registrar"), governingTokenMint.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveVoterAddress derives the voter account holding an authority's
// deposits under a registrar.
func DeriveVoterAddress(registrar, voterAuthority solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{registrar.Bytes(), []byte("voter"), voterAuthority.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveVoterVaultAddress derives the voter's token vault for one mint.
func DeriveVoterVaultAddress(voter, mint solana.PublicKey) (solana.PublicKey, error) {
	vault, _, err := solana.FindAssociatedTokenAddress(voter, mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return vault, nil
}
