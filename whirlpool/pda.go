package whirlpool

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/gagliardetto/solana-go"
)

// OrderMints returns the pair in the canonical order the program expects.
func OrderMints(mintA, mintB solana.PublicKey) (solana.PublicKey, solana.PublicKey) {
	if bytes.Compare(mintA.Bytes(), mintB.Bytes()) > 0 {
		return mintB, mintA
	}
	return mintA, mintB
}

func DeriveWhirlpoolAddress(config, mintA, mintB solana.PublicKey, tickSpacing uint16) (solana.PublicKey, error) {
	first, second := OrderMints(mintA, mintB)

	spacingBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(spacingBytes, tickSpacing)

	seeds := [][]byte{[]byte("whirlpool"), config.Bytes(), first.Bytes(), second.Bytes(), spacingBytes}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

func DeriveFeeTierAddress(config solana.PublicKey, tickSpacing uint16) (solana.PublicKey, error) {
	spacingBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(spacingBytes, tickSpacing)

	seeds := [][]byte{[]byte("fee_tier"), config.Bytes(), spacingBytes}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DerivePositionAddress also returns the bump because the open_position
// instruction takes it as an argument.
func DerivePositionAddress(positionMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{[]byte("position"), positionMint.Bytes()}

	pda, bump, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	return pda, bump, nil
}

func DeriveTokenBadgeAddress(config, tokenMint solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("token_badge"), config.Bytes(), tokenMint.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

func DeriveOracleAddress(pool solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("oracle"), pool.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveTickArrayAddress derives the tick array covering startTickIndex.
// The program seeds tick arrays with the decimal string of the start index.
func DeriveTickArrayAddress(pool solana.PublicKey, startTickIndex int32) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("tick_array"), pool.Bytes(), []byte(strconv.FormatInt(int64(startTickIndex), 10))}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}
