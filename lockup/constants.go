package lockup

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ProgramID is the token-locking (voter stake) program.
var ProgramID = solana.MustPublicKeyFromBase58("vsr2nfGVNHmSY8uxoBGqq8AQbwz3JwaEaHqGbsTPXqQ")

// LockupKind selects how a deposit unlocks.
type LockupKind uint8

const (
	LockupKindNone LockupKind = iota
	LockupKindDaily
	LockupKindMonthly
	LockupKindCliff
	LockupKindConstant
)

var ErrUnknownLockupKind = errors.New("unknown lockup kind")

// ParseLockupKind maps the form-level name onto the program enum.
func ParseLockupKind(name string) (LockupKind, error) {
	switch name {
	case "none":
		return LockupKindNone, nil
	case "daily":
		return LockupKindDaily, nil
	case "monthly":
		return LockupKindMonthly, nil
	case "cliff":
		return LockupKindCliff, nil
	case "constant":
		return LockupKindConstant, nil
	default:
		return 0, ErrUnknownLockupKind
	}
}
