package exception

import "github.com/yanun0323/errors"

var (
	ErrTurnoverMismatch = errors.New("verify: turnover mismatch")
	ErrStatsMismatch    = errors.New("verify: stats mismatch")
	ErrSnapshotMismatch = errors.New("verify: snapshot mismatch")
)
