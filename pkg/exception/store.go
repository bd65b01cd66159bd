package exception

import "github.com/yanun0323/errors"

// Store errors
var (
	ErrStoreDisabled = errors.New("store: postgres dsn is empty")
	ErrNilRun        = errors.New("store: nil run report")
)
