package exception

import "github.com/yanun0323/errors"

// General errors
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidWorkers  = errors.New("workers must be > 0")
	ErrInvalidInterval = errors.New("snapshot interval must be > 0")
	ErrNilInstance     = errors.New("nil instance")
)
