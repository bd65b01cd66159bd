package exception

import "github.com/yanun0323/errors"

// Order-book file errors
var (
	ErrEmptyPath       = errors.New("record: empty path")
	ErrTruncatedRecord = errors.New("record: trailing bytes do not fill a word")
)
