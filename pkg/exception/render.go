package exception

import "github.com/yanun0323/errors"

var (
	ErrNilSink           = errors.New("render: nil sink")
	ErrUnsupportedFormat = errors.New("render: unsupported format")
)
