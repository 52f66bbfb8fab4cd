package client

import "errors"

var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrUsage             = errors.New("wrong number of arguments")
	ErrPasswordsMismatch = errors.New("passwords do not match")
	ErrEmptyInput        = errors.New("input must not be empty")
)
