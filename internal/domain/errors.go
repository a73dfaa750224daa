package domain

import "github.com/cockroachdb/errors"

// Domain errors. Handlers classify failures with errors.Is against these.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDateTime = errors.New("invalid date and time or not after tomorrow")
	ErrDispatch        = errors.New("notification dispatch failed")
)
