package engine

import "errors"

var (
	// ErrNoPreviousUpdate no eligible rollback target exists
	ErrNoPreviousUpdate = errors.New("no previous update available")
)
