package storage

import "errors"

var (
	// ErrNotFound object not found
	ErrNotFound = errors.New("object not found")

	// ErrUnsupportedStorageType unsupported storage backend type
	ErrUnsupportedStorageType = errors.New("unsupported storage type")

	// ErrURLExpired signed URL past its expiry
	ErrURLExpired = errors.New("signed url expired")

	// ErrInvalidSignature signed URL signature mismatch
	ErrInvalidSignature = errors.New("invalid url signature")
)
