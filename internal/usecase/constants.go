package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds every multi-step write.
	DefaultTransactionTimeout = 30 * time.Second

	// DefaultPageSize and MaxPageSize clamp list pagination.
	DefaultPageSize = 50
	MaxPageSize     = 500
)
