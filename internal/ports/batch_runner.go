package ports

import (
	"context"

	"github.com/szabol/invoice-sorter/internal/core"
)

// BatchRunner defines the interface for one sweep over the mailbox
type BatchRunner interface {
	// Run processes one batch of messages and reports the counters
	Run(ctx context.Context) (*core.RunStats, error)
}
