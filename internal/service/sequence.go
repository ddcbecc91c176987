package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/maintenance-service/internal/repository"
)

// SequenceAllocator issues monotonically increasing ticket numbers
// from the shared counter row.
type SequenceAllocator struct {
	store  repository.Store
	logger *zap.Logger
}

// NewSequenceAllocator constructs the allocator.
func NewSequenceAllocator(store repository.Store, logger *zap.Logger) *SequenceAllocator {
	return &SequenceAllocator{store: store, logger: logger}
}

// NextNumber returns the next ticket number. It never fails: on a
// store fault it degrades to a coarse timestamp-derived number so that
// ticket creation is never blocked by numbering infrastructure. The
// fallback can break monotonicity; that tradeoff is accepted.
func (a *SequenceAllocator) NextNumber(ctx context.Context) int {
	number, err := a.store.Counters().NextTicketNumber(ctx)
	if err != nil {
		fallback := int(time.Now().Unix())
		a.logger.Warn("ticket number allocation failed; using timestamp fallback",
			zap.Error(err), zap.Int("fallback_number", fallback))
		return fallback
	}
	return number
}
