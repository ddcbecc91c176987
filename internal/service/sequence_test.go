package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestSequenceAllocatorIssuesConsecutiveNumbers(t *testing.T) {
	store := newMockStore()
	allocator := NewSequenceAllocator(store, zap.NewNop())

	first := allocator.NextNumber(context.Background())
	second := allocator.NextNumber(context.Background())
	third := allocator.NextNumber(context.Background())

	if first != 5001 || second != 5002 || third != 5003 {
		t.Fatalf("expected 5001, 5002, 5003; got %d, %d, %d", first, second, third)
	}
}

func TestSequenceAllocatorFallsBackOnStoreFault(t *testing.T) {
	store := newMockStore()
	store.counterErr = errors.New("connection refused")
	allocator := NewSequenceAllocator(store, zap.NewNop())

	number := allocator.NextNumber(context.Background())

	// The fallback is a unix timestamp, far above the counter floor.
	if number <= 5000 {
		t.Fatalf("fallback number should still be positive and above the floor, got %d", number)
	}
}
