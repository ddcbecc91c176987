package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx shared by pools and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the single data-access seam for the maintenance collections.
// InTx runs fn against a transaction-scoped facade so a ticket mutation
// and its audit event commit or roll back together.
type Store interface {
	Tickets() TicketRepository
	Schedules() ScheduleRepository
	Audit() AuditRepository
	Comments() CommentRepository
	Attachments() AttachmentRepository
	Counters() CounterRepository
	InTx(ctx context.Context, fn func(Store) error) error
}

type pgxStore struct {
	pool *pgxpool.Pool
	q    Querier
}

// NewStore builds the pgx-backed store facade.
func NewStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool, q: pool}
}

func (s *pgxStore) Tickets() TicketRepository        { return &ticketRepository{q: s.q} }
func (s *pgxStore) Schedules() ScheduleRepository    { return &scheduleRepository{q: s.q} }
func (s *pgxStore) Audit() AuditRepository           { return &auditRepository{q: s.q} }
func (s *pgxStore) Comments() CommentRepository      { return &commentRepository{q: s.q} }
func (s *pgxStore) Attachments() AttachmentRepository { return &attachmentRepository{q: s.q} }
func (s *pgxStore) Counters() CounterRepository      { return &counterRepository{q: s.q} }

func (s *pgxStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		// Already transaction-scoped; nested calls join the outer tx.
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(&pgxStore{q: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
