package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IssueTicketCloser closes the issue ticket a maintenance ticket was
// spawned from. Invoked by verification as its one cross-entity side
// effect; the issue subsystem itself lives outside this service.
type IssueTicketCloser interface {
	CloseIssueTicket(ctx context.Context, issueTicketID string) error
}

type issueTicketCloser struct {
	pool *pgxpool.Pool
}

// NewIssueTicketCloser builds the pgx-backed closer.
func NewIssueTicketCloser(pool *pgxpool.Pool) IssueTicketCloser {
	return &issueTicketCloser{pool: pool}
}

func (c *issueTicketCloser) CloseIssueTicket(ctx context.Context, issueTicketID string) error {
	const query = `UPDATE issue_tickets SET status='closed', closed_at=NOW(), updated_at=NOW() WHERE id=$1`
	cmd, err := c.pool.Exec(ctx, query, issueTicketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
