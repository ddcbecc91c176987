package repository

import (
	"context"
)

// ticketNumberFloor is where numbering starts when no counter row
// exists yet; the first allocated number is the floor plus one.
const ticketNumberFloor = 5000

// CounterRepository hands out ticket numbers from the shared counter row.
type CounterRepository interface {
	NextTicketNumber(ctx context.Context) (int, error)
}

type counterRepository struct {
	q Querier
}

// NextTicketNumber increments and returns the counter in a single
// atomic statement, so concurrent creations cannot observe the same
// number.
func (r *counterRepository) NextTicketNumber(ctx context.Context) (int, error) {
	const query = `
        INSERT INTO counters (key, last_ticket_number)
        VALUES ('maintenanceTicket', $1)
        ON CONFLICT (key)
        DO UPDATE SET last_ticket_number = counters.last_ticket_number + 1
        RETURNING last_ticket_number`
	var number int
	if err := r.q.QueryRow(ctx, query, ticketNumberFloor+1).Scan(&number); err != nil {
		return 0, err
	}
	return number, nil
}
