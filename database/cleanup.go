package database

import (
	"context"
	"fmt"
	"log"
	"time"
)

// PruneClosedTickets deletes tickets closed before the cutoff and returns how many were removed.
func (t *TicketDB) PruneClosedTickets(ctx context.Context, before time.Time) (int64, error) {
	defer track("prune_closed_tickets", "tickets")()

	log.Println("Starting cleanup of closed tickets...")

	res, err := t.db.ExecContext(ctx,
		`DELETE FROM tickets WHERE closed_at IS NOT NULL AND closed_at < ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune closed tickets: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Printf("Successfully cleaned up %d closed tickets", rowsAffected)
	return rowsAffected, nil
}
