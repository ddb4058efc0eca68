package tickets

import (
	"errors"
	"fmt"

	"discord-tickets/database"
)

var (
	// ErrNotConfigured is returned when the panel or its category has not been set up.
	ErrNotConfigured = errors.New("ticket system not configured")
	// ErrNotFound is returned when a button, panel or ticket does not exist.
	ErrNotFound = database.ErrNotFound
	// ErrPermissionDenied is returned when the actor may not manage the ticket.
	ErrPermissionDenied = errors.New("you don't have permission to close this ticket")
	// ErrDelivery marks a chat platform call that failed because of missing access or a vanished target.
	ErrDelivery = errors.New("delivery failed")
	// ErrUnknownTarget marks a delivery failure because the channel, message, role or member no longer exists.
	ErrUnknownTarget = fmt.Errorf("target no longer exists: %w", ErrDelivery)
	// ErrStalePanel is returned for a control of a panel message that predates the panel's current buttons.
	ErrStalePanel = fmt.Errorf("panel was reconfigured since it was posted: %w", ErrNotFound)
	// ErrAlreadyClosed is returned when the ticket was closed before.
	ErrAlreadyClosed = database.ErrAlreadyClosed
	// ErrInvalidPosition is returned for button positions outside 1..3.
	ErrInvalidPosition = errors.New("button position must be between 1 and 3")
	// ErrRateLimited is returned when a member opens tickets too quickly.
	ErrRateLimited = errors.New("you are opening tickets too quickly, please wait a moment")
	// ErrConflict is returned when a concurrent configuration change won a uniqueness race.
	ErrConflict = database.ErrConflict
)
