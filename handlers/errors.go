package handlers

import (
	"errors"
	"log"

	"discord-tickets/tickets"
)

// failureMessage maps a ticket error onto the text shown to the member.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, tickets.ErrNotConfigured):
		return "The ticket system is not configured. An administrator must run `/tickets settings` first."
	case errors.Is(err, tickets.ErrStalePanel):
		return "This panel was reconfigured. Ask staff to run `/tickets here` to post it again."
	case errors.Is(err, tickets.ErrNotFound):
		return "Nothing is configured there."
	case errors.Is(err, tickets.ErrPermissionDenied):
		return "You do not have permission to close this ticket."
	case errors.Is(err, tickets.ErrAlreadyClosed):
		return "This ticket is already closed."
	case errors.Is(err, tickets.ErrInvalidPosition):
		return "Button position must be between 1 and 3."
	case errors.Is(err, tickets.ErrRateLimited):
		return "You are creating tickets too quickly. Please wait a moment."
	case errors.Is(err, tickets.ErrConflict):
		return "The configuration changed concurrently, please retry."
	case errors.Is(err, tickets.ErrDelivery):
		return "Discord rejected the request. Check the bot's permissions."
	default:
		log.Printf("Unexpected ticket error: %v", err)
		return "An internal error occurred."
	}
}
