package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalDiscordEvents is the total number of interactions handled.
	TotalDiscordEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discord_events_total",
			Help: "Total number of Discord interactions handled",
		},
		[]string{"kind", "name"},
	)

	// DiscordCommandDuration is the duration of interaction handling.
	DiscordCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "discord_command_duration_seconds",
			Help: "Duration of Discord interaction handling",
		},
		[]string{"kind", "name"},
	)

	// TicketsOpened is the number of tickets opened.
	TicketsOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_opened_total",
			Help: "Total number of tickets opened",
		},
	)

	// TicketsClosed is the number of tickets closed.
	TicketsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_closed_total",
			Help: "Total number of tickets closed",
		},
	)

	// PanelsPosted is the number of panel messages posted.
	PanelsPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_panels_posted_total",
			Help: "Total number of ticket panel messages posted",
		},
	)

	// FailedInteractions is the number of interactions answered with a failure message.
	FailedInteractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discord_failed_interactions_total",
			Help: "Total number of interactions answered with a failure",
		},
		[]string{"name"},
	)
)
