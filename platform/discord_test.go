package platform

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"discord-tickets/tickets"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDeliveryFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown message",
			err:  &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMessage}},
			want: true,
		},
		{
			name: "missing permissions wrapped",
			err:  fmt.Errorf("send: %w", &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions}}),
			want: true,
		},
		{
			name: "not found status",
			err:  &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}},
			want: true,
		},
		{
			name: "server error",
			err:  &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusInternalServerError}},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDeliveryFailure(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	require.NoError(t, classify(nil))

	err := classify(&discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel}})
	require.ErrorIs(t, err, tickets.ErrDelivery)

	plain := errors.New("boom")
	require.Equal(t, plain, classify(plain))
}

func TestIsUnknownTarget(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown channel",
			err:  &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel}},
			want: true,
		},
		{
			name: "not found status",
			err:  &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}},
			want: true,
		},
		{
			name: "missing access",
			err: &discordgo.RESTError{
				Response: &http.Response{StatusCode: http.StatusForbidden},
				Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingAccess},
			},
			want: false,
		},
		{
			name: "forbidden status",
			err:  &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnknownTarget(tt.err))
		})
	}
}

func TestClassifyMissingAccessKeepsTarget(t *testing.T) {
	err := classify(&discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingAccess},
	})
	require.ErrorIs(t, err, tickets.ErrDelivery)
	assert.NotErrorIs(t, err, tickets.ErrUnknownTarget)

	gone := classify(&discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel}})
	require.ErrorIs(t, gone, tickets.ErrUnknownTarget)
	require.ErrorIs(t, gone, tickets.ErrDelivery)
}
