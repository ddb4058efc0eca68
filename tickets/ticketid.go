package tickets

import (
	"fmt"
	"strconv"
)

// GetTicketID folds a channel snowflake into [0, 1023] for display.
// Collisions are accepted; the channel ID stays the real key.
func GetTicketID(channelID uint64) uint64 {
	return (channelID & 0x3FF) ^ ((channelID >> 10) & 0x3FF)
}

// ChannelName returns the display name of a ticket channel.
func ChannelName(channelID string) (string, error) {
	id, err := strconv.ParseUint(channelID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid channel ID %q: %w", channelID, err)
	}
	return fmt.Sprintf("ticket-%d", GetTicketID(id)), nil
}
