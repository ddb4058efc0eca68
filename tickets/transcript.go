package tickets

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const transcriptTimeLayout = "2006-01-02 15:04:05"

// RenderTranscript renders messages, oldest first, as "[timestamp] author: content" lines.
func RenderTranscript(messages []*discordgo.Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		author := "unknown"
		if m.Author != nil {
			author = m.Author.Username
		}
		content := m.Content
		for _, a := range m.Attachments {
			if content != "" {
				content += " "
			}
			content += "[attachment: " + a.URL + "]"
		}
		fmt.Fprintf(&b, "[%s] %s: %s", m.Timestamp.UTC().Format(transcriptTimeLayout), author, content)
	}
	return b.String()
}

// TranscriptFileName is the attachment name used in the log channel.
func TranscriptFileName(now time.Time, channelName string) string {
	return fmt.Sprintf("%s-%s.txt", now.Format("20060102-150405"), channelName)
}
