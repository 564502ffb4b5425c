package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Markdown writes the session document as plain markdown.
type Markdown struct {
	dir string
}

func (m *Markdown) Export(conversationID, fullText string, actionItems, topics []string) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Transcript: %s\n\n", conversationID)

	if len(actionItems) > 0 {
		b.WriteString("## Action Items\n\n")
		for _, item := range actionItems {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}

	if len(topics) > 0 {
		b.WriteString("## Topics\n\n")
		b.WriteString(strings.Join(topics, ", "))
		b.WriteString("\n\n")
	}

	b.WriteString("## Full Transcript\n\n")
	b.WriteString(fullText)
	if !strings.HasSuffix(fullText, "\n") {
		b.WriteString("\n")
	}

	path := filepath.Join(m.dir, fmt.Sprintf("transcript_%s.md", conversationID))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}

	log.Info().
		Str("conversation_id", conversationID).
		Str("file", path).
		Msg("Exported markdown")

	return path, nil
}
