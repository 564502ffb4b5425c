// Package export renders finished sessions into shareable documents.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Exporter produces one document per session, named deterministically from
// the conversation id, and returns its path.
type Exporter interface {
	Export(conversationID, fullText string, actionItems, topics []string) (string, error)
}

// New creates the exporter selected by EXPORT_FORMAT. Documents are written
// under <baseDir>/exports.
func New(format, baseDir string) (Exporter, error) {
	dir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	switch format {
	case "pdf":
		return &PDF{dir: dir}, nil
	case "markdown":
		return &Markdown{dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
}

// WriteNotes saves generated meeting notes under <baseDir>/notes.
func WriteNotes(baseDir, conversationID, notes string) (string, error) {
	notesDir := filepath.Join(baseDir, "notes")
	if err := os.MkdirAll(notesDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create notes directory: %w", err)
	}

	path := filepath.Join(notesDir, fmt.Sprintf("%s.md", conversationID))
	if err := os.WriteFile(path, []byte(notes), 0644); err != nil {
		return "", fmt.Errorf("failed to write notes file: %w", err)
	}

	log.Info().
		Str("conversation_id", conversationID).
		Str("file", path).
		Int("size", len(notes)).
		Msg("Saved notes")

	return path, nil
}
