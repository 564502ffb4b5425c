package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/user/meetscribe/internal/audio"
	"github.com/user/meetscribe/internal/catalog"
	"github.com/user/meetscribe/internal/export"
	"github.com/user/meetscribe/internal/notes"
	"github.com/user/meetscribe/internal/store"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <conversation-id>",
	Short: "Re-export the document for a stored session",
	Long: `Re-export rebuilds the session document from the persisted records,
with one speaker-attributed line per record, and recomputes action items and
topics from that text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		conversationID := args[0]

		ctx := context.Background()

		sink, err := store.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer sink.Close(ctx)

		records, err := sink.Records(ctx, conversationID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no records found for %s", conversationID)
		}

		format := cfg.ExportFormat
		if exportFormat != "" {
			format = exportFormat
		}

		exporter, err := export.New(format, cfg.DataDir)
		if err != nil {
			return err
		}

		fullText := rebuildFullText(records)
		actionItems := notes.ExtractActionItems(fullText, cfg.ActionKeywords)
		topics := notes.ExtractTopics(fullText, cfg.TopNTopics)

		path, err := exporter.Export(conversationID, fullText, actionItems, topics)
		if err != nil {
			return err
		}

		if cat, err := catalog.Open(filepath.Join(cfg.DataDir, "catalog.db")); err == nil {
			if err := cat.UpdateExportPath(conversationID, path); err != nil {
				log.Warn().Err(err).Msg("Failed to update catalog")
			}
			cat.Close()
		}

		fmt.Println(path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "override EXPORT_FORMAT (pdf or markdown)")
	rootCmd.AddCommand(exportCmd)
}

// rebuildFullText reassembles the transcript from stored records, one
// speaker-attributed line per record.
func rebuildFullText(records []audio.Record) string {
	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "[%s] %s\n", rec.SpeakerID, strings.TrimSpace(rec.Text))
	}
	return b.String()
}
