package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/user/meetscribe/internal/capture"
	"github.com/user/meetscribe/internal/catalog"
	"github.com/user/meetscribe/internal/config"
	"github.com/user/meetscribe/internal/diarize"
	"github.com/user/meetscribe/internal/display"
	"github.com/user/meetscribe/internal/export"
	"github.com/user/meetscribe/internal/session"
	"github.com/user/meetscribe/internal/store"
	"github.com/user/meetscribe/internal/stt"
	"github.com/user/meetscribe/internal/summariser/gemini"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Record and transcribe a meeting until interrupted",
	RunE:  runSession,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	transcriber, err := stt.New(cfg)
	if err != nil {
		return err
	}
	defer transcriber.Close()

	sink, err := store.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer sink.Close(ctx)

	exporter, err := export.New(cfg.ExportFormat, cfg.DataDir)
	if err != nil {
		return err
	}

	s := session.New(session.Options{
		SampleRate:     cfg.SampleRate,
		ChunkSeconds:   cfg.ChunkSeconds,
		TopNTopics:     cfg.TopNTopics,
		ActionKeywords: cfg.ActionKeywords,
		Source:         capture.NewMic(cfg.SampleRate),
		Transcriber:    transcriber,
		Diarizer:       diarize.New(cfg.DiarizeURL),
		Sink:           sink,
		View:           display.New(os.Stdout),
		Exporter:       exporter,
	})

	// First interrupt stops gracefully and drains; a second one aborts.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		log.Info().Msg("Interrupt received, stopping session")
		s.Stop()
		<-sigc
		log.Warn().Msg("Second interrupt, aborting without export")
		os.Exit(1)
	}()

	log.Info().
		Str("conversation_id", s.ConversationID).
		Msg("Recording. Press Ctrl+C to stop.")

	res, err := s.Run(ctx)
	if err != nil {
		return err
	}

	writeNotes(ctx, cfg, sink, res)
	saveCatalogEntry(cfg, res)

	log.Info().
		Str("conversation_id", res.ConversationID).
		Int("chunks", res.Chunks).
		Int("records", res.Records).
		Str("export", res.ExportPath).
		Msg("Session finished")

	return nil
}

// writeNotes generates LLM meeting notes from the persisted records. Notes
// are best-effort; any failure is logged and the session result stands.
func writeNotes(ctx context.Context, cfg *config.Config, sink store.Sink, res *session.Result) {
	if cfg.GenAIAPIKey == "" {
		log.Debug().Msg("GENAI_API_KEY not set, skipping meeting notes")
		return
	}

	summariser, err := gemini.NewGeminiSummariser(cfg.GenAIAPIKey, cfg.GenAIModel)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create summariser")
		return
	}
	defer summariser.Close()

	records, err := sink.Records(ctx, res.ConversationID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load records for notes")
		return
	}

	notes, err := summariser.Summarise(ctx, records)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate meeting notes")
		return
	}

	if _, err := export.WriteNotes(cfg.DataDir, res.ConversationID, notes); err != nil {
		log.Error().Err(err).Msg("Failed to save meeting notes")
	}
}

func saveCatalogEntry(cfg *config.Config, res *session.Result) {
	cat, err := catalog.Open(filepath.Join(cfg.DataDir, "catalog.db"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to open session catalog")
		return
	}
	defer cat.Close()

	err = cat.Save(catalog.Entry{
		ConversationID: res.ConversationID,
		StartedAt:      res.StartedAt,
		EndedAt:        res.EndedAt,
		Chunks:         res.Chunks,
		Records:        res.Records,
		ExportPath:     res.ExportPath,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to record session in catalog")
	}
}
