package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/user/meetscribe/internal/audio"
	"github.com/user/meetscribe/internal/config"
)

// Sink persists aligned transcript records as the session produces them.
type Sink interface {
	Insert(ctx context.Context, rec *audio.Record) error
	Records(ctx context.Context, conversationID string) ([]audio.Record, error)
	Close(ctx context.Context) error
}

// New creates the sink selected by SINK_BACKEND.
func New(ctx context.Context, cfg *config.Config) (Sink, error) {
	switch cfg.SinkBackend {
	case "file":
		log.Info().Str("dir", cfg.DataDir).Msg("Using file sink")
		return NewFileStore(cfg.DataDir)
	case "mongo":
		log.Info().
			Str("database", cfg.MongoDatabase).
			Str("collection", cfg.MongoCollection).
			Msg("Using mongo sink")
		return NewMongoSink(ctx, cfg.MongoURL, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, fmt.Errorf("unknown sink backend: %s", cfg.SinkBackend)
	}
}

// FileStore appends records to one JSON-lines file per conversation under
// <baseDir>/transcripts.
type FileStore struct {
	baseDir string
}

func NewFileStore(baseDir string) (*FileStore, error) {
	transcriptDir := filepath.Join(baseDir, "transcripts")

	if err := os.MkdirAll(transcriptDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}

	return &FileStore{
		baseDir: baseDir,
	}, nil
}

func (s *FileStore) Insert(ctx context.Context, rec *audio.Record) error {
	path := s.transcriptPath(rec.ConversationID)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open transcript file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(rec); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	log.Debug().
		Str("conversation_id", rec.ConversationID).
		Str("speaker_id", rec.SpeakerID).
		Msg("Persisted record")

	return nil
}

func (s *FileStore) Records(ctx context.Context, conversationID string) ([]audio.Record, error) {
	file, err := os.Open(s.transcriptPath(conversationID))
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript file: %w", err)
	}
	defer file.Close()

	var records []audio.Record
	decoder := json.NewDecoder(file)

	for decoder.More() {
		var rec audio.Record
		if err := decoder.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

func (s *FileStore) transcriptPath(conversationID string) string {
	return filepath.Join(s.baseDir, "transcripts", fmt.Sprintf("%s.jsonl", conversationID))
}
