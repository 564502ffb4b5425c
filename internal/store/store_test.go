package store

import (
	"context"
	"testing"
	"time"

	"github.com/user/meetscribe/internal/audio"
	"github.com/user/meetscribe/internal/config"
)

func testRecord(conv, speaker, text string, start float64) *audio.Record {
	return &audio.Record{
		ConversationID: conv,
		SpeakerID:      speaker,
		StartTime:      start,
		EndTime:        start + 2.5,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	conv := "meeting_20240101120000"

	if err := fs.Insert(ctx, testRecord(conv, "SPEAKER_00", "Hello everyone.", 0)); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := fs.Insert(ctx, testRecord(conv, "SPEAKER_01", "Good morning.", 3.2)); err != nil {
		t.Fatalf("second insert failed: %v", err)
	}

	records, err := fs.Records(ctx, conv)
	if err != nil {
		t.Fatalf("failed to read records: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].SpeakerID != "SPEAKER_00" || records[0].Text != "Hello everyone." {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].SpeakerID != "SPEAKER_01" || records[1].StartTime != 3.2 {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestFileStoreSeparatesConversations(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	fs.Insert(ctx, testRecord("meeting_a", "SPEAKER_00", "one", 0))
	fs.Insert(ctx, testRecord("meeting_b", "SPEAKER_00", "two", 0))

	records, err := fs.Records(ctx, "meeting_a")
	if err != nil {
		t.Fatalf("failed to read records: %v", err)
	}
	if len(records) != 1 || records[0].Text != "one" {
		t.Errorf("expected only meeting_a records, got %+v", records)
	}
}

func TestFileStoreMissingConversation(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if _, err := fs.Records(context.Background(), "meeting_none"); err == nil {
		t.Fatal("expected error for unknown conversation, got nil")
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	cfg := &config.Config{SinkBackend: "redis"}

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown backend, got nil")
	}
}

func TestNewFileBackend(t *testing.T) {
	cfg := &config.Config{SinkBackend: "file", DataDir: t.TempDir()}

	sink, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to create file sink: %v", err)
	}
	defer sink.Close(context.Background())

	if _, ok := sink.(*FileStore); !ok {
		t.Errorf("expected *FileStore, got %T", sink)
	}
}
