package diarize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/user/meetscribe/internal/audio"
)

func testChunk() *audio.Chunk {
	return &audio.Chunk{
		ID:         uuid.New(),
		Seq:        0,
		PCM:        make([]int16, 1600),
		SampleRate: 16000,
	}
}

func TestNewReturnsNoopWithoutURL(t *testing.T) {
	d := New("")
	if d.Available() {
		t.Error("expected noop diarizer to be unavailable")
	}
	turns, err := d.Diarize(context.Background(), testChunk())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turns != nil {
		t.Errorf("expected nil turns, got %v", turns)
	}
}

func TestNewReturnsClientWithURL(t *testing.T) {
	d := New("http://localhost:9000/")
	if !d.Available() {
		t.Error("expected client diarizer to be available")
	}
	c, ok := d.(*Client)
	if !ok {
		t.Fatalf("expected *Client, got %T", d)
	}
	if c.baseURL != "http://localhost:9000" {
		t.Errorf("expected trailing slash to be trimmed, got %q", c.baseURL)
	}
}

func TestDiarizeParsesTurns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/diarize" {
			t.Errorf("expected /diarize path, got %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		file.Close()
		if header.Filename != "chunk_0.wav" {
			t.Errorf("expected filename chunk_0.wav, got %q", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"turns":[{"start":0.0,"end":4.2,"speaker":"SPEAKER_00"},{"start":4.2,"end":9.8,"speaker":"SPEAKER_01"}]}`))
	}))
	defer srv.Close()

	d := New(srv.URL)
	turns, err := d.Diarize(context.Background(), testChunk())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Speaker != "SPEAKER_00" || turns[0].Start != 0.0 || turns[0].End != 4.2 {
		t.Errorf("unexpected first turn: %+v", turns[0])
	}
	if turns[1].Speaker != "SPEAKER_01" || turns[1].Start != 4.2 || turns[1].End != 9.8 {
		t.Errorf("unexpected second turn: %+v", turns[1])
	}
}

func TestDiarizeServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := New(srv.URL)
	if _, err := d.Diarize(context.Background(), testChunk()); err == nil {
		t.Fatal("expected error for 500 response, got nil")
	}
}

func TestDiarizeSkipsEmptyChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty chunk")
	}))
	defer srv.Close()

	d := New(srv.URL)
	turns, err := d.Diarize(context.Background(), &audio.Chunk{ID: uuid.New(), SampleRate: 16000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turns != nil {
		t.Errorf("expected nil turns, got %v", turns)
	}
}
