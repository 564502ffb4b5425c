package gemini

import (
	"context"
	"strings"
	"testing"

	"github.com/user/meetscribe/internal/audio"
)

func TestSummariseEmptyTranscript(t *testing.T) {
	g := &GeminiSummariser{}

	notes, err := g.Summarise(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(notes, "No transcript available") {
		t.Errorf("unexpected notes: %q", notes)
	}
}

func TestBuildTranscript(t *testing.T) {
	g := &GeminiSummariser{}

	records := []audio.Record{
		{SpeakerID: "SPEAKER_00", Text: " Hello everyone."},
		{SpeakerID: "Unknown", Text: "Good morning."},
	}

	got := g.buildTranscript(records)
	want := "[SPEAKER_00] Hello everyone.\n[Unknown] Good morning.\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildPromptIncludesTranscript(t *testing.T) {
	g := &GeminiSummariser{}

	prompt := g.buildPrompt("[SPEAKER_00] Hello.\n")
	if !strings.Contains(prompt, "[SPEAKER_00] Hello.") {
		t.Error("prompt missing transcript")
	}
	if !strings.Contains(prompt, "**MEETING NOTES:**") {
		t.Error("prompt missing notes marker")
	}
}
