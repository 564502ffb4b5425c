package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestAppendWritesSpeakerLine(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf)

	f.Append("alice", "Hello there.")

	if !strings.Contains(buf.String(), "[alice] Hello there.") {
		t.Errorf("output missing transcript line: %q", buf.String())
	}
}

func TestBannerWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf)

	f.Banner("Recording started")

	if !strings.Contains(buf.String(), "Recording started") {
		t.Errorf("output missing banner: %q", buf.String())
	}
}

func TestColorStablePerSpeaker(t *testing.T) {
	f := New(&bytes.Buffer{})

	first := f.ColorFor("alice")
	f.ColorFor("bob")
	again := f.ColorFor("alice")

	if first != again {
		t.Errorf("speaker color changed: %q then %q", first, again)
	}
}

func TestColorsAssignedFirstSeen(t *testing.T) {
	f := New(&bytes.Buffer{})

	a := f.ColorFor("alice")
	b := f.ColorFor("bob")

	if a != palette[0] {
		t.Errorf("first speaker got %q, want %q", a, palette[0])
	}
	if b != palette[1] {
		t.Errorf("second speaker got %q, want %q", b, palette[1])
	}
}

func TestPaletteCyclesWhenExhausted(t *testing.T) {
	f := New(&bytes.Buffer{})

	for i := 0; i < len(palette); i++ {
		f.ColorFor(strings.Repeat("x", i+1))
	}
	wrapped := f.ColorFor("one-more")

	if wrapped != palette[0] {
		t.Errorf("expected palette to wrap to %q, got %q", palette[0], wrapped)
	}
}

func TestUnknownSpeakerGetsColor(t *testing.T) {
	f := New(&bytes.Buffer{})

	if c := f.ColorFor("Unknown"); c == "" {
		t.Error("expected a color for the Unknown speaker")
	}
}
