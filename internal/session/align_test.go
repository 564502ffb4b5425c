package session

import (
	"testing"

	"github.com/user/meetscribe/internal/audio"
)

func TestAssignSpeakerContainment(t *testing.T) {
	tests := []struct {
		name  string
		seg   audio.Segment
		turns []audio.Turn
		want  string
	}{
		{
			name: "segment straddling two turns stays unknown",
			seg:  audio.Segment{Start: 2, End: 5},
			turns: []audio.Turn{
				{Start: 0, End: 3, Speaker: "A"},
				{Start: 3, End: 6, Speaker: "B"},
			},
			want: audio.SpeakerUnknown,
		},
		{
			name:  "fully contained segment takes the turn speaker",
			seg:   audio.Segment{Start: 2, End: 5},
			turns: []audio.Turn{{Start: 1, End: 6, Speaker: "A"}},
			want:  "A",
		},
		{
			name: "exact boundary match counts as contained",
			seg:  audio.Segment{Start: 1, End: 6},
			turns: []audio.Turn{
				{Start: 1, End: 6, Speaker: "A"},
			},
			want: "A",
		},
		{
			name: "first containing turn wins",
			seg:  audio.Segment{Start: 2, End: 3},
			turns: []audio.Turn{
				{Start: 0, End: 10, Speaker: "A"},
				{Start: 1, End: 9, Speaker: "B"},
			},
			want: "A",
		},
		{
			name:  "no turns",
			seg:   audio.Segment{Start: 0, End: 1},
			turns: nil,
			want:  audio.SpeakerUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assignSpeaker(tt.seg, tt.turns); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlignBuildsRecords(t *testing.T) {
	segments := []audio.Segment{
		{Start: 0.0, End: 2.5, Text: " Hello everyone."},
		{Start: 2.5, End: 6.0, Text: " Let's get started."},
	}
	turns := []audio.Turn{
		{Start: 0.0, End: 3.0, Speaker: "SPEAKER_00"},
	}

	records := Align("meeting_x", segments, turns)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ConversationID != "meeting_x" {
		t.Errorf("unexpected conversation id %q", first.ConversationID)
	}
	if first.SpeakerID != "SPEAKER_00" {
		t.Errorf("expected SPEAKER_00, got %q", first.SpeakerID)
	}
	if first.Text != " Hello everyone." {
		t.Errorf("text not preserved verbatim: %q", first.Text)
	}
	if first.StartTime != 0.0 || first.EndTime != 2.5 {
		t.Errorf("times not preserved: %+v", first)
	}
	if first.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	// Second segment ends past the only turn, so it stays unknown.
	if records[1].SpeakerID != audio.SpeakerUnknown {
		t.Errorf("expected %q, got %q", audio.SpeakerUnknown, records[1].SpeakerID)
	}
}

func TestAlignEmptySegments(t *testing.T) {
	records := Align("meeting_x", nil, []audio.Turn{{Start: 0, End: 5, Speaker: "A"}})
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
