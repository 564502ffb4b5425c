package session

import (
	"time"

	"github.com/user/meetscribe/internal/audio"
)

// Align builds one record per transcription segment, stamping each with the
// speaker whose diarization turn fully contains it. Segment order and text
// are preserved verbatim.
func Align(conversationID string, segments []audio.Segment, turns []audio.Turn) []audio.Record {
	records := make([]audio.Record, 0, len(segments))

	for _, seg := range segments {
		records = append(records, audio.Record{
			ConversationID: conversationID,
			SpeakerID:      assignSpeaker(seg, turns),
			StartTime:      seg.Start,
			EndTime:        seg.End,
			Text:           seg.Text,
			CreatedAt:      time.Now().UTC(),
		})
	}

	return records
}

// assignSpeaker returns the speaker of the first turn that fully contains
// the segment. A segment that straddles turn boundaries, or any segment when
// no turns are known, gets the Unknown sentinel.
func assignSpeaker(seg audio.Segment, turns []audio.Turn) string {
	for _, turn := range turns {
		if seg.Start >= turn.Start && seg.End <= turn.End {
			return turn.Speaker
		}
	}
	return audio.SpeakerUnknown
}
