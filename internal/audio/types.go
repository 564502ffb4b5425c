package audio

import (
	"time"

	"github.com/google/uuid"
)

// SpeakerUnknown labels segments that no diarization turn fully contains,
// and every segment when diarization is unavailable.
const SpeakerUnknown = "Unknown"

// Frame is one block of mono int16 samples delivered by the capture device.
// A frame is moved through the queue exactly once and never shared.
type Frame []int16

// Chunk represents a fixed-duration span of captured audio for processing
type Chunk struct {
	ID         uuid.UUID
	Seq        int
	PCM        []int16
	SampleRate int
}

// Duration returns the chunk length in seconds.
func (c *Chunk) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.PCM)) / float64(c.SampleRate)
}

// Segment is a time-stamped span of transcribed text, in seconds relative
// to the start of its chunk. Immutable once returned by a backend.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcription is the full transcription result for one chunk.
type Transcription struct {
	Segments []Segment
	FullText string
}

// Turn is a diarization speaker turn, in seconds relative to the start of
// its chunk. Turns are usually non-overlapping but nothing relies on that.
type Turn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Record is one persisted transcript row, one per aligned segment.
// Times are chunk-relative and stored verbatim; a record is never mutated
// after creation.
type Record struct {
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	SpeakerID      string    `json:"speaker_id" bson:"speaker_id"`
	StartTime      float64   `json:"start_time" bson:"start_time"`
	EndTime        float64   `json:"end_time" bson:"end_time"`
	Text           string    `json:"text" bson:"text"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
