package audio

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Accumulator assembles dequeued frames into fixed-duration chunks. Frames
// are appended whole, so a chunk may exceed the target sample count when
// frame sizes do not divide it evenly; only the final chunk of a session
// may be shorter. The accumulator is owned by the processing flow and is
// not safe for concurrent use.
type Accumulator struct {
	sampleRate   int
	chunkSamples int

	buf []int16
	seq int
}

func NewAccumulator(chunkSeconds, sampleRate int) *Accumulator {
	return &Accumulator{
		sampleRate:   sampleRate,
		chunkSamples: chunkSeconds * sampleRate,
	}
}

// Add appends one frame in arrival order. It returns a completed chunk once
// the buffered sample count reaches the chunk size, nil otherwise.
func (a *Accumulator) Add(f Frame) *Chunk {
	a.buf = append(a.buf, f...)
	if len(a.buf) < a.chunkSamples {
		return nil
	}
	return a.cut()
}

// Flush returns the trailing partial chunk at end of session, or nil when
// no samples remain buffered.
func (a *Accumulator) Flush() *Chunk {
	if len(a.buf) == 0 {
		return nil
	}
	return a.cut()
}

// Pending reports the number of buffered samples not yet cut into a chunk.
func (a *Accumulator) Pending() int {
	return len(a.buf)
}

func (a *Accumulator) cut() *Chunk {
	chunk := &Chunk{
		ID:         uuid.New(),
		Seq:        a.seq,
		PCM:        a.buf,
		SampleRate: a.sampleRate,
	}
	a.buf = nil
	a.seq++

	log.Debug().
		Str("chunk_id", chunk.ID.String()).
		Int("chunk_seq", chunk.Seq).
		Int("samples", len(chunk.PCM)).
		Float64("seconds", chunk.Duration()).
		Msg("Assembled audio chunk")

	return chunk
}
