// Package session runs the live transcription pipeline from microphone to
// exported document.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/user/meetscribe/internal/audio"
	"github.com/user/meetscribe/internal/capture"
	"github.com/user/meetscribe/internal/diarize"
	"github.com/user/meetscribe/internal/display"
	"github.com/user/meetscribe/internal/export"
	"github.com/user/meetscribe/internal/notes"
	"github.com/user/meetscribe/internal/store"
	"github.com/user/meetscribe/internal/stt"
)

// Options carries the collaborators and tuning for one session.
type Options struct {
	SampleRate     int
	ChunkSeconds   int
	TopNTopics     int
	ActionKeywords []string

	Source      capture.Source
	Transcriber stt.Transcriber
	Diarizer    diarize.Diarizer
	Sink        store.Sink
	View        display.View
	Exporter    export.Exporter
}

// Result summarizes a finished session.
type Result struct {
	ConversationID string
	StartedAt      time.Time
	EndedAt        time.Time
	FullText       string
	ActionItems    []string
	Topics         []string
	ExportPath     string
	Chunks         int
	Records        int
}

// Session owns one recording-to-export lifecycle.
type Session struct {
	ConversationID string

	opts Options

	// Audio pipeline
	queue *audio.FrameQueue
	acc   *audio.Accumulator

	// Control
	state          stateVar
	captureStopped atomic.Bool

	// Processing flow state, touched only by the process loop
	transcript strings.Builder
	chunks     int
	records    int
	result     Result

	// Poll intervals, shortened in tests
	capturePoll time.Duration
	queuePoll   time.Duration
}

func New(opts Options) *Session {
	return &Session{
		ConversationID: NewConversationID(time.Now()),
		opts:           opts,
		queue:          audio.NewFrameQueue(),
		acc:            audio.NewAccumulator(opts.ChunkSeconds, opts.SampleRate),
		capturePoll:    time.Second,
		queuePoll:      200 * time.Millisecond,
	}
}

// NewConversationID derives the conversation id from the session start time.
func NewConversationID(t time.Time) string {
	return fmt.Sprintf("meeting_%s", t.UTC().Format("20060102150405"))
}

// State reports the current lifecycle phase.
func (s *Session) State() State {
	return s.state.get()
}

// Run drives the session until Stop is called or ctx is cancelled, then
// drains the queue, finalizes and returns the result. Cancelling ctx is a
// graceful stop: buffered audio is still transcribed and exported.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	startedAt := time.Now().UTC()

	log.Info().
		Str("conversation_id", s.ConversationID).
		Int("sample_rate", s.opts.SampleRate).
		Int("chunk_seconds", s.opts.ChunkSeconds).
		Bool("diarization", s.opts.Diarizer.Available()).
		Msg("Session started")
	s.opts.View.Banner("Starting real-time transcription...")

	if err := s.opts.Source.Start(s.handleFrame); err != nil {
		return nil, fmt.Errorf("failed to start audio source: %w", err)
	}

	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-watchDone:
		}
	}()

	g := new(errgroup.Group)
	g.Go(s.captureLoop)
	g.Go(func() error {
		s.processLoop(startedAt)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &s.result, nil
}

// Stop requests shutdown. The first call moves the session to stopping;
// repeated calls are no-ops.
func (s *Session) Stop() {
	if !s.state.advance(StateStopping) {
		return
	}

	log.Info().
		Str("conversation_id", s.ConversationID).
		Msg("Stop requested")
	s.opts.View.Banner("Recording stopped. Draining buffered audio...")
}

// handleFrame is the capture callback. It only enqueues, so the device
// callback never blocks on downstream work.
func (s *Session) handleFrame(f audio.Frame) {
	s.queue.Push(f)
}

// captureLoop keeps the audio source alive until a stop is requested, then
// shuts it down and marks the queue as closed for draining.
func (s *Session) captureLoop() error {
	defer log.Debug().Str("conversation_id", s.ConversationID).Msg("Capture loop stopped")

	ticker := time.NewTicker(s.capturePoll)
	defer ticker.Stop()

	for range ticker.C {
		if s.state.get() < StateStopping {
			continue
		}

		if err := s.opts.Source.Stop(); err != nil {
			log.Warn().
				Str("conversation_id", s.ConversationID).
				Err(err).
				Msg("Failed to stop audio source")
		}
		s.captureStopped.Store(true)
		s.state.advance(StateDraining)

		log.Info().
			Str("conversation_id", s.ConversationID).
			Int("queued_frames", s.queue.Len()).
			Msg("Audio capture stopped, draining queue")
		return nil
	}
	return nil
}

// processLoop consumes frames until capture has stopped and the queue is
// empty, flushes the trailing partial chunk, then finalizes.
func (s *Session) processLoop(startedAt time.Time) {
	defer log.Debug().Str("conversation_id", s.ConversationID).Msg("Process loop stopped")

	for {
		frame, ok := s.queue.PopWait(s.queuePoll)
		if ok {
			if chunk := s.acc.Add(frame); chunk != nil {
				s.processChunk(chunk)
			}
			continue
		}
		// The wait expired on an empty queue. Once capture has stopped
		// nothing can arrive anymore, so the drain is complete.
		if s.captureStopped.Load() {
			break
		}
	}

	if chunk := s.acc.Flush(); chunk != nil {
		s.processChunk(chunk)
	}

	s.finalize(startedAt)
}

// processChunk runs one chunk through transcription, diarization, alignment,
// persistence and display. Adapter calls use a fresh context so that chunks
// drained after the run context was cancelled are still transcribed.
func (s *Session) processChunk(chunk *audio.Chunk) {
	s.chunks++
	ctx := context.Background()

	result, err := s.opts.Transcriber.Transcribe(ctx, chunk)
	if err != nil {
		log.Error().
			Str("conversation_id", s.ConversationID).
			Str("chunk_id", chunk.ID.String()).
			Int("chunk_seq", chunk.Seq).
			Err(err).
			Msg("Transcription failed, skipping chunk")
		return
	}

	s.transcript.WriteString(result.FullText + "\n")

	var turns []audio.Turn
	if s.opts.Diarizer.Available() {
		turns, err = s.opts.Diarizer.Diarize(ctx, chunk)
		if err != nil {
			log.Warn().
				Str("conversation_id", s.ConversationID).
				Str("chunk_id", chunk.ID.String()).
				Err(err).
				Msg("Diarization failed, labeling chunk Unknown")
			turns = nil
		}
	}

	records := Align(s.ConversationID, result.Segments, turns)
	for i := range records {
		rec := &records[i]

		if err := s.opts.Sink.Insert(ctx, rec); err != nil {
			log.Error().
				Str("conversation_id", s.ConversationID).
				Str("chunk_id", chunk.ID.String()).
				Err(err).
				Msg("Failed to persist record")
		}

		s.opts.View.Append(rec.SpeakerID, rec.Text)
		s.records++
	}

	log.Debug().
		Str("conversation_id", s.ConversationID).
		Str("chunk_id", chunk.ID.String()).
		Int("chunk_seq", chunk.Seq).
		Int("segments", len(result.Segments)).
		Int("turns", len(turns)).
		Msg("Processed chunk")
}

// finalize computes action items and topics from the full transcript,
// exports the session document and records the result. Export failure is
// logged; the session still reaches done.
func (s *Session) finalize(startedAt time.Time) {
	s.state.advance(StateFinalizing)

	log.Info().
		Str("conversation_id", s.ConversationID).
		Int("chunks", s.chunks).
		Int("records", s.records).
		Msg("Finalizing session")

	fullText := s.transcript.String()
	actionItems := notes.ExtractActionItems(fullText, s.opts.ActionKeywords)
	topics := notes.ExtractTopics(fullText, s.opts.TopNTopics)

	var exportPath string
	path, err := s.opts.Exporter.Export(s.ConversationID, fullText, actionItems, topics)
	if err != nil {
		log.Error().
			Str("conversation_id", s.ConversationID).
			Err(err).
			Msg("Export failed")
	} else {
		exportPath = path
		s.opts.View.Banner("Transcript exported to " + path)
	}

	s.result = Result{
		ConversationID: s.ConversationID,
		StartedAt:      startedAt,
		EndedAt:        time.Now().UTC(),
		FullText:       fullText,
		ActionItems:    actionItems,
		Topics:         topics,
		ExportPath:     exportPath,
		Chunks:         s.chunks,
		Records:        s.records,
	}
	s.state.advance(StateDone)

	log.Info().
		Str("conversation_id", s.ConversationID).
		Str("state", s.state.get().String()).
		Msg("Session complete")
}
