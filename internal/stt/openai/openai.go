package openai

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openaigo "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	"github.com/user/meetscribe/internal/audio"
)

// Transcriber sends chunks to the OpenAI transcription API. The API
// returns plain text only, so each chunk yields a single segment spanning
// the whole chunk, in the same way a single-utterance backend would.
type Transcriber struct {
	client *openaigo.Client
	model  string
}

func New(apiKey, model string) *Transcriber {
	client := openaigo.NewClient(option.WithAPIKey(apiKey))
	return &Transcriber{
		client: &client,
		model:  model,
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, chunk *audio.Chunk) (*audio.Transcription, error) {
	if len(chunk.PCM) == 0 {
		return &audio.Transcription{}, nil
	}

	wavData, err := audio.EncodeWAV(chunk.PCM, chunk.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chunk as WAV: %w", err)
	}

	params := openaigo.AudioTranscriptionNewParams{
		Model: openaigo.AudioModel(t.model),
		File:  openaigo.File(bytes.NewReader(wavData), fmt.Sprintf("chunk_%d.wav", chunk.Seq), "audio/wav"),
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI transcription request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return &audio.Transcription{}, nil
	}

	log.Debug().
		Str("chunk_id", chunk.ID.String()).
		Int("text_length", len(text)).
		Msg("OpenAI transcription completed")

	return &audio.Transcription{
		Segments: []audio.Segment{{Start: 0, End: chunk.Duration(), Text: text}},
		FullText: text,
	}, nil
}

func (t *Transcriber) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}
