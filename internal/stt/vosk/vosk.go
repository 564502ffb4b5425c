package vosk

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alphacep/vosk-api/go"
	"github.com/rs/zerolog/log"

	"github.com/user/meetscribe/internal/audio"
)

// Transcriber runs offline recognition with a local Vosk model. Word
// timings from the recognizer bound the single segment a chunk produces.
type Transcriber struct {
	model      *vosk.VoskModel
	recognizer *vosk.VoskRecognizer
	sampleRate int
}

type voskResult struct {
	Text   string     `json:"text"`
	Result []voskWord `json:"result"`
}

type voskWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Conf  float64 `json:"conf"`
}

func New(modelPath string, sampleRate int) (*Transcriber, error) {
	log.Info().Str("model_path", modelPath).Msg("Loading Vosk model")

	model, err := vosk.NewModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load Vosk model from %s: %w", modelPath, err)
	}

	recognizer, err := vosk.NewRecognizer(model, float64(sampleRate))
	if err != nil {
		model.Free()
		return nil, fmt.Errorf("failed to create Vosk recognizer: %w", err)
	}
	recognizer.SetWords(1)

	log.Info().Msg("Vosk model loaded")

	return &Transcriber{
		model:      model,
		recognizer: recognizer,
		sampleRate: sampleRate,
	}, nil
}

func (v *Transcriber) Transcribe(ctx context.Context, chunk *audio.Chunk) (*audio.Transcription, error) {
	if len(chunk.PCM) == 0 {
		return &audio.Transcription{}, nil
	}

	// Recognizer input is little-endian 16-bit PCM bytes
	pcmBytes := make([]byte, len(chunk.PCM)*2)
	for i, sample := range chunk.PCM {
		pcmBytes[i*2] = byte(sample)
		pcmBytes[i*2+1] = byte(sample >> 8)
	}

	if v.recognizer.AcceptWaveform(pcmBytes) == -1 {
		return nil, fmt.Errorf("failed to process audio chunk %d", chunk.Seq)
	}

	// FinalResult flushes and resets the recognizer, so chunks stay
	// independent of each other.
	jsonResult := v.recognizer.FinalResult()
	if jsonResult == "" {
		return &audio.Transcription{}, nil
	}

	var result voskResult
	if err := json.Unmarshal([]byte(jsonResult), &result); err != nil {
		log.Warn().
			Err(err).
			Str("json", jsonResult).
			Msg("Failed to parse Vosk result")
		return &audio.Transcription{}, nil
	}

	if result.Text == "" {
		return &audio.Transcription{}, nil
	}

	seg := audio.Segment{Start: 0, End: chunk.Duration(), Text: result.Text}
	if n := len(result.Result); n > 0 {
		seg.Start = result.Result[0].Start
		seg.End = result.Result[n-1].End
	}

	log.Debug().
		Str("chunk_id", chunk.ID.String()).
		Str("text", result.Text).
		Int("words", len(result.Result)).
		Msg("Vosk transcription completed")

	return &audio.Transcription{
		Segments: []audio.Segment{seg},
		FullText: result.Text,
	}, nil
}

func (v *Transcriber) Close() error {
	if v.recognizer != nil {
		v.recognizer.Free()
	}
	if v.model != nil {
		v.model.Free()
	}
	return nil
}
