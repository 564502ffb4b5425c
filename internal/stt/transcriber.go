package stt

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/user/meetscribe/internal/audio"
	"github.com/user/meetscribe/internal/config"
	"github.com/user/meetscribe/internal/stt/deepgram"
	"github.com/user/meetscribe/internal/stt/openai"
	"github.com/user/meetscribe/internal/stt/vosk"
	"github.com/user/meetscribe/internal/stt/whisperd"
)

// Transcriber converts one audio chunk into time-stamped segments plus the
// chunk's full text. Calls are synchronous and may be slow; the pipeline
// feeds chunks one at a time.
type Transcriber interface {
	Transcribe(ctx context.Context, chunk *audio.Chunk) (*audio.Transcription, error)
	Close() error
}

// New builds the transcriber selected by cfg.STTBackend.
func New(cfg *config.Config) (Transcriber, error) {
	switch cfg.STTBackend {
	case "whisperd":
		log.Info().Str("url", cfg.WhisperdURL).Msg("Using whisperd STT backend")
		return whisperd.New(cfg.WhisperdURL), nil
	case "deepgram":
		log.Info().Str("model", cfg.DeepgramModel).Msg("Using Deepgram STT backend")
		return deepgram.New(cfg.DeepgramAPIKey, cfg.DeepgramModel), nil
	case "openai":
		log.Info().Str("model", cfg.OpenAISTTModel).Msg("Using OpenAI STT backend")
		return openai.New(cfg.OpenAIAPIKey, cfg.OpenAISTTModel), nil
	case "vosk":
		log.Info().Str("model_path", cfg.VoskModelPath).Msg("Using Vosk STT backend")
		return vosk.New(cfg.VoskModelPath, cfg.SampleRate)
	default:
		return nil, fmt.Errorf("unsupported STT backend: %s", cfg.STTBackend)
	}
}
