package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/user/meetscribe/internal/audio"
)

const defaultBaseURL = "https://api.deepgram.com"

// Transcriber calls the Deepgram pre-recorded listen API over plain HTTP.
type Transcriber struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
		Utterances []struct {
			Start      float64 `json:"start"`
			End        float64 `json:"end"`
			Transcript string  `json:"transcript"`
		} `json:"utterances"`
	} `json:"results"`
}

func New(apiKey, model string) *Transcriber {
	return &Transcriber{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{},
	}
}

func (d *Transcriber) Transcribe(ctx context.Context, chunk *audio.Chunk) (*audio.Transcription, error) {
	if len(chunk.PCM) == 0 {
		return &audio.Transcription{}, nil
	}

	wavData, err := audio.EncodeWAV(chunk.PCM, chunk.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chunk as WAV: %w", err)
	}

	params := url.Values{}
	if d.model != "" {
		params.Set("model", d.model)
	}
	params.Set("punctuate", "true")
	params.Set("utterances", "true")
	params.Set("smart_format", "true")
	params.Set("language", "en")

	fullURL := d.baseURL + "/v1/listen?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(wavData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := d.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Deepgram API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().
			Int("status_code", resp.StatusCode).
			Str("response_body", string(body)).
			Msg("Deepgram API error response")
		return nil, fmt.Errorf("Deepgram API error %d: %s", resp.StatusCode, string(body))
	}

	var result listenResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	tr := &audio.Transcription{}
	if len(result.Results.Channels) > 0 && len(result.Results.Channels[0].Alternatives) > 0 {
		tr.FullText = result.Results.Channels[0].Alternatives[0].Transcript
	}

	for _, utt := range result.Results.Utterances {
		if utt.Transcript == "" {
			continue
		}
		tr.Segments = append(tr.Segments, audio.Segment{
			Start: utt.Start,
			End:   utt.End,
			Text:  utt.Transcript,
		})
	}

	// Older projects without utterances still return the channel
	// transcript; fall back to one whole-chunk segment.
	if len(tr.Segments) == 0 && tr.FullText != "" {
		tr.Segments = append(tr.Segments, audio.Segment{
			Start: 0,
			End:   chunk.Duration(),
			Text:  tr.FullText,
		})
	}

	log.Debug().
		Str("chunk_id", chunk.ID.String()).
		Int("segments", len(tr.Segments)).
		Msg("Deepgram transcription completed")

	return tr, nil
}

func (d *Transcriber) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}
