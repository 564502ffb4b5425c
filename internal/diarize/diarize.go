package diarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/user/meetscribe/internal/audio"
)

// Diarizer labels speaker turns within an audio chunk. An unavailable
// diarizer is a supported degraded mode: every segment then falls back to
// the sentinel speaker.
type Diarizer interface {
	Diarize(ctx context.Context, chunk *audio.Chunk) ([]audio.Turn, error)
	Available() bool
}

// New returns the HTTP diarizer for serviceURL, or the no-op diarizer when
// no URL is configured.
func New(serviceURL string) Diarizer {
	if serviceURL == "" {
		log.Warn().Msg("Diarization not configured, speakers will be labeled Unknown")
		return Noop{}
	}
	return &Client{
		baseURL: strings.TrimRight(serviceURL, "/"),
		httpc:   &http.Client{},
	}
}

// Noop stands in when no diarization service is configured.
type Noop struct{}

func (Noop) Diarize(ctx context.Context, chunk *audio.Chunk) ([]audio.Turn, error) {
	return nil, nil
}

func (Noop) Available() bool { return false }

// Client calls a pyannote-style HTTP diarization service.
type Client struct {
	baseURL string
	httpc   *http.Client
}

type diarizeResponse struct {
	Turns []struct {
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
		Speaker string  `json:"speaker"`
	} `json:"turns"`
}

func (c *Client) Available() bool { return true }

func (c *Client) Diarize(ctx context.Context, chunk *audio.Chunk) ([]audio.Turn, error) {
	if len(chunk.PCM) == 0 {
		return nil, nil
	}

	wavData, err := audio.EncodeWAV(chunk.PCM, chunk.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chunk as WAV: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fmt.Sprintf("chunk_%d.wav", chunk.Seq))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}
	if _, err := part.Write(wavData); err != nil {
		return nil, fmt.Errorf("failed to write audio payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart request: %w", err)
	}

	endpoint := c.baseURL + "/diarize"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diarization request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("diarization service error %d: %s", resp.StatusCode, string(body))
	}

	var result diarizeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	turns := make([]audio.Turn, 0, len(result.Turns))
	for _, t := range result.Turns {
		turns = append(turns, audio.Turn{Start: t.Start, End: t.End, Speaker: t.Speaker})
	}

	log.Debug().
		Str("chunk_id", chunk.ID.String()).
		Int("turns", len(turns)).
		Msg("Diarization completed")

	return turns, nil
}
