package whisperd

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

// Client transcribes chunks against a self-hosted Whisper HTTP server.
type Client struct {
	baseURL string
	httpc   *http.Client
}

type response struct {
	Text     string `json:"text"`
	Segments []struct {
		ID    int     `json:"id"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

func (c *Client) Transcribe(ctx context.Context, chunk *audio.Chunk) (*audio.Transcription, error) {
	if len(chunk.PCM) == 0 {
		return &audio.Transcription{}, nil
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
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart request: %w", err)
	}

	endpoint := c.baseURL + "/transcribe"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisperd request failed: %w", err)
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
			Str("url", endpoint).
			Msg("whisperd error response")
		return nil, fmt.Errorf("whisperd error %d: %s", resp.StatusCode, string(body))
	}

	var result response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	tr := &audio.Transcription{
		FullText: strings.TrimSpace(result.Text),
	}
	for _, seg := range result.Segments {
		tr.Segments = append(tr.Segments, audio.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	log.Debug().
		Str("chunk_id", chunk.ID.String()).
		Int("segments", len(tr.Segments)).
		Msg("whisperd transcription completed")

	return tr, nil
}

func (c *Client) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}
