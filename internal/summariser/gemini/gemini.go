package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/user/meetscribe/internal/audio"
)

type GeminiSummariser struct {
	client *genai.Client
	model  string
}

func NewGeminiSummariser(apiKey, model string) (*GeminiSummariser, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSummariser{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiSummariser) Summarise(ctx context.Context, records []audio.Record) (string, error) {
	if len(records) == 0 {
		return "# Meeting Notes\n\nNo transcript available.", nil
	}

	transcript := g.buildTranscript(records)
	prompt := g.buildPrompt(transcript)

	genModel := g.client.GenerativeModel(g.model)
	resp, err := genModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no summary generated")
	}

	var summary strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			summary.WriteString(string(text))
		}
	}

	log.Info().
		Int("records", len(records)).
		Int("summary_length", summary.Len()).
		Msg("Generated meeting summary")

	return summary.String(), nil
}

func (g *GeminiSummariser) buildTranscript(records []audio.Record) string {
	var transcript strings.Builder

	for _, rec := range records {
		transcript.WriteString(fmt.Sprintf("[%s] %s\n", rec.SpeakerID, strings.TrimSpace(rec.Text)))
	}

	return transcript.String()
}

func (g *GeminiSummariser) buildPrompt(transcript string) string {
	return fmt.Sprintf(`You are a meeting notetaker. Be concise but comprehensive. Given a diarized transcript, produce:

1) **Summary** - bullet point summary (max 12 bullets)
2) **Decisions** - key decisions made during the meeting
3) **Action Items** - tasks with assignee (if mentioned) and due date (if stated)
4) **Open Questions** - unresolved questions or topics

Format the output as clean Markdown.

**TRANSCRIPT:**
%s

**MEETING NOTES:**`, transcript)
}

func (g *GeminiSummariser) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
