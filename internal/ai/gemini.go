// README: Gemini-backed completion client (Google official SDK).
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.5-flash"

// GeminiClient implements Client on top of Google's Gemini models.
// Construct once at startup and reuse; the underlying client is safe for
// concurrent use.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient initializes the Gemini SDK. An empty apiKey returns a nil
// client without error; Complete then reports ErrUnavailable so the chat
// flow can degrade gracefully (the service boots without AI, as the admin
// surface must stay usable).
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(geminiModel),
	}, nil
}

// Close releases the underlying SDK resources.
func (g *GeminiClient) Close() {
	if g != nil && g.client != nil {
		g.client.Close()
	}
}

func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.model == nil {
		return "", ErrUnavailable
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}
