package infra

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (ports.SummaryGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no GEMINI_API_KEY")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Complete(ctx context.Context, description string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SummaryPrompt}},
		},
		Temperature:     genai.Ptr[float32](summaryTemperature),
		TopP:            genai.Ptr[float32](summaryTopP),
		MaxOutputTokens: summaryMaxTokens,
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(sanitize(description)), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}
