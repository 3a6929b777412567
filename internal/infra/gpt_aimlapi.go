package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Vovarama1992/reels-analyzer/internal/ports"
)

const (
	DefaultAIMLAPIURL   = "https://api.aimlapi.com/v1/chat/completions"
	DefaultAIMLAPIModel = "meta-llama/Llama-3.2-3B-Instruct-Turbo"
)

// SummaryPrompt is the system prompt shared by every provider.
const SummaryPrompt = "You are an expert in analyzing Instagram Reels. Given a caption or video description, extract:\n" +
	"- title (short summary of the post)\n" +
	"- description (one-paragraph description of the scene)\n" +
	"- tags (list of 3–5 relevant hashtags without the # symbol)\n" +
	"- location (human-readable name)\n" +
	"- geocode (object with lat and lng as float numbers)\n\n" +
	"Respond ONLY in this exact JSON format:\n" +
	"{\n" +
	"  \"title\": \"...\",\n" +
	"  \"description\": \"...\",\n" +
	"  \"tags\": [\"tag1\", \"tag2\"],\n" +
	"  \"location\": \"...\",\n" +
	"  \"geocode\": { \"lat\": 22.123, \"lng\": 114.456 }\n" +
	"}"

const (
	summaryTemperature = 0.7
	summaryTopP        = 0.9
	summaryMaxTokens   = 512

	maxLLMResponseBytes = 1 << 20
)

type AIMLClient struct {
	apiKey string
	url    string
	model  string
	client *http.Client
}

func NewAIMLClient(apiKey, url, model string, client *http.Client) ports.SummaryGenerator {
	if url == "" {
		url = DefaultAIMLAPIURL
	}
	if model == "" {
		model = DefaultAIMLAPIModel
	}
	return &AIMLClient{apiKey: apiKey, url: url, model: model, client: client}
}

// sanitize drops broken UTF-8
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "")
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *AIMLClient) Complete(ctx context.Context, description string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("no AIMLAPI_KEY")
	}

	body := chatRequest{
		Model:       g.model,
		Temperature: summaryTemperature,
		TopP:        summaryTopP,
		MaxTokens:   summaryMaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: SummaryPrompt},
			{Role: "user", Content: sanitize(description)},
		},
	}

	j, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(j))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	rawResp, err := io.ReadAll(io.LimitReader(resp.Body, maxLLMResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm http %d: %s", resp.StatusCode, trim(string(rawResp), 300))
	}

	var out chatResponse
	if err := json.Unmarshal(rawResp, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}

	return out.Choices[0].Message.Content, nil
}
