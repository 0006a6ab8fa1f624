package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ketomate/backend/internal/config"
)

// GeminiClient talks to the Gemini generateContent REST API. Text-only
// requests use the standard model, image requests the vision model.
type GeminiClient struct {
	apiKey      string
	baseURL     string
	model       string
	visionModel string
	client      *http.Client
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiClient(cfg *config.Config) *GeminiClient {
	return &GeminiClient{
		apiKey:      cfg.GeminiAPIKey,
		baseURL:     cfg.GeminiAPIURL,
		model:       cfg.GeminiModel,
		visionModel: cfg.GeminiVisionModel,
		client:      &http.Client{Timeout: cfg.AITimeout},
	}
}

// Prompt sends a text-only prompt and returns the raw model output.
func (g *GeminiClient) Prompt(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, g.model, []geminiPart{{Text: prompt}})
}

// PromptWithImage sends a prompt plus a base64-encoded image.
func (g *GeminiClient) PromptWithImage(ctx context.Context, prompt, mimeType, imageBase64 string) (string, error) {
	parts := []geminiPart{
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageBase64}},
		{Text: prompt},
	}
	return g.generate(ctx, g.visionModel, parts)
}

func (g *GeminiClient) generate(ctx context.Context, model string, parts []geminiPart) (string, error) {
	requestBody := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractJSON strips markdown fences and trims text around the outermost
// JSON object so the caller can unmarshal model output directly.
func ExtractJSON(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start != -1 && end != -1 && end > start {
		response = response[start : end+1]
	}

	return response
}
