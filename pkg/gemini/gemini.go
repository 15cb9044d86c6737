package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Generate generates content based on the prompt.
func (g *geminiImpl) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini: rate limiter: %w", err)
	}

	url, headers, err := g.endpoint()
	if err != nil {
		return "", err
	}

	req := Request{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
	}
	if g.temperature > 0 {
		req.GenerationConfig = &GenerationConfig{Temperature: g.temperature}
	}

	body, statusCode, err := g.httpClient.Post(ctx, url, req, headers)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	if statusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: API returned status %d", statusCode)
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal Gemini response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

// endpoint resolves the URL and auth headers for the configured mode.
func (g *geminiImpl) endpoint() (string, map[string]string, error) {
	if g.apiKey != "" {
		return fmt.Sprintf("%s/%s:generateContent?key=%s", BaseURL, g.model, g.apiKey), nil, nil
	}

	token, err := g.tokens.Token()
	if err != nil {
		return "", nil, fmt.Errorf("gemini: fetch access token: %w", err)
	}
	url := fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		g.location, g.projectID, g.location, g.model)
	return url, map[string]string{"Authorization": "Bearer " + token.AccessToken}, nil
}
