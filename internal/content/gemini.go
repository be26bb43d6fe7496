package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("generative api key not configured")

// Client calls the Gemini generateContent endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

// NewClient creates a client with a bounded timeout.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether calls will be attempted.
func (c *Client) Configured() bool {
	return c != nil && c.APIKey != ""
}

// Prompt is a single generation request.
type Prompt struct {
	Text        string
	System      string
	JSON        bool
	Temperature float64
}

type part struct {
	Text string `json:"text"`
}

type contentBlock struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents          []contentBlock   `json:"contents"`
	SystemInstruction *contentBlock    `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate returns the text of the first candidate.
func (c *Client) Generate(ctx context.Context, p Prompt) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	in := generateRequest{
		Contents: []contentBlock{{Role: "user", Parts: []part{{Text: p.Text}}}},
		GenerationConfig: generationConfig{
			Temperature:     p.Temperature,
			MaxOutputTokens: 2048,
		},
	}
	if p.System != "" {
		in.SystemInstruction = &contentBlock{Parts: []part{{Text: p.System}}}
	}
	if p.JSON {
		in.GenerationConfig.ResponseMimeType = "application/json"
	}
	body, err := json.Marshal(in)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?%s", c.BaseURL, c.Model, url.Values{"key": {c.APIKey}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("generative request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("generative api error %s: %s", resp.Status, string(b))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from generative api")
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// ExtractJSON trims anything outside the outermost object or array, such as code fences.
func ExtractJSON(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return "", false
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end < start {
		return "", false
	}
	return s[start : end+1], true
}
