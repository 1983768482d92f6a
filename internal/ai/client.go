package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/planloom/planloom/internal/plan"
)

// DefaultBaseURL is the generative language API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultRequestTimeout is the maximum time allowed for one plan generation.
const DefaultRequestTimeout = 60 * time.Second

// ErrInvalidResponse is returned when the model's response envelope lacks the
// expected text payload.
var ErrInvalidResponse = errors.New("Invalid response structure from AI model.")

// Client calls the remote plan generator endpoint.
type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// NewClient creates a client for the given API key and model.
func NewClient(apiKey, model string, logger zerolog.Logger) *Client {
	return &Client{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

// generateResponse is the subset of the generateContent envelope we read.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeneratePlan sends the user's prompt to the model and parses the reply into
// a plan. If the context has no deadline, DefaultRequestTimeout is applied.
func (c *Client) GeneratePlan(ctx context.Context, prompt string) (*plan.Plan, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultRequestTimeout)
		defer cancel()
	}

	body, err := json.Marshal(generateRequest{
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		SystemInstruction: &content{Parts: []part{{Text: schemaInstruction}}},
		GenerationConfig:  &generationConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.New("plan generation timed out")
		}
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.Debug().
		Str("model", c.Model).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("generateContent finished")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("model request failed: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	text, err := extractText(raw)
	if err != nil {
		return nil, err
	}

	p, err := plan.Decode([]byte(stripMarkdownCodeBlocks(text)))
	if err != nil {
		return nil, err
	}

	c.Logger.Info().
		Str("title", p.Title).
		Int("tasks", len(p.Tasks)).
		Msg("plan generated")

	return p, nil
}

// extractText pulls the model's text payload out of the response envelope.
func extractText(raw []byte) (string, error) {
	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", ErrInvalidResponse
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", ErrInvalidResponse
	}
	text := envelope.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", ErrInvalidResponse
	}
	return text, nil
}

// stripMarkdownCodeBlocks removes markdown code fences the model sometimes
// wraps around its JSON despite being told not to.
func stripMarkdownCodeBlocks(s string) string {
	s = strings.TrimSpace(s)
	if cut, found := strings.CutPrefix(s, "```json"); found {
		s = cut
	} else if cut, found := strings.CutPrefix(s, "```"); found {
		s = cut
	}
	if cut, found := strings.CutSuffix(s, "```"); found {
		s = cut
	}
	return strings.TrimSpace(s)
}
