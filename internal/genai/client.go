// Package genai is a client for the Gemini generateContent REST API.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	cartalk_errors "cartalk/pkg/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Persona is sent as the system instruction on every call. It restricts the
// model to automotive topics; off-topic questions get a polite decline instead
// of an answer.
const Persona = "You are a knowledgeable and friendly AI assistant who will ONLY answer questions related to cars and nothing else. " +
	"You provide clear, structured, and technically accurate responses. " +
	"Keep explanations concise but complete. If the question is not about cars, politely decline to answer."

// Client calls the Gemini generateContent endpoint with a fixed persona.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	apiKey string
	model  string
}

// NewClient creates a Gemini client. The key must come from configuration;
// it is never logged and never appears in error messages.
func NewClient(apiKey, model string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey: apiKey,
		model:  model,
	}
}

type generateRequest struct {
	SystemInstruction content   `json:"system_instruction"`
	Contents          []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends the prompt to the model and returns its reply text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		SystemInstruction: content{Parts: []part{{Text: Persona}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimSuffix(c.BaseURL, "/"), c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send request: %s", cartalk_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain the body but do not surface it: upstream error text is not
		// for callers of this service.
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: model call failed with status %d", cartalk_errors.ErrUpstream, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %s", cartalk_errors.ErrUpstream, err)
	}

	var sb strings.Builder
	for _, cand := range genResp.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		// Only the first candidate is used.
		break
	}

	return strings.TrimSpace(sb.String()), nil
}
