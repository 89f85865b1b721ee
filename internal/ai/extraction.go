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
)

// ErrMalformedOutput marks model output that was not the requested JSON shape,
// as opposed to a transport or HTTP failure.
var ErrMalformedOutput = errors.New("model returned malformed output")

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ExtractionClient talks to an OpenAI-compatible chat-completions endpoint in
// JSON mode and converts free text into the structured shapes the procurement
// flow needs.
type ExtractionClient struct {
	cfg        Config
	httpClient *http.Client
}

func NewExtractionClient(cfg Config) *ExtractionClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &ExtractionClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

const rfpParsePrompt = `Parse the following RFP text into structured JSON with these exact fields:
- title: string (project title)
- requirements: array of strings (key requirements)
- budget_range: object with min and max (numbers, null if not specified)
- timeline: string (project timeline description)
- delivery_location: string (where work should be done)
- evaluation_criteria: array of strings (how vendors will be evaluated)

Output only valid JSON, no other text.

RFP Text:
`

func (c *ExtractionClient) ParseRFP(ctx context.Context, rawText string) (map[string]interface{}, error) {
	var structured map[string]interface{}
	if err := c.completeJSON(ctx, rfpParsePrompt+rawText, &structured); err != nil {
		return nil, fmt.Errorf("parse rfp text: %w", err)
	}
	return structured, nil
}

const replyParsePrompt = `Parse the following vendor email response into structured JSON with these exact fields:
- total_price: number (quoted price, null if not found)
- delivery_days: number (delivery timeline in days, null if not found)
- warranty_years: number (warranty period in years, null if not found)
- payment_terms: string (payment terms description)
- additional_notes: string (any other relevant information)

Output only valid JSON, no other text.

Email Text:
`

func (c *ExtractionClient) ParseVendorReply(ctx context.Context, emailText string) (*ReplyTerms, error) {
	var terms ReplyTerms
	if err := c.completeJSON(ctx, replyParsePrompt+emailText, &terms); err != nil {
		return nil, fmt.Errorf("parse vendor reply: %w", err)
	}
	return &terms, nil
}

const evaluatePromptHeader = `Evaluate the following vendor responses for the RFP and recommend the best vendor.

For each vendor, calculate an AI score (0-100) based on:
- Price competitiveness (within budget)
- Delivery timeline (meets requirements)
- Warranty coverage
- Payment terms favorability
- Overall fit to requirements

Output JSON with:
- recommendations: object with vendor_id as key, score as value
- best_vendor_id: number (vendor with highest score)
- reasoning: string (explanation of recommendation)

Output only valid JSON, no other text.

RFP and vendor responses:
`

func (c *ExtractionClient) Evaluate(ctx context.Context, input EvaluationInput) (*EvaluationResult, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation input failed: %w", err)
	}

	var result EvaluationResult
	if err := c.completeJSON(ctx, evaluatePromptHeader+string(payload), &result); err != nil {
		return nil, fmt.Errorf("evaluate responses: %w", err)
	}
	if result.Recommendations == nil {
		return nil, fmt.Errorf("evaluate responses: missing recommendations: %w", ErrMalformedOutput)
	}
	return &result, nil
}

// completeJSON runs one JSON-mode completion and unmarshals the model's answer
// into out.
func (c *ExtractionClient) completeJSON(ctx context.Context, prompt string, out interface{}) error {
	reqBody := map[string]interface{}{
		"model": c.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0,
		"stream":          false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal llm request failed: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("build llm request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read llm response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("llm response status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse llm json failed: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return fmt.Errorf("empty llm choices: %w", ErrMalformedOutput)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return nil
}
