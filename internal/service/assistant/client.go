package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"swasthyam/config"
	"swasthyam/pkg/circuitbreaker"
	"swasthyam/pkg/metrics"
)

// Client calls an OpenAI-compatible chat completions endpoint, wrapped in
// a circuit breaker so a slow upstream degrades to the fallback answer
// instead of stalling requests.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
}

func NewClient(cfg config.AssistantConfig) *Client {
	cbConfig := circuitbreaker.Config{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		Timeout:             30 * time.Second,
		HalfOpenMaxRequests: 2,
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cb: circuitbreaker.NewCircuitBreaker(cbConfig),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user exchange and returns the model's reply.
// Any failure, including an open breaker, surfaces as an error; the
// caller decides the fallback.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	var answer string

	err := c.cb.Execute(func() error {
		start := time.Now()
		body := chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: userMessage},
			},
			Temperature: 0.7,
			MaxTokens:   400,
		}
		b, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return marshalErr
		}

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, doErr := c.httpClient.Do(req)
		latency := time.Since(start)

		if doErr != nil {
			metrics.RecordAssistantCallLatency("/chat/completions", "error", latency)
			return doErr
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			metrics.RecordAssistantCallLatency("/chat/completions", fmt.Sprintf("%d", resp.StatusCode), latency)
			return fmt.Errorf("assistant upstream status %d", resp.StatusCode)
		}
		metrics.RecordAssistantCallLatency("/chat/completions", "success", latency)

		var decoded chatResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&decoded); decodeErr != nil {
			return decodeErr
		}
		if len(decoded.Choices) == 0 {
			return fmt.Errorf("assistant upstream returned no choices")
		}
		answer = strings.TrimSpace(decoded.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}
