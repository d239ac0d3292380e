package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sentinel results returned in place of errors. The gateway never fails
// outward: every failure category degrades to one of these strings, which the
// caller consumes as if it were a model answer.
const (
	SentinelEncoding  = "Encoding error"
	SentinelTransport = "IO exception"
	SentinelParse     = "Parse error"
)

type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatReq struct {
	Model    string    `json:"model"`
	Messages []chatMsg `json:"messages"`
}

type chatResp struct {
	Choices []struct {
		Message chatMsg `json:"message"`
	} `json:"choices"`
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// Complete sends the prompt as a single-turn chat request and returns the
// assistant's text. Exactly one attempt per call; no retries, no streaming.
// When the response envelope lacks choices[0].message.content the raw body is
// returned verbatim as a diagnostic fallback.
func (c *Client) Complete(ctx context.Context, prompt string) string {
	reqBody := chatReq{
		Model:    c.Model,
		Messages: []chatMsg{{Role: "user", Content: prompt}},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return SentinelEncoding
	}

	url := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return SentinelTransport
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return SentinelTransport
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return SentinelParse
	}

	var decoded chatResp
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body)
	}
	if len(decoded.Choices) == 0 {
		return string(body)
	}
	return decoded.Choices[0].Message.Content
}
