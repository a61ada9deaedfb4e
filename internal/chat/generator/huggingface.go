// Package generator implements the remote text-generation collaborator used
// by the response composer. It is optional: when no API key is configured the
// composer runs template-only and this package is never constructed.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const defaultModel = "mistralai/Mistral-7B-Instruct-v0.2"

// HuggingFace generates text through the Hugging Face inference API.
type HuggingFace struct {
	apiKey  string
	model   string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHuggingFace creates a client for the given model. An empty model uses
// the default instruct model.
func NewHuggingFace(client *http.Client, apiKey, model string) *HuggingFace {
	if model == "" {
		model = defaultModel
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "huggingface",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HuggingFace{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api-inference.huggingface.co/models",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceResult struct {
	GeneratedText string `json:"generated_text"`
}

// Generate sends the prompt to the inference API and returns the generated
// text. Any transport error, bad status, or empty payload is returned as an
// error for the caller's fallback path.
func (h *HuggingFace) Generate(ctx context.Context, prompt string) (string, error) {
	if h.apiKey == "" {
		return "", fmt.Errorf("huggingface api key is not configured")
	}

	body, err := json.Marshal(inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			MaxNewTokens:   150,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal inference request: %w", err)
	}

	buildRequest := func() (*http.Request, error) {
		url := fmt.Sprintf("%s/%s", h.baseURL, h.model)
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, h.httpCfg, h.circuit, buildRequest)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read inference response: %w", err)
	}

	var results []inferenceResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return "", fmt.Errorf("parse inference response: %w", err)
	}

	if len(results) == 0 || strings.TrimSpace(results[0].GeneratedText) == "" {
		return "", fmt.Errorf("empty inference response")
	}

	return strings.TrimSpace(results[0].GeneratedText), nil
}
