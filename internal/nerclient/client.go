package nerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultModel is the token-classification model the endpoint is expected to serve
const DefaultModel = "dbmdz/bert-large-cased-finetuned-conll03-english"

// Client calls a hosted token-classification (NER) endpoint such as the
// Hugging Face inference API.
type Client struct {
	Endpoint string
	APIKey   string
	MinScore float64

	HTTPClient *http.Client
}

type nerRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters nerParameters `json:"parameters"`
}

type nerParameters struct {
	AggregationStrategy string `json:"aggregation_strategy"`
}

// Span is one detected entity
type Span struct {
	Group string  `json:"entity_group"`
	Score float64 `json:"score"`
	Word  string  `json:"word"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Recognize returns the entity words detected in the sentence whose score
// reaches MinScore.
func (c *Client) Recognize(ctx context.Context, sentence string) ([]string, error) {
	spans, err := c.Spans(ctx, sentence)
	if err != nil {
		return nil, err
	}
	words := make([]string, 0, len(spans))
	for _, s := range spans {
		if s.Score < c.MinScore {
			continue
		}
		word := s.Word
		if word == "" && s.Start >= 0 && s.Start < s.End && s.End <= len(sentence) {
			word = sentence[s.Start:s.End]
		}
		if word != "" {
			words = append(words, word)
		}
	}
	return words, nil
}

// Spans returns the raw entity spans for the sentence
func (c *Client) Spans(ctx context.Context, sentence string) ([]Span, error) {
	if c.Endpoint == "" {
		return nil, fmt.Errorf("ner: endpoint required")
	}
	reqBody, err := json.Marshal(nerRequest{
		Inputs:     sentence,
		Parameters: nerParameters{AggregationStrategy: "simple"},
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var e errorResponse
		if err := json.Unmarshal(trimmed, &e); err == nil && e.Error != "" {
			return nil, fmt.Errorf("ner error (status %d): %s", resp.StatusCode, e.Error)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ner: unexpected status %d", resp.StatusCode)
	}

	var spans []Span
	if err := json.Unmarshal(trimmed, &spans); err != nil {
		return nil, fmt.Errorf("ner: decode response: %w", err)
	}
	return spans, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}
