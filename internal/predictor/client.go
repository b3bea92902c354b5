package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultMaxRetries = 3
	retryBaseDelay    = 200 * time.Millisecond
)

// Client is an HTTP JSON client for the model service's /predict
// endpoint. Transient failures are retried with a growing delay.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

func NewClient(baseURL string, maxRetries int) *Client {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: maxRetries,
	}
}

func (c *Client) Predict(ctx context.Context, in Input) (Result, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<(attempt-1))
			log.Printf("[predictor] attempt %d failed, retrying in %v: %v", attempt, delay, lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Result{}, ctx.Err()
			}
		}

		res, err := c.predictOnce(ctx, in)
		if err == nil {
			return res, nil
		}
		lastErr = err
	}
	return Result{}, &PredictionError{Msg: fmt.Sprintf("prediction failed after %d attempts: %v", c.maxRetries, lastErr)}
}

func (c *Client) predictOnce(ctx context.Context, in Input) (Result, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return Result{}, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call model service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("model service returned %d: %s", resp.StatusCode, payload)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode predict response: %w", err)
	}
	return res, nil
}
