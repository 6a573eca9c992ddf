// Package httpapi provides an ImageClassifier adapter that calls the
// external image-authenticity service over HTTP. Veritext consumes the
// service; the detector itself is a separate system.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/verilabs/veritext/internal/core/domain"
	"github.com/verilabs/veritext/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.ImageClassifier = (*Classifier)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:9090"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the image classifier client.
type Config struct {
	// BaseURL is the classifier API base URL (default: http://localhost:9090).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Classifier calls the external image-authenticity classifier.
type Classifier struct {
	client  *http.Client
	baseURL string
}

// classifyResponse is the /v1/classify response format.
type classifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// errorResponse is the error body format.
type errorResponse struct {
	Error string `json:"error"`
}

// New creates a new image classifier client.
func New(cfg Config) *Classifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Classifier{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}
}

// ClassifyImage posts raw image bytes to the classifier service.
// Every failure is reported as domain.ErrUpstreamClassifier so callers
// can isolate collaborator trouble from text-pipeline errors.
func (c *Classifier) ClassifyImage(ctx context.Context, data []byte) (*domain.ImageClassification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/classify", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", domain.ErrUpstreamClassifier, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamClassifier, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", domain.ErrUpstreamClassifier, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%w: %s (status %d)", domain.ErrUpstreamClassifier, errResp.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamClassifier, resp.StatusCode)
	}

	var parsed classifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", domain.ErrUpstreamClassifier, err)
	}

	label, ok := domain.ParseLabel(parsed.Label)
	if !ok {
		return nil, fmt.Errorf("%w: unknown label %q", domain.ErrUpstreamClassifier, parsed.Label)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %f out of range", domain.ErrUpstreamClassifier, parsed.Confidence)
	}

	return &domain.ImageClassification{Label: label, Confidence: parsed.Confidence}, nil
}
