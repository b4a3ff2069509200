package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/SAP-F-2025/quizmark/internal/models"
)

const (
	// AnswersPath is the fixed answer key endpoint.
	AnswersPath = "/api/v1/tasks/answers"
	// CSRFPath issues the CSRF cookie.
	CSRFPath = "/api/v1/csrf"

	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"
)

var (
	ErrFetchFailed  = errors.New("fetching answers failed")
	ErrMissingToken = errors.New("csrf token not available")
)

// AnswerClient fetches answer keys from the quizmark server. Every call is a
// single attempt; there is no retry and no client-side timeout.
type AnswerClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
}

// Option configures an AnswerClient.
type Option func(*AnswerClient)

// WithHTTPClient replaces the underlying http.Client. Its cookie jar is used
// by the default token source.
func WithHTTPClient(c *http.Client) Option {
	return func(ac *AnswerClient) {
		ac.http = c
	}
}

// WithTokenSource replaces the cookie-backed token source.
func WithTokenSource(ts TokenSource) Option {
	return func(ac *AnswerClient) {
		ac.tokens = ts
	}
}

func New(baseURL string, opts ...Option) (*AnswerClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	ac := &AnswerClient{baseURL: u}
	for _, opt := range opts {
		opt(ac)
	}

	if ac.http == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		ac.http = &http.Client{Jar: jar}
	}
	if ac.tokens == nil {
		ac.tokens = NewJarTokenSource(ac.http.Jar, u)
	}

	return ac, nil
}

// FetchAnswers posts the task ID and decodes the answer key.
func (c *AnswerClient) FetchAnswers(ctx context.Context, taskID string) (*models.AnswersResponse, error) {
	body, err := json.Marshal(models.AnswersRequest{TaskID: taskID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(AnswersPath), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token, err := c.tokens.CSRFToken()
	if err != nil {
		return nil, err
	}
	req.Header.Set(CSRFHeaderName, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var out models.AnswersResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}

	return &out, nil
}

// PrimeCSRF asks the server for a CSRF cookie so the jar holds a token.
func (c *AnswerClient) PrimeCSRF(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(CSRFPath), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch csrf token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch csrf token: status %d", resp.StatusCode)
	}
	return nil
}

func (c *AnswerClient) endpoint(path string) string {
	return c.baseURL.String() + path
}
