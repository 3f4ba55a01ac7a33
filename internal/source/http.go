package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultSheetKey  = "sheet"
	maxResponseBytes = 32 << 20
)

// HTTPSource fetches sheets from the spreadsheet web app with one GET per sheet.
type HTTPSource struct {
	baseURL  string
	sheetKey string
	params   url.Values
	timeout  time.Duration
	client   *http.Client
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTimeout sets the per-sheet timeout. Zero keeps the default.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithSheetParam sets the query parameter carrying the sheet name.
func WithSheetParam(key string) HTTPOption {
	return func(s *HTTPSource) {
		if key != "" {
			s.sheetKey = key
		}
	}
}

// WithParam adds a fixed query parameter to every request.
func WithParam(key, value string) HTTPOption {
	return func(s *HTTPSource) {
		s.params.Set(key, value)
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// NewHTTPSource creates a source for baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) (*HTTPSource, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid source url %q: %w", baseURL, err)
	}
	s := &HTTPSource{
		baseURL:  baseURL,
		sheetKey: defaultSheetKey,
		params:   url.Values{},
		timeout:  defaultTimeout,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// FetchSheet implements Source.
func (s *HTTPSource) FetchSheet(ctx context.Context, name string) (Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sheetURL(name), nil)
	if err != nil {
		return Envelope{}, transportError(name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Envelope{}, transportError(name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Envelope{}, transportError(name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Envelope{}, transportError(name, fmt.Errorf("status %d", resp.StatusCode))
	}

	return decodeEnvelope(name, body)
}

func (s *HTTPSource) sheetURL(name string) string {
	u, _ := url.Parse(s.baseURL)
	q := u.Query()
	for k, vs := range s.params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set(s.sheetKey, name)
	u.RawQuery = q.Encode()
	return u.String()
}

func decodeEnvelope(name string, body []byte) (Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Envelope{}, malformedError(name, errors.New("empty body"))
	}
	if trimmed[0] == '<' {
		return Envelope{}, malformedError(name, errors.New("html response"))
	}
	if trimmed[0] != '{' {
		if isKnownError(string(trimmed)) {
			return Envelope{}, malformedError(name, errors.New(string(trimmed)))
		}
		return Envelope{}, malformedError(name, errors.New("not a json object"))
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Envelope{}, malformedError(name, err)
	}
	return env, nil
}
