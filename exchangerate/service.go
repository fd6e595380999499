package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go-exchange-rate-bot/domain"
)

const ApiUrlBase = "https://v6.exchangerate-api.com"

// Service wraps the exchangerate-api.com REST API
type Service interface {
	Latest(ctx context.Context, base domain.Currency) (Response, error)
}

// service exchangerate-api.com v6 API
type service struct {
	// apiKey travels in the request path
	apiKey string

	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// Option configures a Service.
type Option func(*service)

// WithBaseURL points the service at another host, e.g. a test server.
func WithBaseURL(url string) Option {
	return func(s *service) {
		if url != "" {
			s.url = url
		}
	}
}

// WithTimeout sets an overall HTTP client timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *service) {
		s.client.Timeout = timeout
	}
}

// NewService constructs a valid exchangerate-api Service.
func NewService(apiKey string, opts ...Option) Service {
	s := &service{
		apiKey: apiKey,
		url:    ApiUrlBase,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Latest loads the latest rates for base.
// Provider side failures are not errors here: they are reported in the
// returned Response, see Response.Err.
func (s *service) Latest(ctx context.Context, base domain.Currency) (Response, error) {
	// base is user input and must stay a single path segment
	endpoint := fmt.Sprintf("%v/v6/%v/latest/%v", s.url, s.apiKey, url.PathEscape(string(base)))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, fmt.Errorf("building http request: %w", redact(err, s.apiKey))
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return Response{}, fmt.Errorf("http get: %w", redact(err, s.apiKey))
	}
	defer httpResponse.Body.Close()

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return Response{}, fmt.Errorf("reading json: %w", err)
	}

	var response Response
	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return Response{}, fmt.Errorf("decoding json (status %d): %w", httpResponse.StatusCode, err)
	}

	return response, nil
}
