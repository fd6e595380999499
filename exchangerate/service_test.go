package exchangerate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-exchange-rate-bot/domain"
)

func TestService_Latest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/v6/secret/latest/USD", req.URL.Path)
		assert.Equal(t, http.MethodGet, req.Method)
		response := `{
			"result": "success",
			"base_code": "USD",
			"conversion_rates": {
				"USD": 1,
				"EUR": 0.9013,
				"JPY": 151.37,
				"CNY": 7.2345
			}
		}`
		_, _ = rw.Write([]byte(response))
	}))
	defer server.Close()

	s := NewService("secret", WithBaseURL(server.URL))

	response, err := s.Latest(context.Background(), "USD")

	require.NoError(t, err)
	assert.NoError(t, response.Err())
	assert.Equal(t, []domain.Currency{"USD", "EUR", "JPY", "CNY"}, response.ConversionRates.Codes)

	table := response.Table("USD")
	assert.Equal(t, domain.Currency("USD"), table.Base)
	rate, ok := table.Lookup("EUR")
	assert.True(t, ok)
	assert.Equal(t, domain.Rate(0.9013), rate)
	_, ok = table.Lookup("XYZ")
	assert.False(t, ok)
}

func TestService_LatestProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusForbidden)
		_, _ = rw.Write([]byte(`{"result": "error", "error-type": "invalid-key"}`))
	}))
	defer server.Close()

	s := NewService("bad", WithBaseURL(server.URL))

	response, err := s.Latest(context.Background(), "USD")

	require.NoError(t, err)
	var providerErr *ProviderError
	require.True(t, errors.As(response.Err(), &providerErr))
	assert.Equal(t, "invalid-key", providerErr.Type)
}

func TestService_LatestBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusBadGateway)
		_, _ = rw.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	s := NewService("key", WithBaseURL(server.URL))

	_, err := s.Latest(context.Background(), "USD")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestService_LatestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		time.Sleep(10 * time.Millisecond)
		_, _ = rw.Write([]byte("{}"))
	}))
	defer server.Close()

	s := NewService("topsecret", WithBaseURL(server.URL), WithTimeout(1*time.Millisecond))

	_, err := s.Latest(context.Background(), "USD")

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Client.Timeout")) // fragile :-(
	assert.NotContains(t, err.Error(), "topsecret")
}

func TestService_LatestCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		_, _ = rw.Write([]byte("{}"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService("key", WithBaseURL(server.URL)).Latest(ctx, "USD")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_LatestEscapesBase(t *testing.T) {
	tests := []struct {
		name string
		base domain.Currency
		path string
	}{
		{name: "percent", base: "100%", path: "/v6/TOPSECRETKEY/latest/100%25"},
		{name: "query", base: "USD?X", path: "/v6/TOPSECRETKEY/latest/USD%3FX"},
		{name: "traversal", base: "USD/../X", path: "/v6/TOPSECRETKEY/latest/USD%2F..%2FX"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
				assert.Equal(t, test.path, req.URL.EscapedPath())
				assert.Empty(t, req.URL.RawQuery)
				rw.WriteHeader(http.StatusNotFound)
				_, _ = rw.Write([]byte(`{"result": "error", "error-type": "unsupported-code"}`))
			}))
			defer server.Close()

			var buf bytes.Buffer
			s := NewLoggingService(log.NewLogfmtLogger(&buf), NewService("TOPSECRETKEY", WithBaseURL(server.URL)))

			response, err := s.Latest(context.Background(), test.base)

			require.NoError(t, err)
			assert.Equal(t, "unsupported-code", response.ErrorType)
			assert.NotContains(t, buf.String(), "TOPSECRETKEY")
		})
	}
}

func TestService_LatestBadURLHidesKey(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), NewService("TOPSECRETKEY", WithBaseURL("http://example.com/\x7f")))

	_, err := s.Latest(context.Background(), "USD")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "building http request")
	assert.Contains(t, err.Error(), "***")
	assert.NotContains(t, err.Error(), "TOPSECRETKEY")
	assert.Contains(t, buf.String(), "err=")
	assert.NotContains(t, buf.String(), "TOPSECRETKEY")
}

func TestRates_UnmarshalJSONSkipsNullRates(t *testing.T) {
	var response Response
	err := json.Unmarshal([]byte(`{"result": "success", "base_code": "USD", "conversion_rates": {"USD": 1, "EUR": null, "JPY": 151.37}}`), &response)

	require.NoError(t, err)
	assert.Equal(t, []domain.Currency{"USD", "JPY"}, response.ConversionRates.Codes)
	_, ok := response.Table("USD").Lookup("EUR")
	assert.False(t, ok)
}

func TestRates_UnmarshalJSONRejectsArray(t *testing.T) {
	var r Rates
	assert.Error(t, r.UnmarshalJSON([]byte(`[1, 2]`)))
}

func TestLoggingService_Latest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		_, _ = rw.Write([]byte(`{"result": "success", "conversion_rates": {"GBP": 0.79}}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), NewService("hidden", WithBaseURL(server.URL)))

	response, err := s.Latest(context.Background(), "USD")

	require.NoError(t, err)
	assert.Equal(t, domain.Rates{"GBP": 0.79}, response.ConversionRates.Rates)
	assert.Contains(t, buf.String(), "method=latest")
	assert.Contains(t, buf.String(), "base=USD")
	assert.NotContains(t, buf.String(), "hidden")
}
