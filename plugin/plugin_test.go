package plugin

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-exchange-rate-bot/host"
)

// provider fakes exchangerate-api.com for one api key.
func provider(t *testing.T, apiKey string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		parts := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
		if len(parts) != 4 || parts[0] != "v6" || parts[2] != "latest" {
			t.Errorf("unexpected path %v", req.URL.Path)
			rw.WriteHeader(http.StatusNotFound)
			return
		}
		if parts[1] != apiKey {
			rw.WriteHeader(http.StatusForbidden)
			_, _ = rw.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
			return
		}
		switch parts[3] {
		case "USD":
			_, _ = rw.Write([]byte(`{"result":"success","base_code":"USD","conversion_rates":{"USD":1,"EUR":0.9013,"GBP":null,"CNY":7.2345}}`))
		case "BTC":
			_, _ = rw.Write([]byte(`{"result":"success","base_code":"BTC","conversion_rates":{"BTC":1,"USD":65000.5}}`))
		default:
			rw.WriteHeader(http.StatusNotFound)
			_, _ = rw.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
		}
	}))
}

func newRouter(t *testing.T, settings map[string]any) *host.Router {
	p, err := New(settings, log.NewNopLogger())
	require.NoError(t, err)
	router := host.NewRouter()
	require.NoError(t, p.Register(router))
	return router
}

func TestPlugin_Command(t *testing.T) {
	server := provider(t, "key")
	defer server.Close()

	router := newRouter(t, map[string]any{"apikey": "key", "base_url": server.URL})

	tests := []struct {
		name string
		text string
		want string
	}{
		{"single rate", "/汇率查询 美元 欧元", "USD to EUR rate is: 0.9013"},
		{"codes", "汇率查询 usd cny", "USD to CNY rate is: 7.2345"},
		{"unsupported target", "汇率查询 USD 火星币", "Target currency 火星币 is not supported."},
		{"null rate is unsupported", "汇率查询 USD 英镑", "Target currency 英镑 is not supported."},
		{"unsupported base", "汇率查询 XYZ USD", "Query failed: unsupported-code"},
		{"all rates", "汇率查询 美元", "USD exchange rates:\nUSD: 1\nEUR: 0.9013\nCNY: 7.2345"},
		{"usage", "汇率查询", "Usage: 汇率查询 <base> [target], e.g. 汇率查询 USD EUR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := router.Dispatch(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlugin_Tool(t *testing.T) {
	server := provider(t, "key")
	defer server.Close()

	router := newRouter(t, map[string]any{"apikey": "key", "base_url": server.URL, "locale": "zh"})

	got, err := router.CallTool(context.Background(), ToolName, map[string]any{"base": "美元", "target": "人民币"})
	require.NoError(t, err)
	assert.Equal(t, "USD 到 CNY 的汇率是: 7.2345", got)

	_, err = router.CallTool(context.Background(), ToolName, map[string]any{"base": "美元"})
	assert.ErrorIs(t, err, host.ErrMissingArgument)

	tools := router.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, ToolName, tools[0].Name)
	assert.Equal(t, []string{"base", "target"}, tools[0].Parameters["required"])
}

func TestPlugin_MissingAPIKeyWarnsButWorks(t *testing.T) {
	server := provider(t, "key")
	defer server.Close()

	var buf bytes.Buffer
	p, err := New(map[string]any{"base_url": server.URL}, log.NewLogfmtLogger(&buf))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=warn")
	assert.Contains(t, buf.String(), "apikey")

	router := host.NewRouter()
	require.NoError(t, p.Register(router))

	got, err := router.Dispatch(context.Background(), "汇率查询 USD EUR")
	require.NoError(t, err)
	assert.Equal(t, "Query failed: invalid-key", got)
}

func TestPlugin_AliasesFile(t *testing.T) {
	server := provider(t, "key")
	defer server.Close()

	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aliases:\n  比特币: BTC\n"), 0644))

	router := newRouter(t, map[string]any{"apikey": "key", "base_url": server.URL, "aliases_file": path})

	got, err := router.Dispatch(context.Background(), "汇率查询 比特币 美元")
	require.NoError(t, err)
	assert.Equal(t, "BTC to USD rate is: 65000.5", got)
}

func TestPlugin_RegisterTwice(t *testing.T) {
	p, err := New(map[string]any{"apikey": "key"}, log.NewNopLogger())
	require.NoError(t, err)
	router := host.NewRouter()
	require.NoError(t, p.Register(router))

	assert.ErrorIs(t, p.Register(router), host.ErrDuplicate)
}

func TestDecodeSettings(t *testing.T) {
	var s Settings
	err := decodeSettings(map[string]any{
		"APIKEY":       "abc",
		"aliases-file": "a.yaml",
		"timeout":      "2s",
		"locale":       "zh",
	}, &s)

	require.NoError(t, err)
	assert.Equal(t, "abc", s.APIKey)
	assert.Equal(t, "a.yaml", s.AliasesFile)
	assert.Equal(t, "2s", s.Timeout.String())
	assert.Equal(t, "zh", s.Locale)
}

func TestDecodeSettings_BadTimeout(t *testing.T) {
	var s Settings
	assert.Error(t, decodeSettings(map[string]any{"timeout": "soon"}, &s))
}
