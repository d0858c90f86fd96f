package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}

func googleConfig(baseURL string) *Config {
	cfg := DefaultConfig()
	cfg.GoogleBaseURL = baseURL
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		code string
		want Language
	}{
		{"", English},
		{"en", English},
		{"EN", English},
		{"mi", Maori},
		{"sm", Samoan},
		{"zh-CN", Mandarin},
		{" zh-cn ", Mandarin},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.code)
		require.NoError(t, err, tt.code)
		assert.Equal(t, tt.want.Code, got.Code, tt.code)
	}

	for _, code := range []string{"fr", "de", "not a language!"} {
		_, err := ParseLanguage(code)
		var tErr *TranslationError
		require.True(t, errors.As(err, &tErr), code)
		assert.Equal(t, ErrTypeValidation, tErr.Type)
	}
}

func TestSupported(t *testing.T) {
	langs := Supported()
	require.Len(t, langs, 4)
	assert.Equal(t, "en", langs[0].Code)
	assert.True(t, langs[0].IsSource())

	langs[0] = Samoan
	assert.Equal(t, "en", Supported()[0].Code, "callers get a copy")
}

func TestGoogleProvider_Translate(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		query = r.URL.Query()
		_, _ = w.Write([]byte(`[[["Kia ora. ","Hello. ",null,null,10],["Inumia te rongoā.","Take the medicine.",null,null,10]],null,"en"]`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(googleConfig(server.URL), nopLogger{})
	out, err := provider.Translate(context.Background(), "Hello. Take the medicine.", Maori)

	require.NoError(t, err)
	assert.Equal(t, "Kia ora. Inumia te rongoā.", out)
	assert.Equal(t, []string{"gtx"}, query["client"])
	assert.Equal(t, []string{"en"}, query["sl"])
	assert.Equal(t, []string{"mi"}, query["tl"])
	assert.Equal(t, []string{"Hello. Take the medicine."}, query["q"])
}

func TestGoogleProvider_EnglishIsPassThrough(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	provider := NewGoogleProvider(googleConfig(server.URL), nopLogger{})
	out, err := provider.Translate(context.Background(), "Take with food.", English)

	require.NoError(t, err)
	assert.Equal(t, "Take with food.", out)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestGoogleProvider_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[[["Talofa","Hello",null,null,1]]]`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(googleConfig(server.URL), nopLogger{})
	out, err := provider.Translate(context.Background(), "Hello", Samoan)

	require.NoError(t, err)
	assert.Equal(t, "Talofa", out)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGoogleProvider_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	provider := NewGoogleProvider(googleConfig(server.URL), nopLogger{})
	_, err := provider.Translate(context.Background(), "Hello", Samoan)

	var tErr *TranslationError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, ErrTypeProvider, tErr.Type)
	assert.Equal(t, http.StatusBadRequest, tErr.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGoogleProvider_ChunksLongText(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		q := r.URL.Query().Get("q")
		assert.LessOrEqual(t, len([]rune(q)), 20)
		body, _ := json.Marshal([]interface{}{[]interface{}{[]interface{}{strings.ToUpper(q), q}}})
		_, _ = w.Write(body)
	}))
	defer server.Close()

	cfg := googleConfig(server.URL)
	cfg.MaxChunkChars = 20
	provider := NewGoogleProvider(cfg, nopLogger{})

	out, err := provider.Translate(context.Background(), "first paragraph\n\nsecond paragraph\n\nthird", Mandarin)
	require.NoError(t, err)
	assert.Equal(t, "FIRST PARAGRAPH\n\nSECOND PARAGRAPH\n\nTHIRD", out)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestParseGoogleResponse(t *testing.T) {
	_, err := parseGoogleResponse([]byte(`not json`))
	assert.Error(t, err)

	_, err = parseGoogleResponse([]byte(`{"error":"x"}`))
	assert.Error(t, err)

	_, err = parseGoogleResponse([]byte(`[[["",""]]]`))
	var tErr *TranslationError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, ErrTypeEmpty, tErr.Type)
}

func TestSplitChunks(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitChunks("short", 100))
	assert.Equal(t, []string{"aaaa\n\nbb", "cccc"}, splitChunks("aaaa\n\nbb\n\ncccc", 8))
	assert.Equal(t, []string{"abcde", "fghij", "k"}, splitChunks("abcdefghijk", 5))
	assert.Equal(t, []string{"ĀĒĪ", "ŌŪ"}, splitChunks("ĀĒĪŌŪ", 3))
}

func TestLLMProvider_Translate(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"\"饭后服用。\""}}]}`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Provider = ProviderLLM
	cfg.APIKey = "k"
	cfg.BaseURL = server.URL
	provider := NewLLMProvider(cfg, nopLogger{})

	out, err := provider.Translate(context.Background(), "Take after meals.", Mandarin)
	require.NoError(t, err)
	assert.Equal(t, "饭后服用。", out)

	messages := body["messages"].([]interface{})
	assert.Contains(t, messages[0].(map[string]interface{})["content"], "Mandarin")
	assert.Equal(t, "Take after meals.", messages[1].(map[string]interface{})["content"])
}

type countingProvider struct {
	calls int
	err   error
}

func (c *countingProvider) Translate(ctx context.Context, text string, target Language) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return target.Code + ":" + text, nil
}

func TestCachedProvider(t *testing.T) {
	next := &countingProvider{}
	cached := NewCachedProvider(next, time.Minute, nopLogger{})
	ctx := context.Background()

	out, err := cached.Translate(ctx, "Take with water", Samoan)
	require.NoError(t, err)
	assert.Equal(t, "sm:Take with water", out)

	out, err = cached.Translate(ctx, "Take with water", Samoan)
	require.NoError(t, err)
	assert.Equal(t, "sm:Take with water", out)
	assert.Equal(t, 1, next.calls)

	_, err = cached.Translate(ctx, "Take with water", Maori)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedProvider_DoesNotCacheFailures(t *testing.T) {
	next := &countingProvider{err: &TranslationError{Type: ErrTypeNetwork, Message: "down"}}
	cached := NewCachedProvider(next, time.Minute, nopLogger{})

	_, err := cached.Translate(context.Background(), "x", Maori)
	assert.Error(t, err)
	_, err = cached.Translate(context.Background(), "x", Maori)
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(DefaultConfig(), nopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &CachedProvider{}, p)

	cfg := DefaultConfig()
	cfg.CacheTTL = 0
	p, err = NewProvider(cfg, nopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &GoogleProvider{}, p)

	cfg.Provider = ProviderLLM
	_, err = NewProvider(cfg, nopLogger{})
	var tErr *TranslationError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, ErrTypeConfig, tErr.Type)

	cfg.APIKey = "k"
	p, err = NewProvider(cfg, nopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &LLMProvider{}, p)
}
