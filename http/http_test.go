package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	msgpack "github.com/vmihailenco/msgpack/v5"

	"github.com/corpix/railfence/metrics"
	"github.com/corpix/railfence/railfence"
)

func newTestHttp(t *testing.T, c *Config) *Http {
	t.Helper()

	c.Default()
	require.NoError(t, c.Validate())

	rc := &railfence.Config{}
	rc.Default()

	router := NewRouter(c)
	router.HandleFunc("/panic", func(w ResponseWriter, r *Request) { panic("boom") })

	return New(
		c,
		WithCipherHandlers(rc, router),
		WithHandler(Compose(router, Trace(c.Trace), Recover())),
		WithMetricsHandler(metrics.NewRegistry(), router),
	)
}

func do(h Handler, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		r.Header.Set(HeaderContentType, contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestCipherJson(t *testing.T) {
	h := newTestHttp(t, &Config{})

	w := do(h.Handler, MethodPost, "/encode", ContentTypeJson, []byte(`{"rails":4,"text":"RUSTISGREAT"}`))
	require.Equal(t, StatusOK, w.Code, w.Body.String())
	assert.Equal(t, ContentTypeJson, w.Header().Get(HeaderContentType))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestId))

	res := CipherResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, CipherResponse{Rails: 4, Text: "RGUSRSIETTA"}, res)

	w = do(h.Handler, MethodPost, "/decode", "", []byte(`{"rails":4,"text":"RGUSRSIETTA"}`))
	require.Equal(t, StatusOK, w.Code, w.Body.String())
	res = CipherResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "RUSTISGREAT", res.Text)
}

func TestCipherMsgpackDefaultRails(t *testing.T) {
	h := newTestHttp(t, &Config{})

	body, err := msgpack.Marshal(&CipherRequest{Text: "WEAREDISCOVEREDFLEEATONCE"})
	require.NoError(t, err)

	w := do(h.Handler, MethodPost, "/encode", ContentTypeMsgpack, body)
	require.Equal(t, StatusOK, w.Code, w.Body.String())
	assert.Equal(t, ContentTypeMsgpack, w.Header().Get(HeaderContentType))

	res := CipherResponse{}
	require.NoError(t, msgpack.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, CipherResponse{Rails: railfence.DefaultRails, Text: "WECRLTEERDSOEEFEAOCAIVDEN"}, res)
}

func TestCipherErrors(t *testing.T) {
	h := newTestHttp(t, &Config{})

	samples := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		code        int
	}{
		{"invalid rails", MethodPost, "/encode", ContentTypeJson, `{"rails":-1,"text":"x"}`, StatusBadRequest},
		{"broken body", MethodPost, "/decode", ContentTypeJson, `{"rails":`, StatusBadRequest},
		{"unsupported content type", MethodPost, "/encode", "text/plain", `hello`, StatusUnsupportedMediaType},
		{"wrong method", MethodGet, "/encode", "", ``, StatusMethodNotAllowed},
		{"unknown path", MethodPost, "/rot13", ContentTypeJson, `{}`, StatusNotFound},
	}

	for _, sample := range samples {
		t.Run(sample.name, func(t *testing.T) {
			w := do(h.Handler, sample.method, sample.path, sample.contentType, []byte(sample.body))
			assert.Equal(t, sample.code, w.Code, w.Body.String())
		})
	}

	w := do(h.Handler, MethodPost, "/encode", ContentTypeJson, []byte(`{"rails":-1,"text":"x"}`))
	res := ErrorResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res.Error, "rail count should be at least one")
}

func TestCipherRailsBeyondText(t *testing.T) {
	h := newTestHttp(t, &Config{})

	samples := []struct {
		path  string
		rails int
		text  string
	}{
		{"/decode", 1000000000000000000, ""},
		{"/encode", 1000000000000000000, "A"},
		{"/decode", 1 << 60, "A"},
		{"/encode", 50000000, "ab"},
		{"/decode", 50000000, "ab"},
	}
	for _, sample := range samples {
		body, err := json.Marshal(CipherRequest{Rails: sample.rails, Text: sample.text})
		require.NoError(t, err)

		w := do(h.Handler, MethodPost, sample.path, ContentTypeJson, body)
		require.Equal(t, StatusOK, w.Code, w.Body.String())

		res := CipherResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, CipherResponse{Rails: sample.rails, Text: sample.text}, res)
	}
}

func TestRouteErrors(t *testing.T) {
	h := newTestHttp(t, &Config{})

	w := do(h.Handler, MethodGet, "/encode", "", nil)
	require.Equal(t, StatusMethodNotAllowed, w.Code)
	res := ErrorResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "method not allowed", res.Error)

	body, err := msgpack.Marshal(&CipherRequest{Text: "x"})
	require.NoError(t, err)
	w = do(h.Handler, MethodPost, "/rot13", ContentTypeMsgpack, body)
	require.Equal(t, StatusNotFound, w.Code)
	assert.Equal(t, ContentTypeMsgpack, w.Header().Get(HeaderContentType))
	res = ErrorResponse{}
	require.NoError(t, msgpack.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "route not found", res.Error)
}

func TestCipherBodyTooLarge(t *testing.T) {
	h := newTestHttp(t, &Config{})

	body := `{"text":"` + strings.Repeat("a", CipherMaxBodySize) + `"}`
	w := do(h.Handler, MethodPost, "/encode", ContentTypeJson, []byte(body))
	assert.Equal(t, StatusRequestEntityTooLarge, w.Code)
}

func TestPrefix(t *testing.T) {
	h := newTestHttp(t, &Config{Prefix: "/api"})

	w := do(h.Handler, MethodPost, "/api/encode", ContentTypeJson, []byte(`{"rails":2,"text":"HELLO"}`))
	require.Equal(t, StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"HLOEL"`)

	w = do(h.Handler, MethodPost, "/encode", ContentTypeJson, []byte(`{"rails":2,"text":"HELLO"}`))
	assert.Equal(t, StatusNotFound, w.Code)
}

func TestRecover(t *testing.T) {
	h := newTestHttp(t, &Config{})

	w := do(h.Handler, MethodGet, "/panic", "", nil)
	assert.Equal(t, StatusInternalServerError, w.Code)
}

func TestRequestIdPropagation(t *testing.T) {
	h := newTestHttp(t, &Config{})

	r := httptest.NewRequest(MethodPost, "/encode", strings.NewReader(`{"text":"abc"}`))
	r.Header.Set(HeaderRequestId, "fixed-id")
	w := httptest.NewRecorder()
	h.Handler.ServeHTTP(w, r)

	assert.Equal(t, StatusOK, w.Code)
	assert.Equal(t, "fixed-id", w.Header().Get(HeaderRequestId))
}

func TestMetricsEndpoint(t *testing.T) {
	c := &Config{Metrics: &MetricsConfig{Enable: true, Token: "secret"}}
	h := newTestHttp(t, c)
	assert.Contains(t, c.Trace.SkipPaths, "/metrics")

	w := do(h.Handler, MethodGet, "/metrics", "", nil)
	assert.Equal(t, StatusNotFound, w.Code)

	r := httptest.NewRequest(MethodGet, "/metrics", nil)
	r.Header.Set(HeaderAuthorization, "Bearer secret")
	w = httptest.NewRecorder()
	h.Handler.ServeHTTP(w, r)
	require.Equal(t, StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "promhttp_metric_handler_requests_total")

	r = httptest.NewRequest(MethodGet, "/metrics", nil)
	r.Header.Set(HeaderAuthorization, "Bearer wrong")
	w = httptest.NewRecorder()
	h.Handler.ServeHTTP(w, r)
	assert.Equal(t, StatusNotFound, w.Code)
}

func TestCompose(t *testing.T) {
	order := []string{}
	mark := func(name string) Middleware {
		return func(next Handler) Handler {
			return HandlerFunc(func(w ResponseWriter, r *Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Compose(HandlerFunc(func(w ResponseWriter, r *Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestConfig(t *testing.T) {
	c := &Config{}
	c.Default()
	assert.Equal(t, DefaultAddress, c.Address)
	assert.Equal(t, "/metrics", c.Metrics.Path)
	assert.NoError(t, c.Validate())

	c.Address = ""
	assert.Error(t, c.Validate())
}

func TestMetricsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("secret\n"), 0o600))

	c := &MetricsConfig{TokenType: "Bearer", TokenFile: path}
	c.Default()
	require.NoError(t, c.Validate())
	require.NoError(t, c.Expand())
	assert.Equal(t, "secret", c.Token)
	assert.Equal(t, AuthTokenTypeBearer, c.TokenType)

	c.Token = "other"
	assert.Error(t, c.Validate())

	c = &MetricsConfig{TokenType: "basic"}
	assert.Error(t, c.Validate())
}

func TestListenAndServeRequiresAddress(t *testing.T) {
	h := New(&Config{}, WithHandler(NewRouter(&Config{})))
	assert.Error(t, h.ListenAndServe())

	h = New(&Config{Address: DefaultAddress})
	assert.Error(t, h.ListenAndServe())
}
