package api

import (
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/qrkit/qrcode"
)

func newTestServer() *Server {
	return &Server{
		Limits: Limits{
			DefaultSize:      200,
			MaxSize:          1000,
			MaxContentLength: 100,
			MaxASCIIModules:  40,
		},
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Version:   "test",
		StartTime: time.Now(),
	}
}

func get(t *testing.T, h http.Handler, path string, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if params != nil {
		target += "?" + params.Encode()
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestQRPNG(t *testing.T) {
	h := NewRouter(newTestServer())

	rec := get(t, h, "/qr.png", url.Values{"content": {"HELLO"}, "width": {"300"}, "height": {"250"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 250, img.Bounds().Dy())
}

func TestQRPNG_DefaultSize(t *testing.T) {
	h := NewRouter(newTestServer())
	rec := get(t, h, "/qr.png", url.Values{"content": {"HELLO"}})
	require.Equal(t, http.StatusOK, rec.Code)

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestQRPNG_Errors(t *testing.T) {
	h := NewRouter(newTestServer())
	tests := []struct {
		name   string
		params url.Values
		code   int
	}{
		{"missing content", url.Values{}, http.StatusBadRequest},
		{"content too long", url.Values{"content": {strings.Repeat("a", 101)}}, http.StatusRequestEntityTooLarge},
		{"bad width", url.Values{"content": {"x"}, "width": {"abc"}}, http.StatusBadRequest},
		{"zero height", url.Values{"content": {"x"}, "height": {"0"}}, http.StatusBadRequest},
		{"over max size", url.Values{"content": {"x"}, "width": {"1001"}}, http.StatusBadRequest},
		{"bad level", url.Values{"content": {"x"}, "ec": {"Z"}}, http.StatusBadRequest},
		{"bad margin", url.Values{"content": {"x"}, "margin": {"-2"}}, http.StatusBadRequest},
		{"does not fit", url.Values{"content": {"HELLO"}, "width": {"20"}, "height": {"20"}}, http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, h, "/qr.png", tc.params)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestQRText(t *testing.T) {
	h := NewRouter(newTestServer())

	rec := get(t, h, "/qr.txt", url.Values{"content": {"HELLO"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 29)

	rec = get(t, h, "/qr.txt", url.Values{"content": {"HELLO"}, "compact": {"true"}, "margin": {"1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	lines = strings.Split(strings.TrimSuffix(rec.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 12)
}

func TestQRText_TooWide(t *testing.T) {
	h := NewRouter(newTestServer())
	// 60 bytes at Medium needs version 4: 33 modules plus the quiet zone.
	rec := get(t, h, "/qr.txt", url.Values{"content": {strings.Repeat("z", 60)}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestQRInfo(t *testing.T) {
	h := NewRouter(newTestServer())
	rec := get(t, h, "/qr/info", url.Values{"content": {"HELLO WORLD"}, "ec": {"Q"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var info qrInfoResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, 1, info.Version)
	assert.Equal(t, qrcode.Quartile.String(), info.Level)
	assert.Equal(t, "alphanumeric", info.Mode)
	assert.Equal(t, 21, info.Modules)
}

func TestStatus(t *testing.T) {
	h := NewRouter(newTestServer())
	rec := get(t, h, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var st statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "ok", st.Status)
	assert.Equal(t, "test", st.Version)
}

func TestCORSPreflight(t *testing.T) {
	h := NewRouter(newTestServer())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/qr.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
