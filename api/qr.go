package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/openclaw/qrkit/qrcode"
	"github.com/openclaw/qrkit/render"
)

type qrInfoResponse struct {
	Version int    `json:"version"`
	Level   string `json:"level"`
	Mask    int    `json:"mask"`
	Mode    string `json:"mode"`
	Modules int    `json:"modules"`
}

// handleQRPNG serves GET /qr.png?content=&width=&height=&ec=&margin=.
func (s *Server) handleQRPNG(w http.ResponseWriter, r *http.Request) {
	content, ok := s.content(w, r)
	if !ok {
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	width, err := s.dimension(r, "width")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := s.dimension(r, "height")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := qrcode.GenerateWithOptions(content, width, height, opts)
	if err != nil {
		s.writeEncodingError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.WriteImage(w, m); err != nil {
		s.Log.Warn("write png response", "error", err)
	}
}

// handleQRText serves GET /qr.txt?content=&compact=&invert=&ec=&margin=.
// The symbol is drawn at one text cell per module.
func (s *Server) handleQRText(w http.ResponseWriter, r *http.Request) {
	content, ok := s.content(w, r)
	if !ok {
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	compact, err := boolParam(r, "compact")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	invert, err := boolParam(r, "invert")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	code, err := qrcode.Encode(content, opts)
	if err != nil {
		s.writeEncodingError(w, err)
		return
	}
	margin := qrcode.DefaultMargin
	if opts.Margin != nil {
		margin = *opts.Margin
	}
	bm := code.Bitmap(margin)
	if limit := s.Limits.MaxASCIIModules; limit > 0 && bm.Width() > limit {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("symbol is %d modules wide, text output is limited to %d", bm.Width(), limit))
		return
	}

	var out string
	switch {
	case compact:
		out = render.ToCompact(bm, invert)
	case invert:
		out = render.InvertedGlyphs.Render(bm)
	default:
		out = render.ToASCII(bm)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}

// handleQRInfo serves GET /qr/info?content=&ec= with the parameters the
// encoder chose.
func (s *Server) handleQRInfo(w http.ResponseWriter, r *http.Request) {
	content, ok := s.content(w, r)
	if !ok {
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	code, err := qrcode.Encode(content, opts)
	if err != nil {
		s.writeEncodingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qrInfoResponse{
		Version: code.Version,
		Level:   code.Level.String(),
		Mask:    code.Mask,
		Mode:    code.Mode.String(),
		Modules: code.Size(),
	})
}

// content extracts the content parameter, writing the error response itself
// when the request is unusable.
func (s *Server) content(w http.ResponseWriter, r *http.Request) (string, bool) {
	content := r.URL.Query().Get("content")
	if content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return "", false
	}
	if n := utf8.RuneCountInString(content); n > s.Limits.MaxContentLength {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("content is %d characters, limit is %d", n, s.Limits.MaxContentLength))
		return "", false
	}
	return content, true
}

func (s *Server) options(r *http.Request) (qrcode.Options, error) {
	opts := s.Options
	q := r.URL.Query()
	if v := q.Get("ec"); v != "" {
		level, err := qrcode.ParseLevel(v)
		if err != nil {
			return opts, err
		}
		opts.Level = level
	}
	if v := q.Get("margin"); v != "" {
		margin, err := strconv.Atoi(v)
		if err != nil || margin < 0 {
			return opts, fmt.Errorf("invalid margin %q", v)
		}
		opts.Margin = &margin
	}
	return opts, nil
}

func (s *Server) dimension(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return s.Limits.DefaultSize, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	if n > s.Limits.MaxSize {
		return 0, fmt.Errorf("%s %d exceeds limit %d", name, n, s.Limits.MaxSize)
	}
	return n, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", name, v)
	}
	return b, nil
}

func (s *Server) writeEncodingError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, qrcode.ErrDataTooLong) || errors.Is(err, qrcode.ErrDoesNotFit) {
		status = http.StatusUnprocessableEntity
	}
	s.Log.Warn("qr encoding failed", "error", err)
	writeError(w, status, err.Error())
}
