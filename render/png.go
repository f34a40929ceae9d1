// Package render turns QR bit matrices into PNG images and terminal text.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/openclaw/qrkit/qrcode"
)

// Matrix is a read-only grid of cells; true is dark.
type Matrix interface {
	Width() int
	Height() int
	Get(x, y int) bool
}

// WriteError reports a failed write to the destination. Written is the
// number of bytes the destination accepted before failing.
type WriteError struct {
	Written int
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write png: %v (%d bytes written)", e.Err, e.Written)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ImageWriter serializes matrices as 8-bit grayscale PNG.
type ImageWriter struct {
	// Scale is the pixel edge length of one cell. Values below 1 mean 1.
	Scale       int
	Compression png.CompressionLevel
}

// WriteImage writes m as a PNG, one pixel per cell, to w.
func WriteImage(w io.Writer, m Matrix) error {
	return (&ImageWriter{}).Write(w, m)
}

// WritePNG encodes content into a width×height symbol and writes it to w as
// a PNG. Nothing is written when encoding fails.
func WritePNG(w io.Writer, content string, width, height int, opts qrcode.Options) error {
	m, err := qrcode.GenerateWithOptions(content, width, height, opts)
	if err != nil {
		return err
	}
	return WriteImage(w, m)
}

// Write encodes m completely in memory and then writes it to w in a single
// call. w is not closed. On failure the destination holds at most the prefix
// reported in WriteError.Written.
func (iw *ImageWriter) Write(w io.Writer, m Matrix) error {
	buf, err := iw.Encode(m)
	if err != nil {
		return err
	}
	n, err := w.Write(buf)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &WriteError{Written: n, Err: err}
	}
	return nil
}

// Encode returns the PNG bytes for m.
func (iw *ImageWriter) Encode(m Matrix) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: iw.Compression}
	if err := enc.Encode(&buf, iw.Image(m)); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Image rasterizes m: dark cells black, light cells white.
func (iw *ImageWriter) Image(m Matrix) *image.Gray {
	scale := max(iw.Scale, 1)
	w, h := m.Width(), m.Height()
	img := image.NewGray(image.Rect(0, 0, w*scale, h*scale))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !m.Get(x, y) {
				continue
			}
			for py := y * scale; py < (y+1)*scale; py++ {
				row := img.Pix[py*img.Stride:]
				for px := x * scale; px < (x+1)*scale; px++ {
					row[px] = 0
				}
			}
		}
	}
	return img
}
