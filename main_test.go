package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPNG_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hello.png")
	err := runPNG(nil, "HELLO", 120, 90, out, encodeFlags{level: "M", margin: 4})
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestRunPNG_Stdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runPNG(&buf, "HELLO", 64, 64, "-", encodeFlags{level: "L", margin: 2}))
	_, err := png.Decode(&buf)
	require.NoError(t, err)
}

func TestRunPNG_Errors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, runPNG(nil, "HELLO", 64, 64, filepath.Join(dir, "a.png"), encodeFlags{level: "X"}))
	assert.Error(t, runPNG(nil, "", 64, 64, filepath.Join(dir, "b.png"), encodeFlags{level: "M"}))
	assert.Error(t, runPNG(nil, "HELLO", 16, 16, filepath.Join(dir, "c.png"), encodeFlags{level: "M", margin: 4}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunASCII(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runASCII(&buf, "HELLO", false, false, encodeFlags{level: "M", margin: 1}))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 23)

	buf.Reset()
	require.NoError(t, runASCII(&buf, "HELLO", true, true, encodeFlags{level: "M", margin: 1}))
	lines = strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 12)
}

func TestRunInfo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runInfo(&buf, "HELLO", encodeFlags{level: "H"}))
	assert.Contains(t, buf.String(), "version: 1\n")
	assert.Contains(t, buf.String(), "level:   H\n")
	assert.Contains(t, buf.String(), "mode:    alphanumeric\n")
}
