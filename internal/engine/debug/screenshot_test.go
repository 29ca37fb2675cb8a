package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "orbits")
	sc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 45, 123e6, time.UTC) }

	// 1x2 image, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orbits_2024-03-01_12-30-45.123.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBAModel.Convert(color.RGBA{0, 0, 255, 255}), color.NRGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.NRGBAModel.Convert(color.RGBA{255, 0, 0, 255}), color.NRGBAModel.Convert(img.At(0, 1)))
}

func TestCaptureFromPixelsRejectsBadSize(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "orbits")

	_, err := sc.CaptureFromPixels(make([]byte, 12), 2, 2)
	assert.Error(t, err)

	_, err = sc.CaptureFromPixels(nil, 0, 0)
	assert.Error(t, err)
}
