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

	"github.com/fuel3d/fuel/internal/engine/gfx/gfxtest"
)

func fixedCapture(dir string) *ScreenshotCapture {
	sc := NewScreenshotCapture(dir, "fuel")
	sc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return sc
}

func TestCaptureFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	dev := gfxtest.New()
	// 1x2, bottom row red, top row blue.
	dev.Pixels = []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}

	path, err := fixedCapture(dir).Capture(dev, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fuel_2026-01-02_03-04-05.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(img.At(0, 1)))
}

func TestCaptureSameSecondDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	sc := fixedCapture(dir)
	pixels := make([]byte, 4)

	first, err := sc.CaptureFromPixels(pixels, 1, 1)
	require.NoError(t, err)
	second, err := sc.CaptureFromPixels(pixels, 1, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, filepath.Join(dir, "fuel_2026-01-02_03-04-05_2.png"), second)
}

func TestCaptureSizeMismatch(t *testing.T) {
	_, err := fixedCapture(t.TempDir()).CaptureFromPixels([]byte{1, 2, 3}, 1, 1)
	assert.ErrorContains(t, err, "size mismatch")
}
