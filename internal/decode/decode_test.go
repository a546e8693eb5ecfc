package decode

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestFileDecoderDecodesPNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 6, 4)

	img, err := FileDecoder{}.Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestFileDecoderReportsFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))

	_, err := FileDecoder{}.Decode(bad)
	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, bad, failure.Path)

	_, err = FileDecoder{}.Decode(filepath.Join(dir, "missing.png"))
	require.True(t, errors.As(err, &failure))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileDecoderMaxPixels(t *testing.T) {
	path := writePNG(t, t.TempDir(), "big.png", 20, 20)

	_, err := FileDecoder{MaxPixels: 100}.Decode(path)
	assert.Error(t, err)

	img, err := FileDecoder{MaxPixels: 400}.Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
}

type gatedDecoder struct {
	gate chan struct{}
	img  image.Image
}

func (g *gatedDecoder) Decode(string) (image.Image, error) {
	<-g.gate
	return g.img, nil
}

func TestAsyncDeliversResultOnce(t *testing.T) {
	inner := &gatedDecoder{gate: make(chan struct{}), img: image.NewRGBA(image.Rect(0, 0, 2, 2))}
	notified := make(chan string, 1)
	a := NewAsync(inner, func(p string) { notified <- p }, nil)

	_, err := a.Decode("x.png")
	assert.ErrorIs(t, err, ErrPending)
	_, err = a.Decode("x.png")
	assert.ErrorIs(t, err, ErrPending)
	assert.Equal(t, 1, a.Pending())

	close(inner.gate)
	select {
	case p := <-notified:
		assert.Equal(t, "x.png", p)
	case <-time.After(2 * time.Second):
		t.Fatalf("decode never completed")
	}

	img, err := a.Decode("x.png")
	require.NoError(t, err)
	assert.Same(t, inner.img, img)
	assert.Equal(t, 0, a.Pending())
}

func TestAsyncCancelDropsResult(t *testing.T) {
	inner := &gatedDecoder{gate: make(chan struct{}), img: image.NewRGBA(image.Rect(0, 0, 2, 2))}
	notified := make(chan string, 1)
	a := NewAsync(inner, func(p string) { notified <- p }, nil)

	_, err := a.Decode("x.png")
	require.ErrorIs(t, err, ErrPending)
	a.Cancel("x.png")
	assert.Equal(t, 0, a.Pending())
	close(inner.gate)

	select {
	case <-notified:
		t.Fatalf("canceled decode must not notify")
	case <-time.After(50 * time.Millisecond):
	}
	a.Close()
}
