// Package decode turns image files into rasters.
package decode

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Registered decoders. Formats below must stay in sync with these.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats lists the file extensions the registered decoders understand.
var Formats = []string{"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp"}

// ErrPending is returned while an asynchronous decode is still running.
var ErrPending = errors.New("decode pending")

// Decoder turns a file path into a raster.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// Canceler is implemented by decoders that can abandon in-flight work.
type Canceler interface {
	Cancel(path string)
}

// Failure reports a file that could not be decoded.
type Failure struct {
	Path string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", f.Path, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// FileDecoder decodes files with the standard image registry.
type FileDecoder struct {
	// MaxPixels rejects images larger than this many pixels; 0 disables the check.
	MaxPixels int
}

// Decode reads and decodes path.
func (d FileDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Failure{Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	if d.MaxPixels > 0 {
		cfg, _, err := image.DecodeConfig(f)
		if err != nil {
			return nil, &Failure{Path: path, Err: err}
		}
		if cfg.Width*cfg.Height > d.MaxPixels {
			return nil, &Failure{Path: path, Err: fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)}
		}
		if _, err := f.Seek(0, 0); err != nil {
			return nil, &Failure{Path: path, Err: err}
		}
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &Failure{Path: path, Err: err}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &Failure{Path: path, Err: errors.New("empty image")}
	}
	return img, nil
}
