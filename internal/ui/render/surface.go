package render

import (
	"image"

	"github.com/kk-code-lab/imgview/internal/surface"
	"github.com/nfnt/resize"
)

// ImageSurface is a surface.Frame that keeps its raster scaled to the
// current size, so repeated frames of an animation do not rescale.
type ImageSurface struct {
	*surface.Frame

	generation int
	scaled     image.Image
	scaledGen  int
	scaledW    int
	scaledH    int
}

// NewImageSurface returns an empty surface; it is the pool's constructor.
func NewImageSurface() surface.Surface {
	return &ImageSurface{Frame: surface.NewFrame()}
}

// SetContent replaces the content and drops the scaled copy.
func (s *ImageSurface) SetContent(c surface.Content) {
	s.Frame.SetContent(c)
	s.generation++
	s.scaled = nil
}

// Scaled returns the image resized to the surface bounds, or nil for a
// placeholder.
func (s *ImageSurface) Scaled() image.Image {
	img := s.Content().Image
	b := s.Bounds()
	if img == nil || b.W <= 0 || b.H <= 0 {
		return nil
	}
	if s.scaled != nil && s.scaledGen == s.generation && s.scaledW == b.W && s.scaledH == b.H {
		return s.scaled
	}
	s.scaled = scaleImage(img, b.W, b.H)
	s.scaledGen, s.scaledW, s.scaledH = s.generation, b.W, b.H
	return s.scaled
}

type scaler interface {
	Scaled() image.Image
}

func scaledContent(s surface.Surface) image.Image {
	if sc, ok := s.(scaler); ok {
		return sc.Scaled()
	}
	b := s.Bounds()
	img := s.Content().Image
	if img == nil || b.W <= 0 || b.H <= 0 {
		return nil
	}
	return scaleImage(img, b.W, b.H)
}

func scaleImage(img image.Image, w, h int) image.Image {
	if ib := img.Bounds(); ib.Dx() == w && ib.Dy() == h {
		return img
	}
	return resize.Resize(uint(w), uint(h), img, resize.Bilinear)
}
