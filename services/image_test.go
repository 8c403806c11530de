package services

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResizeIfTooLarge(t *testing.T) {
	t.Run("small image untouched", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 640, 480)) // ~307 piksel-KB
		got := resizeIfTooLarge(src)
		assert.Same(t, image.Image(src), got)
	})

	t.Run("large image scaled below threshold", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 4000, 3000)) // 12000 piksel-KB
		got := resizeIfTooLarge(src)

		bounds := got.Bounds()
		assert.Less(t, (bounds.Dx()*bounds.Dy())/1000, maxImageResolutionKB)

		// En-boy oranı korunur (4:3, küçük yuvarlama payıyla)
		ratio := float64(bounds.Dx()) / float64(bounds.Dy())
		assert.InDelta(t, 4.0/3.0, ratio, 0.02)
	})

	t.Run("threshold boundary resizes", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 1000, 1000)) // tam 1000 piksel-KB
		got := resizeIfTooLarge(src)
		assert.NotEqual(t, src.Bounds(), got.Bounds())
	})
}
