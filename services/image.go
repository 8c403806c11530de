package services

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// maxImageResolutionKB, yeniden boyutlandırma eşiği.
// Yaklaşık hesap: (genişlik * yükseklik) / 1000 piksel-kilobyte'ı bu sınırı
// aşarsa görüntü küçültülür. Amaç bucket maliyetini ve presigned indirme
// süresini sınırlamak, piksel-mükemmel bir ölçüm değil.
const maxImageResolutionKB = 1000

// resizeIfTooLarge, eşiği aşan görüntüleri en-boy oranını koruyarak
// eşiğin hemen altına ölçekler. Eşiğin altındaki görüntüler dokunulmadan döner.
func resizeIfTooLarge(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	resolutionKB := (width * height) / 1000
	if resolutionKB < maxImageResolutionKB {
		return img
	}

	// Ölçek faktörü alan üzerinden hesaplanır, her iki boyut aynı oranda
	// küçülür. Hedef eşiğin bir altı — tam eşikteki görüntü de küçülsün.
	scale := math.Sqrt(float64((maxImageResolutionKB-1)*1000) / float64(width*height))
	newWidth := int(float64(width) * scale)
	newHeight := int(float64(height) * scale)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	// CatmullRom: en yavaş ama en kaliteli kernel. Upload zaten nadir bir
	// işlem, kalite hızdan önemli.
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst
}
