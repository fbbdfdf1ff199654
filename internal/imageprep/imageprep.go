// Package imageprep cleans up rasterized statement pages before OCR:
// grayscale, blur, adaptive threshold, and deskew.
package imageprep

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// thresholdWindow is the side of the neighborhood used by the
	// adaptive threshold.
	thresholdWindow = 11
	// thresholdOffset is subtracted from the neighborhood mean; pixels
	// darker than mean-offset become black.
	thresholdOffset = 2
	// minSkewDegrees is the smallest detected skew worth correcting.
	minSkewDegrees = 0.5
	// maxSkewDegrees caps the correction; larger estimates are treated
	// as content, not skew.
	maxSkewDegrees = 45.0
)

// Preprocess runs the full cleanup chain on a rasterized page.
func Preprocess(src image.Image) image.Image {
	gray := imaging.Grayscale(src)
	blurred := imaging.Blur(gray, 1.0)
	binary := AdaptiveThreshold(blurred, thresholdWindow, thresholdOffset)
	return Deskew(binary)
}

// AdaptiveThreshold binarizes a grayscale image against the local mean of a
// window x window neighborhood, computed with an integral image.
func AdaptiveThreshold(src image.Image, window, offset int) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, src, bounds.Min, draw.Src)

	// integral[y][x] holds the sum of all pixels above and left of (x,y).
	integral := make([][]int64, h+1)
	for y := range integral {
		integral[y] = make([]int64, w+1)
	}
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			integral[y+1][x+1] = integral[y][x+1] + rowSum
		}
	}

	half := window / 2
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := max(0, x-half), max(0, y-half)
			x1, y1 := min(w-1, x+half), min(h-1, y+half)
			count := int64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[y1+1][x1+1] - integral[y0][x1+1] - integral[y1+1][x0] + integral[y0][x0]
			mean := sum / count

			v := int64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			if v < mean-int64(offset) {
				out.SetGray(x, y, color.Gray{Y: 0})
			} else {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// grayAt is a tiny helper so EstimateSkew can take any image.
func grayAt(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8((299*r + 587*g + 114*b) / 1000 >> 8)
}

// EstimateSkew estimates the dominant text rotation in degrees using the
// second-order central moments of dark pixels, in image coordinates
// (y grows downward).
func EstimateSkew(img image.Image) float64 {
	bounds := img.Bounds()

	var n, sumX, sumY float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if grayAt(img, x, y) < 128 {
				n++
				sumX += float64(x)
				sumY += float64(y)
			}
		}
	}
	if n < 100 {
		return 0 // too few dark pixels to estimate anything
	}
	cx, cy := sumX/n, sumY/n

	var mu20, mu02, mu11 float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if grayAt(img, x, y) < 128 {
				dx, dy := float64(x)-cx, float64(y)-cy
				mu20 += dx * dx
				mu02 += dy * dy
				mu11 += dx * dy
			}
		}
	}

	angle := 0.5 * math.Atan2(2*mu11, mu20-mu02) * 180 / math.Pi
	if math.Abs(angle) > maxSkewDegrees {
		return 0
	}
	return angle
}

// Deskew rotates the image to undo estimated skew. Rotations under the
// minimum are skipped; the background fills with white.
func Deskew(img image.Image) image.Image {
	angle := EstimateSkew(img)
	if math.Abs(angle) < minSkewDegrees {
		return img
	}
	return imaging.Rotate(img, -angle, color.White)
}
