package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decodeAndNormalize validates the raw payload and produces the single
// bitmap representation every measurement runs on: NRGBA, alpha composited
// over white, no side longer than MaxSide. All validation failures happen
// here, before any feature is computed.
func (a *Analyzer) decodeAndNormalize(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if a.params.MaxBytes > 0 && int64(len(data)) > a.params.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrOversize, len(data))
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: degenerate bounds %dx%d", ErrUnsupportedFormat, width, height)
	}
	if width < a.params.MinSide || height < a.params.MinSide {
		return nil, fmt.Errorf("%w: %dx%d, minimum %dx%d", ErrTooSmall, width, height, a.params.MinSide, a.params.MinSide)
	}

	normalized := flattenToNRGBA(src)

	// Large photos are downscaled so the tuned thresholds stay stable
	// regardless of camera resolution.
	if longest := maxInt(width, height); longest > a.params.MaxSide {
		scale := float64(a.params.MaxSide) / float64(longest)
		newW := maxInt(int(float64(width)*scale), 1)
		newH := maxInt(int(float64(height)*scale), 1)
		scaled := image.NewNRGBA(image.Rect(0, 0, newW, newH))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), normalized, normalized.Bounds(), xdraw.Src, nil)
		normalized = scaled
	}

	return normalized, nil
}

// flattenToNRGBA converts any decoded color model to NRGBA, compositing
// transparent sources over white so alpha does not read as dark tissue.
func flattenToNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	return dst
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
