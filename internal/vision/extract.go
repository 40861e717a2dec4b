package vision

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

// extractFeatures measures a normalized bitmap and returns its FeatureSet.
// The source image is never mutated; the 5x5 Gaussian blur runs once and
// feeds every downstream measurement, suppressing sensor noise in both the
// color statistics and the edge map.
func extractFeatures(img *image.NRGBA, p Parameters) FeatureSet {
	blurred := gaussianBlur5(img)

	bounds := blurred.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	total := width * height

	hues := make([]float64, 0, total)
	sats := make([]float64, 0, total)
	vals := make([]float64, 0, total)
	gray := make([]float64, total)

	band := int(float64(minInt(width, height)) * p.BorderBandRatio)
	if band < 1 {
		band = 1
	}

	var green, yellow, soft, brown, dark, purple int
	var bandTotal, bandNecrotic int

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := blurred.PixOffset(x, y)
			r := float64(blurred.Pix[i])
			g := float64(blurred.Pix[i+1])
			b := float64(blurred.Pix[i+2])

			h, s, v := rgbToHSV(r, g, b)
			hues = append(hues, h)
			sats = append(sats, s)
			vals = append(vals, v)
			gray[y*width+x] = 0.299*r + 0.587*g + 0.114*b

			if p.HealthyGreen.Contains(h, s, v) {
				green++
			}
			if p.Yellow.Contains(h, s, v) {
				yellow++
			}
			if p.SoftChlorosis.Contains(h, s, v) {
				soft++
			}
			necrotic := false
			if p.Brown.Contains(h, s, v) {
				brown++
				necrotic = true
			}
			if p.DarkNecrosis.Contains(h, s, v) {
				dark++
				necrotic = true
			}
			if p.Purple.Contains(h, s, v) {
				purple++
			}

			if x < band || y < band || x >= width-band || y >= height-band {
				bandTotal++
				if necrotic {
					bandNecrotic++
				}
			}
		}
	}

	ratio := func(count int) float64 { return float64(count) / float64(total) }

	edgeNecrosis := 0.0
	if bandTotal > 0 {
		edgeNecrosis = float64(bandNecrotic) / float64(bandTotal)
	}

	return FeatureSet{
		MeanHue:           stat.Mean(hues, nil),
		MeanSaturation:    stat.Mean(sats, nil),
		MeanValue:         stat.Mean(vals, nil),
		EdgeDensity:       sobelEdgeFraction(gray, width, height, p.EdgeGradientMin),
		HealthyGreenArea:  ratio(green),
		YellowArea:        ratio(yellow),
		SoftChlorosisArea: ratio(soft),
		BrownArea:         ratio(brown),
		DarkNecrosisArea:  ratio(dark),
		PurpleArea:        ratio(purple),
		EdgeNecrosisArea:  edgeNecrosis,
	}
}

// gaussianBlur5 applies a separable 5x5 Gaussian kernel (1 4 6 4 1)/16 per
// axis with edge replication, returning a new image.
func gaussianBlur5(src *image.NRGBA) *image.NRGBA {
	kernel := [5]float64{1, 4, 6, 4, 1}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	tmp := make([]float64, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b float64
			for k := -2; k <= 2; k++ {
				xx := clampInt(x+k, 0, width-1)
				i := src.PixOffset(xx, y)
				wgt := kernel[k+2]
				r += wgt * float64(src.Pix[i])
				g += wgt * float64(src.Pix[i+1])
				b += wgt * float64(src.Pix[i+2])
			}
			o := (y*width + x) * 3
			tmp[o] = r / 16
			tmp[o+1] = g / 16
			tmp[o+2] = b / 16
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b float64
			for k := -2; k <= 2; k++ {
				yy := clampInt(y+k, 0, height-1)
				o := (yy*width + x) * 3
				wgt := kernel[k+2]
				r += wgt * tmp[o]
				g += wgt * tmp[o+1]
				b += wgt * tmp[o+2]
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i] = uint8(r/16 + 0.5)
			dst.Pix[i+1] = uint8(g/16 + 0.5)
			dst.Pix[i+2] = uint8(b/16 + 0.5)
			dst.Pix[i+3] = 255
		}
	}
	return dst
}

// sobelEdgeFraction returns the fraction of pixels whose Sobel gradient
// magnitude reaches the threshold. It mirrors the original Canny-based
// texture score closely enough for the tuned rule thresholds.
func sobelEdgeFraction(gray []float64, width, height int, threshold float64) float64 {
	if width < 3 || height < 3 {
		return 0
	}
	edges := 0
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			tl := gray[(y-1)*width+x-1]
			tc := gray[(y-1)*width+x]
			tr := gray[(y-1)*width+x+1]
			ml := gray[y*width+x-1]
			mr := gray[y*width+x+1]
			bl := gray[(y+1)*width+x-1]
			bc := gray[(y+1)*width+x]
			br := gray[(y+1)*width+x+1]

			gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy := (bl + 2*bc + br) - (tl + 2*tc + tr)
			if math.Hypot(gx, gy) >= threshold {
				edges++
			}
		}
	}
	return float64(edges) / float64(width*height)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
