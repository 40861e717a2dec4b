//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// extract is the OpenCV-backed feature extractor, selected with the gocv
// build tag. It mirrors the pure Go path measurement for measurement so the
// tuned thresholds apply to both.
func (a *Analyzer) extract(img *image.NRGBA) FeatureSet {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		// The bitmap was already validated; fall back to the portable path
		// rather than failing the analysis.
		return extractFeatures(img, a.params)
	}
	defer mat.Close()

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(mat, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	// The Mat carries RGB channel order, so the RGB conversion codes apply.
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(blur, &hsv, gocv.ColorRGBToHSV)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(blur, &gray, gocv.ColorRGBToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, float32(a.params.CannyLow), float32(a.params.CannyHigh))

	width, height := mat.Cols(), mat.Rows()
	total := float64(width * height)

	brownMask := maskInRange(hsv, a.params.Brown)
	defer brownMask.Close()
	darkMask := maskInRange(hsv, a.params.DarkNecrosis)
	defer darkMask.Close()

	necrotic := gocv.NewMat()
	defer necrotic.Close()
	gocv.BitwiseOr(brownMask, darkMask, &necrotic)

	band := int(float64(minInt(width, height)) * a.params.BorderBandRatio)
	if band < 1 {
		band = 1
	}
	edgeNecrosis := bandRatio(necrotic, band)

	mean := hsv.Mean()

	return FeatureSet{
		MeanHue:           mean.Val1,
		MeanSaturation:    mean.Val2,
		MeanValue:         mean.Val3,
		EdgeDensity:       float64(gocv.CountNonZero(edges)) / total,
		HealthyGreenArea:  maskRatio(hsv, a.params.HealthyGreen),
		YellowArea:        maskRatio(hsv, a.params.Yellow),
		SoftChlorosisArea: maskRatio(hsv, a.params.SoftChlorosis),
		BrownArea:         float64(gocv.CountNonZero(brownMask)) / total,
		DarkNecrosisArea:  float64(gocv.CountNonZero(darkMask)) / total,
		PurpleArea:        maskRatio(hsv, a.params.Purple),
		EdgeNecrosisArea:  edgeNecrosis,
	}
}

func maskInRange(hsv gocv.Mat, r HSVRange) gocv.Mat {
	mask := gocv.NewMat()
	lower := gocv.NewScalar(r.MinH, r.MinS, r.MinV, 0)
	upper := gocv.NewScalar(r.MaxH, r.MaxS, r.MaxV, 0)
	gocv.InRangeWithScalars(hsv, lower, upper, &mask)
	return mask
}

func maskRatio(hsv gocv.Mat, r HSVRange) float64 {
	mask := maskInRange(hsv, r)
	defer mask.Close()
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}

// bandRatio returns the fraction of set pixels within the border band of the
// given thickness.
func bandRatio(mask gocv.Mat, band int) float64 {
	width, height := mask.Cols(), mask.Rows()
	interior := image.Rect(band, band, width-band, height-band)
	if interior.Empty() {
		total := width * height
		if total <= 0 {
			return 0
		}
		return float64(gocv.CountNonZero(mask)) / float64(total)
	}

	banded := mask.Clone()
	defer banded.Close()
	region := banded.Region(interior)
	region.SetTo(gocv.NewScalar(0, 0, 0, 0))
	region.Close()

	bandTotal := width*height - interior.Dx()*interior.Dy()
	if bandTotal <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(banded)) / float64(bandTotal)
}
