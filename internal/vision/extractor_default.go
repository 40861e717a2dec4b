//go:build !gocv
// +build !gocv

package vision

import "image"

// extract runs the pure Go feature extractor. Builds with the gocv tag use
// the OpenCV-backed variant instead; both produce the same FeatureSet.
func (a *Analyzer) extract(img *image.NRGBA) FeatureSet {
	return extractFeatures(img, a.params)
}
