package vision

import "math"

// FeatureSet is the fixed set of scalar measurements extracted from one
// normalized image. Area fields are fractions in [0,1]; the mean channel
// statistics use the OpenCV HSV scale (H 0-180, S/V 0-255). A FeatureSet is
// produced once per analysis and never mutated afterwards.
type FeatureSet struct {
	MeanHue        float64 `json:"tono_medio"`
	MeanSaturation float64 `json:"saturacion_media"`
	MeanValue      float64 `json:"valor_medio"`

	// Fraction of pixels on an edge, a proxy for surface roughness.
	EdgeDensity float64 `json:"densidad_bordes"`

	HealthyGreenArea  float64 `json:"area_verde_sana"`
	YellowArea        float64 `json:"area_amarilla"`
	SoftChlorosisArea float64 `json:"area_clorosis_suave"`
	BrownArea         float64 `json:"area_marron"`
	DarkNecrosisArea  float64 `json:"area_necrosis_oscura"`
	PurpleArea        float64 `json:"area_purpura"`

	// Necrotic fraction of the border band, for marginal scorch.
	EdgeNecrosisArea float64 `json:"area_necrosis_borde"`
}

// ClassifiedCoverage is the total image fraction claimed by any diagnostic
// mask. Low coverage usually means the photo is not a leaf.
func (f FeatureSet) ClassifiedCoverage() float64 {
	return f.HealthyGreenArea + f.YellowArea + f.SoftChlorosisArea +
		f.BrownArea + f.DarkNecrosisArea + f.PurpleArea
}

// Rounded returns a copy with every field rounded to four decimals, the
// precision used when attaching raw features to a debug response.
func (f FeatureSet) Rounded() FeatureSet {
	return FeatureSet{
		MeanHue:           round4(f.MeanHue),
		MeanSaturation:    round4(f.MeanSaturation),
		MeanValue:         round4(f.MeanValue),
		EdgeDensity:       round4(f.EdgeDensity),
		HealthyGreenArea:  round4(f.HealthyGreenArea),
		YellowArea:        round4(f.YellowArea),
		SoftChlorosisArea: round4(f.SoftChlorosisArea),
		BrownArea:         round4(f.BrownArea),
		DarkNecrosisArea:  round4(f.DarkNecrosisArea),
		PurpleArea:        round4(f.PurpleArea),
		EdgeNecrosisArea:  round4(f.EdgeNecrosisArea),
	}
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
