//go:build gocv
// +build gocv

package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The measurement Mat is RGB-ordered; interpreting it as BGR would swap red
// and blue and push brown tissue out of the necrosis hue band. Uniform
// bitmaps pin the mask semantics for both paths.
func TestExtractMasksUseRGBChannelOrder(t *testing.T) {
	a := NewAnalyzer(DefaultParameters())

	f := a.extract(uniformImage(100, 100, darkBrown))
	require.InDelta(t, 1.0, f.BrownArea, 0.05)
	require.InDelta(t, 1.0, f.DarkNecrosisArea, 0.05)
	require.Less(t, f.HealthyGreenArea, 0.05)

	f = a.extract(uniformImage(100, 100, healthyGreen))
	require.InDelta(t, 1.0, f.HealthyGreenArea, 0.05)
	require.Less(t, f.BrownArea, 0.05)
	require.Less(t, f.DarkNecrosisArea, 0.05)
}

func TestExtractOpenCVRatiosStayInUnitInterval(t *testing.T) {
	a := NewAnalyzer(DefaultParameters())

	img := uniformImage(120, 120, healthyGreen)
	f := a.extract(img)
	for name, v := range map[string]float64{
		"densidad_bordes":      f.EdgeDensity,
		"area_verde_sana":      f.HealthyGreenArea,
		"area_amarilla":        f.YellowArea,
		"area_clorosis_suave":  f.SoftChlorosisArea,
		"area_marron":          f.BrownArea,
		"area_necrosis_oscura": f.DarkNecrosisArea,
		"area_purpura":         f.PurpleArea,
		"area_necrosis_borde":  f.EdgeNecrosisArea,
	} {
		require.GreaterOrEqual(t, v, 0.0, name)
		require.LessOrEqual(t, v, 1.0, name)
	}
}
