package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	healthyGreen = color.NRGBA{R: 60, G: 160, B: 70, A: 255}
	darkBrown    = color.NRGBA{R: 60, G: 35, B: 25, A: 255}
	chloroticYel = color.NRGBA{R: 180, G: 170, B: 60, A: 255}
)

func uniformImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func fillRect(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func TestRGBToHSVMatchesOpenCVScale(t *testing.T) {
	h, s, v := rgbToHSV(60, 160, 70)
	require.InDelta(t, 63.0, h, 0.01)
	require.InDelta(t, 159.4, s, 0.5)
	require.InDelta(t, 160.0, v, 0.01)

	// Pure white: no saturation, full value, hue pinned to zero.
	h, s, v = rgbToHSV(255, 255, 255)
	require.Equal(t, 0.0, h)
	require.Equal(t, 0.0, s)
	require.Equal(t, 255.0, v)
}

func TestExtractUniformGreen(t *testing.T) {
	p := DefaultParameters()
	img := uniformImage(100, 100, healthyGreen)

	f := extractFeatures(img, p)

	require.InDelta(t, 1.0, f.HealthyGreenArea, 0.001)
	require.InDelta(t, 0.0, f.EdgeDensity, 0.001)
	require.InDelta(t, 63.0, f.MeanHue, 1.0)
	require.InDelta(t, 160.0, f.MeanValue, 1.5)
	require.Zero(t, f.BrownArea)
	require.Zero(t, f.EdgeNecrosisArea)
}

func TestExtractRatiosStayInUnitInterval(t *testing.T) {
	p := DefaultParameters()
	img := uniformImage(80, 80, healthyGreen)
	fillRect(img, image.Rect(20, 20, 60, 60), darkBrown)

	f := extractFeatures(img, p)
	for name, v := range map[string]float64{
		"healthy": f.HealthyGreenArea,
		"yellow":  f.YellowArea,
		"soft":    f.SoftChlorosisArea,
		"brown":   f.BrownArea,
		"dark":    f.DarkNecrosisArea,
		"purple":  f.PurpleArea,
		"edges":   f.EdgeDensity,
		"band":    f.EdgeNecrosisArea,
	} {
		require.GreaterOrEqual(t, v, 0.0, name)
		require.LessOrEqual(t, v, 1.0, name)
	}
}

func TestExtractDoesNotMutateInput(t *testing.T) {
	p := DefaultParameters()
	img := uniformImage(60, 60, healthyGreen)
	fillRect(img, image.Rect(10, 10, 30, 30), darkBrown)

	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	_ = extractFeatures(img, p)

	require.Equal(t, before, img.Pix)
}

func TestExtractAreaRatiosSurviveResampling(t *testing.T) {
	p := DefaultParameters()

	build := func(side int) *image.NRGBA {
		img := uniformImage(side, side, healthyGreen)
		fillRect(img, image.Rect(side/2, 0, side, side), chloroticYel)
		return img
	}

	small := extractFeatures(build(120), p)
	large := extractFeatures(build(480), p)

	require.InDelta(t, small.HealthyGreenArea, large.HealthyGreenArea, 0.05)
	require.InDelta(t, small.YellowArea, large.YellowArea, 0.05)
	require.InDelta(t, 0.5, large.HealthyGreenArea, 0.05)
	require.InDelta(t, 0.5, large.YellowArea, 0.05)
}

func TestGaussianBlurPreservesUniformRegions(t *testing.T) {
	img := uniformImage(40, 40, healthyGreen)
	blurred := gaussianBlur5(img)

	i := blurred.PixOffset(20, 20)
	require.Equal(t, healthyGreen.R, blurred.Pix[i])
	require.Equal(t, healthyGreen.G, blurred.Pix[i+1])
	require.Equal(t, healthyGreen.B, blurred.Pix[i+2])
}
