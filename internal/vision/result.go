package vision

// Traits is the descriptive attribute bundle. Each field depends on its own
// secondary threshold over the FeatureSet, independent of which cascade rule
// decided the top-level category.
type Traits struct {
	ColorPrincipal string `json:"color_principal"`
	Manchas        string `json:"manchas"`
	Borde          string `json:"borde"`
	Textura        string `json:"textura"`
	Deformaciones  bool   `json:"deformaciones"`
}

// Diagnosis is the structured report for one analyzed image.
type Diagnosis struct {
	EstadoGeneral     Category    `json:"estado_general"`
	Probabilidad      float64     `json:"probabilidad"`
	Caracteristicas   Traits      `json:"caracteristicas_detectadas"`
	PosibleEnfermedad string      `json:"posible_enfermedad"`
	Debug             *FeatureSet `json:"debug,omitempty"`
}

// buildTraits derives the qualitative descriptions from the FeatureSet.
func buildTraits(p Parameters, f FeatureSet) Traits {
	spots := f.BrownArea + f.DarkNecrosisArea

	manchas := "ninguna visible"
	if spots >= p.SpotVisibleMin {
		manchas = "circulares, marrones"
	}

	borde := "regular"
	if f.EdgeDensity >= p.IrregularBorderMin {
		borde = "irregular"
	}

	textura := "normal"
	if f.MeanValue < p.DryTextureValueMax {
		textura = "seca"
	}

	return Traits{
		ColorPrincipal: dominantColor(f),
		Manchas:        manchas,
		Borde:          borde,
		Textura:        textura,
		Deformaciones:  f.EdgeDensity >= p.DeformationEdgeMin,
	}
}

// dominantColor names the largest diagnostic area, falling back to
// "indeterminado" when nothing covers a meaningful share of the image.
func dominantColor(f FeatureSet) string {
	best := "indeterminado"
	bestArea := 0.15
	for _, c := range []struct {
		name string
		area float64
	}{
		{"verde", f.HealthyGreenArea},
		{"amarillento", f.YellowArea + f.SoftChlorosisArea},
		{"marrón", f.BrownArea},
		{"verde oscuro", f.DarkNecrosisArea},
		{"violáceo", f.PurpleArea},
	} {
		if c.area > bestArea {
			best = c.name
			bestArea = c.area
		}
	}
	return best
}
