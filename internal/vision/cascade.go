package vision

// Category is the closed vocabulary of diagnostic outcomes. Labels are
// user-facing and match the public JSON contract.
type Category string

const (
	CategoryHealthy      Category = "Sana"
	CategoryNutrient     Category = "Deficiencia nutricional"
	CategoryFungal       Category = "Hongo foliar"
	CategoryWaterStress  Category = "Estrés hídrico"
	CategoryInconclusive Category = "No concluyente"
	CategoryUnknown      Category = "Desconocido"
)

// rule is one entry of the diagnostic decision list. Confidence formulas are
// base-plus-linear on matching features; the caller clamps and rounds.
type rule struct {
	name       string
	category   Category
	cause      string
	matches    func(p Parameters, f FeatureSet) bool
	confidence func(p Parameters, f FeatureSet) float64
}

// cascade is strictly ordered: the first rule whose predicate holds decides
// the diagnosis and later rules are never consulted. The final catch-all
// makes classification total over every possible FeatureSet.
var cascade = []rule{
	{
		name:     "estres_hidrico",
		category: CategoryWaterStress,
		cause:    "Posible falta de riego",
		matches: func(p Parameters, f FeatureSet) bool {
			return f.EdgeNecrosisArea >= p.MarginalScorchMin ||
				(f.MeanValue <= p.DryValueMax && f.EdgeDensity >= p.DryEdgeMin)
		},
		confidence: func(p Parameters, f FeatureSet) float64 {
			return 0.52 + 0.45*f.EdgeNecrosisArea
		},
	},
	{
		name:     "hongo_foliar",
		category: CategoryFungal,
		cause:    "Posible Cercospora o Phytophthora",
		matches: func(p Parameters, f FeatureSet) bool {
			return f.BrownArea+f.DarkNecrosisArea >= p.FungalSpotMin &&
				f.EdgeDensity >= p.FungalEdgeMin
		},
		confidence: func(p Parameters, f FeatureSet) float64 {
			return 0.55 + 1.5*(f.BrownArea+f.DarkNecrosisArea)
		},
	},
	{
		name:     "deficiencia_fosforo",
		category: CategoryNutrient,
		cause:    "Posible deficiencia de fósforo",
		matches: func(p Parameters, f FeatureSet) bool {
			return f.PurpleArea >= p.PurpleMin
		},
		confidence: func(p Parameters, f FeatureSet) float64 {
			return 0.54 + 1.2*f.PurpleArea
		},
	},
	{
		name:     "deficiencia_nitrogeno",
		category: CategoryNutrient,
		cause:    "Posible falta de nitrógeno",
		matches: func(p Parameters, f FeatureSet) bool {
			return f.YellowArea+f.SoftChlorosisArea >= p.ChlorosisMin
		},
		confidence: func(p Parameters, f FeatureSet) float64 {
			return 0.52 + 0.8*(f.YellowArea+f.SoftChlorosisArea)
		},
	},
	{
		name:     "sana",
		category: CategoryHealthy,
		cause:    "Ninguna",
		matches: func(p Parameters, f FeatureSet) bool {
			return f.HealthyGreenArea >= p.HealthyMin
		},
		confidence: func(p Parameters, f FeatureSet) float64 {
			return 0.60 + 0.38*f.HealthyGreenArea
		},
	},
	{
		name:     "no_concluyente",
		category: CategoryInconclusive,
		cause:    "Requiere otra fotografía",
		matches: func(p Parameters, f FeatureSet) bool {
			return f.ClassifiedCoverage() < p.CoverageMin
		},
		confidence: func(p Parameters, f FeatureSet) float64 {
			return p.ConfidenceMin
		},
	},
	{
		name:       "desconocido",
		category:   CategoryUnknown,
		cause:      "Requiere análisis avanzado",
		matches:    func(Parameters, FeatureSet) bool { return true },
		confidence: func(p Parameters, f FeatureSet) float64 { return p.ConfidenceMin },
	},
}

// classify walks the cascade in order and returns the first matching rule's
// outcome with its confidence clamped to the configured bounds and rounded
// to two decimals.
func classify(p Parameters, f FeatureSet) (Category, string, float64, string) {
	for _, r := range cascade {
		if r.matches(p, f) {
			conf := round2(clamp(r.confidence(p, f), p.ConfidenceMin, p.ConfidenceMax))
			return r.category, r.cause, conf, r.name
		}
	}
	// Unreachable: the last rule always matches.
	return CategoryUnknown, "Requiere análisis avanzado", p.ConfidenceMin, "desconocido"
}
