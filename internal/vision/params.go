package vision

// HSVRange is a rectangular selection in HSV space using the OpenCV
// convention: H in 0-180, S and V in 0-255.
type HSVRange struct {
	MinH, MaxH float64
	MinS, MaxS float64
	MinV, MaxV float64
}

// Contains reports whether the given HSV triple falls inside the range.
func (r HSVRange) Contains(h, s, v float64) bool {
	return h >= r.MinH && h <= r.MaxH &&
		s >= r.MinS && s <= r.MaxS &&
		v >= r.MinV && v <= r.MaxV
}

// Parameters holds every tunable constant of the analyzer. The HSV ranges
// and rule thresholds are empirically chosen for cacao leaves; they are
// configuration, not logic, and can be adjusted per instance without
// touching the pipeline.
type Parameters struct {
	// Ingestion limits.
	MinSide  int   // reject images smaller than this on either side
	MaxSide  int   // downscale larger images before measuring, for stable thresholds
	MaxBytes int64 // reject payloads above this size; 0 disables the check

	// Edge detection. The pure Go path thresholds the Sobel gradient
	// magnitude; the gocv path uses Canny with the low/high pair.
	EdgeGradientMin float64
	CannyLow        float64
	CannyHigh       float64

	// Fraction of the shorter image side treated as the border band when
	// measuring marginal necrosis.
	BorderBandRatio float64

	// Diagnostic color masks.
	HealthyGreen  HSVRange
	Yellow        HSVRange
	SoftChlorosis HSVRange
	Brown         HSVRange
	DarkNecrosis  HSVRange
	Purple        HSVRange

	// Rule cascade thresholds, in priority order of the rules using them.
	MarginalScorchMin float64 // necrotic fraction of the border band
	DryValueMax       float64 // mean V below this reads as a dry leaf
	DryEdgeMin        float64 // edge density accompanying dryness
	FungalSpotMin     float64 // brown + dark necrotic area
	FungalEdgeMin     float64 // lesion-driven surface irregularity
	PurpleMin         float64 // purple area for phosphorus stress
	ChlorosisMin      float64 // yellow + soft chlorosis area
	HealthyMin        float64 // healthy green area
	CoverageMin       float64 // total classified area below this is inconclusive

	// Secondary thresholds for the descriptive trait bundle.
	SpotVisibleMin     float64
	IrregularBorderMin float64
	DryTextureValueMax float64
	DeformationEdgeMin float64

	// Confidence bounds applied after every rule's formula.
	ConfidenceMin float64
	ConfidenceMax float64

	// Legacy mode: replace the derived confidence with a uniform sample in
	// [0.80, 0.95], matching the first revision of the service. Never the
	// default; only for reproducing historical behavior.
	SimulatedConfidence bool
}

// DefaultParameters returns the tuned configuration used in production.
func DefaultParameters() Parameters {
	return Parameters{
		MinSide:  50,
		MaxSide:  1024,
		MaxBytes: 10 << 20,

		EdgeGradientMin: 60,
		CannyLow:        50,
		CannyHigh:       150,

		BorderBandRatio: 0.08,

		HealthyGreen:  HSVRange{MinH: 35, MaxH: 85, MinS: 60, MaxS: 255, MinV: 40, MaxV: 220},
		Yellow:        HSVRange{MinH: 20, MaxH: 35, MinS: 80, MaxS: 255, MinV: 100, MaxV: 255},
		SoftChlorosis: HSVRange{MinH: 25, MaxH: 45, MinS: 25, MaxS: 90, MinV: 110, MaxV: 255},
		Brown:         HSVRange{MinH: 5, MaxH: 25, MinS: 60, MaxS: 255, MinV: 40, MaxV: 140},
		DarkNecrosis:  HSVRange{MinH: 0, MaxH: 180, MinS: 30, MaxS: 255, MinV: 0, MaxV: 80},
		Purple:        HSVRange{MinH: 125, MaxH: 165, MinS: 40, MaxS: 255, MinV: 30, MaxV: 200},

		MarginalScorchMin: 0.35,
		DryValueMax:       90,
		DryEdgeMin:        0.12,
		FungalSpotMin:     0.08,
		FungalEdgeMin:     0.04,
		PurpleMin:         0.12,
		ChlorosisMin:      0.25,
		HealthyMin:        0.55,
		CoverageMin:       0.20,

		SpotVisibleMin:     0.05,
		IrregularBorderMin: 0.25,
		DryTextureValueMax: 80,
		DeformationEdgeMin: 0.30,

		ConfidenceMin: 0.50,
		ConfidenceMax: 0.98,
	}
}
