// Package vision implements the leaf diagnosis pipeline: decode and
// normalize an uploaded photo, extract color and texture features in HSV
// space, and classify them through an ordered heuristic rule cascade.
package vision

import (
	"context"
	"math/rand"
)

// Analyzer runs the diagnosis pipeline. It holds only immutable tuning
// parameters, so a single instance is safe for concurrent requests; every
// call works on its own decoded bitmap and FeatureSet.
type Analyzer struct {
	params Parameters
}

// NewAnalyzer builds an analyzer with the given parameters.
func NewAnalyzer(params Parameters) *Analyzer {
	return &Analyzer{params: params}
}

// Parameters returns the active tuning configuration.
func (a *Analyzer) Parameters() Parameters {
	return a.params
}

// Analyze classifies one leaf image. Validation failures surface as the
// Err* sentinels before any feature is computed; for any image that passes
// validation the cascade always yields a category. The context is accepted
// for interface parity with the transport layer; the pipeline itself has no
// blocking steps.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, includeDebug bool) (*Diagnosis, error) {
	_ = ctx

	img, err := a.decodeAndNormalize(data)
	if err != nil {
		return nil, err
	}

	features := a.extract(img)
	category, cause, confidence, _ := classify(a.params, features)

	if a.params.SimulatedConfidence {
		// Historical behavior of the first revision: a uniform sample in
		// place of a derived confidence.
		confidence = round2(0.80 + rand.Float64()*0.15)
	}

	diagnosis := &Diagnosis{
		EstadoGeneral:     category,
		Probabilidad:      confidence,
		Caracteristicas:   buildTraits(a.params, features),
		PosibleEnfermedad: cause,
	}
	if includeDebug {
		rounded := features.Rounded()
		diagnosis.Debug = &rounded
	}
	return diagnosis, nil
}
