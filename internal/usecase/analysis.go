package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/leaf-analyzer/internal/logging"
	"github.com/example/leaf-analyzer/internal/vision"
)

// Diagnoser is the core analysis pipeline as the use case sees it.
type Diagnoser interface {
	Analyze(ctx context.Context, data []byte, includeDebug bool) (*vision.Diagnosis, error)
}

// AnalysisUseCase orchestrates one leaf analysis: request identity,
// operation logging, metrics, and the debug-exposure policy around the core
// pipeline. It holds no per-request state.
type AnalysisUseCase struct {
	diagnoser  Diagnoser
	metrics    *Metrics
	logger     *zap.Logger
	allowDebug bool
}

// NewAnalysisUseCase constructs a new use case instance. metrics may be nil
// in tests.
func NewAnalysisUseCase(diagnoser Diagnoser, metrics *Metrics, logger *zap.Logger, allowDebug bool) *AnalysisUseCase {
	return &AnalysisUseCase{
		diagnoser:  diagnoser,
		metrics:    metrics,
		logger:     logger.Named("analysis_usecase"),
		allowDebug: allowDebug,
	}
}

// AnalyzeLeaf runs the pipeline over one uploaded image and returns the
// request ID together with the diagnosis. Debug feature dumps are attached
// only when both the caller asks and the server allows it.
func (uc *AnalysisUseCase) AnalyzeLeaf(ctx context.Context, data []byte, wantDebug bool) (string, *vision.Diagnosis, error) {
	requestID := uuid.NewString()
	opLogger := logging.WithOperation(uc.logger, "usecase.analyze_leaf", requestID)

	start := time.Now()
	diagnosis, err := uc.diagnoser.Analyze(ctx, data, wantDebug && uc.allowDebug)
	if err != nil {
		wrapped := logging.NewOperationError("usecase.analyze_leaf", requestID, err)
		if motivo := RejectionKind(err); motivo != "" {
			uc.metrics.RecordRejection(motivo)
			opLogger.Warn("image rejected", zap.String("motivo", motivo), zap.Error(wrapped))
		} else {
			uc.metrics.RecordRejection("interno")
			opLogger.Error("analysis failed", zap.Error(wrapped))
		}
		return requestID, nil, wrapped
	}

	elapsed := time.Since(start)
	uc.metrics.RecordAnalysis(string(diagnosis.EstadoGeneral), elapsed)
	opLogger.Info("leaf analyzed",
		zap.String("estado", string(diagnosis.EstadoGeneral)),
		zap.Float64("probabilidad", diagnosis.Probabilidad),
		zap.Duration("elapsed", elapsed),
	)
	return requestID, diagnosis, nil
}

// RejectionKind maps a validation failure to its metric label. Internal
// errors return an empty string.
func RejectionKind(err error) string {
	switch {
	case errors.Is(err, vision.ErrEmptyInput):
		return "vacio"
	case errors.Is(err, vision.ErrDecode):
		return "no_decodificable"
	case errors.Is(err, vision.ErrUnsupportedFormat):
		return "formato_no_soportado"
	case errors.Is(err, vision.ErrTooSmall):
		return "demasiado_pequena"
	case errors.Is(err, vision.ErrOversize):
		return "demasiado_grande"
	}
	return ""
}
