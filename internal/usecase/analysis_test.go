package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/example/leaf-analyzer/internal/logging"
	"github.com/example/leaf-analyzer/internal/vision"
)

type stubDiagnoser struct {
	diagnosis  *vision.Diagnosis
	err        error
	calls      int
	debugAsked bool
}

func (s *stubDiagnoser) Analyze(ctx context.Context, data []byte, includeDebug bool) (*vision.Diagnosis, error) {
	s.calls++
	s.debugAsked = includeDebug
	if s.err != nil {
		return nil, s.err
	}
	return s.diagnosis, nil
}

func TestAnalyzeLeafReturnsRequestIDAndDiagnosis(t *testing.T) {
	diag := &vision.Diagnosis{EstadoGeneral: vision.CategoryHealthy, Probabilidad: 0.98}
	stub := &stubDiagnoser{diagnosis: diag}
	uc := NewAnalysisUseCase(stub, nil, zap.NewNop(), true)

	requestID, got, err := uc.AnalyzeLeaf(context.Background(), []byte("image"), false)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if requestID == "" {
		t.Fatal("expected a non-empty request id")
	}
	if got != diag {
		t.Fatalf("expected diagnosis to pass through, got %+v", got)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one pipeline call, got %d", stub.calls)
	}
}

func TestAnalyzeLeafHonorsDebugPolicy(t *testing.T) {
	diag := &vision.Diagnosis{EstadoGeneral: vision.CategoryHealthy}

	stub := &stubDiagnoser{diagnosis: diag}
	uc := NewAnalysisUseCase(stub, nil, zap.NewNop(), false)
	if _, _, err := uc.AnalyzeLeaf(context.Background(), []byte("image"), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.debugAsked {
		t.Fatal("debug must not reach the pipeline when the server disallows it")
	}

	stub = &stubDiagnoser{diagnosis: diag}
	uc = NewAnalysisUseCase(stub, nil, zap.NewNop(), true)
	if _, _, err := uc.AnalyzeLeaf(context.Background(), []byte("image"), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stub.debugAsked {
		t.Fatal("debug request should reach the pipeline when allowed")
	}
}

func TestAnalyzeLeafWrapsValidationErrors(t *testing.T) {
	stub := &stubDiagnoser{err: fmt.Errorf("%w: 12x9", vision.ErrTooSmall)}
	uc := NewAnalysisUseCase(stub, nil, zap.NewNop(), true)

	requestID, _, err := uc.AnalyzeLeaf(context.Background(), []byte("image"), false)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if requestID == "" {
		t.Fatal("request id should be assigned even on failure")
	}
	if !errors.Is(err, vision.ErrTooSmall) {
		t.Fatalf("sentinel should survive wrapping, got %v", err)
	}
	var opErr *logging.OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T", err)
	}
	if opErr.Operation != "usecase.analyze_leaf" {
		t.Fatalf("unexpected operation: %s", opErr.Operation)
	}
	if opErr.RequestID != requestID {
		t.Fatalf("operation error should carry the request id")
	}
}

func TestRejectionKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{vision.ErrEmptyInput, "vacio"},
		{vision.ErrDecode, "no_decodificable"},
		{vision.ErrUnsupportedFormat, "formato_no_soportado"},
		{vision.ErrTooSmall, "demasiado_pequena"},
		{vision.ErrOversize, "demasiado_grande"},
		{errors.New("boom"), ""},
	}
	for _, tc := range cases {
		if got := RejectionKind(tc.err); got != tc.want {
			t.Fatalf("RejectionKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestMetricsRecordOnCompletedAnalysis(t *testing.T) {
	metrics := NewMetrics()
	diag := &vision.Diagnosis{EstadoGeneral: vision.CategoryHealthy}
	uc := NewAnalysisUseCase(&stubDiagnoser{diagnosis: diag}, metrics, zap.NewNop(), true)

	if _, _, err := uc.AnalyzeLeaf(context.Background(), []byte("image"), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A nil metrics receiver must also be safe.
	var none *Metrics
	none.RecordAnalysis("Sana", 0)
	none.RecordRejection("vacio")
}
