package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/leaf-analyzer/internal/auth"
	"github.com/example/leaf-analyzer/internal/config"
	"github.com/example/leaf-analyzer/internal/handlers"
	"github.com/example/leaf-analyzer/internal/logging"
	"github.com/example/leaf-analyzer/internal/usecase"
	"github.com/example/leaf-analyzer/internal/vision"
)

func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.Development)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	analyzer := vision.NewAnalyzer(analyzerParameters(cfg))
	metrics := usecase.NewMetrics()
	uc := usecase.NewAnalysisUseCase(analyzer, metrics, logger, cfg.AllowDebug)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadBytes
	router.Use(cors.New(corsConfig(cfg)))

	var authMiddleware gin.HandlerFunc
	if cfg.JWTSecret != "" {
		authMiddleware = auth.JWTMiddleware(cfg.JWTSecret, cfg.JWTAudience)
	}

	handlers.RegisterRoutes(router, uc, cfg.MaxUploadBytes, metrics.Handler(), authMiddleware)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	logger.Info("leaf analyzer listening", zap.String("addr", cfg.Addr))
	if err := serveHTTPServer(server, 15*time.Second, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// analyzerParameters applies the collaborator-level limits on top of the
// tuned defaults. The diagnostic thresholds themselves are not exposed via
// environment; they change together with the rule cascade.
func analyzerParameters(cfg *config.Config) vision.Parameters {
	params := vision.DefaultParameters()
	params.MinSide = cfg.MinImageSide
	params.MaxSide = cfg.MaxProcessSide
	params.MaxBytes = cfg.MaxUploadBytes
	params.SimulatedConfidence = cfg.SimulatedConfidence
	return params
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
