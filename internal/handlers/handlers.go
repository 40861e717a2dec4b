package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/leaf-analyzer/internal/vision"
)

// DefaultMaxUploadSize caps image uploads at 10 MiB unless configured
// otherwise.
const DefaultMaxUploadSize = 10 << 20

// Version reported by the info endpoint.
const Version = "3.0"

// LeafAnalyzer is the analysis entrypoint the handlers depend on.
type LeafAnalyzer interface {
	AnalyzeLeaf(ctx context.Context, data []byte, wantDebug bool) (string, *vision.Diagnosis, error)
}

type analysisResponse struct {
	IDSolicitud string `json:"id_solicitud"`
	*vision.Diagnosis
}

// RegisterRoutes wires the HTTP surface to the gin router. metricsHandler
// and authMiddleware are optional; the analysis route is protected only
// when a middleware is supplied.
func RegisterRoutes(router *gin.Engine, uc LeafAnalyzer, maxUploadSize int64, metricsHandler http.Handler, authMiddleware gin.HandlerFunc) {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "API de Análisis de Hojas de Cacao",
			"status":  "activa",
			"version": Version,
			"endpoints": gin.H{
				"POST /analizar-hoja": "Analiza una imagen de hoja de cacao",
				"GET /health":         "Estado del servicio",
				"GET /metrics":        "Métricas Prometheus",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "leaf-analyzer"})
	})

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	analyze := router.Group("/")
	if authMiddleware != nil {
		analyze.Use(authMiddleware)
	}

	analyze.POST("/analizar-hoja", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "se requiere un archivo de imagen en el campo 'file'"})
			return
		}

		if file.Size == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "el archivo está vacío"})
			return
		}
		if file.Size > maxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "la imagen supera el tamaño máximo permitido"})
			return
		}

		// The declared part content type is informational, but declaring a
		// non-image type is rejected outright.
		if declared := file.Header.Get("Content-Type"); declared != "" && !strings.HasPrefix(declared, "image/") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "el archivo debe ser una imagen"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo abrir el archivo"})
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo leer el archivo"})
			return
		}

		requestID, diagnosis, err := uc.AnalyzeLeaf(c.Request.Context(), data, wantDebug(c))
		if err != nil {
			status, message := errorResponse(err)
			c.JSON(status, gin.H{"error": message})
			return
		}

		c.JSON(http.StatusOK, analysisResponse{
			IDSolicitud: requestID,
			Diagnosis:   diagnosis,
		})
	})
}

func wantDebug(c *gin.Context) bool {
	raw := c.Query("debug")
	if raw == "" {
		raw = c.PostForm("debug")
	}
	if raw == "" {
		return false
	}
	debug, err := strconv.ParseBool(raw)
	return err == nil && debug
}

// errorResponse maps core failure kinds to status codes. Validation errors
// carry descriptive messages; anything else stays generic.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, vision.ErrEmptyInput):
		return http.StatusBadRequest, "el archivo está vacío"
	case errors.Is(err, vision.ErrTooSmall):
		return http.StatusBadRequest, "la imagen es demasiado pequeña"
	case errors.Is(err, vision.ErrDecode):
		return http.StatusBadRequest, "el archivo no es una imagen válida"
	case errors.Is(err, vision.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, "formato de imagen no soportado"
	case errors.Is(err, vision.ErrOversize):
		return http.StatusRequestEntityTooLarge, "la imagen supera el tamaño máximo permitido"
	}
	return http.StatusInternalServerError, "error interno al procesar la imagen"
}
