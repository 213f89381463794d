package transport

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-ux-analyzer/internal/config"
	apperrors "go-ux-analyzer/internal/errors"
	"go-ux-analyzer/internal/logger"
	"go-ux-analyzer/internal/service"
	"go-ux-analyzer/pkg/models"
)

// NewHandler builds the HTTP API around the analysis service.
func NewHandler(svc service.AnalysisService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(requestSizeLimiter(cfg.MaxRequestBodySize))

	// Configure routes
	r.GET("/health", healthCheck)

	api := r.Group("/api")
	api.GET("/health", healthCheck)
	api.POST("/analyze", analyzeScreenshot(svc, cfg))
	api.GET("/analyses", listAnalyses(svc))
	api.GET("/analyses/:id", getAnalysis(svc))
	api.GET("/stats", getStats(svc))

	return r
}

func analyzeScreenshot(svc service.AnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing screenshot analysis request")

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "No image data provided")
			return
		}

		result, err := svc.AnalyzeScreenshot(ctx, req.Image, req.ImageName)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"image_name": req.ImageName,
				"ip":         c.ClientIP(),
			}).Error("Screenshot analysis failed")

			statusCode := apperrors.GetStatusCode(err)
			if errors.Is(err, context.DeadlineExceeded) {
				statusCode = http.StatusGatewayTimeout
			}
			respondError(c, statusCode, err.Error())
			return
		}

		duration := time.Since(startTime)
		logger.WithFields(logrus.Fields{
			"image_name":         req.ImageName,
			"processing_time_ms": duration.Milliseconds(),
			"recommendations":    len(result.Recommendations),
			"elements":           result.ElementDetection.TotalElements,
		}).Info("Screenshot analysis completed successfully")

		c.JSON(http.StatusOK, models.AnalyzeResponse{
			Success:  true,
			Analysis: result,
		})
	}
}

func listAnalyses(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				respondError(c, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = parsed
		}

		analyses, err := svc.RecentAnalyses(c.Request.Context(), limit)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), err.Error())
			return
		}

		c.JSON(http.StatusOK, models.AnalysesResponse{
			Success:  true,
			Analyses: analyses,
			Count:    len(analyses),
		})
	}
}

func getAnalysis(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid analysis id")
			return
		}

		record, err := svc.AnalysisByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), err.Error())
			return
		}

		c.JSON(http.StatusOK, models.AnalysisRecordResponse{
			Success:  true,
			Analysis: record,
		})
	}
}

func getStats(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), err.Error())
			return
		}

		c.JSON(http.StatusOK, models.StatsResponse{
			Success: true,
			Stats:   stats,
		})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, code int, message string) {
	logger.WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{Error: message})
}
