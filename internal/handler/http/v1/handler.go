package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/geo_alert_dispatch/internal/config"
	"github.com/shenikar/geo_alert_dispatch/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	headerExecutionTime = "X-Execution-Time"
	headerRegion        = "X-Region"
)

type Handler struct {
	alertService service.AlertService
	logger       *logrus.Logger
	validate     *validator.Validate
	cfg          *config.Config
	background   sync.WaitGroup
	now          func() time.Time
}

func NewHandler(alertService service.AlertService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		alertService: alertService,
		logger:       logger,
		validate:     validator.New(),
		cfg:          cfg,
		now:          time.Now,
	}
}

// Wait дожидается завершения фоновых задач обслуживания
func (h *Handler) Wait() {
	h.background.Wait()
}

// @Summary Dispatch an emergency alert
// @Description Resolve the event's edge region, filter its targets and deliver push alerts. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param event body EmergencyEventRequest true "Emergency event"
// @Success 200 {object} DispatchResponse
// @Header 200 {string} X-Execution-Time "Dispatch execution time"
// @Header 200 {string} X-Region "Resolved edge region"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} DispatchResponse "No targets registered for region"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router / [post]
func (h *Handler) dispatchAlert(c *gin.Context) {
	var input EmergencyEventRequest
	log := h.logger.WithField("method", "dispatchAlert")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.alertService.Dispatch(c.Request.Context(), EventRequestToModel(input))
	if result != nil {
		c.Header(headerExecutionTime, fmt.Sprintf("%dms", result.ExecutionTimeMs))
		c.Header(headerRegion, result.Region)
	}

	switch {
	case err == nil:
		c.JSON(http.StatusOK, ModelToDispatchResponse(result))
	case errors.Is(err, service.ErrNoTargets) && result != nil:
		c.JSON(http.StatusNotFound, ModelToDispatchResponse(result))
	case errors.Is(err, service.ErrInvalidEvent):
		log.WithError(err).Warn("Event rejected by service")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Failed to dispatch event in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get dispatch metrics
// @Description Aggregate dispatch analytics over the last 1h, 24h or 7d. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param range query string false "Aggregation window" Enums(1h, 24h, 7d) default(24h)
// @Success 200 {object} MetricsResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /metrics [get]
func (h *Handler) getMetrics(c *gin.Context) {
	rng := c.DefaultQuery("range", service.DefaultMetricsRange)
	log := h.logger.WithField("method", "getMetrics").WithField("range", rng)

	summary, err := h.alertService.GetMetrics(c.Request.Context(), rng)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to get metrics from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToMetricsResponse(summary))
}

// @Summary Trigger maintenance
// @Description Start pruning of stale analytics and inactive targets. Runs in the background. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 202 {object} map[string]string "Accepted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /maintenance [post]
func (h *Handler) triggerMaintenance(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())
	log := h.logger.WithField("method", "triggerMaintenance")

	h.background.Add(1)
	go func() {
		defer h.background.Done()
		report := h.alertService.RunMaintenance(ctx)
		entry := log.WithFields(logrus.Fields{
			"analytics_deleted": report.AnalyticsDeleted,
			"targets_pruned":    report.TargetsPruned,
			"regions_processed": report.RegionsProcessed,
		})
		if len(report.Errors) > 0 {
			entry.WithField("errors", report.Errors).Warn("Maintenance finished with errors")
			return
		}
		entry.Info("Maintenance finished")
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UnixMilli(),
		Region:    h.cfg.EdgeRegion,
		Version:   h.cfg.AppVersion,
	})
}
