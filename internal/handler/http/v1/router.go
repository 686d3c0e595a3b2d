package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API. dispatchGate - необязательный
// ограничитель частоты для входящих событий, exporter - необязательный обработчик
// метрик Prometheus.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, dispatchGate gin.HandlerFunc, exporter http.Handler) {
	// Маршрут Health-check без аутентификации
	api.GET("/health", h.healthCheck)

	secured := api.Group("")
	secured.Use(APIKeyAuthMiddleware(h.cfg.APIKeys, h.logger))
	{
		if dispatchGate != nil {
			secured.POST("/", dispatchGate, h.dispatchAlert)
		} else {
			secured.POST("/", h.dispatchAlert)
		}
		secured.GET("/metrics", h.getMetrics)
		secured.POST("/maintenance", h.triggerMaintenance)
		if exporter != nil {
			secured.GET("/prometheus", gin.WrapH(exporter))
		}
	}
}
