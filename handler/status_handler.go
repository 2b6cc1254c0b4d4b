package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	services "github.com/propbase/ocr-gateway/service"
	"github.com/propbase/ocr-gateway/types"
)

// StatusHandler reports service health: the active selection policy, whether
// the cloud engine came up configured, and the CORS origin list.
type StatusHandler struct {
	policy         string
	allowedOrigins []string
	cloud          services.CloudEngine
}

func NewStatusHandler(policy string, allowedOrigins []string, cloud services.CloudEngine) *StatusHandler {
	return &StatusHandler{
		policy:         policy,
		allowedOrigins: allowedOrigins,
		cloud:          cloud,
	}
}

func (h *StatusHandler) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, types.StatusResponse{
		Status:                 "ok",
		Policy:                 h.policy,
		GoogleVisionConfigured: h.cloud.Configured(),
		AllowedOrigins:         h.allowedOrigins,
	})
}
