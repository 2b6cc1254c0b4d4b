package handler

import (
	"github.com/gin-gonic/gin"
)

type CorsHandler struct {
	allowedOrigins []string
}

func NewCorsHandler(allowedOrigins []string) *CorsHandler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &CorsHandler{allowedOrigins: allowedOrigins}
}

func (h *CorsHandler) CorsMiddleware(c *gin.Context) {
	if allowed := h.resolveOrigin(c.GetHeader("Origin")); allowed != "" {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
	}
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(200)
		return
	}
	c.Next()
}

func (h *CorsHandler) resolveOrigin(origin string) string {
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if allowed == origin {
			return origin
		}
	}
	return ""
}
