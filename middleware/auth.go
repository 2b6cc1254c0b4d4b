package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propbase/ocr-gateway/types"
)

// RequireAuthHeader rejects requests without an Authorization header before
// any OCR work starts. Only presence is checked; the value is not validated.
func RequireAuthHeader(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
			Error: "Authorization header is required",
		})
		return
	}
	c.Next()
}
