// utils/respond.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError sends a structured failure result with a human-readable
// message.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
