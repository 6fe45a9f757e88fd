package api

import (
	"github.com/gin-gonic/gin"
)

// All failures surface as a flat JSON envelope: {"error": "...", "details"?: "..."}.
// The page layer only ever shows the error string, so details carry the raw
// upstream text for debugging.

func JSONError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func JSONErrorWithDetails(c *gin.Context, status int, message, details string) {
	if details == "" {
		JSONError(c, status, message)
		return
	}
	c.JSON(status, gin.H{"error": message, "details": details})
}

func AbortJSONError(c *gin.Context, status int, message string) {
	JSONError(c, status, message)
	c.Abort()
}

func AbortJSONErrorWithDetails(c *gin.Context, status int, message, details string) {
	JSONErrorWithDetails(c, status, message, details)
	c.Abort()
}
