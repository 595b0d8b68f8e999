// Package response writes the JSON envelope every handler speaks:
// {"success": true, "data": ...} on the happy path, or
// {"success": false, "error": {"code", "message"}} with a
// machine-checkable code (VALIDATION_ERROR, NOT_FOUND, STATE_CONFLICT,
// RESERVATION_CONFLICT, ...) on failure.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, errEnvelope(code, message, nil))
}

// ErrorWithDetails attaches a details payload, used for field-level
// validation output.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, errEnvelope(code, message, details))
}

func errEnvelope(code, message string, details any) gin.H {
	e := gin.H{
		"code":    code,
		"message": message,
	}
	if details != nil {
		e["details"] = details
	}
	return gin.H{
		"success": false,
		"error":   e,
	}
}
