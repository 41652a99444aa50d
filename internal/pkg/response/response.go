package response

import "github.com/gin-gonic/gin"

// Stable codes the front end can branch on.
const (
	CodeValidation     = "validation"
	CodeConfig         = "configuration"
	CodeUpstream       = "upstream"
	CodeTimeout        = "timeout"
	CodePartialFailure = "partial_failure"
	CodeNotFound       = "not_found"
	CodeInternal       = "internal"
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{"success": true, "data": data})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"success": false, "code": code, "error": message})
}

// PartialFailure reports a two-step operation that half-completed. The
// orphaned resource id is included so the caller can clean up.
func PartialFailure(c *gin.Context, step, resourceID, message string) {
	c.JSON(502, gin.H{
		"success": false,
		"code":    CodePartialFailure,
		"error":   message,
		"data":    gin.H{"step": step, "file_id": resourceID},
	})
}
