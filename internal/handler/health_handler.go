package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krispatl/mootie/internal/pkg/response"
)

func Health(c *gin.Context) {
	response.Success(c, gin.H{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}
