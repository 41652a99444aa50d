package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	errs "github.com/krispatl/mootie/internal/pkg/errors"
	"github.com/krispatl/mootie/internal/pkg/response"
)

// handleError is the single boundary between the error taxonomy and
// HTTP. Nothing above it writes error responses directly.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)

	if pe, ok := errs.AsPartialFailure(err); ok {
		response.PartialFailure(c, pe.Step, pe.ResourceID, pe.Error())
		return
	}
	switch {
	case errors.Is(err, errs.ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid request")
	case errors.Is(err, errs.ErrConfig):
		response.Error(c, http.StatusInternalServerError, response.CodeConfig, "server not configured")
	case errs.IsTimeout(err):
		response.Error(c, http.StatusGatewayTimeout, response.CodeTimeout, "provider call timed out")
	case errs.IsNotFound(err):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "not found")
	default:
		if ue, ok := errs.AsUpstream(err); ok {
			response.Error(c, ue.Status, response.CodeUpstream, ue.Body)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "internal error")
	}
}
