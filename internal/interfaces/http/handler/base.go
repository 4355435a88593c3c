package handler

import (
	"errors"
	"net/http"

	"github.com/codewithomar/LPWC/internal/domain/shared"
	"github.com/codewithomar/LPWC/internal/infrastructure/logger"
	"github.com/codewithomar/LPWC/internal/interfaces/http/dto"
	"github.com/codewithomar/LPWC/internal/interfaces/http/middleware"
	"github.com/codewithomar/LPWC/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// genericFailureMessage is shown for server side failures; details go to the log
const genericFailureMessage = "The label could not be generated. Please try again."

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Error sends an error as an HTML page, or as JSON when the client asks for it
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
		return
	}
	c.HTML(statusCode, web.ErrorTemplate, gin.H{
		"Message":   message,
		"RequestID": getRequestID(c),
	})
}

// HandleError converts an error into an error response. Domain errors keep
// their message; everything else is logged and shown as a generic failure.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	reqLog := logger.GetGinLogger(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		statusCode := dto.GetHTTPStatus(code)
		if dto.IsServerError(code) {
			reqLog.Error("Request failed", zap.String("code", code), zap.Error(err))
			h.Error(c, statusCode, code, genericFailureMessage)
			return
		}
		reqLog.Info("Request rejected", zap.String("code", code), zap.String("reason", domainErr.Message))
		h.Error(c, statusCode, code, domainErr.Message)
		return
	}

	reqLog.Error("Unexpected error", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, genericFailureMessage)
}
