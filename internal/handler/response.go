package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"paygate/internal/service"
)

// ErrorBody carries a stable error code and a human-readable description.
type ErrorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Errors without a service code are logged and reported as internal errors.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		log.Printf("[HANDLER] %s %s: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		svcErr = &service.Error{Code: service.CodeInternal, Description: "Internal server error"}
	}

	c.JSON(mapErrorToHTTPStatus(svcErr), ErrorResponse{Error: ErrorBody{
		Code:        svcErr.Code,
		Description: svcErr.Description,
	}})
}

// respondBadRequest reports a malformed request body or field.
func respondBadRequest(c *gin.Context, code, description string) {
	respondError(c, &service.Error{Code: code, Description: description})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus derives the HTTP status from the error code.
func mapErrorToHTTPStatus(err *service.Error) int {
	switch err.Code {
	case service.CodeAuthentication:
		return http.StatusUnauthorized

	case service.CodeNotFound:
		return http.StatusNotFound

	case service.CodeBadRequest,
		service.CodeInvalidVPA,
		service.CodeInvalidCard,
		service.CodeExpiredCard,
		service.CodeInvalidMethod:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
