package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/wordquiz/internal/apperr"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body and attaches err to the context for the
// request logger.
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	_ = c.Error(err)
	msg := apperr.Message(err)
	if status == http.StatusInternalServerError && !errors.Is(err, apperr.ErrStorage) {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// bindJSON decodes the body into v, reporting malformed input as a validation error.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		respondError(c, apperr.Validation("invalid request body: %v", err))
		return false
	}
	return true
}

// paramID reads a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, apperr.Validation("invalid %s %q", name, c.Param(name)))
		return 0, false
	}
	return id, true
}

// paramCount reads a count path parameter. Range checks are left to the callee.
func paramCount(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		respondError(c, apperr.Validation("%s must be a positive integer", name))
		return 0, false
	}
	return n, true
}
