package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/results"
	"github.com/example/wordquiz/pkg/models"
)

type ResultHandler struct {
	recorder *results.Recorder
}

func NewResultHandler(recorder *results.Recorder) *ResultHandler {
	return &ResultHandler{recorder: recorder}
}

// GET /test-results
func (h *ResultHandler) List(c *gin.Context) {
	list, err := h.recorder.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, list)
}

// POST /test-results
func (h *ResultHandler) Create(c *gin.Context) {
	var in models.TestResultInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.recorder.Record(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// DELETE /test-results/:id
func (h *ResultHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.recorder.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "test result deleted", "id": id})
}

// DELETE /test-results
func (h *ResultHandler) Clear(c *gin.Context) {
	n, err := h.recorder.Clear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "all test results deleted", "deleted": n})
}

// GET /test-activity?days=N
func (h *ResultHandler) Activity(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, apperr.Validation("days must be a positive integer"))
			return
		}
		days = n
	}
	activity, err := h.recorder.Activity(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, activity)
}
