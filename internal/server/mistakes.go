package server

import (
	"github.com/gin-gonic/gin"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/mistakes"
)

type MistakeHandler struct {
	tracker *mistakes.Tracker
}

func NewMistakeHandler(tracker *mistakes.Tracker) *MistakeHandler {
	return &MistakeHandler{tracker: tracker}
}

// GET /mistakes
func (h *MistakeHandler) List(c *gin.Context) {
	entries, err := h.tracker.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, entries)
}

type recordMistakeRequest struct {
	WordID int64 `json:"wordId"`
}

// POST /mistakes records a wrong answer.
func (h *MistakeHandler) RecordWrong(c *gin.Context) {
	var req recordMistakeRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.WordID <= 0 {
		respondError(c, apperr.Validation("wordId is required"))
		return
	}
	res, err := h.tracker.RecordWrong(c.Request.Context(), req.WordID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// POST /mistakes/correct/:wordId
func (h *MistakeHandler) RecordCorrect(c *gin.Context) {
	wordID, ok := paramID(c, "wordId")
	if !ok {
		return
	}
	res, err := h.tracker.RecordCorrect(c.Request.Context(), wordID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// DELETE /mistakes/:id
func (h *MistakeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.tracker.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "mistake deleted", "id": id})
}

// DELETE /mistakes
func (h *MistakeHandler) Clear(c *gin.Context) {
	n, err := h.tracker.Clear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "mistake pool cleared", "deleted": n})
}
