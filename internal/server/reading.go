package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/reading"
)

type ReadingHandler struct {
	svc *reading.Service
}

func NewReadingHandler(svc *reading.Service) *ReadingHandler {
	return &ReadingHandler{svc: svc}
}

// GET /reading-passages
func (h *ReadingHandler) List(c *gin.Context) {
	passages, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, passages)
}

// GET /reading/passage/:id
func (h *ReadingHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, p)
}

// DELETE /reading/passage/:id
func (h *ReadingHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "passage deleted", "id": id})
}

type importRequest struct {
	Content string `json:"content"`
}

// POST /reading/import
func (h *ReadingHandler) Import(c *gin.Context) {
	var req importRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Import(c.Request.Context(), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

type submitRequest struct {
	PassageID int64             `json:"passageId"`
	Answers   map[string]string `json:"answers"`
}

// POST /reading/submit-answers
func (h *ReadingHandler) Submit(c *gin.Context) {
	var req submitRequest
	if !bindJSON(c, &req) {
		return
	}
	answers := make(map[int64]string, len(req.Answers))
	for k, v := range req.Answers {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			respondError(c, apperr.Validation("invalid question id %q", k))
			return
		}
		answers[id] = v
	}
	res, err := h.svc.Submit(c.Request.Context(), req.PassageID, answers)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}
