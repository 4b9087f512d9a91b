package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/excel"
	"github.com/example/wordquiz/pkg/models"
)

type WordHandler struct {
	store          *database.Store
	maxUploadBytes int64
}

func NewWordHandler(store *database.Store, maxUploadBytes int64) *WordHandler {
	return &WordHandler{store: store, maxUploadBytes: maxUploadBytes}
}

// GET /words
func (h *WordHandler) List(c *gin.Context) {
	words, err := h.store.Words().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, words)
}

// GET /words/:id
func (h *WordHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	word, err := h.store.Words().GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, word)
}

// POST /words
func (h *WordHandler) Create(c *gin.Context) {
	var in models.WordInput
	if !bindJSON(c, &in) {
		return
	}
	word, err := h.store.Words().Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, word)
}

// PUT /words/:id
func (h *WordHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var upd models.WordUpdate
	if !bindJSON(c, &upd) {
		return
	}
	word, err := h.store.Words().Update(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, word)
}

// DELETE /words/:id
func (h *WordHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.store.Words().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "word deleted", "id": id})
}

// DELETE /words
func (h *WordHandler) Clear(c *gin.Context) {
	n, err := h.store.Words().Clear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "all words deleted", "deleted": n})
}

// GET /words/search/:q
func (h *WordHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Param("q"))
	if q == "" {
		respondError(c, apperr.Validation("search query is required"))
		return
	}
	words, err := h.store.Words().Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, words)
}

// GET /words/count
func (h *WordHandler) Count(c *gin.Context) {
	n, err := h.store.Words().Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"count": n})
}

// GET /words/stats
func (h *WordHandler) Stats(c *gin.Context) {
	stats, err := h.store.Words().Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, stats)
}

type updateStatsRequest struct {
	IsCorrect *bool `json:"isCorrect"`
}

// POST /words/:id/update-stats
func (h *WordHandler) UpdateStats(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateStatsRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.IsCorrect == nil {
		respondError(c, apperr.Validation("isCorrect is required"))
		return
	}
	word, err := h.store.Words().UpdateStats(c.Request.Context(), id, *req.IsCorrect)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, word)
}

type batchRequest struct {
	Words []models.WordInput `json:"words"`
}

// POST /words/batch
func (h *WordHandler) Batch(c *gin.Context) {
	var req batchRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.store.CreateWords(c.Request.Context(), req.Words)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// POST /words/import, multipart field "file" holding an xlsx or csv word list.
func (h *WordHandler) Import(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperr.Validation("file is required: %v", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, apperr.Validation("failed to read upload: %v", err))
		return
	}
	defer f.Close()

	words, err := excel.ParseWords(fh.Filename, f, excel.DefaultImportConfig())
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := h.store.CreateWords(c.Request.Context(), words)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}
