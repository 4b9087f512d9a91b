package server

import (
	"github.com/gin-gonic/gin"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/quiz"
)

type QuizHandler struct {
	generator *quiz.Generator
}

func NewQuizHandler(generator *quiz.Generator) *QuizHandler {
	return &QuizHandler{generator: generator}
}

// GET /test/random/:count
func (h *QuizHandler) RandomWords(c *gin.Context) {
	n, ok := paramCount(c, "count")
	if !ok {
		return
	}
	words, err := h.generator.RandomWords(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, words)
}

// GET /test/distractors/:wordId/:count
func (h *QuizHandler) Distractors(c *gin.Context) {
	wordID, ok := paramID(c, "wordId")
	if !ok {
		return
	}
	n, ok := paramCount(c, "count")
	if !ok {
		return
	}
	words, err := h.generator.Distractors(c.Request.Context(), wordID, n)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, words)
}

// GET /test/session/:count
func (h *QuizHandler) Session(c *gin.Context) {
	n, ok := paramCount(c, "count")
	if !ok {
		return
	}
	questions, err := h.generator.Session(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, questions)
}

type answerRequest struct {
	WordID    int64 `json:"wordId"`
	IsCorrect *bool `json:"isCorrect"`
}

// POST /test/answer
func (h *QuizHandler) Answer(c *gin.Context) {
	var req answerRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.WordID <= 0 || req.IsCorrect == nil {
		respondError(c, apperr.Validation("wordId and isCorrect are required"))
		return
	}
	res, err := h.generator.RecordAnswer(c.Request.Context(), req.WordID, *req.IsCorrect)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// GET /test/reading/random
func (h *QuizHandler) RandomPassage(c *gin.Context) {
	p, err := h.generator.RandomPassage(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, p)
}
