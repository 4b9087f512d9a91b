package reading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/logger"
	"github.com/example/wordquiz/internal/results"
)

const twoQuestions = `阅读文本
Spring
Flowers open in spring.
选择题
1. What opens? A. Flowers B. Doors C. Banks
2. When? A. Spring B. Winter C. Never
答案
1. A
2. A`

func newService(t *testing.T) (*Service, *database.Store) {
	t.Helper()
	store, err := database.Open(context.Background(), "sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	log := logger.Nop()
	return NewService(store, results.NewRecorder(store, 0, log), log), store
}

func countRows(t *testing.T, store *database.Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, store.DB().Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestImportStoresPassageAndQuestions(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	res, err := s.Import(ctx, "阅读文本\nTitle\nBody\n选择题\n1. Q1? A. a B. b C. c\n答案\n1. A")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Passages)
	assert.Equal(t, 1, res.Questions)

	p, err := store.Reading().GetPassage(ctx, res.PassageID)
	require.NoError(t, err)
	assert.Equal(t, "Title", p.Title)
	require.Len(t, p.Questions, 1)
	assert.Equal(t, "A", p.Questions[0].CorrectAnswer)

	hidden, err := s.Get(ctx, res.PassageID)
	require.NoError(t, err)
	assert.Empty(t, hidden.Questions[0].CorrectAnswer)
}

func TestImportInvalidPersistsNothing(t *testing.T) {
	s, store := newService(t)

	_, err := s.Import(context.Background(), "阅读文本\nT\nB\n选择题\n1. Q A. a B. b C. c\n2. R A. a B. b C. c\n答案\n1. A")
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Zero(t, countRows(t, store, "reading_passages"))
	assert.Zero(t, countRows(t, store, "reading_questions"))

	_, err = s.Import(context.Background(), "   ")
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestImportDuplicateTitle(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	_, err := s.Import(ctx, twoQuestions)
	require.NoError(t, err)
	_, err = s.Import(ctx, twoQuestions)
	require.ErrorIs(t, err, apperr.ErrConflict)

	assert.Equal(t, 1, countRows(t, store, "reading_passages"))
	assert.Equal(t, 2, countRows(t, store, "reading_questions"))
}

func TestSubmitScoresAndRecords(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	imported, err := s.Import(ctx, twoQuestions)
	require.NoError(t, err)
	p, err := s.Get(ctx, imported.PassageID)
	require.NoError(t, err)
	q1, q2 := p.Questions[0].ID, p.Questions[1].ID

	res, err := s.Submit(ctx, p.ID, map[int64]string{q1: "A", q2: "b"})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, 2, res.TotalItems)
	assert.Equal(t, 1, res.CorrectCount)
	assert.Equal(t, 1, res.IncorrectCount)
	require.Len(t, res.Results, 2)
	assert.True(t, res.Results[0].Correct)
	assert.Equal(t, "B", res.Results[1].Answer)
	assert.Equal(t, "A", res.Results[1].CorrectAnswer)

	stored, err := store.Reading().GetPassage(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Exposure)

	list, err := store.TestResults().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "reading-comprehension", list[0].Type)
	assert.Equal(t, 50, list[0].Score)
	assert.Equal(t, res.TestResultID, list[0].ID)
}

func TestSubmitUnansweredCountsWrong(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	imported, err := s.Import(ctx, twoQuestions)
	require.NoError(t, err)
	p, err := s.Get(ctx, imported.PassageID)
	require.NoError(t, err)

	res, err := s.Submit(ctx, p.ID, map[int64]string{p.Questions[0].ID: "A"})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, "", res.Results[1].Answer)
}

func TestSubmitErrors(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()
	imported, err := s.Import(ctx, twoQuestions)
	require.NoError(t, err)

	_, err = s.Submit(ctx, 0, nil)
	require.ErrorIs(t, err, apperr.ErrValidation)
	_, err = s.Submit(ctx, 999, nil)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.Submit(ctx, imported.PassageID, map[int64]string{12345: "A"})
	require.ErrorIs(t, err, apperr.ErrValidation)

	p, err := s.Get(ctx, imported.PassageID)
	require.NoError(t, err)
	_, err = s.Submit(ctx, imported.PassageID, map[int64]string{p.Questions[0].ID: "D"})
	require.ErrorIs(t, err, apperr.ErrValidation)

	assert.Zero(t, countRows(t, store, "test_results"), "failed submissions record nothing")
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0, score(0, 0))
	assert.Equal(t, 33, score(1, 3))
	assert.Equal(t, 67, score(2, 3))
	assert.Equal(t, 100, score(4, 4))
}
