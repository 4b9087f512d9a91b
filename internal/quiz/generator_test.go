package quiz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/logger"
	"github.com/example/wordquiz/internal/mistakes"
	"github.com/example/wordquiz/pkg/models"
)

func newGenerator(t *testing.T, words int) (*Generator, *database.Store) {
	t.Helper()
	ctx := context.Background()
	store, err := database.Open(ctx, "sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for i := 0; i < words; i++ {
		_, err := store.Words().Create(ctx, models.WordInput{
			English: fmt.Sprintf("word%d", i),
			Chinese: fmt.Sprintf("词%d", i),
		})
		require.NoError(t, err)
	}
	log := logger.Nop()
	tracker := mistakes.NewTracker(store, mistakes.DefaultPolicy(), log)
	return NewGenerator(store, tracker, 10, 4, log), store
}

func ids(words []models.Word) map[int64]bool {
	out := map[int64]bool{}
	for _, w := range words {
		out[w.ID] = true
	}
	return out
}

func TestRandomWordsMoreThanAvailable(t *testing.T) {
	g, _ := newGenerator(t, 5)

	words, err := g.RandomWords(context.Background(), 8)
	require.NoError(t, err)
	assert.Len(t, words, 5)
	assert.Len(t, ids(words), 5, "no duplicates")
}

func TestRandomWordsCount(t *testing.T) {
	g, _ := newGenerator(t, 15)
	ctx := context.Background()

	_, err := g.RandomWords(ctx, 0)
	require.ErrorIs(t, err, apperr.ErrValidation)

	words, err := g.RandomWords(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, words, 10, "capped at the configured maximum")
}

func TestRandomWordsUncappedByDefault(t *testing.T) {
	_, store := newGenerator(t, 15)
	log := logger.Nop()
	g := NewGenerator(store, mistakes.NewTracker(store, mistakes.DefaultPolicy(), log), 0, 4, log)
	ctx := context.Background()

	words, err := g.RandomWords(ctx, 12)
	require.NoError(t, err)
	assert.Len(t, words, 12)
	assert.Len(t, ids(words), 12)

	distractors, err := g.Distractors(ctx, words[0].ID, 14)
	require.NoError(t, err)
	assert.Len(t, distractors, 14)
}

func TestDistractorsExcludeWord(t *testing.T) {
	g, store := newGenerator(t, 4)
	ctx := context.Background()
	all, err := store.Words().List(ctx)
	require.NoError(t, err)
	target := all[0].ID

	got, err := g.Distractors(ctx, target, 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.NotContains(t, ids(got), target)
}

func TestSessionOptions(t *testing.T) {
	g, store := newGenerator(t, 6)
	ctx := context.Background()
	// Same meaning as word0; must never appear twice among the options.
	_, err := store.Words().Create(ctx, models.WordInput{English: "synonym", Chinese: "词0"})
	require.NoError(t, err)

	questions, err := g.Session(ctx, 7)
	require.NoError(t, err)
	require.Len(t, questions, 7)

	for _, q := range questions {
		word, err := store.Words().GetByID(ctx, q.WordID)
		require.NoError(t, err)
		assert.Len(t, q.Options, 4)
		assert.Equal(t, word.Chinese, q.Options[q.CorrectIndex])

		seen := map[string]bool{}
		for _, o := range q.Options {
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
		}
	}
}

func TestSessionWithSingleWord(t *testing.T) {
	g, _ := newGenerator(t, 1)

	questions, err := g.Session(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, []string{"词0"}, questions[0].Options)
	assert.Equal(t, 0, questions[0].CorrectIndex)
}

func TestRecordAnswer(t *testing.T) {
	g, store := newGenerator(t, 1)
	ctx := context.Background()
	words, err := store.Words().List(ctx)
	require.NoError(t, err)
	id := words[0].ID

	res, err := g.RecordAnswer(ctx, id, true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Word.Exposure)
	assert.Equal(t, 1, res.Word.Familiarity)
	assert.False(t, res.InMistakePool)

	res, err = g.RecordAnswer(ctx, id, false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Word.Exposure)
	assert.Equal(t, 1, res.Word.Familiarity)
	assert.True(t, res.InMistakePool)

	_, err = g.RecordAnswer(ctx, id, true)
	require.NoError(t, err)
	res, err = g.RecordAnswer(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, res.Promoted)
	assert.False(t, res.InMistakePool)

	_, err = g.RecordAnswer(ctx, 999, false)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRandomPassageHidesAnswers(t *testing.T) {
	g, store := newGenerator(t, 0)
	ctx := context.Background()

	_, err := g.RandomPassage(ctx)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	p := &models.ReadingPassage{Title: "T", Content: "Body"}
	require.NoError(t, store.Reading().CreatePassage(ctx, p))
	require.NoError(t, store.Reading().CreateQuestion(ctx, &models.ReadingQuestion{
		PassageID: p.ID, QuestionText: "Q?", OptionA: "a", OptionB: "b", OptionC: "c", CorrectAnswer: "B",
	}))

	got, err := g.RandomPassage(ctx)
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.Empty(t, got.Questions[0].CorrectAnswer)
	assert.Equal(t, "Q?", got.Questions[0].QuestionText)
}
