package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/pkg/models"
)

func TestTestResultCreateListDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.TestResults()

	first := &models.TestResult{Score: 80, TotalItems: 10, CorrectCount: 8, IncorrectCount: 2,
		Type: models.TestTypeEnglishToChineseMultiple, TestDate: time.Now().Add(-time.Hour)}
	second := &models.TestResult{Score: 50, TotalItems: 2, CorrectCount: 1, IncorrectCount: 1,
		Type: models.TestTypeReadingComprehension}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	results, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, second.ID, results[0].ID, "newest first")
	assert.Equal(t, 80, results[1].Score)
	assert.Equal(t, models.TestTypeEnglishToChineseMultiple, results[1].Type)

	require.NoError(t, repo.Delete(ctx, first.ID))
	require.ErrorIs(t, repo.Delete(ctx, first.ID), apperr.ErrNotFound)

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestTestResultActivity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.TestResults()

	day := func(offset int, hour int) time.Time {
		return time.Date(2026, 10, 19+offset, hour, 30, 0, 0, time.UTC)
	}
	for _, d := range []time.Time{day(0, 8), day(0, 21), day(-2, 10), day(-200, 10)} {
		require.NoError(t, repo.Create(ctx, &models.TestResult{Score: 100, TotalItems: 1, CorrectCount: 1, Type: "x", TestDate: d}))
	}

	days, err := repo.Activity(ctx, time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []models.ActivityDay{
		{Date: "2026-10-17", Count: 1},
		{Date: "2026-10-19", Count: 2},
	}, days)
}
