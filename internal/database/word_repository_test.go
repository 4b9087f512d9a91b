package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/pkg/models"
)

func strPtr(s string) *string { return &s }

func mustCreateWord(t *testing.T, repo *WordRepository, english, chinese string) *models.Word {
	t.Helper()
	w, err := repo.Create(context.Background(), models.WordInput{English: english, Chinese: chinese})
	require.NoError(t, err)
	return w
}

func TestWordCreateRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Words()
	ctx := context.Background()

	inputs := []models.WordInput{
		{English: "apple", Chinese: "苹果", Example: strPtr("An apple a day.")},
		{English: "Banana", Chinese: "香蕉"},
		{English: "cherry tree", Chinese: "樱桃树", Example: strPtr("")},
	}
	for _, in := range inputs {
		created, err := repo.Create(ctx, in)
		require.NoError(t, err)

		got, err := repo.GetByEnglish(ctx, in.English)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, in.English, got.English)
		assert.Equal(t, in.Chinese, got.Chinese)
		assert.Equal(t, in.Normalize().Example, got.Example)
		assert.Zero(t, got.Exposure)
		assert.Zero(t, got.Familiarity)
		assert.WithinDuration(t, created.AddedDate, got.AddedDate, 0)
	}
}

func TestWordCreateDuplicateIsConflict(t *testing.T) {
	s := openTestStore(t)
	repo := s.Words()
	ctx := context.Background()

	mustCreateWord(t, repo, "Apple", "苹果")
	for _, dup := range []string{"Apple", "apple", "APPLE", "  aPPle "} {
		_, err := repo.Create(ctx, models.WordInput{English: dup, Chinese: "另一个"})
		require.ErrorIs(t, err, apperr.ErrConflict, dup)
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWordCreateValidation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Words().Create(ctx, models.WordInput{English: " ", Chinese: "空"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	_, err = s.Words().Create(ctx, models.WordInput{English: "empty"})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestWordGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Words().GetByID(context.Background(), 42)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestWordUpdate(t *testing.T) {
	s := openTestStore(t)
	repo := s.Words()
	ctx := context.Background()

	apple := mustCreateWord(t, repo, "apple", "苹果")
	mustCreateWord(t, repo, "pear", "梨")

	updated, err := repo.Update(ctx, apple.ID, models.WordUpdate{Chinese: strPtr("苹果（水果）"), Example: strPtr("Eat an apple.")})
	require.NoError(t, err)
	assert.Equal(t, "apple", updated.English)
	assert.Equal(t, "苹果（水果）", updated.Chinese)
	require.NotNil(t, updated.Example)
	assert.Equal(t, "Eat an apple.", *updated.Example)

	// Renaming to its own spelling in another case is not a conflict.
	updated, err = repo.Update(ctx, apple.ID, models.WordUpdate{English: strPtr("Apple")})
	require.NoError(t, err)
	assert.Equal(t, "Apple", updated.English)

	_, err = repo.Update(ctx, apple.ID, models.WordUpdate{English: strPtr("PEAR")})
	require.ErrorIs(t, err, apperr.ErrConflict)

	_, err = repo.Update(ctx, 999, models.WordUpdate{Chinese: strPtr("无")})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = repo.Update(ctx, apple.ID, models.WordUpdate{})
	require.ErrorIs(t, err, apperr.ErrValidation)

	cleared, err := repo.Update(ctx, apple.ID, models.WordUpdate{Example: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Example)
}

func TestWordDeleteCascadesToMistake(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	w := mustCreateWord(t, s.Words(), "apple", "苹果")
	require.NoError(t, s.Mistakes().Create(ctx, &models.Mistake{WordID: w.ID, MistakeCount: 1}))

	require.NoError(t, s.Words().Delete(ctx, w.ID))
	_, err := s.Mistakes().GetByWordID(ctx, w.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	err = s.Words().Delete(ctx, w.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestWordClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	a := mustCreateWord(t, s.Words(), "a", "一")
	mustCreateWord(t, s.Words(), "b", "二")
	require.NoError(t, s.Mistakes().Create(ctx, &models.Mistake{WordID: a.ID, MistakeCount: 1}))

	n, err := s.Words().Clear(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	entries, err := s.Mistakes().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWordSearch(t *testing.T) {
	s := openTestStore(t)
	repo := s.Words()
	ctx := context.Background()

	_, err := repo.Create(ctx, models.WordInput{English: "Apple", Chinese: "苹果", Example: strPtr("green apples are sour")})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.WordInput{English: "pineapple", Chinese: "菠萝"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.WordInput{English: "grape", Chinese: "葡萄", Example: strPtr("A GREEN grape")})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.WordInput{English: "100% sure", Chinese: "百分之百"})
	require.NoError(t, err)

	tests := []struct {
		q    string
		want []string
	}{
		{"APPLE", []string{"Apple", "pineapple"}},
		{"苹", []string{"Apple"}},
		{"green", []string{"Apple", "grape"}},
		{"%", []string{"100% sure"}},
		{"missing", []string{}},
		{"  ", []string{}},
	}
	for _, tt := range tests {
		got, err := repo.Search(ctx, tt.q)
		require.NoError(t, err)
		names := []string{}
		for _, w := range got {
			names = append(names, w.English)
		}
		assert.ElementsMatch(t, tt.want, names, "query %q", tt.q)
	}
}

func TestWordUpdateStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.Words()
	ctx := context.Background()
	w := mustCreateWord(t, repo, "apple", "苹果")

	got, err := repo.UpdateStats(ctx, w.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Exposure)
	assert.Equal(t, 1, got.Familiarity)

	got, err = repo.UpdateStats(ctx, w.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Exposure)
	assert.Equal(t, 1, got.Familiarity, "incorrect answers never lower familiarity")

	_, err = repo.UpdateStats(ctx, 999, true)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestWordStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.Words()
	ctx := context.Background()

	empty, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.Accuracy)

	a := mustCreateWord(t, repo, "a", "一")
	b := mustCreateWord(t, repo, "b", "二")
	mustCreateWord(t, repo, "c", "三")
	_, err = repo.UpdateStats(ctx, a.ID, true)
	require.NoError(t, err)
	_, err = repo.UpdateStats(ctx, a.ID, true)
	require.NoError(t, err)
	_, err = repo.UpdateStats(ctx, b.ID, false)
	require.NoError(t, err)
	require.NoError(t, s.Mistakes().Create(ctx, &models.Mistake{WordID: b.ID, MistakeCount: 1}))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Tested)
	assert.Equal(t, 1, stats.Untested)
	assert.Equal(t, 1, stats.InMistakePool)
	assert.Equal(t, 3, stats.TotalExposure)
	assert.Equal(t, 2, stats.TotalFamiliarity)
	assert.InDelta(t, 66.7, stats.Accuracy, 0.001)
}

func TestWordRandom(t *testing.T) {
	s := openTestStore(t)
	repo := s.Words()
	ctx := context.Background()
	ids := map[int64]bool{}
	for _, e := range []string{"a", "b", "c", "d", "e"} {
		ids[mustCreateWord(t, repo, e, "义"+e).ID] = true
	}

	got, err := repo.Random(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assertDistinct(t, got)

	all, err := repo.Random(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assertDistinct(t, all)
	for _, w := range all {
		assert.True(t, ids[w.ID])
	}

	var exclude int64
	for id := range ids {
		exclude = id
		break
	}
	others, err := repo.RandomExcept(ctx, exclude, 10)
	require.NoError(t, err)
	assert.Len(t, others, 4)
	for _, w := range others {
		assert.NotEqual(t, exclude, w.ID)
	}
}

func assertDistinct(t *testing.T, words []models.Word) {
	t.Helper()
	seen := map[int64]bool{}
	for _, w := range words {
		assert.False(t, seen[w.ID], "duplicate word %d", w.ID)
		seen[w.ID] = true
	}
}
