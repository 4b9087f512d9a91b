package database

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/pkg/models"
)

// CreateWords inserts a batch of words in one transaction. Invalid rows and
// duplicates (including repeats inside the batch) are reported per item and do
// not stop the batch; any other storage failure rolls the whole batch back.
func (s *Store) CreateWords(ctx context.Context, items []models.WordInput) (*models.BatchResult, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("words must be a non-empty list")
	}

	var result *models.BatchResult
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		result = &models.BatchResult{Items: make([]models.BatchItemResult, 0, len(items))}
		repo := NewWordRepository(tx)

		for i, item := range items {
			in := item.Normalize()
			if err := validateWordInput(in); err != nil {
				result.AddError(i, in.English, err)
				continue
			}

			word, err := repo.Create(ctx, in)
			switch {
			case err == nil:
				result.AddSuccess(i, word.English, word.ID)
			case errors.Is(err, apperr.ErrConflict):
				result.AddDuplicate(i, in.English)
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
