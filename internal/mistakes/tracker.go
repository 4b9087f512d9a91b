package mistakes

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/logger"
	"github.com/example/wordquiz/pkg/models"
)

// Result describes one transition of the mistake state machine.
type Result struct {
	WordID   int64           `json:"wordId"`
	State    State           `json:"state"`
	Promoted bool            `json:"promoted"`
	Mistake  *models.Mistake `json:"mistake,omitempty"`
}

// Tracker applies the policy against the store.
type Tracker struct {
	store  *database.Store
	policy Policy
	log    *logger.Logger
}

func NewTracker(store *database.Store, policy Policy, log *logger.Logger) *Tracker {
	return &Tracker{store: store, policy: policy, log: log.With("component", "mistakes")}
}

// RecordWrong flags a word or counts one more mistake for it.
func (t *Tracker) RecordWrong(ctx context.Context, wordID int64) (*Result, error) {
	return t.record(ctx, wordID, false)
}

// RecordCorrect grows the correct streak of a flagged word and promotes it
// once the threshold is reached. A word outside the pool yields NotFound.
func (t *Tracker) RecordCorrect(ctx context.Context, wordID int64) (*Result, error) {
	return t.record(ctx, wordID, true)
}

func (t *Tracker) record(ctx context.Context, wordID int64, correct bool) (*Result, error) {
	var res *Result
	err := t.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		res, err = t.Apply(ctx, tx, wordID, correct)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Apply reads the current state, decides and writes the next one using db.
// Callers that need the transition atomic with other writes pass their
// transaction.
func (t *Tracker) Apply(ctx context.Context, db sqlx.ExtContext, wordID int64, correct bool) (*Result, error) {
	words := database.NewWordRepository(db)
	repo := database.NewMistakeRepository(db)

	if !correct {
		if _, err := words.GetByID(ctx, wordID); err != nil {
			return nil, err
		}
	}

	var current State
	row, err := repo.GetByWordID(ctx, wordID)
	switch {
	case err == nil:
		current = State{Flagged: true, MistakeCount: row.MistakeCount, CorrectStreak: row.CorrectStreak}
	case errors.Is(err, apperr.ErrNotFound):
		row = nil
	default:
		return nil, err
	}

	next, err := t.policy.Next(current, correct)
	if errors.Is(err, ErrNotFlagged) {
		return nil, apperr.NotFound("word %d is not in the mistake pool", wordID)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{WordID: wordID, State: next}
	switch {
	case !next.Flagged:
		if err := repo.Delete(ctx, row.ID); err != nil {
			return nil, err
		}
		res.Promoted = true
		t.log.Debug("word promoted out of the mistake pool", "word_id", wordID)
	case row == nil:
		row = &models.Mistake{WordID: wordID, MistakeCount: next.MistakeCount, CorrectStreak: next.CorrectStreak}
		if err := repo.Create(ctx, row); err != nil {
			return nil, err
		}
		res.Mistake = row
		t.log.Debug("word flagged", "word_id", wordID)
	default:
		row.MistakeCount = next.MistakeCount
		row.CorrectStreak = next.CorrectStreak
		if err := repo.Update(ctx, row); err != nil {
			return nil, err
		}
		res.Mistake = row
	}
	return res, nil
}

// List returns the mistake pool with word details.
func (t *Tracker) List(ctx context.Context) ([]models.MistakeEntry, error) {
	return t.store.Mistakes().List(ctx)
}

// Delete removes one mistake row by its own ID.
func (t *Tracker) Delete(ctx context.Context, id int64) error {
	return t.store.Mistakes().Delete(ctx, id)
}

// Clear empties the mistake pool and returns the number of rows removed.
func (t *Tracker) Clear(ctx context.Context) (int64, error) {
	n, err := t.store.Mistakes().Clear(ctx)
	if err != nil {
		return 0, err
	}
	t.log.Info("mistake pool cleared", "removed", n)
	return n, nil
}
