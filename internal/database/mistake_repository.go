package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/pkg/models"
)

const mistakeColumns = "id, word_id, mistake_count, correct_streak, last_update"

// MistakeRepository handles database operations for the mistake pool
type MistakeRepository struct {
	db sqlx.ExtContext
}

// NewMistakeRepository creates a repository bound to a handle or a transaction
func NewMistakeRepository(db sqlx.ExtContext) *MistakeRepository {
	return &MistakeRepository{db: db}
}

// GetByWordID returns the mistake row of a word
func (r *MistakeRepository) GetByWordID(ctx context.Context, wordID int64) (*models.Mistake, error) {
	var m models.Mistake
	query := r.db.Rebind("SELECT " + mistakeColumns + " FROM mistakes WHERE word_id = ?")
	if err := sqlx.GetContext(ctx, r.db, &m, query, wordID); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("word %d is not in the mistake pool", wordID)
		}
		return nil, apperr.Storage("failed to get mistake", err)
	}
	return &m, nil
}

// Create inserts a mistake row and fills in its ID
func (r *MistakeRepository) Create(ctx context.Context, m *models.Mistake) error {
	m.LastUpdate = time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO mistakes (word_id, mistake_count, correct_streak, last_update)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query, m.WordID, m.MistakeCount, m.CorrectStreak, m.LastUpdate).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("word %d is already in the mistake pool", m.WordID)
		}
		return apperr.Storage("failed to create mistake", err)
	}
	return nil
}

// Update stores new counters for an existing mistake row
func (r *MistakeRepository) Update(ctx context.Context, m *models.Mistake) error {
	m.LastUpdate = time.Now().UTC()
	query := r.db.Rebind(`
		UPDATE mistakes SET
			mistake_count = ?,
			correct_streak = ?,
			last_update = ?
		WHERE id = ?
	`)
	res, err := r.db.ExecContext(ctx, query, m.MistakeCount, m.CorrectStreak, m.LastUpdate, m.ID)
	if err != nil {
		return apperr.Storage("failed to update mistake", err)
	}
	return requireRow(res, "mistake %d not found", m.ID)
}

// Delete removes a mistake row by its ID
func (r *MistakeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM mistakes WHERE id = ?"), id)
	if err != nil {
		return apperr.Storage("failed to delete mistake", err)
	}
	return requireRow(res, "mistake %d not found", id)
}

// Clear empties the mistake pool
func (r *MistakeRepository) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM mistakes")
	if err != nil {
		return 0, apperr.Storage("failed to clear mistakes", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Storage("failed to get rows affected", err)
	}
	return n, nil
}

// List returns the mistake pool joined with words, most recently updated first
func (r *MistakeRepository) List(ctx context.Context) ([]models.MistakeEntry, error) {
	entries := []models.MistakeEntry{}
	err := sqlx.SelectContext(ctx, r.db, &entries, `
		SELECT m.id, m.word_id, m.mistake_count, m.correct_streak, m.last_update,
		       w.english, w.chinese, w.example
		FROM mistakes m
		JOIN words w ON w.id = m.word_id
		ORDER BY m.last_update DESC, m.id DESC
	`)
	if err != nil {
		return nil, apperr.Storage("failed to get mistakes", err)
	}
	return entries, nil
}
