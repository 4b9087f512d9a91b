package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/pkg/models"
)

const questionColumns = "id, passage_id, question_text, option_a, option_b, option_c, correct_answer"

// ReadingRepository handles reading passages and their questions
type ReadingRepository struct {
	db sqlx.ExtContext
}

// NewReadingRepository creates a repository bound to a handle or a transaction
func NewReadingRepository(db sqlx.ExtContext) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// CreatePassage inserts a passage and fills in its ID
func (r *ReadingRepository) CreatePassage(ctx context.Context, p *models.ReadingPassage) error {
	p.AddedDate = time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO reading_passages (title, content, exposure, added_date)
		VALUES (?, ?, 0, ?)
		RETURNING id
	`)
	if err := r.db.QueryRowxContext(ctx, query, p.Title, p.Content, p.AddedDate).Scan(&p.ID); err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("passage %q already exists", p.Title)
		}
		return apperr.Storage("failed to create passage", err)
	}
	return nil
}

// CreateQuestion inserts a question and fills in its ID
func (r *ReadingRepository) CreateQuestion(ctx context.Context, q *models.ReadingQuestion) error {
	query := r.db.Rebind(`
		INSERT INTO reading_questions (passage_id, question_text, option_a, option_b, option_c, correct_answer)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		q.PassageID, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.CorrectAnswer,
	).Scan(&q.ID)
	if err != nil {
		return apperr.Storage("failed to create question", err)
	}
	return nil
}

// ListPassages returns passages with their question counts, newest first
func (r *ReadingRepository) ListPassages(ctx context.Context) ([]models.ReadingPassage, error) {
	passages := []models.ReadingPassage{}
	err := sqlx.SelectContext(ctx, r.db, &passages, `
		SELECT p.id, p.title, p.exposure, p.added_date, COUNT(q.id) AS question_count
		FROM reading_passages p
		LEFT JOIN reading_questions q ON q.passage_id = p.id
		GROUP BY p.id, p.title, p.exposure, p.added_date
		ORDER BY p.added_date DESC, p.id DESC
	`)
	if err != nil {
		return nil, apperr.Storage("failed to get passages", err)
	}
	return passages, nil
}

// GetPassage returns a passage with all its questions
func (r *ReadingRepository) GetPassage(ctx context.Context, id int64) (*models.ReadingPassage, error) {
	var p models.ReadingPassage
	query := r.db.Rebind("SELECT id, title, content, exposure, added_date FROM reading_passages WHERE id = ?")
	if err := sqlx.GetContext(ctx, r.db, &p, query, id); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("passage %d not found", id)
		}
		return nil, apperr.Storage("failed to get passage", err)
	}

	questions, err := r.Questions(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Questions = questions
	p.QuestionCount = len(questions)
	return &p, nil
}

// Questions returns the questions of a passage in insertion order
func (r *ReadingRepository) Questions(ctx context.Context, passageID int64) ([]models.ReadingQuestion, error) {
	questions := []models.ReadingQuestion{}
	query := r.db.Rebind("SELECT " + questionColumns + " FROM reading_questions WHERE passage_id = ? ORDER BY id")
	if err := sqlx.SelectContext(ctx, r.db, &questions, query, passageID); err != nil {
		return nil, apperr.Storage("failed to get questions", err)
	}
	return questions, nil
}

// RandomPassageID picks a passage uniformly at random
func (r *ReadingRepository) RandomPassageID(ctx context.Context) (int64, error) {
	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, "SELECT id FROM reading_passages ORDER BY RANDOM() LIMIT 1"); err != nil {
		if isNoRows(err) {
			return 0, apperr.NotFound("no reading passages available")
		}
		return 0, apperr.Storage("failed to pick passage", err)
	}
	return id, nil
}

// IncrementExposure counts one more reading of a passage
func (r *ReadingRepository) IncrementExposure(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE reading_passages SET exposure = exposure + 1 WHERE id = ?"), id)
	if err != nil {
		return apperr.Storage("failed to update passage exposure", err)
	}
	return requireRow(res, "passage %d not found", id)
}

// DeletePassage removes a passage and its questions
func (r *ReadingRepository) DeletePassage(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM reading_passages WHERE id = ?"), id)
	if err != nil {
		return apperr.Storage("failed to delete passage", err)
	}
	return requireRow(res, "passage %d not found", id)
}
