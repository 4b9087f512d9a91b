package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/pkg/models"
)

const wordColumns = "id, english, chinese, example, exposure, familiarity, added_date"

// WordRepository handles database operations for words
type WordRepository struct {
	db sqlx.ExtContext
}

// NewWordRepository creates a repository bound to a handle or a transaction
func NewWordRepository(db sqlx.ExtContext) *WordRepository {
	return &WordRepository{db: db}
}

// List returns all words, newest first
func (r *WordRepository) List(ctx context.Context) ([]models.Word, error) {
	words := []models.Word{}
	query := "SELECT " + wordColumns + " FROM words ORDER BY added_date DESC, id DESC"
	if err := sqlx.SelectContext(ctx, r.db, &words, query); err != nil {
		return nil, apperr.Storage("failed to get words", err)
	}
	return words, nil
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	query := r.db.Rebind("SELECT " + wordColumns + " FROM words WHERE id = ?")
	if err := sqlx.GetContext(ctx, r.db, &word, query, id); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("word %d not found", id)
		}
		return nil, apperr.Storage("failed to get word by ID", err)
	}
	return &word, nil
}

// GetByEnglish returns a word by its English spelling, ignoring case
func (r *WordRepository) GetByEnglish(ctx context.Context, english string) (*models.Word, error) {
	var word models.Word
	query := r.db.Rebind("SELECT " + wordColumns + " FROM words WHERE LOWER(english) = LOWER(?)")
	if err := sqlx.GetContext(ctx, r.db, &word, query, strings.TrimSpace(english)); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("word %q not found", english)
		}
		return nil, apperr.Storage("failed to get word by english", err)
	}
	return &word, nil
}

// existsEnglish reports whether another word already uses english.
// excludeID 0 checks against all words.
func (r *WordRepository) existsEnglish(ctx context.Context, english string, excludeID int64) (bool, error) {
	q := builder(r.db).
		Select("COUNT(*)").
		From("words").
		Where("LOWER(english) = LOWER(?)", english)
	if excludeID != 0 {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build duplicate check: %w", err)
	}
	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, query, args...); err != nil {
		return false, apperr.Storage("failed to check duplicate word", err)
	}
	return n > 0, nil
}

// Create validates and inserts a new word
func (r *WordRepository) Create(ctx context.Context, in models.WordInput) (*models.Word, error) {
	in = in.Normalize()
	if err := validateWordInput(in); err != nil {
		return nil, err
	}

	exists, err := r.existsEnglish(ctx, in.English, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("word %q already exists", in.English)
	}

	word := &models.Word{
		English:   in.English,
		Chinese:   in.Chinese,
		Example:   in.Example,
		AddedDate: time.Now().UTC(),
	}
	query := r.db.Rebind(`
		INSERT INTO words (english, chinese, example, exposure, familiarity, added_date)
		VALUES (?, ?, ?, 0, 0, ?)
		RETURNING id
	`)
	if err := r.db.QueryRowxContext(ctx, query, word.English, word.Chinese, word.Example, word.AddedDate).Scan(&word.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("word %q already exists", in.English)
		}
		return nil, apperr.Storage("failed to create word", err)
	}
	return word, nil
}

func validateWordInput(in models.WordInput) error {
	if in.English == "" {
		return apperr.Validation("english is required")
	}
	if in.Chinese == "" {
		return apperr.Validation("chinese is required")
	}
	return nil
}

// Update changes the given fields of an existing word
func (r *WordRepository) Update(ctx context.Context, id int64, upd models.WordUpdate) (*models.Word, error) {
	if upd.Empty() {
		return nil, apperr.Validation("no fields to update")
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	if upd.English != nil {
		english := strings.TrimSpace(*upd.English)
		if english == "" {
			return nil, apperr.Validation("english must not be blank")
		}
		exists, err := r.existsEnglish(ctx, english, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Conflict("word %q already exists", english)
		}
		set["english"] = english
	}
	if upd.Chinese != nil {
		chinese := strings.TrimSpace(*upd.Chinese)
		if chinese == "" {
			return nil, apperr.Validation("chinese must not be blank")
		}
		set["chinese"] = chinese
	}
	if upd.Example != nil {
		if ex := strings.TrimSpace(*upd.Example); ex != "" {
			set["example"] = ex
		} else {
			set["example"] = nil
		}
	}

	query, args, err := builder(r.db).Update("words").SetMap(set).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build word update: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("word %q already exists", *upd.English)
		}
		return nil, apperr.Storage("failed to update word", err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a word; its mistake row goes with it
func (r *WordRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM words WHERE id = ?"), id)
	if err != nil {
		return apperr.Storage("failed to delete word", err)
	}
	return requireRow(res, "word %d not found", id)
}

// Clear removes every word and returns how many were deleted
func (r *WordRepository) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM words")
	if err != nil {
		return 0, apperr.Storage("failed to clear words", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Storage("failed to get rows affected", err)
	}
	return n, nil
}

// Search matches q against english, chinese and example, ignoring case
func (r *WordRepository) Search(ctx context.Context, q string) ([]models.Word, error) {
	words := []models.Word{}
	q = strings.TrimSpace(q)
	if q == "" {
		return words, nil
	}
	pattern := likePattern(q)
	query, args, err := builder(r.db).
		Select(wordColumns).
		From("words").
		Where(squirrel.Or{
			squirrel.Expr(`LOWER(english) LIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`LOWER(chinese) LIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`LOWER(COALESCE(example, '')) LIKE ? ESCAPE '\'`, pattern),
		}).
		OrderBy("english").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build word search: %w", err)
	}
	if err := sqlx.SelectContext(ctx, r.db, &words, query, args...); err != nil {
		return nil, apperr.Storage("failed to search words", err)
	}
	return words, nil
}

// Count returns the number of words
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, "SELECT COUNT(*) FROM words"); err != nil {
		return 0, apperr.Storage("failed to count words", err)
	}
	return n, nil
}

// Stats aggregates the learning counters
func (r *WordRepository) Stats(ctx context.Context) (*models.WordStats, error) {
	var stats models.WordStats
	err := sqlx.GetContext(ctx, r.db, &stats, `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN exposure > 0 THEN 1 ELSE 0 END), 0) AS tested,
			COALESCE(SUM(exposure), 0) AS total_exposure,
			COALESCE(SUM(familiarity), 0) AS total_familiarity
		FROM words
	`)
	if err != nil {
		return nil, apperr.Storage("failed to get word statistics", err)
	}
	if err := sqlx.GetContext(ctx, r.db, &stats.InMistakePool, "SELECT COUNT(*) FROM mistakes"); err != nil {
		return nil, apperr.Storage("failed to count mistakes", err)
	}

	stats.Untested = stats.Total - stats.Tested
	if stats.TotalExposure > 0 {
		pct := float64(stats.TotalFamiliarity) / float64(stats.TotalExposure) * 100
		stats.Accuracy = float64(int(pct*10+0.5)) / 10
	}
	return &stats, nil
}

// UpdateStats records one quiz answer: exposure always grows, familiarity only
// on a correct answer. Incorrect answers never lower familiarity.
func (r *WordRepository) UpdateStats(ctx context.Context, id int64, isCorrect bool) (*models.Word, error) {
	inc := 0
	if isCorrect {
		inc = 1
	}
	query := r.db.Rebind("UPDATE words SET exposure = exposure + 1, familiarity = familiarity + ? WHERE id = ?")
	res, err := r.db.ExecContext(ctx, query, inc, id)
	if err != nil {
		return nil, apperr.Storage("failed to update word statistics", err)
	}
	if err := requireRow(res, "word %d not found", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Random returns up to n words picked uniformly without replacement
func (r *WordRepository) Random(ctx context.Context, n int) ([]models.Word, error) {
	return r.random(ctx, 0, n)
}

// RandomExcept returns up to n random words other than excludeID
func (r *WordRepository) RandomExcept(ctx context.Context, excludeID int64, n int) ([]models.Word, error) {
	return r.random(ctx, excludeID, n)
}

func (r *WordRepository) random(ctx context.Context, excludeID int64, n int) ([]models.Word, error) {
	q := builder(r.db).Select(wordColumns).From("words")
	if excludeID != 0 {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}
	query, args, err := q.OrderBy("RANDOM()").Limit(uint64(n)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build random words: %w", err)
	}
	words := []models.Word{}
	if err := sqlx.SelectContext(ctx, r.db, &words, query, args...); err != nil {
		return nil, apperr.Storage("failed to get random words", err)
	}
	return words, nil
}
