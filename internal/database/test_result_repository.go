package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/pkg/models"
)

const testResultColumns = "id, score, total_items, correct_count, incorrect_count, type, test_date"

// TestResultRepository handles database operations for test results
type TestResultRepository struct {
	db sqlx.ExtContext
}

// NewTestResultRepository creates a repository bound to a handle or a transaction
func NewTestResultRepository(db sqlx.ExtContext) *TestResultRepository {
	return &TestResultRepository{db: db}
}

// Create inserts a new test result
func (r *TestResultRepository) Create(ctx context.Context, result *models.TestResult) error {
	if result.TestDate.IsZero() {
		result.TestDate = time.Now()
	}
	result.TestDate = result.TestDate.UTC()

	query := r.db.Rebind(`
		INSERT INTO test_results (score, total_items, correct_count, incorrect_count, type, test_date)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		result.Score,
		result.TotalItems,
		result.CorrectCount,
		result.IncorrectCount,
		result.Type,
		result.TestDate,
	).Scan(&result.ID)
	if err != nil {
		return apperr.Storage("failed to create test result", err)
	}
	return nil
}

// List returns all test results, newest first
func (r *TestResultRepository) List(ctx context.Context) ([]models.TestResult, error) {
	results := []models.TestResult{}
	query := "SELECT " + testResultColumns + " FROM test_results ORDER BY test_date DESC, id DESC"
	if err := sqlx.SelectContext(ctx, r.db, &results, query); err != nil {
		return nil, apperr.Storage("failed to get test results", err)
	}
	return results, nil
}

// Delete removes a test result
func (r *TestResultRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM test_results WHERE id = ?"), id)
	if err != nil {
		return apperr.Storage("failed to delete test result", err)
	}
	return requireRow(res, "test result %d not found", id)
}

// Clear removes all test results
func (r *TestResultRepository) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM test_results")
	if err != nil {
		return 0, apperr.Storage("failed to clear test results", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Storage("failed to get rows affected", err)
	}
	return n, nil
}

// Activity counts results per UTC calendar day from since onwards.
// Days without results are absent.
func (r *TestResultRepository) Activity(ctx context.Context, since time.Time) ([]models.ActivityDay, error) {
	day := "strftime('%Y-%m-%d', test_date)"
	if r.db.DriverName() == "postgres" {
		day = "TO_CHAR(test_date AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}
	query := r.db.Rebind(`
		SELECT ` + day + ` AS day, COUNT(*) AS count
		FROM test_results
		WHERE test_date >= ?
		GROUP BY day
		ORDER BY day
	`)
	days := []models.ActivityDay{}
	if err := sqlx.SelectContext(ctx, r.db, &days, query, since.UTC()); err != nil {
		return nil, apperr.Storage("failed to get test activity", err)
	}
	return days, nil
}
