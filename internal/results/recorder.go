// Package results records finished quizzes and aggregates them into an
// activity calendar.
package results

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/logger"
	"github.com/example/wordquiz/pkg/models"
)

// DefaultActivityDays is the trailing window of the activity calendar.
const DefaultActivityDays = 100

type Recorder struct {
	store        *database.Store
	activityDays int
	log          *logger.Logger
	now          func() time.Time
}

func NewRecorder(store *database.Store, activityDays int, log *logger.Logger) *Recorder {
	if activityDays <= 0 {
		activityDays = DefaultActivityDays
	}
	return &Recorder{
		store:        store,
		activityDays: activityDays,
		log:          log.With("component", "results"),
		now:          time.Now,
	}
}

// Record stores a result. The score is taken as given.
func (r *Recorder) Record(ctx context.Context, in models.TestResultInput) (*models.TestResult, error) {
	return r.RecordWith(ctx, r.store.DB(), in)
}

// RecordWith stores a result using db, which may be a transaction.
func (r *Recorder) RecordWith(ctx context.Context, db sqlx.ExtContext, in models.TestResultInput) (*models.TestResult, error) {
	in.Type = strings.TrimSpace(in.Type)
	if err := validate(in); err != nil {
		return nil, err
	}

	result := &models.TestResult{
		Score:          in.Score,
		TotalItems:     in.TotalItems,
		CorrectCount:   in.CorrectCount,
		IncorrectCount: in.IncorrectCount,
		Type:           in.Type,
		TestDate:       r.now(),
	}
	if err := database.NewTestResultRepository(db).Create(ctx, result); err != nil {
		return nil, err
	}
	r.log.Debug("test result recorded", "type", result.Type, "score", result.Score)
	return result, nil
}

func validate(in models.TestResultInput) error {
	switch {
	case in.Type == "":
		return apperr.Validation("type is required")
	case in.TotalItems < 0 || in.CorrectCount < 0 || in.IncorrectCount < 0:
		return apperr.Validation("counts must not be negative")
	case in.Score < 0 || in.Score > 100:
		return apperr.Validation("score must be between 0 and 100, got %d", in.Score)
	case in.CorrectCount+in.IncorrectCount > in.TotalItems:
		return apperr.Validation("correct and incorrect counts exceed total items")
	}
	return nil
}

func (r *Recorder) List(ctx context.Context) ([]models.TestResult, error) {
	return r.store.TestResults().List(ctx)
}

func (r *Recorder) Delete(ctx context.Context, id int64) error {
	return r.store.TestResults().Delete(ctx, id)
}

func (r *Recorder) Clear(ctx context.Context) (int64, error) {
	n, err := r.store.TestResults().Clear(ctx)
	if err != nil {
		return 0, err
	}
	r.log.Info("test results cleared", "removed", n)
	return n, nil
}

// Activity returns per-day result counts over the trailing window, oldest
// day first. The window includes today, so days=1 means today only. Days
// without results are absent.
func (r *Recorder) Activity(ctx context.Context, days int) ([]models.ActivityDay, error) {
	if days == 0 {
		days = r.activityDays
	}
	if days < 0 {
		return nil, apperr.Validation("days must be positive, got %d", days)
	}
	today := r.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))
	return r.store.TestResults().Activity(ctx, since)
}
