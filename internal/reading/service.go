// Package reading imports reading-comprehension passages and scores submitted
// answers.
package reading

import (
	"context"
	"math"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/logger"
	"github.com/example/wordquiz/internal/results"
	"github.com/example/wordquiz/pkg/models"
)

// ImportResult reports what an import stored.
type ImportResult struct {
	PassageID int64 `json:"passageId"`
	Passages  int   `json:"passages"`
	Questions int   `json:"questions"`
}

// Feedback is the verdict for one question of a submission.
type Feedback struct {
	QuestionID    int64  `json:"questionId"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

// SubmitResult is the scored submission.
type SubmitResult struct {
	PassageID      int64      `json:"passageId"`
	Score          int        `json:"score"`
	TotalItems     int        `json:"totalItems"`
	CorrectCount   int        `json:"correctCount"`
	IncorrectCount int        `json:"incorrectCount"`
	TestResultID   int64      `json:"testResultId"`
	Results        []Feedback `json:"results"`
}

type Service struct {
	store    *database.Store
	recorder *results.Recorder
	log      *logger.Logger
}

func NewService(store *database.Store, recorder *results.Recorder, log *logger.Logger) *Service {
	return &Service{store: store, recorder: recorder, log: log.With("component", "reading")}
}

// Import parses content and stores the passage with its questions in one
// transaction. Nothing is stored when parsing or any insert fails.
func (s *Service) Import(ctx context.Context, content string) (*ImportResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("content is required")
	}
	parsed, err := Parse(content)
	if err != nil {
		return nil, err
	}

	out := &ImportResult{}
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		repo := database.NewReadingRepository(tx)
		passage := &models.ReadingPassage{Title: parsed.Title, Content: parsed.Body}
		if err := repo.CreatePassage(ctx, passage); err != nil {
			return err
		}
		out.PassageID = passage.ID
		out.Passages = 1

		for _, pq := range parsed.Questions {
			q := &models.ReadingQuestion{
				PassageID:     passage.ID,
				QuestionText:  pq.Text,
				OptionA:       pq.OptionA,
				OptionB:       pq.OptionB,
				OptionC:       pq.OptionC,
				CorrectAnswer: pq.Answer,
			}
			if err := repo.CreateQuestion(ctx, q); err != nil {
				return err
			}
			out.Questions++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("reading passage imported", "passage_id", out.PassageID, "title", parsed.Title, "questions", out.Questions)
	return out, nil
}

// List returns passages with question counts, without content.
func (s *Service) List(ctx context.Context) ([]models.ReadingPassage, error) {
	return s.store.Reading().ListPassages(ctx)
}

// Get returns a passage with its questions, answers hidden.
func (s *Service) Get(ctx context.Context, id int64) (*models.ReadingPassage, error) {
	p, err := s.store.Reading().GetPassage(ctx, id)
	if err != nil {
		return nil, err
	}
	hidden := p.WithoutAnswers()
	return &hidden, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Reading().DeletePassage(ctx, id)
}

// Submit scores answers (question ID to letter) for a passage. Unanswered
// questions count as incorrect. The passage exposure and a
// reading-comprehension result are written in the same transaction.
func (s *Service) Submit(ctx context.Context, passageID int64, answers map[int64]string) (*SubmitResult, error) {
	if passageID <= 0 {
		return nil, apperr.Validation("passageId must be a positive integer")
	}

	var out *SubmitResult
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		repo := database.NewReadingRepository(tx)
		passage, err := repo.GetPassage(ctx, passageID)
		if err != nil {
			return err
		}

		known := make(map[int64]bool, len(passage.Questions))
		for _, q := range passage.Questions {
			known[q.ID] = true
		}
		for id, letter := range answers {
			if !known[id] {
				return apperr.Validation("question %d does not belong to passage %d", id, passageID)
			}
			if !ValidLetter(strings.ToUpper(strings.TrimSpace(letter))) {
				return apperr.Validation("invalid answer %q for question %d", letter, id)
			}
		}

		out = &SubmitResult{PassageID: passageID, TotalItems: len(passage.Questions)}
		out.Results = make([]Feedback, 0, len(passage.Questions))
		for _, q := range passage.Questions {
			given := strings.ToUpper(strings.TrimSpace(answers[q.ID]))
			fb := Feedback{QuestionID: q.ID, Answer: given, CorrectAnswer: q.CorrectAnswer, Correct: given == q.CorrectAnswer}
			if fb.Correct {
				out.CorrectCount++
			}
			out.Results = append(out.Results, fb)
		}
		out.IncorrectCount = out.TotalItems - out.CorrectCount
		out.Score = score(out.CorrectCount, out.TotalItems)

		if err := repo.IncrementExposure(ctx, passageID); err != nil {
			return err
		}
		result, err := s.recorder.RecordWith(ctx, tx, models.TestResultInput{
			Score:          out.Score,
			TotalItems:     out.TotalItems,
			CorrectCount:   out.CorrectCount,
			IncorrectCount: out.IncorrectCount,
			Type:           models.TestTypeReadingComprehension,
		})
		if err != nil {
			return err
		}
		out.TestResultID = result.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// score is round(correct/total*100); an empty passage scores 0.
func score(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
