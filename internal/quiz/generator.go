// Package quiz builds multiple-choice rounds from the word store and applies
// answers to the word counters and the mistake pool.
package quiz

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/logger"
	"github.com/example/wordquiz/internal/mistakes"
	"github.com/example/wordquiz/pkg/models"
)

const DefaultOptionCount = 4

// Question is one multiple-choice item: pick the Chinese meaning of English.
type Question struct {
	WordID       int64    `json:"wordId"`
	English      string   `json:"english"`
	Example      *string  `json:"example,omitempty"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// AnswerResult is the outcome of recording one answer.
type AnswerResult struct {
	Word          *models.Word `json:"word"`
	InMistakePool bool         `json:"inMistakePool"`
	Promoted      bool         `json:"promoted"`
}

type Generator struct {
	store       *database.Store
	tracker     *mistakes.Tracker
	maxCount    int // 0 disables the cap
	optionCount int
	log         *logger.Logger
}

func NewGenerator(store *database.Store, tracker *mistakes.Tracker, maxCount, optionCount int, log *logger.Logger) *Generator {
	if optionCount < 2 {
		optionCount = DefaultOptionCount
	}
	return &Generator{
		store:       store,
		tracker:     tracker,
		maxCount:    maxCount,
		optionCount: optionCount,
		log:         log.With("component", "quiz"),
	}
}

// count validates a requested size and applies the optional cap.
func (g *Generator) count(n int) (int, error) {
	if n < 1 {
		return 0, apperr.Validation("count must be a positive integer, got %d", n)
	}
	if g.maxCount > 0 {
		n = min(n, g.maxCount)
	}
	return n, nil
}

// RandomWords returns n distinct words picked uniformly at random, or every
// word when fewer exist.
func (g *Generator) RandomWords(ctx context.Context, n int) ([]models.Word, error) {
	n, err := g.count(n)
	if err != nil {
		return nil, err
	}
	return g.store.Words().Random(ctx, n)
}

// Distractors returns n distinct random words other than wordID, or all of
// them when fewer exist.
func (g *Generator) Distractors(ctx context.Context, wordID int64, n int) ([]models.Word, error) {
	n, err := g.count(n)
	if err != nil {
		return nil, err
	}
	return g.store.Words().RandomExcept(ctx, wordID, n)
}

// Session builds n questions. Each carries the correct meaning and up to
// optionCount-1 distinct wrong meanings in random order.
func (g *Generator) Session(ctx context.Context, n int) ([]Question, error) {
	words, err := g.RandomWords(ctx, n)
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(words))
	for _, word := range words {
		// Over-fetch so that distractors sharing the same meaning can be skipped.
		candidates, err := g.store.Words().RandomExcept(ctx, word.ID, 2*(g.optionCount-1))
		if err != nil {
			return nil, err
		}

		options := []string{word.Chinese}
		seen := map[string]bool{word.Chinese: true}
		for _, c := range candidates {
			if len(options) == g.optionCount {
				break
			}
			if seen[c.Chinese] {
				continue
			}
			seen[c.Chinese] = true
			options = append(options, c.Chinese)
		}

		correctIndex := 0
		rand.Shuffle(len(options), func(i, j int) {
			if i == correctIndex {
				correctIndex = j
			} else if j == correctIndex {
				correctIndex = i
			}
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, Question{
			WordID:       word.ID,
			English:      word.English,
			Example:      word.Example,
			Options:      options,
			CorrectIndex: correctIndex,
		})
	}
	return questions, nil
}

// RecordAnswer updates the word counters and the mistake pool in one
// transaction. A correct answer for a word outside the pool only counts.
func (g *Generator) RecordAnswer(ctx context.Context, wordID int64, isCorrect bool) (*AnswerResult, error) {
	var out *AnswerResult
	err := g.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		word, err := database.NewWordRepository(tx).UpdateStats(ctx, wordID, isCorrect)
		if err != nil {
			return err
		}
		out = &AnswerResult{Word: word}

		res, err := g.tracker.Apply(ctx, tx, wordID, isCorrect)
		switch {
		case err == nil:
			out.InMistakePool = res.State.Flagged
			out.Promoted = res.Promoted
		case isCorrect && errors.Is(err, apperr.ErrNotFound):
			// not in the pool, nothing to forgive
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.log.Debug("answer recorded", "word_id", wordID, "correct", isCorrect, "in_mistake_pool", out.InMistakePool)
	return out, nil
}

// RandomPassage returns a random reading passage with its questions, answers
// hidden.
func (g *Generator) RandomPassage(ctx context.Context) (*models.ReadingPassage, error) {
	repo := g.store.Reading()
	id, err := repo.RandomPassageID(ctx)
	if err != nil {
		return nil, err
	}
	p, err := repo.GetPassage(ctx, id)
	if err != nil {
		return nil, err
	}
	hidden := p.WithoutAnswers()
	return &hidden, nil
}
