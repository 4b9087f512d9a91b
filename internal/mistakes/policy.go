// Package mistakes moves words between the normal and the mistake pool.
//
// A word with no mistake row is Normal. A wrong answer flags it; while
// flagged, wrong answers grow mistake_count and reset the correct streak,
// correct answers grow the streak. Reaching the promotion threshold deletes
// the row and the word is Normal again.
package mistakes

import (
	"errors"
	"fmt"
)

// DefaultPromotionThreshold is the number of consecutive correct answers that
// takes a word out of the mistake pool.
const DefaultPromotionThreshold = 2

// ErrNotFlagged is returned by Next for a correct answer on a Normal word.
var ErrNotFlagged = errors.New("word is not in the mistake pool")

// State is the mistake status of one word.
type State struct {
	Flagged       bool `json:"flagged"`
	MistakeCount  int  `json:"mistakeCount"`
	CorrectStreak int  `json:"correctStreak"`
}

// Policy is the correct-streak forgiveness policy.
type Policy struct {
	PromotionThreshold int
}

func DefaultPolicy() Policy {
	return Policy{PromotionThreshold: DefaultPromotionThreshold}
}

// NewPolicy returns a policy with the given threshold.
func NewPolicy(threshold int) (Policy, error) {
	if threshold < 1 {
		return Policy{}, fmt.Errorf("promotion threshold must be at least 1, got %d", threshold)
	}
	return Policy{PromotionThreshold: threshold}, nil
}

// Next computes the state after one answer.
func (p Policy) Next(s State, correct bool) (State, error) {
	if !correct {
		if !s.Flagged {
			return State{Flagged: true, MistakeCount: 1}, nil
		}
		return State{Flagged: true, MistakeCount: s.MistakeCount + 1}, nil
	}

	if !s.Flagged {
		return s, ErrNotFlagged
	}
	streak := s.CorrectStreak + 1
	if streak >= p.PromotionThreshold {
		return State{}, nil
	}
	return State{Flagged: true, MistakeCount: s.MistakeCount, CorrectStreak: streak}, nil
}
