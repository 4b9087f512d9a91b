package models

import "time"

// Mistake marks a word as being in the mistake pool
type Mistake struct {
	ID            int64     `json:"id" db:"id"`
	WordID        int64     `json:"wordId" db:"word_id"`
	MistakeCount  int       `json:"mistakeCount" db:"mistake_count"`
	CorrectStreak int       `json:"correctStreak" db:"correct_streak"`
	LastUpdate    time.Time `json:"lastUpdate" db:"last_update"`
}

// MistakeEntry is a mistake row joined with its word
type MistakeEntry struct {
	Mistake
	English string  `json:"english" db:"english"`
	Chinese string  `json:"chinese" db:"chinese"`
	Example *string `json:"example,omitempty" db:"example"`
}
