package models

import (
	"strings"
	"time"
)

// Word represents an English word with its Chinese meaning and learning counters
type Word struct {
	ID          int64     `json:"id" db:"id"`
	English     string    `json:"english" db:"english"`
	Chinese     string    `json:"chinese" db:"chinese"`
	Example     *string   `json:"example,omitempty" db:"example"`
	Exposure    int       `json:"exposure" db:"exposure"`       // times the word was tested
	Familiarity int       `json:"familiarity" db:"familiarity"` // correct answers
	AddedDate   time.Time `json:"addedDate" db:"added_date"`
}

// WordInput is the payload for creating a word
type WordInput struct {
	English string  `json:"english"`
	Chinese string  `json:"chinese"`
	Example *string `json:"example,omitempty"`
}

// Normalize trims surrounding whitespace; a blank example becomes nil.
func (in WordInput) Normalize() WordInput {
	out := WordInput{
		English: strings.TrimSpace(in.English),
		Chinese: strings.TrimSpace(in.Chinese),
	}
	if in.Example != nil {
		if ex := strings.TrimSpace(*in.Example); ex != "" {
			out.Example = &ex
		}
	}
	return out
}

// WordUpdate carries the fields to change; nil means untouched
type WordUpdate struct {
	English *string `json:"english,omitempty"`
	Chinese *string `json:"chinese,omitempty"`
	Example *string `json:"example,omitempty"`
}

// Empty reports whether no field is set
func (u WordUpdate) Empty() bool {
	return u.English == nil && u.Chinese == nil && u.Example == nil
}

// WordStats summarises the learning counters over all words
type WordStats struct {
	Total            int     `json:"total" db:"total"`
	Tested           int     `json:"tested" db:"tested"`
	Untested         int     `json:"untested" db:"-"`
	InMistakePool    int     `json:"inMistakePool" db:"-"`
	TotalExposure    int     `json:"totalExposure" db:"total_exposure"`
	TotalFamiliarity int     `json:"totalFamiliarity" db:"total_familiarity"`
	Accuracy         float64 `json:"accuracy" db:"-"` // percent of correct answers
}
