package models

import "time"

// Test types recorded by the service. Clients may send other values.
const (
	TestTypeEnglishToChineseMultiple = "english-to-chinese-multiple"
	TestTypeReadingComprehension     = "reading-comprehension"
)

// TestResult tracks the outcome of one finished quiz
type TestResult struct {
	ID             int64     `json:"id" db:"id"`
	Score          int       `json:"score" db:"score"`
	TotalItems     int       `json:"totalItems" db:"total_items"`
	CorrectCount   int       `json:"correctCount" db:"correct_count"`
	IncorrectCount int       `json:"incorrectCount" db:"incorrect_count"`
	Type           string    `json:"type" db:"type"`
	TestDate       time.Time `json:"testDate" db:"test_date"`
}

// TestResultInput is the payload for recording a result
type TestResultInput struct {
	Score          int    `json:"score"`
	TotalItems     int    `json:"totalItems"`
	CorrectCount   int    `json:"correctCount"`
	IncorrectCount int    `json:"incorrectCount"`
	Type           string `json:"type"`
}

// ActivityDay is the number of results recorded on one calendar day
type ActivityDay struct {
	Date  string `json:"date" db:"day"`
	Count int    `json:"count" db:"count"`
}
