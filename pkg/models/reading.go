package models

import "time"

// ReadingPassage is a text with its comprehension questions
type ReadingPassage struct {
	ID            int64             `json:"id" db:"id"`
	Title         string            `json:"title" db:"title"`
	Content       string            `json:"content,omitempty" db:"content"`
	Exposure      int               `json:"exposure" db:"exposure"`
	AddedDate     time.Time         `json:"addedDate" db:"added_date"`
	QuestionCount int               `json:"questionCount" db:"question_count"`
	Questions     []ReadingQuestion `json:"questions,omitempty" db:"-"`
}

// ReadingQuestion is a three-option multiple-choice question
type ReadingQuestion struct {
	ID            int64  `json:"id" db:"id"`
	PassageID     int64  `json:"passageId" db:"passage_id"`
	QuestionText  string `json:"questionText" db:"question_text"`
	OptionA       string `json:"optionA" db:"option_a"`
	OptionB       string `json:"optionB" db:"option_b"`
	OptionC       string `json:"optionC" db:"option_c"`
	CorrectAnswer string `json:"correctAnswer,omitempty" db:"correct_answer"`
}

// WithoutAnswers returns a copy of the passage safe to show to a quiz taker.
func (p ReadingPassage) WithoutAnswers() ReadingPassage {
	questions := make([]ReadingQuestion, len(p.Questions))
	for i, q := range p.Questions {
		q.CorrectAnswer = ""
		questions[i] = q
	}
	p.Questions = questions
	return p
}
