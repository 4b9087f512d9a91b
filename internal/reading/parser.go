package reading

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/example/wordquiz/internal/apperr"
)

// Section markers of an import block, in the order they must appear.
const (
	MarkerPassage   = "阅读文本"
	MarkerQuestions = "选择题"
	MarkerAnswers   = "答案"
)

var (
	// questionStart matches a question number at the start of a line or after whitespace.
	questionStart  = regexp.MustCompile(`(?:^|\s)(\d+)[.、]`)
	questionNumber = regexp.MustCompile(`^(\d+)[.、]`)
	// optionMarker matches an option letter that does not end a word.
	optionMarker   = regexp.MustCompile(`(?:^|[^A-Za-z])([ABC])[.、]`)
	answerItem     = regexp.MustCompile(`(\d+)[.、]\s*([A-Za-z])`)
)

// ParsedQuestion is one question of an import block with its resolved answer.
type ParsedQuestion struct {
	Number  int
	Text    string
	OptionA string
	OptionB string
	OptionC string
	Answer  string
}

// ParsedPassage is the result of parsing an import block.
type ParsedPassage struct {
	Title     string
	Body      string
	Questions []ParsedQuestion
}

// Parse reads a block of the form
//
//	阅读文本
//	<title>
//	<body...>
//	选择题
//	1. <question> A. <a> B. <b> C. <c>
//	答案
//	1. A
//
// Both "." and "、" are accepted after numbers and option letters. Errors are
// validation errors naming the section at fault.
func Parse(text string) (*ParsedPassage, error) {
	passageSec, questionSec, answerSec, err := split(text)
	if err != nil {
		return nil, err
	}

	title, body, err := parsePassage(passageSec)
	if err != nil {
		return nil, err
	}
	questions, err := parseQuestions(questionSec)
	if err != nil {
		return nil, err
	}
	if err := resolveAnswers(answerSec, questions); err != nil {
		return nil, err
	}
	return &ParsedPassage{Title: title, Body: body, Questions: questions}, nil
}

func split(text string) (string, string, string, error) {
	p := strings.Index(text, MarkerPassage)
	if p < 0 {
		return "", "", "", apperr.Validation("passage: missing %q marker", MarkerPassage)
	}
	rest := text[p+len(MarkerPassage):]

	q := strings.Index(rest, MarkerQuestions)
	if q < 0 {
		return "", "", "", apperr.Validation("questions: missing %q marker after the passage", MarkerQuestions)
	}
	passage, rest := rest[:q], rest[q+len(MarkerQuestions):]

	a := strings.Index(rest, MarkerAnswers)
	if a < 0 {
		return "", "", "", apperr.Validation("answers: missing %q marker after the questions", MarkerAnswers)
	}
	return passage, rest[:a], rest[a+len(MarkerAnswers):], nil
}

func parsePassage(sec string) (string, string, error) {
	lines := strings.Split(strings.TrimSpace(sec), "\n")
	title := strings.TrimSpace(lines[0])
	if title == "" {
		return "", "", apperr.Validation("passage: title is empty")
	}

	var body []string
	for _, l := range lines[1:] {
		if l = strings.TrimSpace(l); l != "" {
			body = append(body, l)
		}
	}
	if len(body) == 0 {
		return "", "", apperr.Validation("passage: body is empty")
	}
	return title, strings.Join(body, "\n"), nil
}

// parseQuestions cuts the section into one chunk per question and reads the
// text and options of each.
func parseQuestions(sec string) ([]ParsedQuestion, error) {
	sec = strings.TrimSpace(sec)
	if questionStart.FindStringIndex(sec) == nil {
		return nil, apperr.Validation("questions: no numbered question found")
	}

	chunks := splitQuestions(sec)
	questions := make([]ParsedQuestion, 0, len(chunks))
	for i, chunk := range chunks {
		pos := i + 1
		num := questionNumber.FindStringSubmatchIndex(chunk)
		if num == nil {
			return nil, apperr.Validation("questions: question %d has no number", pos)
		}
		n, _ := strconv.Atoi(chunk[num[2]:num[3]])
		rest := chunk[num[1]:]

		opts, ok := optionMarkers(rest)
		if !ok {
			return nil, apperr.Validation("questions: question %d must have options A, B and C", pos)
		}
		q := ParsedQuestion{
			Number:  n,
			Text:    collapse(rest[:opts[0][0]]),
			OptionA: collapse(rest[opts[0][1]:opts[1][0]]),
			OptionB: collapse(rest[opts[1][1]:opts[2][0]]),
			OptionC: collapse(rest[opts[2][1]:]),
		}
		switch {
		case q.Text == "":
			return nil, apperr.Validation("questions: question %d has no text", pos)
		case q.OptionA == "" || q.OptionB == "" || q.OptionC == "":
			return nil, apperr.Validation("questions: question %d has an empty option", pos)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// splitQuestions returns one chunk per question, each starting at its number.
// The next question is searched for only after option C of the current one.
func splitQuestions(sec string) []string {
	first := questionStart.FindStringSubmatchIndex(sec)
	var chunks []string
	for start := first[2]; start < len(sec); {
		end := len(sec)
		if num := questionNumber.FindStringSubmatchIndex(sec[start:]); num != nil {
			n, _ := strconv.Atoi(sec[start+num[2] : start+num[3]])
			if opts, ok := optionMarkers(sec[start+num[1]:]); ok {
				if next := nextQuestion(sec, start+num[1]+opts[2][1], n+1); next >= 0 {
					end = next
				}
			}
		}
		chunks = append(chunks, strings.TrimSpace(sec[start:end]))
		start = end
	}
	return chunks
}

// nextQuestion returns the offset of the number opening the question after
// from, or -1. The expected number wins, at a line start first; a number
// starting a line is the fallback for misnumbered input. Other numbers belong
// to option C.
func nextQuestion(sec string, from, want int) int {
	expected, lineStart := -1, -1
	for _, m := range questionStart.FindAllStringSubmatchIndex(sec[from:], -1) {
		pos := from + m[2]
		n, _ := strconv.Atoi(sec[pos : from+m[3]])
		atLine := startsLine(sec, pos)
		switch {
		case n == want && atLine:
			return pos
		case n == want && expected < 0:
			expected = pos
		case atLine && lineStart < 0:
			lineStart = pos
		}
	}
	if expected >= 0 {
		return expected
	}
	return lineStart
}

// startsLine reports whether only whitespace precedes pos on its line.
func startsLine(s string, pos int) bool {
	i := strings.LastIndexByte(s[:pos], '\n')
	return strings.TrimSpace(s[i+1:pos]) == ""
}

// optionMarkers finds the A, B and C markers in order. Each entry holds the
// offset of the letter and the offset just past its separator.
func optionMarkers(s string) ([3][2]int, bool) {
	var out [3][2]int
	next := 0
	for _, m := range optionMarker.FindAllStringSubmatchIndex(s, -1) {
		if next == len(out) {
			break
		}
		if s[m[2]] == "ABC"[next] {
			out[next] = [2]int{m[2], m[1]}
			next++
		}
	}
	return out, next == len(out)
}

// resolveAnswers assigns answer n to the n-th question.
func resolveAnswers(sec string, questions []ParsedQuestion) error {
	matches := answerItem.FindAllStringSubmatch(sec, -1)
	if len(matches) == 0 {
		return apperr.Validation("answers: no answer found")
	}

	answers := make(map[int]string, len(matches))
	for _, m := range matches {
		n, _ := strconv.Atoi(m[1])
		letter := strings.ToUpper(m[2])
		if !ValidLetter(letter) {
			return apperr.Validation("answers: invalid answer letter %q for question %d", m[2], n)
		}
		answers[n] = letter
	}

	if len(matches) != len(questions) {
		return apperr.Validation("answers: got %d answers for %d questions", len(matches), len(questions))
	}
	for i := range questions {
		letter, ok := answers[i+1]
		if !ok {
			return apperr.Validation("answers: question %d has no answer", i+1)
		}
		questions[i].Answer = letter
	}
	return nil
}

// ValidLetter reports whether s is one of the option letters A, B, C.
func ValidLetter(s string) bool {
	return s == "A" || s == "B" || s == "C"
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
