package models

import "time"

const (
	QuestionMultipleChoice = "multiple-choice"
	QuestionShortAnswer    = "short-answer"
	QuestionEssay          = "essay"
)

// DefaultPassingScore is applied when a quiz does not set one.
const DefaultPassingScore = 70.0

// A Quiz is keyed externally by the lecture it belongs to (one quiz per lecture).
type Quiz struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Instructions     string     `json:"instructions"`
	Questions        []Question `json:"questions"`
	TimeLimit        int        `json:"time_limit"` // minutes, 0 = no limit
	PassingScore     float64    `json:"passing_score"`
	MaxAttempts      int        `json:"max_attempts"`
	ShuffleQuestions bool       `json:"shuffle_questions"`
	ShowFeedback     bool       `json:"show_feedback"`
}

// EffectivePassingScore returns the configured passing score or the default.
func (q *Quiz) EffectivePassingScore() float64 {
	if q.PassingScore <= 0 {
		return DefaultPassingScore
	}
	return q.PassingScore
}

// Question holds an answer whose shape depends on the type: an option index
// for multiple-choice, a string for short-answer, ignored for essay.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer any      `json:"correct_answer,omitempty"`
	Points        int      `json:"points"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizAttempt records one run through a quiz. CompletedAt is nil while the
// attempt is still in progress. Score is the percentage of available points.
type QuizAttempt struct {
	UserID      string         `json:"user_id"`
	LectureID   string         `json:"lecture_id"`
	Answers     map[string]any `json:"answers"`
	Score       float64        `json:"score"`
	Passed      bool           `json:"passed"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

type QuestionFeedback struct {
	QuestionID    string `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	UserAnswer    any    `json:"user_answer"`
	CorrectAnswer any    `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
	Points        int    `json:"points"`
	EarnedPoints  int    `json:"earned_points"`
}

type QuizResult struct {
	Attempt  *QuizAttempt       `json:"attempt"`
	Quiz     *Quiz              `json:"quiz"`
	Feedback []QuestionFeedback `json:"feedback"`
}

// QuizAnalytics aggregates all attempts recorded for a lecture's quiz.
// Percentages are rounded to the nearest integer.
type QuizAnalytics struct {
	TotalAttempts  int `json:"total_attempts"`
	AverageScore   int `json:"average_score"`
	PassRate       int `json:"pass_rate"`
	CompletionRate int `json:"completion_rate"`
}
