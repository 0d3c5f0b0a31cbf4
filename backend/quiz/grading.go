package quiz

import (
	"fmt"
	"strings"

	"mathlearn/backend/models"
)

// CalculateQuizResult grades an attempt against its quiz. Every question gets
// a feedback entry regardless of whether it was answered; unanswered and
// essay questions earn zero. The attempt's Score (percentage of available
// points) and Passed are set from the computed totals.
func CalculateQuizResult(attempt *models.QuizAttempt, quiz *models.Quiz) *models.QuizResult {
	feedback := make([]models.QuestionFeedback, 0, len(quiz.Questions))
	var totalPoints, earnedTotal int

	for _, q := range quiz.Questions {
		userAnswer, answered := attempt.Answers[q.ID]
		correct := answered && isCorrectAnswer(q, userAnswer)

		earned := 0
		if correct {
			earned = q.Points
		}
		totalPoints += q.Points
		earnedTotal += earned

		feedback = append(feedback, models.QuestionFeedback{
			QuestionID:    q.ID,
			IsCorrect:     correct,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Points:        q.Points,
			EarnedPoints:  earned,
		})
	}

	var score float64
	if totalPoints > 0 {
		score = float64(earnedTotal) / float64(totalPoints) * 100
	}
	attempt.Score = score
	attempt.Passed = score >= quiz.EffectivePassingScore()

	return &models.QuizResult{Attempt: attempt, Quiz: quiz, Feedback: feedback}
}

func isCorrectAnswer(q models.Question, userAnswer any) bool {
	switch q.Type {
	case models.QuestionMultipleChoice:
		got, ok := answerIndex(userAnswer)
		want, okWant := answerIndex(q.CorrectAnswer)
		return ok && okWant && got == want
	case models.QuestionShortAnswer:
		if q.CorrectAnswer == nil {
			return false
		}
		return normalizeText(userAnswer) == normalizeText(q.CorrectAnswer)
	default:
		// essay answers await manual grading
		return false
	}
}

// answerIndex coerces a submitted multiple-choice answer to an option index.
// JSON numbers decode as float64, so both forms are accepted.
func answerIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

// normalizeText applies the exact lowercase+trim comparison used for
// short-answer grading. Deliberately not fuzzy.
func normalizeText(v any) string {
	return strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
}
