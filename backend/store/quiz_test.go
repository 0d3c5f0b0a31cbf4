package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathlearn/backend/models"
)

func completedAttempt(userID, lectureID string, score float64, passed bool) models.QuizAttempt {
	now := time.Now()
	return models.QuizAttempt{
		UserID:      userID,
		LectureID:   lectureID,
		Answers:     map[string]any{},
		Score:       score,
		Passed:      passed,
		StartedAt:   now.Add(-time.Minute),
		CompletedAt: &now,
	}
}

func TestSaveQuizReplacesAndAssignsID(t *testing.T) {
	s := NewQuizStore()

	s.SaveQuiz("lec-1", models.Quiz{Title: "Quiz A"})
	q, ok := s.GetQuiz("lec-1")
	require.True(t, ok)
	assert.NotEmpty(t, q.ID)
	assert.NotNil(t, q.Questions)

	s.SaveQuiz("lec-1", models.Quiz{Title: "Quiz B"})
	q, ok = s.GetQuiz("lec-1")
	require.True(t, ok)
	assert.Equal(t, "Quiz B", q.Title)
}

func TestDeleteQuiz(t *testing.T) {
	s := NewQuizStore()
	s.SaveQuiz("lec-1", models.Quiz{Title: "Quiz A"})

	s.DeleteQuiz("lec-1")
	_, ok := s.GetQuiz("lec-1")
	assert.False(t, ok)

	// deleting a quiz that does not exist is a no-op
	s.DeleteQuiz("lec-1")
}

func TestBestAttemptFirstMaxWins(t *testing.T) {
	s := NewQuizStore()
	first := completedAttempt("u1", "lec-1", 80, true)
	s.SaveAttempt(first)
	s.SaveAttempt(completedAttempt("u1", "lec-1", 60, false))
	s.SaveAttempt(completedAttempt("u1", "lec-1", 80, true)) // tie with first

	best, ok := s.GetBestAttempt("u1", "lec-1")
	require.True(t, ok)
	assert.Equal(t, 80.0, best.Score)
	assert.Equal(t, first.StartedAt, best.StartedAt, "tie must resolve to the earliest attempt")
}

func TestBestAttemptNoHistory(t *testing.T) {
	s := NewQuizStore()
	_, ok := s.GetBestAttempt("u1", "lec-1")
	assert.False(t, ok)
}

func TestAttemptsAreScopedToUserAndLecture(t *testing.T) {
	s := NewQuizStore()
	s.SaveAttempt(completedAttempt("u1", "lec-1", 80, true))
	s.SaveAttempt(completedAttempt("u1", "lec-2", 50, false))
	s.SaveAttempt(completedAttempt("u2", "lec-1", 90, true))

	assert.Len(t, s.GetAttempts("u1", "lec-1"), 1)
	assert.Len(t, s.GetAttempts("u1", "lec-2"), 1)
	assert.Len(t, s.GetAttempts("u2", "lec-1"), 1)
	assert.Empty(t, s.GetAttempts("u2", "lec-2"))
}

func TestAnalyticsRoundsAndSkipsIncomplete(t *testing.T) {
	s := NewQuizStore()
	s.SaveAttempt(completedAttempt("u1", "lec-1", 80, true))
	s.SaveAttempt(completedAttempt("u2", "lec-1", 65, false))
	s.SaveAttempt(models.QuizAttempt{ // abandoned, never completed
		UserID:    "u3",
		LectureID: "lec-1",
		StartedAt: time.Now(),
	})

	got := s.Analytics("lec-1")
	assert.Equal(t, 3, got.TotalAttempts)
	assert.Equal(t, 73, got.AverageScore)   // (80+65)/2 = 72.5, rounded
	assert.Equal(t, 50, got.PassRate)       // 1 of 2 completed
	assert.Equal(t, 67, got.CompletionRate) // 2 of 3, rounded
}

func TestAnalyticsEmpty(t *testing.T) {
	s := NewQuizStore()
	assert.Equal(t, models.QuizAnalytics{}, s.Analytics("lec-1"))
}
