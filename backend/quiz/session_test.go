package quiz

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathlearn/backend/models"
)

func sessionQuiz(timeLimit int) *models.Quiz {
	return &models.Quiz{
		ID:        "q1",
		Title:     "Fractions",
		TimeLimit: timeLimit,
		Questions: []models.Question{
			{ID: "q-a", Type: models.QuestionMultipleChoice, Options: []string{"x", "y"}, CorrectAnswer: 0, Points: 10},
			{ID: "q-b", Type: models.QuestionMultipleChoice, Options: []string{"x", "y"}, CorrectAnswer: 1, Points: 10},
			{ID: "q-c", Type: models.QuestionShortAnswer, CorrectAnswer: "half", Points: 10},
		},
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(sessionQuiz(0), "u1", "lec-1")
	assert.Equal(t, StateNotStarted, s.State())

	require.NoError(t, s.Start())
	assert.Equal(t, StateInProgress, s.State())

	// starting twice is invalid
	err := s.Start()
	assert.True(t, models.IsInvalidState(err))

	require.NoError(t, s.Answer("q-a", 0))
	require.NoError(t, s.Answer("q-b", 1))
	require.NoError(t, s.Answer("q-c", "half"))
	assert.True(t, s.CanSubmit())

	result, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, s.State())
	assert.Equal(t, 100.0, result.Attempt.Score)
	assert.True(t, result.Attempt.Passed)
	require.NotNil(t, result.Attempt.CompletedAt)

	got, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, result, got)
}

func TestSessionAnswerBeforeStart(t *testing.T) {
	s := NewSession(sessionQuiz(0), "u1", "lec-1")
	err := s.Answer("q-a", 0)
	assert.True(t, models.IsInvalidState(err))
}

func TestSessionAnswerUnknownQuestion(t *testing.T) {
	s := NewSession(sessionQuiz(0), "u1", "lec-1")
	require.NoError(t, s.Start())

	err := s.Answer("ghost", 0)
	assert.True(t, models.IsNotFound(err))
}

func TestSessionReAnswerOverwrites(t *testing.T) {
	s := NewSession(sessionQuiz(0), "u1", "lec-1")
	require.NoError(t, s.Start())

	require.NoError(t, s.Answer("q-a", 1))
	require.NoError(t, s.Answer("q-a", 0))
	assert.Equal(t, 1, s.AnsweredCount())

	result, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Attempt.Answers["q-a"])
}

func TestSessionNavigationClamps(t *testing.T) {
	s := NewSession(sessionQuiz(0), "u1", "lec-1")
	require.NoError(t, s.Start())

	idx, err := s.Previous()
	require.NoError(t, err)
	assert.Equal(t, 0, idx, "previous at the first question stays put")

	idx, err = s.JumpTo(99)
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "jump past the end clamps to the last question")

	idx, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "next at the last question stays put")

	idx, err = s.JumpTo(-5)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestSessionPartialSubmit(t *testing.T) {
	s := NewSession(sessionQuiz(0), "u1", "lec-1")
	require.NoError(t, s.Start())

	require.NoError(t, s.Answer("q-a", 0))
	assert.False(t, s.CanSubmit())

	// submission never requires completeness
	result, err := s.Submit()
	require.NoError(t, err)
	assert.InDelta(t, 33.33, result.Attempt.Score, 0.01)
}

func TestSessionMutationsAfterSubmit(t *testing.T) {
	s := NewSession(sessionQuiz(0), "u1", "lec-1")
	require.NoError(t, s.Start())
	_, err := s.Submit()
	require.NoError(t, err)

	assert.True(t, models.IsInvalidState(s.Answer("q-a", 0)))
	_, err = s.Next()
	assert.True(t, models.IsInvalidState(err))
	_, err = s.Submit()
	assert.True(t, models.IsInvalidState(err))
}

func TestSessionCountdownAutoSubmitsOnce(t *testing.T) {
	var submits atomic.Int32
	done := make(chan *models.QuizResult, 1)

	s := NewSession(sessionQuiz(1), "u1", "lec-1")
	s.tick = time.Millisecond
	s.OnSubmit(func(_ models.QuizAttempt, result *models.QuizResult) {
		submits.Add(1)
		done <- result
	})
	require.NoError(t, s.Start())
	require.NoError(t, s.Answer("q-a", 0))

	select {
	case result := <-done:
		assert.InDelta(t, 33.33, result.Attempt.Score, 0.01)
	case <-time.After(5 * time.Second):
		t.Fatal("countdown did not submit")
	}

	assert.Equal(t, StateSubmitted, s.State())
	// give a stray second fire a chance to show up
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), submits.Load())

	_, err := s.Submit()
	assert.True(t, models.IsInvalidState(err))
}

func TestSessionManualSubmitStopsCountdown(t *testing.T) {
	var submits atomic.Int32

	s := NewSession(sessionQuiz(1), "u1", "lec-1")
	s.tick = time.Millisecond
	s.OnSubmit(func(models.QuizAttempt, *models.QuizResult) { submits.Add(1) })
	require.NoError(t, s.Start())

	_, err := s.Submit()
	require.NoError(t, err)

	// wait past the point the countdown would have expired
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), submits.Load())
}

func TestSessionRemaining(t *testing.T) {
	s := NewSession(sessionQuiz(2), "u1", "lec-1")
	require.NoError(t, s.Start())
	assert.Equal(t, 120, s.Remaining())

	_, err := s.Submit()
	require.NoError(t, err)
	assert.Zero(t, s.Remaining())

	noLimit := NewSession(sessionQuiz(0), "u1", "lec-1")
	require.NoError(t, noLimit.Start())
	assert.Zero(t, noLimit.Remaining())
}

func TestManagerOneLiveSessionPerPair(t *testing.T) {
	m := NewManager()
	q := sessionQuiz(0)

	first, err := m.Start(q, "u1", "lec-1", nil)
	require.NoError(t, err)

	_, err = m.Start(q, "u1", "lec-1", nil)
	assert.True(t, models.IsInvalidState(err), "a live session refuses a restart")

	// a different user or lecture is its own session
	_, err = m.Start(q, "u2", "lec-1", nil)
	require.NoError(t, err)
	_, err = m.Start(q, "u1", "lec-2", nil)
	require.NoError(t, err)

	// once finished, the slot can be reused
	_, err = first.Submit()
	require.NoError(t, err)
	replacement, err := m.Start(q, "u1", "lec-1", nil)
	require.NoError(t, err)

	got, ok := m.Get("u1", "lec-1")
	require.True(t, ok)
	assert.Same(t, replacement, got)
}

func TestManagerSubmitCallbackReceivesAttempt(t *testing.T) {
	m := NewManager()
	var saved []models.QuizAttempt

	s, err := m.Start(sessionQuiz(0), "u1", "lec-1", func(attempt models.QuizAttempt, _ *models.QuizResult) {
		saved = append(saved, attempt)
	})
	require.NoError(t, err)
	require.NoError(t, s.Answer("q-a", 0))

	_, err = s.Submit()
	require.NoError(t, err)

	require.Len(t, saved, 1)
	assert.Equal(t, "u1", saved[0].UserID)
	assert.Equal(t, "lec-1", saved[0].LectureID)
	assert.InDelta(t, 33.33, saved[0].Score, 0.01)
}

func TestSessionShuffleKeepsAllQuestionsReachable(t *testing.T) {
	q := sessionQuiz(0)
	q.ShuffleQuestions = true

	s := NewSession(q, "u1", "lec-1")
	require.NoError(t, s.Start())

	seen := map[string]bool{}
	for i := 0; i < len(q.Questions); i++ {
		_, err := s.JumpTo(i)
		require.NoError(t, err)
		question, idx := s.CurrentQuestion()
		assert.Equal(t, i, idx)
		seen[question.ID] = true
	}
	assert.Len(t, seen, len(q.Questions), "shuffle must be a permutation")
}
