package store

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"mathlearn/backend/models"
)

// QuizStore keeps quiz definitions keyed by lecture id (one quiz per lecture)
// and every attempt recorded against them.
type QuizStore struct {
	mu       sync.RWMutex
	quizzes  map[string]models.Quiz
	attempts map[string][]models.QuizAttempt // keyed by userID|lectureID
}

func NewQuizStore() *QuizStore {
	return &QuizStore{
		quizzes:  make(map[string]models.Quiz),
		attempts: make(map[string][]models.QuizAttempt),
	}
}

func attemptKey(userID, lectureID string) string {
	return userID + "|" + lectureID
}

// SaveQuiz stores or replaces the quiz attached to a lecture. A missing quiz
// id is assigned.
func (s *QuizStore) SaveQuiz(lectureID string, quiz models.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	if quiz.Questions == nil {
		quiz.Questions = []models.Question{}
	}
	s.quizzes[lectureID] = quiz
}

func (s *QuizStore) GetQuiz(lectureID string) (models.Quiz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quizzes[lectureID]
	return q, ok
}

func (s *QuizStore) DeleteQuiz(lectureID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.quizzes, lectureID)
}

// SaveAttempt appends the attempt to the (user, lecture) history.
func (s *QuizStore) SaveAttempt(attempt models.QuizAttempt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := attemptKey(attempt.UserID, attempt.LectureID)
	s.attempts[key] = append(s.attempts[key], attempt)
}

func (s *QuizStore) GetAttempts(userID, lectureID string) []models.QuizAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.attempts[attemptKey(userID, lectureID)]
	out := make([]models.QuizAttempt, len(stored))
	copy(out, stored)
	return out
}

// GetBestAttempt returns the attempt with the highest score for the pair.
// Ties resolve to the earliest attempt.
func (s *QuizStore) GetBestAttempt(userID, lectureID string) (models.QuizAttempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.attempts[attemptKey(userID, lectureID)]
	if len(stored) == 0 {
		return models.QuizAttempt{}, false
	}
	best := stored[0]
	for _, a := range stored[1:] {
		if a.Score > best.Score {
			best = a
		}
	}
	return best, true
}

// Analytics aggregates every attempt recorded for the lecture across all
// users. Average and rates only consider completed attempts.
func (s *QuizStore) Analytics(lectureID string) models.QuizAnalytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total, completed, passed int
	var scoreSum float64
	for _, list := range s.attempts {
		for _, a := range list {
			if a.LectureID != lectureID {
				continue
			}
			total++
			if a.CompletedAt != nil {
				completed++
				scoreSum += a.Score
				if a.Passed {
					passed++
				}
			}
		}
	}

	if total == 0 {
		return models.QuizAnalytics{}
	}
	out := models.QuizAnalytics{
		TotalAttempts:  total,
		CompletionRate: int(math.Round(float64(completed) / float64(total) * 100)),
	}
	if completed > 0 {
		out.AverageScore = int(math.Round(scoreSum / float64(completed)))
		out.PassRate = int(math.Round(float64(passed) / float64(completed) * 100))
	}
	return out
}
