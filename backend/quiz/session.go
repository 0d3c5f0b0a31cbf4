package quiz

import (
	"math/rand"
	"sync"
	"time"

	"mathlearn/backend/models"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateSubmitted  State = "submitted"
)

// Session drives one quiz-taking attempt through
// NotStarted -> InProgress -> Submitted. There is no transition back: once
// submitted, answers are frozen and every mutating call fails with an
// InvalidStateError.
type Session struct {
	mu        sync.Mutex
	quiz      *models.Quiz
	userID    string
	lectureID string

	state     State
	answers   map[string]any
	current   int
	order     []int
	remaining int // seconds, only meaningful with a time limit
	startedAt time.Time
	result    *models.QuizResult

	tick     time.Duration
	stopTick chan struct{}
	onSubmit func(models.QuizAttempt, *models.QuizResult)
}

func NewSession(q *models.Quiz, userID, lectureID string) *Session {
	s := &Session{
		quiz:      q,
		userID:    userID,
		lectureID: lectureID,
		state:     StateNotStarted,
		answers:   make(map[string]any),
		order:     make([]int, len(q.Questions)),
		tick:      time.Second,
	}
	for i := range s.order {
		s.order[i] = i
	}
	if q.ShuffleQuestions {
		rand.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
	}
	return s
}

// OnSubmit registers a hook invoked exactly once when the session submits,
// whether explicitly or by countdown expiry.
func (s *Session) OnSubmit(fn func(models.QuizAttempt, *models.QuizResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSubmit = fn
}

func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return &models.InvalidStateError{Op: "start", State: string(s.state)}
	}
	s.state = StateInProgress
	s.startedAt = time.Now()

	if s.quiz.TimeLimit > 0 {
		s.remaining = s.quiz.TimeLimit * 60
		s.stopTick = make(chan struct{})
		go s.countdown(s.stopTick)
	}
	return nil
}

// Answer upserts the submitted value for a question. Any question may be
// re-answered any number of times before submission.
func (s *Session) Answer(questionID string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return &models.InvalidStateError{Op: "answer", State: string(s.state)}
	}
	for _, q := range s.quiz.Questions {
		if q.ID == questionID {
			s.answers[questionID] = value
			return nil
		}
	}
	return &models.NotFoundError{Resource: "question", ID: questionID}
}

func (s *Session) Next() (int, error)     { return s.navigate(s.currentIndex() + 1) }
func (s *Session) Previous() (int, error) { return s.navigate(s.currentIndex() - 1) }

// JumpTo moves to the given question index, clamped to the valid range.
func (s *Session) JumpTo(index int) (int, error) { return s.navigate(index) }

func (s *Session) currentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) navigate(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return 0, &models.InvalidStateError{Op: "navigate", State: string(s.state)}
	}
	if index < 0 {
		index = 0
	}
	if max := len(s.quiz.Questions) - 1; index > max {
		index = max
	}
	if index < 0 {
		index = 0
	}
	s.current = index
	return index, nil
}

// Submit freezes the answers and grades them. Completeness is never
// enforced here: unanswered questions simply score zero, so a countdown
// expiry can submit a partial attempt.
func (s *Session) Submit() (*models.QuizResult, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return nil, &models.InvalidStateError{Op: "submit", State: string(s.state)}
	}
	attempt, result := s.submitLocked()
	fn := s.onSubmit
	s.mu.Unlock()

	if fn != nil {
		fn(attempt, result)
	}
	return result, nil
}

// submitLocked transitions to Submitted. Caller holds the lock and has
// verified the session is in progress.
func (s *Session) submitLocked() (models.QuizAttempt, *models.QuizResult) {
	s.state = StateSubmitted
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}

	answers := make(map[string]any, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	now := time.Now()
	attempt := models.QuizAttempt{
		UserID:      s.userID,
		LectureID:   s.lectureID,
		Answers:     answers,
		StartedAt:   s.startedAt,
		CompletedAt: &now,
	}
	result := CalculateQuizResult(&attempt, s.quiz)
	s.result = result
	return attempt, result
}

func (s *Session) countdown(stop chan struct{}) {
	t := time.NewTicker(s.tick)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if s.tickDown() {
				return
			}
		}
	}
}

// tickDown decrements the countdown and force-submits on zero. Reports
// whether the countdown is finished.
func (s *Session) tickDown() bool {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return true
	}
	s.remaining--
	if s.remaining > 0 {
		s.mu.Unlock()
		return false
	}
	attempt, result := s.submitLocked()
	fn := s.onSubmit
	s.mu.Unlock()

	if fn != nil {
		fn(attempt, result)
	}
	return true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining reports the countdown in seconds; zero when the quiz has no
// time limit or the session is over.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.quiz.TimeLimit <= 0 {
		return 0
	}
	return s.remaining
}

func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// CanSubmit reports whether every question has an answer. Advisory only:
// Submit itself never requires completeness.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers) == len(s.quiz.Questions)
}

// CurrentQuestion returns the question at the navigation cursor in session
// order (shuffled when the quiz asks for it) along with the cursor index.
func (s *Session) CurrentQuestion() (models.Question, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.quiz.Questions) == 0 {
		return models.Question{}, 0
	}
	return s.quiz.Questions[s.order[s.current]], s.current
}

// Result returns the graded outcome after submission.
func (s *Session) Result() (*models.QuizResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.result != nil
}
