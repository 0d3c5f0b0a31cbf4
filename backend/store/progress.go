package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"mathlearn/backend/models"
)

// ProgressStore keeps per-user student progress, video progress and
// notification records, and delivers change notifications to subscribers
// synchronously on mutation.
type ProgressStore struct {
	mu            sync.Mutex
	progress      map[string]map[string]*models.StudentProgress // userID -> courseID
	video         map[string][]models.VideoProgress             // userID
	notifications map[string][]models.Notification              // userID
	progressSubs  map[string][]chan models.StudentProgress      // userID|courseID
	notifSubs     map[string][]chan []models.Notification       // userID
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		progress:      make(map[string]map[string]*models.StudentProgress),
		video:         make(map[string][]models.VideoProgress),
		notifications: make(map[string][]models.Notification),
		progressSubs:  make(map[string][]chan models.StudentProgress),
		notifSubs:     make(map[string][]chan []models.Notification),
	}
}

func progressKey(userID, courseID string) string {
	return userID + "|" + courseID
}

// UpdateStudentProgress merges the update into the (user, course) record,
// creating it on first write, and notifies subscribers of that key.
func (s *ProgressStore) UpdateStudentProgress(userID, courseID string, upd models.ProgressUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byCourse, ok := s.progress[userID]
	if !ok {
		byCourse = make(map[string]*models.StudentProgress)
		s.progress[userID] = byCourse
	}
	p, ok := byCourse[courseID]
	if !ok {
		p = &models.StudentProgress{
			UserID:               userID,
			CourseID:             courseID,
			CompletedLectures:    []string{},
			CompletedAssignments: []string{},
			QuizScores:           map[string]float64{},
		}
		byCourse[courseID] = p
	}

	if upd.CompletedLectures != nil {
		p.CompletedLectures = upd.CompletedLectures
	}
	if upd.CompletedAssignments != nil {
		p.CompletedAssignments = upd.CompletedAssignments
	}
	for quizID, score := range upd.QuizScores {
		p.QuizScores[quizID] = score
	}
	if upd.OverallProgress != nil {
		p.OverallProgress = *upd.OverallProgress
	}
	p.LastAccessed = time.Now()

	snap := cloneProgress(p)
	for _, ch := range s.progressSubs[progressKey(userID, courseID)] {
		deliverProgress(ch, snap)
	}
}

func (s *ProgressStore) GetStudentProgress(userID, courseID string) (models.StudentProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progress[userID][courseID]
	if !ok {
		return models.StudentProgress{}, false
	}
	return cloneProgress(p), true
}

// SubscribeProgress registers for change delivery on a (user, course) key.
// The returned cancel func stops further deliveries and closes the channel.
// The channel is buffered and stale snapshots are dropped in favor of the
// latest one, so a slow consumer still eventually observes current state.
func (s *ProgressStore) SubscribeProgress(userID, courseID string) (<-chan models.StudentProgress, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := progressKey(userID, courseID)
	ch := make(chan models.StudentProgress, 1)
	s.progressSubs[key] = append(s.progressSubs[key], ch)

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.progressSubs[key]
		for i, sub := range subs {
			if sub == ch {
				s.progressSubs[key] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// SaveVideoProgress upserts the record for (user, lecture).
func (s *ProgressStore) SaveVideoProgress(vp models.VideoProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vp.UpdatedAt = time.Now()
	list := s.video[vp.UserID]
	for i := range list {
		if list[i].LectureID == vp.LectureID {
			list[i] = vp
			return
		}
	}
	s.video[vp.UserID] = append(list, vp)
}

func (s *ProgressStore) GetVideoProgress(userID, lectureID string) (models.VideoProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, vp := range s.video[userID] {
		if vp.LectureID == lectureID {
			return vp, true
		}
	}
	return models.VideoProgress{}, false
}

func (s *ProgressStore) GetAllVideoProgress(userID string) []models.VideoProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.VideoProgress, len(s.video[userID]))
	copy(out, s.video[userID])
	return out
}

// CreateNotification appends to the user's notification list and notifies
// subscribers with the full updated list.
func (s *ProgressStore) CreateNotification(n models.Notification) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	s.notifications[n.UserID] = append(s.notifications[n.UserID], n)

	snap := make([]models.Notification, len(s.notifications[n.UserID]))
	copy(snap, s.notifications[n.UserID])
	for _, ch := range s.notifSubs[n.UserID] {
		deliverNotifications(ch, snap)
	}
	return n.ID
}

func (s *ProgressStore) GetUserNotifications(userID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Notification, len(s.notifications[userID]))
	copy(out, s.notifications[userID])
	return out
}

// SubscribeNotifications registers for the user's notification list. Same
// delivery contract as SubscribeProgress.
func (s *ProgressStore) SubscribeNotifications(userID string) (<-chan []models.Notification, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan []models.Notification, 1)
	s.notifSubs[userID] = append(s.notifSubs[userID], ch)

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.notifSubs[userID]
		for i, sub := range subs {
			if sub == ch {
				s.notifSubs[userID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// Overview reports how many distinct users have progress records and their
// mean overall progress.
func (s *ProgressStore) Overview() (students int, averageProgress float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	var count int
	for _, byCourse := range s.progress {
		if len(byCourse) == 0 {
			continue
		}
		students++
		for _, p := range byCourse {
			sum += p.OverallProgress
			count++
		}
	}
	if count > 0 {
		averageProgress = sum / float64(count)
	}
	return students, averageProgress
}

// deliverProgress replaces a stale buffered snapshot with the latest one
// instead of blocking the mutating caller.
func deliverProgress(ch chan models.StudentProgress, snap models.StudentProgress) {
	select {
	case ch <- snap:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func deliverNotifications(ch chan []models.Notification, snap []models.Notification) {
	select {
	case ch <- snap:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func cloneProgress(p *models.StudentProgress) models.StudentProgress {
	out := *p
	out.CompletedLectures = append([]string{}, p.CompletedLectures...)
	out.CompletedAssignments = append([]string{}, p.CompletedAssignments...)
	out.QuizScores = make(map[string]float64, len(p.QuizScores))
	for k, v := range p.QuizScores {
		out.QuizScores[k] = v
	}
	return out
}
