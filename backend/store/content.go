package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"mathlearn/backend/models"
)

// ContentStore holds the Course -> Week -> {Lecture, Assignment} hierarchy in
// memory. All operations take the store lock, so each mutation is atomic and
// no partial write is ever observable.
//
// In lenient mode (the default) updates and deletes that reference a missing
// id are silent no-ops; in strict mode they return a NotFoundError. Creates
// always require an existing parent.
type ContentStore struct {
	mu      sync.RWMutex
	strict  bool
	courses []*models.Course
	byID    map[string]*models.Course
}

func NewContentStore(strict bool) *ContentStore {
	return &ContentStore{
		strict: strict,
		byID:   make(map[string]*models.Course),
	}
}

// touch advances the course's UpdatedAt. Guaranteed to strictly increase even
// when the clock has not moved between two mutations.
func touch(c *models.Course) {
	now := time.Now()
	if !now.After(c.UpdatedAt) {
		now = c.UpdatedAt.Add(time.Nanosecond)
	}
	c.UpdatedAt = now
}

func (s *ContentStore) missing(resource, id string) error {
	if s.strict {
		return &models.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}

// CreateCourse assigns a fresh id, initializes an empty week list and sets
// both timestamps to now. ID, Weeks and timestamps on the input are ignored.
func (s *ContentStore) CreateCourse(data models.Course) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = uuid.NewString()
	data.Weeks = []models.Week{}
	data.CreatedAt = time.Now()
	data.UpdatedAt = data.CreatedAt

	course := &data
	s.courses = append(s.courses, course)
	s.byID[course.ID] = course
	return course.ID, nil
}

func (s *ContentStore) GetCourses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, cloneCourse(c))
	}
	return out
}

func (s *ContentStore) GetCourse(id string) (models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return models.Course{}, &models.NotFoundError{Resource: "course", ID: id}
	}
	return cloneCourse(c), nil
}

type CourseUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *ContentStore) UpdateCourse(id string, input CourseUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[id]
	if !ok {
		return s.missing("course", id)
	}

	if input.Title != "" {
		c.Title = input.Title
	}
	if input.Description != "" {
		c.Description = input.Description
	}
	touch(c)
	return nil
}

// DeleteCourse removes the course and, with it, every week, lecture and
// assignment scoped under it.
func (s *ContentStore) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return s.missing("course", id)
	}
	delete(s.byID, id)
	for i, c := range s.courses {
		if c.ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			break
		}
	}
	return nil
}

// CreateWeek appends a week to the course's week list. ID, CourseID and the
// child lists on the input are ignored.
func (s *ContentStore) CreateWeek(courseID string, data models.Week) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[courseID]
	if !ok {
		return "", &models.NotFoundError{Resource: "course", ID: courseID}
	}
	if err := checkWeekDates(data.StartDate, data.EndDate); err != nil {
		return "", err
	}

	data.ID = uuid.NewString()
	data.CourseID = courseID
	data.Lectures = []models.Lecture{}
	data.Assignments = []models.Assignment{}

	c.Weeks = append(c.Weeks, data)
	touch(c)
	return data.ID, nil
}

// GetWeeks returns the course's weeks in insertion order.
func (s *ContentStore) GetWeeks(courseID string) ([]models.Week, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[courseID]
	if !ok {
		return nil, &models.NotFoundError{Resource: "course", ID: courseID}
	}
	out := make([]models.Week, 0, len(c.Weeks))
	for i := range c.Weeks {
		out = append(out, cloneWeek(&c.Weeks[i]))
	}
	return out, nil
}

type WeekUpdate struct {
	WeekNumber  int        `json:"week_number"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

func (s *ContentStore) UpdateWeek(courseID, weekID string, input WeekUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, w, err := s.locateWeek(courseID, weekID)
	if err != nil || w == nil {
		return err
	}

	start, end := w.StartDate, w.EndDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	if err := checkWeekDates(start, end); err != nil {
		return err
	}

	if input.WeekNumber != 0 {
		w.WeekNumber = input.WeekNumber
	}
	if input.Title != "" {
		w.Title = input.Title
	}
	if input.Description != "" {
		w.Description = input.Description
	}
	w.StartDate, w.EndDate = start, end
	if input.IsActive != nil {
		w.IsActive = *input.IsActive
	}
	touch(c)
	return nil
}

// DeleteWeek removes the week together with its lectures and assignments.
func (s *ContentStore) DeleteWeek(courseID, weekID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[courseID]
	if !ok {
		return s.missing("course", courseID)
	}
	for i := range c.Weeks {
		if c.Weeks[i].ID == weekID {
			c.Weeks = append(c.Weeks[:i], c.Weeks[i+1:]...)
			touch(c)
			return nil
		}
	}
	return s.missing("week", weekID)
}

func (s *ContentStore) CreateLecture(courseID, weekID string, data models.Lecture) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, w, err := s.locateWeekStrict(courseID, weekID)
	if err != nil {
		return "", err
	}

	data.ID = uuid.NewString()
	data.WeekID = weekID
	if data.Resources == nil {
		data.Resources = []string{}
	}
	if data.Activities == nil {
		data.Activities = []string{}
	}
	if data.Order == 0 {
		data.Order = len(w.Lectures) + 1
	}

	w.Lectures = append(w.Lectures, data)
	touch(c)
	return data.ID, nil
}

type LectureUpdate struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VideoURL    string   `json:"video_url"`
	Duration    int      `json:"duration"`
	Order       int      `json:"order"`
	IsPublished *bool    `json:"is_published"`
	Resources   []string `json:"resources"`
	Activities  []string `json:"activities"`
}

func (s *ContentStore) UpdateLecture(courseID, weekID, lectureID string, input LectureUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, w, err := s.locateWeek(courseID, weekID)
	if err != nil || w == nil {
		return err
	}
	for i := range w.Lectures {
		l := &w.Lectures[i]
		if l.ID != lectureID {
			continue
		}
		if input.Title != "" {
			l.Title = input.Title
		}
		if input.Description != "" {
			l.Description = input.Description
		}
		if input.VideoURL != "" {
			l.VideoURL = input.VideoURL
		}
		if input.Duration > 0 {
			l.Duration = input.Duration
		}
		if input.Order > 0 {
			l.Order = input.Order
		}
		if input.IsPublished != nil {
			l.IsPublished = *input.IsPublished
		}
		if input.Resources != nil {
			l.Resources = input.Resources
		}
		if input.Activities != nil {
			l.Activities = input.Activities
		}
		touch(c)
		return nil
	}
	return s.missing("lecture", lectureID)
}

func (s *ContentStore) DeleteLecture(courseID, weekID, lectureID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, w, err := s.locateWeek(courseID, weekID)
	if err != nil || w == nil {
		return err
	}
	for i := range w.Lectures {
		if w.Lectures[i].ID == lectureID {
			w.Lectures = append(w.Lectures[:i], w.Lectures[i+1:]...)
			touch(c)
			return nil
		}
	}
	return s.missing("lecture", lectureID)
}

func (s *ContentStore) CreateAssignment(courseID, weekID string, data models.Assignment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, w, err := s.locateWeekStrict(courseID, weekID)
	if err != nil {
		return "", err
	}

	data.ID = uuid.NewString()
	data.WeekID = weekID
	if data.Questions == nil {
		data.Questions = []models.Question{}
	}

	w.Assignments = append(w.Assignments, data)
	touch(c)
	return data.ID, nil
}

type AssignmentUpdate struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	TotalPoints int               `json:"total_points"`
	DueDate     *time.Time        `json:"due_date"`
	TimeLimit   *int              `json:"time_limit"`
	Attempts    int               `json:"attempts"`
	IsPublished *bool             `json:"is_published"`
	Questions   []models.Question `json:"questions"`
}

func (s *ContentStore) UpdateAssignment(courseID, weekID, assignmentID string, input AssignmentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, w, err := s.locateWeek(courseID, weekID)
	if err != nil || w == nil {
		return err
	}
	for i := range w.Assignments {
		a := &w.Assignments[i]
		if a.ID != assignmentID {
			continue
		}
		if input.Title != "" {
			a.Title = input.Title
		}
		if input.Description != "" {
			a.Description = input.Description
		}
		if input.Type != "" {
			a.Type = input.Type
		}
		if input.TotalPoints > 0 {
			a.TotalPoints = input.TotalPoints
		}
		if input.DueDate != nil {
			a.DueDate = *input.DueDate
		}
		if input.TimeLimit != nil {
			a.TimeLimit = *input.TimeLimit
		}
		if input.Attempts > 0 {
			a.Attempts = input.Attempts
		}
		if input.IsPublished != nil {
			a.IsPublished = *input.IsPublished
		}
		if input.Questions != nil {
			a.Questions = input.Questions
		}
		touch(c)
		return nil
	}
	return s.missing("assignment", assignmentID)
}

func (s *ContentStore) DeleteAssignment(courseID, weekID, assignmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, w, err := s.locateWeek(courseID, weekID)
	if err != nil || w == nil {
		return err
	}
	for i := range w.Assignments {
		if w.Assignments[i].ID == assignmentID {
			w.Assignments = append(w.Assignments[:i], w.Assignments[i+1:]...)
			touch(c)
			return nil
		}
	}
	return s.missing("assignment", assignmentID)
}

// FindLecture searches the whole hierarchy for a lecture id. Used by the quiz
// layer to verify the lecture a quiz is attached to.
func (s *ContentStore) FindLecture(lectureID string) (models.Lecture, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.courses {
		for i := range c.Weeks {
			for _, l := range c.Weeks[i].Lectures {
				if l.ID == lectureID {
					return l, true
				}
			}
		}
	}
	return models.Lecture{}, false
}

// Counts reports hierarchy totals for the platform overview.
func (s *ContentStore) Counts() (courses, weeks, lectures int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.courses {
		weeks += len(c.Weeks)
		for i := range c.Weeks {
			lectures += len(c.Weeks[i].Lectures)
		}
	}
	return len(s.courses), weeks, lectures
}

// locateWeek resolves (courseID, weekID) honoring lenient mode: a missing id
// yields (nil, nil, nil) so callers can no-op.
func (s *ContentStore) locateWeek(courseID, weekID string) (*models.Course, *models.Week, error) {
	c, ok := s.byID[courseID]
	if !ok {
		return nil, nil, s.missing("course", courseID)
	}
	for i := range c.Weeks {
		if c.Weeks[i].ID == weekID {
			return c, &c.Weeks[i], nil
		}
	}
	return nil, nil, s.missing("week", weekID)
}

// locateWeekStrict always errors on a missing id, regardless of mode.
func (s *ContentStore) locateWeekStrict(courseID, weekID string) (*models.Course, *models.Week, error) {
	c, ok := s.byID[courseID]
	if !ok {
		return nil, nil, &models.NotFoundError{Resource: "course", ID: courseID}
	}
	for i := range c.Weeks {
		if c.Weeks[i].ID == weekID {
			return c, &c.Weeks[i], nil
		}
	}
	return nil, nil, &models.NotFoundError{Resource: "week", ID: weekID}
}

func checkWeekDates(start, end time.Time) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return &models.ValidationError{Field: "end_date", Message: "must not be before start_date"}
	}
	return nil
}

func cloneCourse(c *models.Course) models.Course {
	out := *c
	out.Weeks = make([]models.Week, 0, len(c.Weeks))
	for i := range c.Weeks {
		out.Weeks = append(out.Weeks, cloneWeek(&c.Weeks[i]))
	}
	return out
}

func cloneWeek(w *models.Week) models.Week {
	out := *w
	out.Lectures = append([]models.Lecture{}, w.Lectures...)
	out.Assignments = append([]models.Assignment{}, w.Assignments...)
	return out
}
