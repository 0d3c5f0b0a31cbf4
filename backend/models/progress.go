package models

import "time"

// StudentProgress is keyed by (UserID, CourseID).
type StudentProgress struct {
	UserID               string             `json:"user_id"`
	CourseID             string             `json:"course_id"`
	CompletedLectures    []string           `json:"completed_lectures"`
	CompletedAssignments []string           `json:"completed_assignments"`
	QuizScores           map[string]float64 `json:"quiz_scores"`
	OverallProgress      float64            `json:"overall_progress"`
	LastAccessed         time.Time          `json:"last_accessed"`
}

// ProgressUpdate carries the fields of a partial progress write. Nil fields
// are left untouched by the merge.
type ProgressUpdate struct {
	CompletedLectures    []string           `json:"completed_lectures,omitempty"`
	CompletedAssignments []string           `json:"completed_assignments,omitempty"`
	QuizScores           map[string]float64 `json:"quiz_scores,omitempty"`
	OverallProgress      *float64           `json:"overall_progress,omitempty"`
}

// VideoProgress is keyed by (UserID, LectureID).
type VideoProgress struct {
	UserID    string    `json:"user_id"`
	LectureID string    `json:"lecture_id"`
	Position  float64   `json:"position"` // seconds
	Duration  float64   `json:"duration"` // seconds
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // info, assignment, quiz, announcement
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// PlatformOverview is computed live from the stores.
type PlatformOverview struct {
	TotalCourses    int     `json:"total_courses"`
	TotalWeeks      int     `json:"total_weeks"`
	TotalLectures   int     `json:"total_lectures"`
	ActiveStudents  int     `json:"active_students"`
	AverageProgress float64 `json:"average_progress"`
}
