package models

import "time"

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   string    `json:"created_by"`
	Weeks       []Week    `json:"weeks"`
}

type Week struct {
	ID          string       `json:"id"`
	CourseID    string       `json:"course_id"`
	WeekNumber  int          `json:"week_number"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	Lectures    []Lecture    `json:"lectures"`
	Assignments []Assignment `json:"assignments"`
	IsActive    bool         `json:"is_active"`
}

type Lecture struct {
	ID          string   `json:"id"`
	WeekID      string   `json:"week_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VideoURL    string   `json:"video_url,omitempty"`
	Duration    int      `json:"duration"` // minutes
	Order       int      `json:"order"`
	IsPublished bool     `json:"is_published"`
	Resources   []string `json:"resources"`
	Activities  []string `json:"activities"`
}

type Assignment struct {
	ID          string     `json:"id"`
	WeekID      string     `json:"week_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"` // homework, quiz, project
	TotalPoints int        `json:"total_points"`
	DueDate     time.Time  `json:"due_date"`
	TimeLimit   int        `json:"time_limit"` // minutes, 0 = unlimited
	Attempts    int        `json:"attempts"`
	IsPublished bool       `json:"is_published"`
	Questions   []Question `json:"questions"`
}
