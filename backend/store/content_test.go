package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathlearn/backend/models"
)

func newCourseWithWeek(t *testing.T, s *ContentStore) (courseID, weekID string) {
	t.Helper()
	courseID, err := s.CreateCourse(models.Course{Title: "Algebra I", CreatedBy: "admin-1"})
	require.NoError(t, err)
	weekID, err = s.CreateWeek(courseID, models.Week{WeekNumber: 1, Title: "Linear equations"})
	require.NoError(t, err)
	return courseID, weekID
}

func TestCreateCourseInitializesWeeks(t *testing.T) {
	s := NewContentStore(false)

	id, err := s.CreateCourse(models.Course{Title: "Algebra I"})
	require.NoError(t, err)

	c, err := s.GetCourse(id)
	require.NoError(t, err)
	assert.NotNil(t, c.Weeks)
	assert.Empty(t, c.Weeks)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
}

func TestGetCoursesInsertionOrder(t *testing.T) {
	s := NewContentStore(false)

	first, _ := s.CreateCourse(models.Course{Title: "A"})
	second, _ := s.CreateCourse(models.Course{Title: "B"})
	third, _ := s.CreateCourse(models.Course{Title: "C"})

	courses := s.GetCourses()
	require.Len(t, courses, 3)
	assert.Equal(t, []string{first, second, third}, []string{courses[0].ID, courses[1].ID, courses[2].ID})
}

func TestDescendantMutationsTouchCourse(t *testing.T) {
	s := NewContentStore(false)
	courseID, weekID := newCourseWithWeek(t, s)

	prev := func() time.Time {
		c, err := s.GetCourse(courseID)
		require.NoError(t, err)
		return c.UpdatedAt
	}

	before := prev()
	lectureID, err := s.CreateLecture(courseID, weekID, models.Lecture{Title: "Intro"})
	require.NoError(t, err)
	afterCreate := prev()
	assert.True(t, afterCreate.After(before), "lecture create must advance course updated_at")

	require.NoError(t, s.UpdateLecture(courseID, weekID, lectureID, LectureUpdate{Title: "Intro v2"}))
	afterUpdate := prev()
	assert.True(t, afterUpdate.After(afterCreate), "lecture update must advance course updated_at")

	require.NoError(t, s.DeleteLecture(courseID, weekID, lectureID))
	afterDelete := prev()
	assert.True(t, afterDelete.After(afterUpdate), "lecture delete must advance course updated_at")
}

func TestUpdatedAtStrictlyIncreases(t *testing.T) {
	s := NewContentStore(false)
	courseID, _ := newCourseWithWeek(t, s)

	// back-to-back mutations faster than clock resolution still advance
	seen := make([]time.Time, 0, 10)
	for i := 0; i < 10; i++ {
		require.NoError(t, s.UpdateCourse(courseID, CourseUpdate{Description: "d"}))
		c, err := s.GetCourse(courseID)
		require.NoError(t, err)
		seen = append(seen, c.UpdatedAt)
	}
	for i := 1; i < len(seen); i++ {
		assert.True(t, seen[i].After(seen[i-1]))
	}
}

func TestDeleteCourseCascades(t *testing.T) {
	s := NewContentStore(false)
	courseID, weekID := newCourseWithWeek(t, s)
	lectureID, err := s.CreateLecture(courseID, weekID, models.Lecture{Title: "Intro"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCourse(courseID))

	_, err = s.GetCourse(courseID)
	assert.True(t, models.IsNotFound(err))
	_, ok := s.FindLecture(lectureID)
	assert.False(t, ok, "lecture must not survive its course")

	courses, weeks, lectures := s.Counts()
	assert.Zero(t, courses)
	assert.Zero(t, weeks)
	assert.Zero(t, lectures)
}

func TestDeleteWeekCascades(t *testing.T) {
	s := NewContentStore(false)
	courseID, weekID := newCourseWithWeek(t, s)
	lectureID, err := s.CreateLecture(courseID, weekID, models.Lecture{Title: "Intro"})
	require.NoError(t, err)
	_, err = s.CreateAssignment(courseID, weekID, models.Assignment{Title: "HW 1", Type: "homework", TotalPoints: 10})
	require.NoError(t, err)

	require.NoError(t, s.DeleteWeek(courseID, weekID))

	weeks, err := s.GetWeeks(courseID)
	require.NoError(t, err)
	assert.Empty(t, weeks)
	_, ok := s.FindLecture(lectureID)
	assert.False(t, ok)
}

func TestLenientMissingIDsNoOp(t *testing.T) {
	s := NewContentStore(false)
	courseID, weekID := newCourseWithWeek(t, s)

	assert.NoError(t, s.UpdateCourse("nope", CourseUpdate{Title: "x"}))
	assert.NoError(t, s.DeleteCourse("nope"))
	assert.NoError(t, s.UpdateWeek(courseID, "nope", WeekUpdate{Title: "x"}))
	assert.NoError(t, s.DeleteLecture(courseID, weekID, "nope"))
	assert.NoError(t, s.UpdateAssignment("nope", weekID, "nope", AssignmentUpdate{Title: "x"}))

	// nothing was created or modified as a side effect
	c, err := s.GetCourse(courseID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra I", c.Title)
	assert.Len(t, c.Weeks, 1)
}

func TestStrictMissingIDsError(t *testing.T) {
	s := NewContentStore(true)
	courseID, weekID := newCourseWithWeek(t, s)

	assert.True(t, models.IsNotFound(s.UpdateCourse("nope", CourseUpdate{Title: "x"})))
	assert.True(t, models.IsNotFound(s.DeleteCourse("nope")))
	assert.True(t, models.IsNotFound(s.UpdateWeek(courseID, "nope", WeekUpdate{Title: "x"})))
	assert.True(t, models.IsNotFound(s.DeleteLecture(courseID, weekID, "nope")))
}

func TestCreateRequiresParentEvenWhenLenient(t *testing.T) {
	s := NewContentStore(false)

	_, err := s.CreateWeek("nope", models.Week{Title: "w"})
	assert.True(t, models.IsNotFound(err))

	courseID, err := s.CreateCourse(models.Course{Title: "A"})
	require.NoError(t, err)
	_, err = s.CreateLecture(courseID, "nope", models.Lecture{Title: "l"})
	assert.True(t, models.IsNotFound(err))
	_, err = s.CreateAssignment(courseID, "nope", models.Assignment{Title: "a"})
	assert.True(t, models.IsNotFound(err))
}

func TestWeekDateValidation(t *testing.T) {
	s := NewContentStore(false)
	courseID, err := s.CreateCourse(models.Course{Title: "A"})
	require.NoError(t, err)

	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err = s.CreateWeek(courseID, models.Week{Title: "w", StartDate: start, EndDate: end})
	assert.True(t, models.IsValidation(err))

	weekID, err := s.CreateWeek(courseID, models.Week{Title: "w", StartDate: start, EndDate: start.AddDate(0, 0, 6)})
	require.NoError(t, err)

	// moving end before the (unchanged) start is rejected too
	bad := start.AddDate(0, 0, -2)
	err = s.UpdateWeek(courseID, weekID, WeekUpdate{EndDate: &bad})
	assert.True(t, models.IsValidation(err))
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	s := NewContentStore(false)
	courseID, weekID := newCourseWithWeek(t, s)
	lectureID, err := s.CreateLecture(courseID, weekID, models.Lecture{
		Title:    "Intro",
		VideoURL: "https://youtu.be/riXcZT2ICjA",
		Duration: 30,
	})
	require.NoError(t, err)

	require.NoError(t, s.UpdateLecture(courseID, weekID, lectureID, LectureUpdate{Title: "Intro v2"}))

	l, ok := s.FindLecture(lectureID)
	require.True(t, ok)
	assert.Equal(t, "Intro v2", l.Title)
	assert.Equal(t, "https://youtu.be/riXcZT2ICjA", l.VideoURL)
	assert.Equal(t, 30, l.Duration)
}

func TestListingsAreCopies(t *testing.T) {
	s := NewContentStore(false)
	courseID, weekID := newCourseWithWeek(t, s)
	_, err := s.CreateLecture(courseID, weekID, models.Lecture{Title: "Intro"})
	require.NoError(t, err)

	c, err := s.GetCourse(courseID)
	require.NoError(t, err)
	c.Weeks[0].Lectures[0].Title = "mutated"

	fresh, err := s.GetCourse(courseID)
	require.NoError(t, err)
	assert.Equal(t, "Intro", fresh.Weeks[0].Lectures[0].Title)
}
