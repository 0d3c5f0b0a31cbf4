package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"mathlearn/backend/config"
	"mathlearn/backend/models"
	"mathlearn/backend/store"
	"mathlearn/backend/utils"
)

type ContentController struct {
	Content *store.ContentStore
	Cfg     *config.Config
}

func NewContentController(content *store.ContentStore, cfg *config.Config) *ContentController {
	return &ContentController{Content: content, Cfg: cfg}
}

func (cc *ContentController) CreateCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}

	var input struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return utils.DomainError(c, err)
	}

	id, err := cc.Content.CreateCourse(models.Course{
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   userID,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}

	course, _ := cc.Content.GetCourse(id)
	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (cc *ContentController) GetCourses(c *fiber.Ctx) error {
	return c.JSON(cc.Content.GetCourses())
}

func (cc *ContentController) GetCourseDetails(c *fiber.Ctx) error {
	course, err := cc.Content.GetCourse(c.Params("id"))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"course": course})
}

func (cc *ContentController) UpdateCourse(c *fiber.Ctx) error {
	var input store.CourseUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := cc.Content.UpdateCourse(c.Params("id"), input); err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Course updated"})
}

func (cc *ContentController) DeleteCourse(c *fiber.Ctx) error {
	if err := cc.Content.DeleteCourse(c.Params("id")); err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Course deleted"})
}

func (cc *ContentController) CreateWeek(c *fiber.Ctx) error {
	var input struct {
		WeekNumber  int        `json:"week_number"`
		Title       string     `json:"title" validate:"required"`
		Description string     `json:"description"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		IsActive    bool       `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return utils.DomainError(c, err)
	}

	week := models.Week{
		WeekNumber:  input.WeekNumber,
		Title:       input.Title,
		Description: input.Description,
		IsActive:    input.IsActive,
	}
	if input.StartDate != nil {
		week.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		week.EndDate = *input.EndDate
	}

	id, err := cc.Content.CreateWeek(c.Params("id"), week)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Week created",
		"week_id": id,
	})
}

func (cc *ContentController) GetWeeks(c *fiber.Ctx) error {
	weeks, err := cc.Content.GetWeeks(c.Params("id"))
	if err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(weeks)
}

func (cc *ContentController) UpdateWeek(c *fiber.Ctx) error {
	var input store.WeekUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := cc.Content.UpdateWeek(c.Params("id"), c.Params("weekId"), input); err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Week updated"})
}

func (cc *ContentController) DeleteWeek(c *fiber.Ctx) error {
	if err := cc.Content.DeleteWeek(c.Params("id"), c.Params("weekId")); err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Week deleted"})
}

func (cc *ContentController) CreateLecture(c *fiber.Ctx) error {
	var input struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		VideoURL    string `json:"video_url" validate:"omitempty,youtube"`
		Duration    int    `json:"duration" validate:"gte=0"`
		Order       int    `json:"order" validate:"gte=0"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return utils.DomainError(c, err)
	}

	id, err := cc.Content.CreateLecture(c.Params("id"), c.Params("weekId"), models.Lecture{
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		Duration:    input.Duration,
		Order:       input.Order,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    "Lecture created",
		"lecture_id": id,
	})
}

func (cc *ContentController) UpdateLecture(c *fiber.Ctx) error {
	var input store.LectureUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.VideoURL != "" && !utils.ValidateYouTubeURL(input.VideoURL) {
		return utils.DomainError(c, &models.ValidationError{Field: "video_url", Message: "not a recognized video URL"})
	}
	if err := cc.Content.UpdateLecture(c.Params("id"), c.Params("weekId"), c.Params("lectureId"), input); err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lecture updated"})
}

func (cc *ContentController) DeleteLecture(c *fiber.Ctx) error {
	if err := cc.Content.DeleteLecture(c.Params("id"), c.Params("weekId"), c.Params("lectureId")); err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lecture deleted"})
}

func (cc *ContentController) CreateAssignment(c *fiber.Ctx) error {
	var input struct {
		Title       string            `json:"title" validate:"required"`
		Description string            `json:"description"`
		Type        string            `json:"type" validate:"required,oneof=homework quiz project"`
		TotalPoints int               `json:"total_points" validate:"gt=0"`
		DueDate     time.Time         `json:"due_date"`
		TimeLimit   int               `json:"time_limit" validate:"gte=0"`
		Attempts    int               `json:"attempts" validate:"gte=1"`
		Questions   []models.Question `json:"questions"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return utils.DomainError(c, err)
	}

	id, err := cc.Content.CreateAssignment(c.Params("id"), c.Params("weekId"), models.Assignment{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		TotalPoints: input.TotalPoints,
		DueDate:     input.DueDate,
		TimeLimit:   input.TimeLimit,
		Attempts:    input.Attempts,
		Questions:   input.Questions,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":       "Assignment created",
		"assignment_id": id,
	})
}

func (cc *ContentController) UpdateAssignment(c *fiber.Ctx) error {
	var input store.AssignmentUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := cc.Content.UpdateAssignment(c.Params("id"), c.Params("weekId"), c.Params("assignmentId"), input); err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Assignment updated"})
}

func (cc *ContentController) DeleteAssignment(c *fiber.Ctx) error {
	if err := cc.Content.DeleteAssignment(c.Params("id"), c.Params("weekId"), c.Params("assignmentId")); err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Assignment deleted"})
}
