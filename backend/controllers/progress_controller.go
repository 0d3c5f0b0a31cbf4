package controllers

import (
	"github.com/gofiber/fiber/v2"

	"mathlearn/backend/config"
	"mathlearn/backend/models"
	"mathlearn/backend/store"
	"mathlearn/backend/utils"
)

type ProgressController struct {
	Progress *store.ProgressStore
	Content  *store.ContentStore
	Cfg      *config.Config
}

func NewProgressController(progress *store.ProgressStore, content *store.ContentStore, cfg *config.Config) *ProgressController {
	return &ProgressController{Progress: progress, Content: content, Cfg: cfg}
}

// UpdateProgress merges a partial progress write for the caller on a course.
// The record is created on first write.
func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}

	var input models.ProgressUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	pc.Progress.UpdateStudentProgress(userID, c.Params("courseId"), input)
	progress, _ := pc.Progress.GetStudentProgress(userID, c.Params("courseId"))
	return c.JSON(progress)
}

func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}

	progress, ok := pc.Progress.GetStudentProgress(userID, c.Params("courseId"))
	if !ok {
		return utils.DomainError(c, &models.NotFoundError{Resource: "progress", ID: c.Params("courseId")})
	}
	return c.JSON(progress)
}

func (pc *ProgressController) SaveVideoProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}

	var input struct {
		Position  float64 `json:"position" validate:"gte=0"`
		Duration  float64 `json:"duration" validate:"gte=0"`
		Completed bool    `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.DomainError(c, err)
	}

	pc.Progress.SaveVideoProgress(models.VideoProgress{
		UserID:    userID,
		LectureID: c.Params("lectureId"),
		Position:  input.Position,
		Duration:  input.Duration,
		Completed: input.Completed,
	})
	return c.JSON(fiber.Map{"message": "Video progress saved"})
}

func (pc *ProgressController) GetVideoProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}

	vp, ok := pc.Progress.GetVideoProgress(userID, c.Params("lectureId"))
	if !ok {
		return utils.DomainError(c, &models.NotFoundError{Resource: "video progress", ID: c.Params("lectureId")})
	}
	return c.JSON(vp)
}

func (pc *ProgressController) GetAllVideoProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}
	return c.JSON(pc.Progress.GetAllVideoProgress(userID))
}

// CreateNotification pushes a notification to a user. Admin only (enforced
// by route middleware).
func (pc *ProgressController) CreateNotification(c *fiber.Ctx) error {
	var input struct {
		UserID  string `json:"user_id" validate:"required"`
		Title   string `json:"title" validate:"required"`
		Message string `json:"message"`
		Type    string `json:"type" validate:"omitempty,oneof=info assignment quiz announcement"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.DomainError(c, err)
	}
	if input.Type == "" {
		input.Type = "info"
	}

	id := pc.Progress.CreateNotification(models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    input.Type,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (pc *ProgressController) GetNotifications(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}
	return c.JSON(pc.Progress.GetUserNotifications(userID))
}

// GetOverview reports live platform counters for the admin dashboard.
func (pc *ProgressController) GetOverview(c *fiber.Ctx) error {
	courses, weeks, lectures := pc.Content.Counts()
	students, avg := pc.Progress.Overview()
	return c.JSON(models.PlatformOverview{
		TotalCourses:    courses,
		TotalWeeks:      weeks,
		TotalLectures:   lectures,
		ActiveStudents:  students,
		AverageProgress: avg,
	})
}
