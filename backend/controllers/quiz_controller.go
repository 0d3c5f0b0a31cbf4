package controllers

import (
	"github.com/gofiber/fiber/v2"

	"mathlearn/backend/config"
	"mathlearn/backend/models"
	"mathlearn/backend/quiz"
	"mathlearn/backend/store"
	"mathlearn/backend/utils"
)

type QuizController struct {
	Quizzes  *store.QuizStore
	Content  *store.ContentStore
	Sessions *quiz.Manager
	Cfg      *config.Config
}

func NewQuizController(quizzes *store.QuizStore, content *store.ContentStore, sessions *quiz.Manager, cfg *config.Config) *QuizController {
	return &QuizController{Quizzes: quizzes, Content: content, Sessions: sessions, Cfg: cfg}
}

// SaveQuiz attaches a quiz definition to a lecture, replacing any previous
// one. The lecture must exist in the content hierarchy.
func (qc *QuizController) SaveQuiz(c *fiber.Ctx) error {
	lectureID := c.Params("lectureId")
	if _, ok := qc.Content.FindLecture(lectureID); !ok {
		return utils.DomainError(c, &models.NotFoundError{Resource: "lecture", ID: lectureID})
	}

	var input models.Quiz
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.DomainError(c, &models.ValidationError{Field: "title", Message: "required"})
	}

	qc.Quizzes.SaveQuiz(lectureID, input)
	return c.JSON(fiber.Map{"message": "Quiz saved"})
}

func (qc *QuizController) GetQuiz(c *fiber.Ctx) error {
	lectureID := c.Params("lectureId")
	q, ok := qc.Quizzes.GetQuiz(lectureID)
	if !ok {
		return utils.DomainError(c, &models.NotFoundError{Resource: "quiz", ID: lectureID})
	}

	role, err := utils.ExtractRoleFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}
	if role != models.RoleAdmin {
		q.Questions = sanitizeQuestions(q.Questions)
	}
	return c.JSON(q)
}

func (qc *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	qc.Quizzes.DeleteQuiz(c.Params("lectureId"))
	return c.JSON(fiber.Map{"message": "Quiz deleted"})
}

// StartSession opens a quiz-taking session for the caller. Refused when the
// quiz caps attempts and the caller has used them all.
func (qc *QuizController) StartSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}
	lectureID := c.Params("lectureId")

	q, ok := qc.Quizzes.GetQuiz(lectureID)
	if !ok {
		return utils.DomainError(c, &models.NotFoundError{Resource: "quiz", ID: lectureID})
	}
	if q.MaxAttempts > 0 && len(qc.Quizzes.GetAttempts(userID, lectureID)) >= q.MaxAttempts {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "No attempts left",
		})
	}

	sess, err := qc.Sessions.Start(&q, userID, lectureID, func(attempt models.QuizAttempt, _ *models.QuizResult) {
		qc.Quizzes.SaveAttempt(attempt)
	})
	if err != nil {
		return utils.DomainError(c, err)
	}

	question, index := sess.CurrentQuestion()
	return c.JSON(fiber.Map{
		"state":          sess.State(),
		"question_count": len(q.Questions),
		"remaining":      sess.Remaining(),
		"passing_score":  q.EffectivePassingScore(),
		"question":       sanitizeQuestion(question),
		"index":          index,
	})
}

func (qc *QuizController) SessionStatus(c *fiber.Ctx) error {
	sess, err := qc.session(c)
	if err != nil {
		return utils.DomainError(c, err)
	}

	question, index := sess.CurrentQuestion()
	return c.JSON(fiber.Map{
		"state":      sess.State(),
		"remaining":  sess.Remaining(),
		"answered":   sess.AnsweredCount(),
		"can_submit": sess.CanSubmit(),
		"question":   sanitizeQuestion(question),
		"index":      index,
	})
}

func (qc *QuizController) AnswerQuestion(c *fiber.Ctx) error {
	sess, err := qc.session(c)
	if err != nil {
		return utils.DomainError(c, err)
	}

	var input struct {
		QuestionID string `json:"question_id"`
		Answer     any    `json:"answer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := sess.Answer(input.QuestionID, input.Answer); err != nil {
		return utils.DomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"answered":   sess.AnsweredCount(),
		"can_submit": sess.CanSubmit(),
	})
}

func (qc *QuizController) Navigate(c *fiber.Ctx) error {
	sess, err := qc.session(c)
	if err != nil {
		return utils.DomainError(c, err)
	}

	var input struct {
		Action string `json:"action"` // next, previous, jump
		Index  int    `json:"index"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var index int
	switch input.Action {
	case "next":
		index, err = sess.Next()
	case "previous":
		index, err = sess.Previous()
	case "jump":
		index, err = sess.JumpTo(input.Index)
	default:
		return utils.BadRequest(c, "Unknown navigation action")
	}
	if err != nil {
		return utils.DomainError(c, err)
	}

	question, _ := sess.CurrentQuestion()
	return c.JSON(fiber.Map{
		"index":    index,
		"question": sanitizeQuestion(question),
	})
}

func (qc *QuizController) SubmitSession(c *fiber.Ctx) error {
	sess, err := qc.session(c)
	if err != nil {
		return utils.DomainError(c, err)
	}

	result, err := sess.Submit()
	if err != nil {
		return utils.DomainError(c, err)
	}

	resp := fiber.Map{
		"score":  result.Attempt.Score,
		"passed": result.Attempt.Passed,
	}
	if result.Quiz.ShowFeedback {
		resp["feedback"] = result.Feedback
	}
	return c.JSON(resp)
}

func (qc *QuizController) GetAttempts(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}
	return c.JSON(qc.Quizzes.GetAttempts(userID, c.Params("lectureId")))
}

func (qc *QuizController) GetBestAttempt(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c)
	}
	best, ok := qc.Quizzes.GetBestAttempt(userID, c.Params("lectureId"))
	if !ok {
		return utils.DomainError(c, &models.NotFoundError{Resource: "attempt", ID: c.Params("lectureId")})
	}
	return c.JSON(best)
}

func (qc *QuizController) GetAnalytics(c *fiber.Ctx) error {
	return c.JSON(qc.Quizzes.Analytics(c.Params("lectureId")))
}

func (qc *QuizController) session(c *fiber.Ctx) (*quiz.Session, error) {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return nil, err
	}
	lectureID := c.Params("lectureId")
	sess, ok := qc.Sessions.Get(userID, lectureID)
	if !ok {
		return nil, &models.NotFoundError{Resource: "quiz session", ID: lectureID}
	}
	return sess, nil
}

// sanitizeQuestions strips grading fields before handing questions to a
// quiz taker.
func sanitizeQuestions(questions []models.Question) []models.Question {
	out := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		out = append(out, sanitizeQuestion(q))
	}
	return out
}

func sanitizeQuestion(q models.Question) models.Question {
	q.CorrectAnswer = nil
	q.Explanation = ""
	return q
}
