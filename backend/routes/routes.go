package routes

import (
	"github.com/gofiber/fiber/v2"

	"mathlearn/backend/config"
	"mathlearn/backend/controllers"
	"mathlearn/backend/middleware"
	"mathlearn/backend/quiz"
	"mathlearn/backend/store"
)

func SetupRoutes(app *fiber.App, users store.UserRepository, content *store.ContentStore, quizzes *store.QuizStore, progress *store.ProgressStore, sessions *quiz.Manager, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(users, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(cfg)

	app.Get("/api/user/profile", authMiddleware, authController.GetProfile)

	// Course content routes
	contentController := controllers.NewContentController(content, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", contentController.GetCourses)
	courses.Get("/:id", contentController.GetCourseDetails)
	courses.Get("/:id/weeks", contentController.GetWeeks)

	adminCourses := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	adminCourses.Post("/", contentController.CreateCourse)
	adminCourses.Put("/:id", contentController.UpdateCourse)
	adminCourses.Delete("/:id", contentController.DeleteCourse)
	adminCourses.Post("/:id/weeks", contentController.CreateWeek)
	adminCourses.Put("/:id/weeks/:weekId", contentController.UpdateWeek)
	adminCourses.Delete("/:id/weeks/:weekId", contentController.DeleteWeek)
	adminCourses.Post("/:id/weeks/:weekId/lectures", contentController.CreateLecture)
	adminCourses.Put("/:id/weeks/:weekId/lectures/:lectureId", contentController.UpdateLecture)
	adminCourses.Delete("/:id/weeks/:weekId/lectures/:lectureId", contentController.DeleteLecture)
	adminCourses.Post("/:id/weeks/:weekId/assignments", contentController.CreateAssignment)
	adminCourses.Put("/:id/weeks/:weekId/assignments/:assignmentId", contentController.UpdateAssignment)
	adminCourses.Delete("/:id/weeks/:weekId/assignments/:assignmentId", contentController.DeleteAssignment)

	// Quiz routes
	quizController := controllers.NewQuizController(quizzes, content, sessions, cfg)
	quizzesGroup := app.Group("/api/lectures/:lectureId/quiz", authMiddleware)
	quizzesGroup.Get("/", quizController.GetQuiz)
	quizzesGroup.Post("/session", quizController.StartSession)
	quizzesGroup.Get("/session", quizController.SessionStatus)
	quizzesGroup.Post("/session/answer", quizController.AnswerQuestion)
	quizzesGroup.Post("/session/navigate", quizController.Navigate)
	quizzesGroup.Post("/session/submit", quizController.SubmitSession)
	quizzesGroup.Get("/attempts", quizController.GetAttempts)
	quizzesGroup.Get("/attempts/best", quizController.GetBestAttempt)
	quizzesGroup.Put("/", adminMiddleware, quizController.SaveQuiz)
	quizzesGroup.Delete("/", adminMiddleware, quizController.DeleteQuiz)
	quizzesGroup.Get("/analytics", adminMiddleware, quizController.GetAnalytics)

	// Progress routes
	progressController := controllers.NewProgressController(progress, content, cfg)
	app.Get("/api/progress/:courseId", authMiddleware, progressController.GetProgress)
	app.Put("/api/progress/:courseId", authMiddleware, progressController.UpdateProgress)
	app.Get("/api/video-progress", authMiddleware, progressController.GetAllVideoProgress)
	app.Get("/api/video-progress/:lectureId", authMiddleware, progressController.GetVideoProgress)
	app.Put("/api/video-progress/:lectureId", authMiddleware, progressController.SaveVideoProgress)

	// Notification routes
	app.Get("/api/notifications", authMiddleware, progressController.GetNotifications)
	app.Post("/api/admin/notifications", authMiddleware, adminMiddleware, progressController.CreateNotification)

	// Overview routes
	app.Get("/api/admin/overview", authMiddleware, adminMiddleware, progressController.GetOverview)
}
