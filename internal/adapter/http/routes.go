package http

import (
	"taskdeck/internal/adapter/http/handlers"
	"taskdeck/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Task       *handlers.TaskHandler
	Project    *handlers.ProjectHandler
	Attachment *handlers.AttachmentHandler
	Reminder   *handlers.ReminderHandler
	Assistant  *handlers.AssistantHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.POST("/auth/signin", h.Auth.SignIn)
		api.POST("/auth/signout", h.Auth.SignOut)
		api.GET("/auth/session", h.Auth.GetSession)

		api.GET("/tasks", h.Task.ListTasks)
		api.POST("/tasks", h.Task.CreateTask)
		api.PATCH("/tasks/:id", h.Task.UpdateTask)
		api.DELETE("/tasks/:id", h.Task.DeleteTask)
		api.POST("/tasks/:id/cycle", h.Task.CycleTaskStatus)

		api.GET("/projects", h.Project.ListProjects)
		api.POST("/projects", h.Project.CreateProject)
		api.DELETE("/projects/:id", h.Project.DeleteProject)

		api.POST("/tasks/:id/attachments", h.Attachment.UploadAttachments)
		api.DELETE("/tasks/:id/attachments/:attachmentId", h.Attachment.DeleteAttachment)

		api.GET("/reminders", h.Reminder.GetState)
		api.POST("/reminders/stop", h.Reminder.StopAll)

		api.POST("/assistant", h.Assistant.Chat)
		api.POST("/assistant/execute", h.Assistant.Execute)
	}
}
