package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/adapter/http/mapper"
	"taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/adapter/http/validation"
	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
	"taskdeck/pkg/apierrors"
)

type TaskHandler struct {
	engine ports.SyncEngine
}

func NewTaskHandler(engine ports.SyncEngine) *TaskHandler {
	return &TaskHandler{engine: engine}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.ToTaskItems(h.engine.Tasks()))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.engine.CreateTask(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgNotAuthenticated, lang),
			)
			return
		}
		zap.L().Error("failed to create task", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWithJSON(&raw); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	if err := h.engine.UpdateTask(c.Request.Context(), id, input); err != nil {
		h.writeTaskMutationError(c, lang, id, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	if err := h.engine.DeleteTask(c.Request.Context(), id); err != nil {
		h.writeTaskMutationError(c, lang, id, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusNoContent)
}

// CycleTaskStatus advances a task along todo -> inprogress -> completed ->
// cancelled -> todo.
func (h *TaskHandler) CycleTaskStatus(c *gin.Context) {
	lang := middleware.GetLang(c)

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	var current *domain.Task
	for _, t := range h.engine.Tasks() {
		if t.ID == id {
			task := t
			current = &task
			break
		}
	}
	if current == nil {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
		return
	}

	next := domain.NextStatus(current.Status)
	input := domain.UpdateTaskInput{Status: &next}
	if err := h.engine.UpdateTask(c.Request.Context(), id, input); err != nil {
		h.writeTaskMutationError(c, lang, id, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(next)})
}

func (h *TaskHandler) writeTaskMutationError(c *gin.Context, lang, id string, err error, failMsg string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrNotAuthenticated):
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgNotAuthenticated, lang),
		)
	default:
		zap.L().Error("task mutation failed", zap.String("task_id", id), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failMsg, lang),
		)
	}
}
