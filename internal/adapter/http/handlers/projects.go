package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/adapter/http/mapper"
	"taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
	"taskdeck/pkg/apierrors"
)

type ProjectHandler struct {
	engine ports.SyncEngine
}

func NewProjectHandler(engine ports.SyncEngine) *ProjectHandler {
	return &ProjectHandler{engine: engine}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.ToProjectItems(h.engine.Projects()))
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidProjectPayload, lang),
		)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidProjectPayload, lang),
		)
		return
	}

	project, err := h.engine.CreateProject(c.Request.Context(), name, req.Color)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgNotAuthenticated, lang),
			)
			return
		}
		zap.L().Error("failed to create project", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateProject, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	lang := middleware.GetLang(c)

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	if err := h.engine.DeleteProject(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrProtectedProject):
			c.JSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgProtectedProject, lang),
			)
		case errors.Is(err, domain.ErrProjectNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgProjectNotFound, lang),
			)
		case errors.Is(err, domain.ErrNotAuthenticated):
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgNotAuthenticated, lang),
			)
		default:
			zap.L().Error("failed to delete project", zap.String("project_id", id), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteProject, lang),
			)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
