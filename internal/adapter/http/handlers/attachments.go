package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/adapter/http/mapper"
	"taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
	"taskdeck/pkg/apierrors"
)

type AttachmentHandler struct {
	manager  ports.AttachmentManager
	sessions ports.SessionManager
}

func NewAttachmentHandler(manager ports.AttachmentManager, sessions ports.SessionManager) *AttachmentHandler {
	return &AttachmentHandler{manager: manager, sessions: sessions}
}

// UploadAttachments accepts a multipart batch under the "files" field.
// Files whose URL the task already carries are skipped; a partial batch is
// persisted and returned even when some files fail.
func (h *AttachmentHandler) UploadAttachments(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	session := h.sessions.Session()
	if session == nil {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgNotAuthenticated, lang),
		)
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	files := make([]domain.FileUpload, 0, len(form.File["files"]))
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
			)
			return
		}
		defer func() { _ = f.Close() }()
		files = append(files, domain.FileUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     f,
		})
	}

	attached, err := h.manager.UploadAll(c.Request.Context(), taskID, session.UserID, files)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}
		if len(attached) == 0 {
			zap.L().Error("attachment batch failed", zap.String("task_id", taskID), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUploadAttachment, lang),
			)
			return
		}
		// Partial success stays visible.
		zap.L().Warn("attachment batch partially failed", zap.String("task_id", taskID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, mapper.ToAttachmentItems(attached))
}

// DeleteAttachment removes the metadata record and then the blob. The url
// query parameter locates the blob in object storage.
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID := strings.TrimSpace(c.Param("id"))
	attachmentID := strings.TrimSpace(c.Param("attachmentId"))
	url := c.Query("url")
	if taskID == "" || attachmentID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	if err := h.manager.Delete(c.Request.Context(), taskID, attachmentID, url); err != nil {
		var deleteErr *domain.AttachmentDeleteError
		if errors.As(err, &deleteErr) && deleteErr.MetadataDeleted {
			// Blob left orphaned but the attachment itself is gone.
			zap.L().Warn("attachment blob not removed", zap.String("attachment_id", attachmentID), zap.Error(err))
			c.Status(http.StatusNoContent)
			return
		}
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}
		zap.L().Error("failed to delete attachment", zap.String("attachment_id", attachmentID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteAttachment, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}
