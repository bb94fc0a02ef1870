package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/adapter/http/mapper"
	"taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
	"taskdeck/pkg/apierrors"
)

type AssistantHandler struct {
	gateway ports.AssistantGateway
}

func NewAssistantHandler(gateway ports.AssistantGateway) *AssistantHandler {
	return &AssistantHandler{gateway: gateway}
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.AssistantChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	history := make([]domain.AssistantMessage, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, domain.AssistantMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := h.gateway.Send(c.Request.Context(), req.Message, history)
	if err != nil {
		zap.L().Error("assistant request failed", zap.Error(err))
		c.JSON(
			http.StatusBadGateway,
			apierrors.CreateError(http.StatusBadGateway, apierrors.MsgAssistantUnavailable, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToAssistantResponseItem(resp))
}

// Execute applies an action the user confirmed in the chat flow.
func (h *AssistantHandler) Execute(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.AssistantExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	if err := h.gateway.Execute(c.Request.Context(), mapper.ToAssistantResponse(req)); err != nil {
		zap.L().Error("assistant action failed", zap.String("action", req.Action), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}
