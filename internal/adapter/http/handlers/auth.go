package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
	"taskdeck/pkg/apierrors"
)

type AuthHandler struct {
	sessions ports.SessionManager
}

func NewAuthHandler(sessions ports.SessionManager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidAuthPayload, lang),
		)
		return
	}

	session, err := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Credentials were accepted when the session came back; only the
		// post-sign-in data load failed.
		var loadErr *domain.LoadError
		if errors.As(err, &loadErr) && session != nil {
			zap.L().Error("post sign-in load failed", zap.String("email", req.Email), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailLoadData, lang),
			)
			return
		}
		zap.L().Warn("sign in failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgFailSignIn, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.SessionItem{
		State:  string(h.sessions.State()),
		UserID: session.UserID,
		Email:  session.Email,
	})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	lang := middleware.GetLang(c)

	if err := h.sessions.SignOut(c.Request.Context()); err != nil {
		// Local state is already cleared; the stale remote session is the
		// only leftover.
		zap.L().Warn("remote sign out failed", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailSignOut, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) GetSession(c *gin.Context) {
	item := dto.SessionItem{State: string(h.sessions.State())}
	if session := h.sessions.Session(); session != nil {
		item.UserID = session.UserID
		item.Email = session.Email
	}
	c.JSON(http.StatusOK, item)
}
