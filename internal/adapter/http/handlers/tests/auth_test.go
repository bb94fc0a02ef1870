package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/adapter/http/handlers"
	"taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/core/domain"
	"taskdeck/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionManagerMock struct {
	mock.Mock
}

func (m *sessionManagerMock) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)

	var session *domain.Session
	if value := args.Get(0); value != nil {
		session = value.(*domain.Session)
	}
	return session, args.Error(1)
}

func (m *sessionManagerMock) SignOut(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *sessionManagerMock) Session() *domain.Session {
	args := m.Called()

	var session *domain.Session
	if value := args.Get(0); value != nil {
		session = value.(*domain.Session)
	}
	return session
}

func (m *sessionManagerMock) State() domain.SessionState {
	args := m.Called()
	return args.Get(0).(domain.SessionState)
}

func newAuthRouter(sessionsMock *sessionManagerMock) *gin.Engine {
	handler := handlers.NewAuthHandler(sessionsMock)
	router := gin.New()
	group := router.Group("/api", middleware.LanguageMiddleware())
	group.POST("/auth/signin", handler.SignIn)
	group.POST("/auth/signout", handler.SignOut)
	group.GET("/auth/session", handler.GetSession)
	return router
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	sessionsMock := new(sessionManagerMock)
	sessionsMock.On("SignIn", mock.Anything, "user@example.com", "secret").
		Return(&domain.Session{UserID: "user-1", Email: "user@example.com"}, nil).Once()
	sessionsMock.On("State").Return(domain.SessionAuthenticated).Once()
	router := newAuthRouter(sessionsMock)

	body := `{"email":"user@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.SessionItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, string(domain.SessionAuthenticated), got.State)
	require.Equal(t, "user-1", got.UserID)
	sessionsMock.AssertExpectations(t)
}

func TestAuthHandler_SignIn_BadCredentials(t *testing.T) {
	sessionsMock := new(sessionManagerMock)
	sessionsMock.On("SignIn", mock.Anything, "user@example.com", "wrong").
		Return(nil, errors.New("invalid credentials")).Once()
	router := newAuthRouter(sessionsMock)

	body := `{"email":"user@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	sessionsMock.AssertExpectations(t)
}

func TestAuthHandler_SignIn_LoadFailureIsNotCredentialError(t *testing.T) {
	sessionsMock := new(sessionManagerMock)
	sessionsMock.On("SignIn", mock.Anything, "user@example.com", "secret").
		Return(
			&domain.Session{UserID: "user-1", Email: "user@example.com"},
			&domain.LoadError{Err: errors.New("network down")},
		).Once()
	router := newAuthRouter(sessionsMock)

	body := `{"email":"user@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// The password worked; the answer must not tell the user otherwise.
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	jsonErr := decodeAPIError(t, rec.Body.Bytes())
	require.Equal(t, "Failed to load your data", jsonErr.ErrDetails.Message)
	sessionsMock.AssertExpectations(t)
}

func TestAuthHandler_SignIn_InvalidPayload(t *testing.T) {
	sessionsMock := new(sessionManagerMock)
	router := newAuthRouter(sessionsMock)

	body := `{"email":"not-an-email","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	sessionsMock.AssertNotCalled(t, "SignIn")
}

func TestAuthHandler_SignOut_Success(t *testing.T) {
	sessionsMock := new(sessionManagerMock)
	sessionsMock.On("SignOut", mock.Anything).Return(nil).Once()
	router := newAuthRouter(sessionsMock)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	sessionsMock.AssertExpectations(t)
}

func TestAuthHandler_GetSession_Unauthenticated(t *testing.T) {
	sessionsMock := new(sessionManagerMock)
	sessionsMock.On("State").Return(domain.SessionUnauthenticated).Once()
	sessionsMock.On("Session").Return(nil).Once()
	router := newAuthRouter(sessionsMock)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.SessionItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, string(domain.SessionUnauthenticated), got.State)
	require.Empty(t, got.UserID)
	sessionsMock.AssertExpectations(t)
}
