package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskdeck/internal/config"
	"taskdeck/internal/core/domain"
)

func testClient(srv *httptest.Server) *Client {
	return NewClient(&config.Config{
		StoreURL:    srv.URL,
		StoreAPIKey: "anon-key",
		StoreBucket: "task-attachments",
	})
}

func TestClient_ListTasks(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{
				"id": "t1",
				"title": "Buy milk",
				"description": "2 liters",
				"status": "todo",
				"priority": "high",
				"project_id": "personal",
				"due_date": "2026-03-05",
				"reminder": "2026-03-05T09:00:00Z",
				"created_at": "2026-03-01T12:00:00Z",
				"updated_at": "2026-03-01T12:00:00Z"
			},
			{
				"id": "t2",
				"title": "Bare task",
				"description": null,
				"status": "completed",
				"priority": "low",
				"project_id": null,
				"due_date": null,
				"reminder": null,
				"created_at": "2026-02-28T10:00:00Z",
				"updated_at": "2026-02-28T10:00:00Z"
			}
		]`)
	}))
	defer srv.Close()

	tasks, err := testClient(srv).ListTasks(context.Background(), "user-1")
	require.NoError(t, err)

	require.Equal(t, "/rest/v1/tasks", gotReq.URL.Path)
	require.Equal(t, "user-1", strings.TrimPrefix(gotReq.URL.Query().Get("user_id"), "eq."))
	require.Equal(t, "created_at.desc", gotReq.URL.Query().Get("order"))
	require.Equal(t, "anon-key", gotReq.Header.Get("apikey"))
	// Anonymous calls fall back to the api key as bearer.
	require.Equal(t, "Bearer anon-key", gotReq.Header.Get("Authorization"))

	require.Len(t, tasks, 2)
	require.Equal(t, "t1", tasks[0].ID)
	require.Equal(t, "2 liters", tasks[0].Description)
	require.Equal(t, domain.TaskPriorityHigh, tasks[0].Priority)
	require.NotNil(t, tasks[0].DueDate)
	require.NotNil(t, tasks[0].Reminder)
	require.Equal(t, "t2", tasks[1].ID)
	require.Empty(t, tasks[1].Description)
	require.Nil(t, tasks[1].DueDate)
	require.Nil(t, tasks[1].Reminder)
}

func TestClient_InsertTask(t *testing.T) {
	var gotPrefer string
	var gotBody []map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{
			"id": "abc123",
			"title": "Buy milk",
			"status": "todo",
			"priority": "medium",
			"created_at": "2026-03-01T12:00:00Z",
			"updated_at": "2026-03-01T12:00:00Z"
		}]`)
	}))
	defer srv.Close()

	due := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	task, err := testClient(srv).InsertTask(context.Background(), "user-1", domain.CreateTaskInput{
		Title:    "Buy milk",
		Status:   domain.TaskStatusTodo,
		Priority: domain.TaskPriorityMedium,
		DueDate:  &due,
	})
	require.NoError(t, err)
	require.Equal(t, "abc123", task.ID)

	require.Equal(t, "return=representation", gotPrefer)
	require.Len(t, gotBody, 1)
	require.Equal(t, "user-1", gotBody[0]["user_id"])
	require.Equal(t, "2026-03-05", gotBody[0]["due_date"])
	// Empty optionals stay out of the payload.
	require.NotContains(t, gotBody[0], "description")
	require.NotContains(t, gotBody[0], "project_id")
}

func TestClient_UpdateTask_NullsClearedFields(t *testing.T) {
	var gotMethod, gotQuery string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	title := "Renamed"
	err := testClient(srv).UpdateTask(context.Background(), "t1", domain.UpdateTaskInput{
		Title:        &title,
		ProjectIDSet: true,
		DueDateSet:   true,
	})
	require.NoError(t, err)

	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "id=eq.t1", gotQuery)
	require.Equal(t, "Renamed", gotBody["title"])
	// Cleared fields travel as explicit nulls.
	require.Contains(t, gotBody, "project_id")
	require.Nil(t, gotBody["project_id"])
	require.Contains(t, gotBody, "due_date")
	require.Nil(t, gotBody["due_date"])
	require.NotContains(t, gotBody, "reminder")
}

func TestClient_UpdateTask_EmptyInputSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv).UpdateTask(context.Background(), "t1", domain.UpdateTaskInput{}))
	require.False(t, called)
}

func TestClient_DeleteTask(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv).DeleteTask(context.Background(), "t1"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/rest/v1/tasks", gotPath)
	require.Equal(t, "id=eq.t1", gotQuery)
}

func TestClient_SignIn_InstallsToken(t *testing.T) {
	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/v1/token":
			require.Equal(t, "password", r.URL.Query().Get("grant_type"))
			io.WriteString(w, `{"access_token":"jwt-token","user":{"id":"user-1","email":"user@example.com"}}`)
		case "/rest/v1/tasks":
			io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := testClient(srv)
	session, err := client.SignIn(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "user-1", session.UserID)
	require.Equal(t, "jwt-token", session.AccessToken)

	_, err = client.ListTasks(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, []string{"Bearer anon-key", "Bearer jwt-token"}, authHeaders)
}

func TestClient_Session_NoTokenSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	}))
	defer srv.Close()

	session, err := testClient(srv).Session(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestClient_Session_ExpiredTokenIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := testClient(srv)
	client.SetAccessToken("stale")
	session, err := client.Session(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestClient_SignOut_AlwaysDropsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(srv)
	client.SetAccessToken("jwt-token")
	require.Error(t, client.SignOut(context.Background()))
	require.Empty(t, client.accessToken())
}

func TestClient_UploadObject_ReturnsPublicURL(t *testing.T) {
	var gotPath, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := testClient(srv)
	url, err := client.UploadObject(context.Background(), "user-1/123-ab.png", domain.FileUpload{
		Name:        "ab.png",
		ContentType: "image/png",
		Size:        4,
		Content:     strings.NewReader("data"),
	})
	require.NoError(t, err)

	require.Equal(t, "/storage/v1/object/task-attachments/user-1/123-ab.png", gotPath)
	require.Equal(t, "image/png", gotContentType)
	require.Equal(t, "data", gotBody)
	require.Equal(t, srv.URL+"/storage/v1/object/public/task-attachments/user-1/123-ab.png", url)
}

func TestClient_DeleteObject(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv).DeleteObject(context.Background(), "user-1/123-ab.png"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/storage/v1/object/task-attachments/user-1/123-ab.png", gotPath)
}

func TestClient_StatusErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"message":"duplicate"}`)
	}))
	defer srv.Close()

	err := testClient(srv).DeleteTask(context.Background(), "t1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "409")
	require.Contains(t, err.Error(), "duplicate")
}
