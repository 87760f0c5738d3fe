package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmanager/task-api/internal/dto"
	"github.com/taskmanager/task-api/internal/services"
)

type fakeTaskService struct {
	list   func(ctx context.Context) ([]dto.TaskResponse, error)
	get    func(ctx context.Context, id int64) (*dto.TaskResponse, error)
	create func(ctx context.Context, req dto.TaskRequest) (*dto.TaskResponse, error)
	update func(ctx context.Context, id int64, req dto.TaskRequest) (*dto.TaskResponse, error)
	delete func(ctx context.Context, id int64) error
}

func (f *fakeTaskService) ListTasks(ctx context.Context) ([]dto.TaskResponse, error) {
	return f.list(ctx)
}

func (f *fakeTaskService) GetTaskByID(ctx context.Context, id int64) (*dto.TaskResponse, error) {
	return f.get(ctx, id)
}

func (f *fakeTaskService) CreateTask(ctx context.Context, req dto.TaskRequest) (*dto.TaskResponse, error) {
	return f.create(ctx, req)
}

func (f *fakeTaskService) UpdateTask(ctx context.Context, id int64, req dto.TaskRequest) (*dto.TaskResponse, error) {
	return f.update(ctx, id, req)
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

type errorBody struct {
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors"`
	Timestamp time.Time         `json:"timestamp"`
}

func newTestRouter(service services.TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := New(zerolog.Nop(), service)

	api := router.Group("/api")
	api.Use(handler.HandleRequestIDMiddleware)

	tasks := api.Group("/tasks")
	tasks.GET("", handler.HandleListTasks)
	tasks.POST("", handler.HandleCreateTask)
	tasks.GET("/:id", handler.HandleGetTask)
	tasks.PUT("/:id", handler.HandleUpdateTask)
	tasks.DELETE("/:id", handler.HandleDeleteTask)
	return router
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleListTasks_EmptyStore(t *testing.T) {
	router := newTestRouter(&fakeTaskService{
		list: func(context.Context) ([]dto.TaskResponse, error) {
			return []dto.TaskResponse{}, nil
		},
	})

	w := performRequest(router, http.MethodGet, "/api/tasks", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHandleGetTask(t *testing.T) {
	router := newTestRouter(&fakeTaskService{
		get: func(_ context.Context, id int64) (*dto.TaskResponse, error) {
			return &dto.TaskResponse{
				ID:               id,
				Title:            "Buy groceries",
				Completed:        true,
				CompletionStatus: "DONE",
			}, nil
		},
	})

	w := performRequest(router, http.MethodGet, "/api/tasks/5", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(5), response.ID)
	assert.Equal(t, "DONE", response.CompletionStatus)
}

func TestHandleGetTask_NotFound(t *testing.T) {
	router := newTestRouter(&fakeTaskService{
		get: func(_ context.Context, id int64) (*dto.TaskResponse, error) {
			return nil, services.NotFoundError{ID: id}
		},
	})

	w := performRequest(router, http.MethodGet, "/api/tasks/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, 404, body.Status)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "Task with ID 99 not found", body.Message)
	assert.False(t, body.Timestamp.IsZero())
}

func TestHandleGetTask_InvalidID(t *testing.T) {
	router := newTestRouter(&fakeTaskService{})

	w := performRequest(router, http.MethodGet, "/api/tasks/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "Bad Request", body.Error)
	assert.Equal(t, "Invalid task id", body.Message)
}

func TestHandleCreateTask(t *testing.T) {
	router := newTestRouter(&fakeTaskService{
		create: func(_ context.Context, req dto.TaskRequest) (*dto.TaskResponse, error) {
			return &dto.TaskResponse{
				ID:               1,
				Title:            req.Title,
				Description:      req.Description,
				Completed:        *req.Completed,
				CompletionStatus: "PENDING",
			}, nil
		},
	})

	w := performRequest(router, http.MethodPost, "/api/tasks",
		`{"title":"Buy groceries","description":"milk","completed":false}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.ID)
	assert.Equal(t, "Buy groceries", response.Title)
	assert.Equal(t, "PENDING", response.CompletionStatus)
}

func TestHandleCreateTask_ShortTitle(t *testing.T) {
	router := newTestRouter(&fakeTaskService{})

	w := performRequest(router, http.MethodPost, "/api/tasks",
		`{"title":"ab","completed":false}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "Validation failed for one or more fields", body.Message)
	assert.Equal(t, dto.MsgTitleSize, body.Errors["title"])
}

func TestHandleCreateTask_MissingCompleted(t *testing.T) {
	router := newTestRouter(&fakeTaskService{})

	w := performRequest(router, http.MethodPost, "/api/tasks",
		`{"title":"Buy groceries"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, dto.MsgCompletedRequired, body.Errors["completed"])
}

func TestHandleCreateTask_MalformedJSON(t *testing.T) {
	router := newTestRouter(&fakeTaskService{})

	w := performRequest(router, http.MethodPost, "/api/tasks", `{"title":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "Invalid request body", body.Message)
	assert.Nil(t, body.Errors)
}

func TestHandleCreateTask_Duplicate(t *testing.T) {
	router := newTestRouter(&fakeTaskService{
		create: func(context.Context, dto.TaskRequest) (*dto.TaskResponse, error) {
			return nil, services.ErrDuplicateTask
		},
	})

	w := performRequest(router, http.MethodPost, "/api/tasks",
		`{"title":"Buy groceries","completed":false}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "Conflict", body.Error)
	assert.Equal(t, "You already have an active task with this title!", body.Message)
}

func TestHandleUpdateTask(t *testing.T) {
	router := newTestRouter(&fakeTaskService{
		update: func(_ context.Context, id int64, req dto.TaskRequest) (*dto.TaskResponse, error) {
			return &dto.TaskResponse{
				ID:               id,
				Title:            req.Title,
				Completed:        *req.Completed,
				CompletionStatus: "DONE",
			}, nil
		},
	})

	w := performRequest(router, http.MethodPut, "/api/tasks/3",
		`{"title":"Buy vegetables","completed":true}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(3), response.ID)
	assert.Equal(t, "Buy vegetables", response.Title)
}

func TestHandleDeleteTask(t *testing.T) {
	router := newTestRouter(&fakeTaskService{
		delete: func(context.Context, int64) error { return nil },
	})

	w := performRequest(router, http.MethodDelete, "/api/tasks/4", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleDeleteTask_NotFound(t *testing.T) {
	router := newTestRouter(&fakeTaskService{
		delete: func(_ context.Context, id int64) error {
			return services.NotFoundError{ID: id}
		},
	})

	w := performRequest(router, http.MethodDelete, "/api/tasks/4", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleListTasks_UnexpectedError(t *testing.T) {
	router := newTestRouter(&fakeTaskService{
		list: func(context.Context) ([]dto.TaskResponse, error) {
			return nil, errors.New("pool exhausted")
		},
	})

	w := performRequest(router, http.MethodGet, "/api/tasks", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, internalErrorMessage, body.Message)
	assert.NotContains(t, body.Message, "pool exhausted")
}
