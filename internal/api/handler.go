// Package api exposes the JSON HTTP surface of the task service.
//
// The handlers contain no business logic beyond request parsing and response
// shaping: domain failures are produced by the credential, token, and storage
// layers and translated exactly once into a status code and an error body.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jmoran/taskboard/internal/auth/credential"
	"github.com/jmoran/taskboard/internal/auth/token"
	apperrors "github.com/jmoran/taskboard/internal/platform/errors"
	"github.com/jmoran/taskboard/internal/platform/requestctx"
	"github.com/jmoran/taskboard/internal/storage"
	"github.com/jmoran/taskboard/internal/task"
)

var (
	// errTaskNotFound hides whether a task is missing or owned by someone else.
	errTaskNotFound = apperrors.New(apperrors.CodeNotFound, "Task not found")
	// errInvalidBody flags a request body that does not parse as JSON.
	errInvalidBody = apperrors.New(apperrors.CodeValidation, "Invalid request body")
)

// Handler routes protocol-level requests to the auth and task subsystems.
type Handler struct {
	credentials *credential.Store
	tokens      *token.Issuer
	tasks       storage.TaskStore
}

// NewHandler wires the API surface to its collaborators.
func NewHandler(credentials *credential.Store, tokens *token.Issuer, tasks storage.TaskStore) *Handler {
	return &Handler{
		credentials: credentials,
		tokens:      tokens,
		tasks:       tasks,
	}
}

// Routes returns the HTTP handler for the full API surface. All task routes
// sit behind the auth middleware; the auth routes do not.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", h.handleRegister)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.Handle("/api/tasks", h.requireAuth(http.HandlerFunc(h.handleTasks)))
	mux.Handle("/api/tasks/", h.requireAuth(http.HandlerFunc(h.handleTaskByID)))
	return mux
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}

type createTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DateTime    time.Time `json:"dateTime"`
	Deadline    time.Time `json:"deadline"`
	Priority    string    `json:"priority"`
}

type updateTaskRequest struct {
	Completed *bool `json:"completed"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DateTime    time.Time `json:"dateTime"`
	Deadline    time.Time `json:"deadline"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toTaskResponse(t task.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DateTime:    t.DateTime,
		Deadline:    t.Deadline,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, credential.ErrMissingFields)
		return
	}

	u, err := h.credentials.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	signed, err := h.tokens.Issue(u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   signed,
		UserID:  u.ID,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, credential.ErrAuthFailed)
		return
	}

	u, err := h.credentials.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	signed, err := h.tokens.Issue(u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   signed,
		UserID:  u.ID,
	})
}

func (h *Handler) handleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListTasks(w, r)
	case http.MethodPost:
		h.handleCreateTask(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ownerID := requestctx.UserIDFromContext(r.Context())
	tasks, err := h.tasks.ListTasks(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	responses := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, task.ErrMissingFields)
		return
	}

	ownerID := requestctx.UserIDFromContext(r.Context())
	created, err := task.New(task.CreateInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		DateTime:    req.DateTime,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
	}, nil, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.tasks.PutTask(r.Context(), created); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(created))
}

func (h *Handler) handleTaskByID(w http.ResponseWriter, r *http.Request) {
	taskID := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	if taskID == "" || strings.Contains(taskID, "/") {
		writeError(w, errTaskNotFound)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.handleUpdateTask(w, r, taskID)
	case http.MethodDelete:
		h.handleDeleteTask(w, r, taskID)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request, taskID string) {
	// An empty body is a valid no-op patch.
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, errInvalidBody)
		return
	}

	ownerID := requestctx.UserIDFromContext(r.Context())

	// Only the completed flag is mutable through this operation. A patch
	// without it returns the record unchanged.
	var updated task.Task
	var err error
	if req.Completed != nil {
		updated, err = h.tasks.SetTaskCompleted(r.Context(), ownerID, taskID, *req.Completed)
	} else {
		updated, err = h.tasks.GetTask(r.Context(), ownerID, taskID)
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, errTaskNotFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(updated))
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request, taskID string) {
	ownerID := requestctx.UserIDFromContext(r.Context())
	if err := h.tasks.DeleteTask(r.Context(), ownerID, taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, errTaskNotFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
