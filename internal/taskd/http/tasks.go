package http

import (
	"encoding/json"
	"net/http"

	"github.com/taskdhq/taskd/internal/taskd/domain"
	"github.com/taskdhq/taskd/internal/taskd/service"
	"github.com/taskdhq/taskd/pkg/httpx"
)

type TasksHandler struct {
	Tasks *service.TaskService
}

// taskResponse is the wire shape for a task. The owner is deliberately
// absent: a caller only ever sees their own tasks.
type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func toTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create handles POST /v1/tasks.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	t, err := h.Tasks.CreateTask(r.Context(), req.Title, req.Description, httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(t))
}

// List handles GET /v1/tasks with optional status and search query filters.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter service.TaskFilter
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.TaskStatus(v)
		filter.Status = &status
	}
	filter.Search = r.URL.Query().Get("search")

	tasks, err := h.Tasks.GetTasks(r.Context(), filter, httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Get handles GET /v1/tasks/{id}.
func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.Tasks.GetTaskByID(r.Context(), r.PathValue("id"), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(t))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/tasks/{id}/status.
func (h *TasksHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	t, err := h.Tasks.UpdateTaskStatus(
		r.Context(),
		r.PathValue("id"),
		domain.TaskStatus(req.Status),
		httpx.UserIDFromContext(r.Context()),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(t))
}

// Delete handles DELETE /v1/tasks/{id}.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Tasks.DeleteTask(r.Context(), r.PathValue("id"), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
