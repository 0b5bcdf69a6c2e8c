package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/api/shared"
	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/platform/logger"
	"github.com/phrazzld/tasktimer-api/internal/service"
)

const taskIDParam = "taskId"

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// RegisterRoutes mounts the task endpoints on r.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)
		r.Get("/", h.ListTasks)
		r.Get("/{taskId}", h.GetTask)
		r.Put("/run/{taskId}", h.RunTask)
		r.Put("/pause/{taskId}", h.PauseTask)
		r.Put("/resume/{taskId}", h.ResumeTask)
		r.Put("/cancel/{taskId}", h.CancelTask)
	})
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateTaskRequest(w, r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			MissingFieldsMessage(shared.MissingFields(err)), err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.Description)
	if err != nil {
		handleAPIError(w, r, err, failureMessage("creating the task"))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// decodeCreateTaskRequest reads a create payload sent either as JSON or as
// a URL-encoded form. An empty JSON body decodes to the zero request.
func decodeCreateTaskRequest(w http.ResponseWriter, r *http.Request) (CreateTaskRequest, error) {
	var req CreateTaskRequest
	if shared.IsFormRequest(r) {
		form, err := shared.DecodeForm(w, r)
		if err != nil {
			return req, err
		}
		req.Title = form.Get("title")
		req.Description = form.Get("description")
		return req, nil
	}

	if err := shared.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

// ListTasks handles GET /tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		handleAPIError(w, r, err, failureMessage("fetching tasks"))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /tasks/{taskId}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, h.taskService.GetTask, "fetching the task")
}

// RunTask handles PUT /tasks/run/{taskId}
func (h *TaskHandler) RunTask(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, h.taskService.RunTask, "running the task")
}

// PauseTask handles PUT /tasks/pause/{taskId}
func (h *TaskHandler) PauseTask(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, h.taskService.PauseTask, "pausing the task")
}

// ResumeTask handles PUT /tasks/resume/{taskId}
func (h *TaskHandler) ResumeTask(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, h.taskService.ResumeTask, "resuming the task")
}

// CancelTask handles PUT /tasks/cancel/{taskId}
func (h *TaskHandler) CancelTask(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, h.taskService.CancelTask, "cancelling the task")
}

// withTask parses the task ID, calls op and writes the resulting task.
func (h *TaskHandler) withTask(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, uuid.UUID) (*domain.Task, error),
	doing string,
) {
	taskID, err := getPathUUID(r, taskIDParam)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid task id",
			"value", chi.URLParam(r, taskIDParam))
		handleAPIError(w, r, err, msgInvalidTaskID)
		return
	}

	task, err := op(r.Context(), taskID)
	if err != nil {
		handleAPIError(w, r, err, failureMessage(doing))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}
