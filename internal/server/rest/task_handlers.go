package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
)

type createTaskRequest struct {
	Description string          `json:"description"`
	DueDate     string          `json:"dueDate"`
	DueTime     string          `json:"dueTime"`
	Priority    models.Priority `json:"priority"`
	Completed   bool            `json:"completed"`
}

// updateTaskRequest accepts a whole task as returned by the list endpoint.
// The read-only fields are tolerated and ignored.
type updateTaskRequest struct {
	models.TaskPatch
	ID          *string `json:"id,omitempty"`
	OwnerID     *string `json:"ownerId,omitempty"`
	CreatedDate *string `json:"createdDate,omitempty"`
	CreatedTime *string `json:"createdTime,omitempty"`
}

type setCompletedRequest struct {
	Completed *bool `json:"completed"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.tasks.Create(r.Context(), ownerID, services.NewTask{
		Description: req.Description,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
		Priority:    req.Priority,
		Completed:   req.Completed,
	})
	if err != nil {
		s.fail(w, r, err, msgTaskNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	list, err := s.tasks.List(r.Context(), ownerID)
	if err != nil {
		s.fail(w, r, err, msgTaskNotFound)
		return
	}
	if list == nil {
		list = []*models.Task{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSetCompleted(w http.ResponseWriter, r *http.Request, ownerID string) {
	var req setCompletedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Completed == nil {
		writeMessage(w, http.StatusBadRequest, "completed is required")
		return
	}

	task, err := s.tasks.SetCompleted(r.Context(), ownerID, r.PathValue("id"), *req.Completed)
	if err != nil {
		s.fail(w, r, err, msgTaskNotFound)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, ownerID string) {
	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.tasks.Update(r.Context(), ownerID, r.PathValue("id"), req.TaskPatch)
	if err != nil {
		s.fail(w, r, err, msgTaskNotFound)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, ownerID string) {
	if err := s.tasks.Delete(r.Context(), ownerID, r.PathValue("id")); err != nil {
		s.fail(w, r, err, msgTaskNotFound)
		return
	}

	writeMessage(w, http.StatusOK, "Task deleted successfully")
}
