package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskhive/internal/dto"
	apierrors "github.com/yukikurage/taskhive/internal/errors"
	"github.com/yukikurage/taskhive/internal/models"
	"github.com/yukikurage/taskhive/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a board's tasks ordered by position
func (h *TaskHandler) ListTasks(c *gin.Context) {
	boardID, ok := listPathID(c, "boardId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksForBoard(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task on a board the user can access
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Board       uint64              `json:"board"`
		Column      string              `json:"column"`
		DueDate     *time.Time          `json:"dueDate"`
		Priority    models.TaskPriority `json:"priority"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		BoardID:     req.Board,
		Column:      req.Column,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CreatorID:   userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates an existing task. Only fields present in the body change;
// an explicit null dueDate clears it.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "Task not found")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Column      *string              `json:"column"`
		Position    *float64             `json:"position"`
		Priority    *models.TaskPriority `json:"priority"`
		DueDate     json.RawMessage      `json:"dueDate"`
		AssignedTo  *[]uint64            `json:"assignedTo"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Column:      req.Column,
		Position:    req.Position,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
	}

	// due_date was provided (might be null)
	if len(req.DueDate) > 0 {
		if bytes.Equal(req.DueDate, []byte("null")) {
			input.ClearDueDate = true
		} else {
			var dueDate time.Time
			if err := json.Unmarshal(req.DueDate, &dueDate); err != nil {
				apierrors.BadRequest(c, "Invalid dueDate")
				return
			}
			input.DueDate = &dueDate
		}
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "Task not found")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// MoveTask sets a task's column and position
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "Task not found")
	if !ok {
		return
	}

	type MoveTaskRequest struct {
		Column   string  `json:"column"`
		Position float64 `json:"position"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.MoveTask(c.Request.Context(), services.MoveTaskInput{
		TaskID:   taskID,
		ActorID:  userID,
		Column:   req.Column,
		Position: req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SuggestTasks drafts tasks from free-form text using AI. Nothing is saved.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type SuggestTasksRequest struct {
		Board uint64 `json:"board" binding:"required"`
		Text  string `json:"text" binding:"required"`
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.taskService.SuggestTasks(c.Request.Context(), services.SuggestTasksInput{
		BoardID: req.Board,
		ActorID: userID,
		Text:    req.Text,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.TaskDraftDTO, len(drafts))
	for i, draft := range drafts {
		items[i] = dto.TaskDraftDTO{
			Title:       draft.Title,
			Description: draft.Description,
			Priority:    draft.Priority,
			DueDate:     draft.DueDate,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": items,
	})
}
