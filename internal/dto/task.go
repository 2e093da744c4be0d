package dto

import (
	"time"

	"github.com/yukikurage/taskhive/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Board       uint64              `json:"board"`
	Column      string              `json:"column"`
	Position    float64             `json:"position"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
	AssignedTo  []UserDTO           `json:"assignedTo"`
	CreatedBy   UserDTO             `json:"createdBy"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// TaskDraftDTO represents an AI-drafted task that has not been saved
type TaskDraftDTO struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Board:       task.BoardID,
		Column:      task.Column,
		Position:    task.Position,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		AssignedTo:  make([]UserDTO, len(task.Assignments)),
		CreatedBy:   referenceUser(task.CreatedByID, task.CreatedBy),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	for i, assignment := range task.Assignments {
		dto.AssignedTo[i] = referenceUser(assignment.UserID, assignment.User)
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
