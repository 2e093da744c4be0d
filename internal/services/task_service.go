package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskhive/internal/access"
	"github.com/yukikurage/taskhive/internal/constants"
	"github.com/yukikurage/taskhive/internal/models"
	"github.com/yukikurage/taskhive/internal/repository"
)

const defaultColumn = "todo"

var (
	ErrUnknownAssignee        error = &ValidationError{Field: "assignedTo", Message: "One or more assignees do not exist"}
	ErrAIServiceNotConfigured       = errors.New("AI service is not configured")
	ErrAINoTasksGenerated           = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks               = errors.New("no valid tasks could be created from AI output")
)

var taskPreloads = []string{"CreatedBy", "Assignments", "Assignments.User"}

// TaskService handles task business logic
type TaskService struct {
	tasks     repository.TaskRepository
	users     repository.UserRepository
	resolver  *access.Resolver
	suggester TaskSuggester

	moveRequiresAccess bool
}

// TaskServiceOption configures optional TaskService behavior
type TaskServiceOption func(*TaskService)

// WithSuggester enables AI task suggestions
func WithSuggester(suggester TaskSuggester) TaskServiceOption {
	return func(s *TaskService) {
		s.suggester = suggester
	}
}

// WithMoveAccessCheck makes MoveTask enforce board membership like the other
// task mutations do.
func WithMoveAccessCheck(enabled bool) TaskServiceOption {
	return func(s *TaskService) {
		s.moveRequiresAccess = enabled
	}
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository, resolver *access.Resolver, opts ...TaskServiceOption) *TaskService {
	s := &TaskService{
		tasks:    tasks,
		users:    users,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	BoardID     uint64
	Column      string
	Priority    models.TaskPriority
	DueDate     *time.Time
	CreatorID   uint64
}

// UpdateTaskInput represents a partial task update. Nil fields are left alone.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Column       *string
	Position     *float64
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	AssignedTo   *[]uint64
}

// MoveTaskInput carries the target column and position of a move
type MoveTaskInput struct {
	TaskID   uint64
	ActorID  uint64
	Column   string
	Position float64
}

// ListTasksForBoard returns a board's tasks ordered by position, then creation time
func (s *TaskService) ListTasksForBoard(ctx context.Context, boardID uint64) ([]models.Task, error) {
	tasks, err := s.tasks.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a task on a board the creator can access. The column is
// stored as given and is not checked against the board's column layout.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if _, err := s.resolver.Authorize(ctx, input.CreatorID, access.KindBoard, input.BoardID); err != nil {
		return nil, err
	}

	title, err := requiredText("title", "Task title", input.Title, constants.MaxTaskTitleLength)
	if err != nil {
		return nil, err
	}
	description, err := optionalText("description", "Description", input.Description, constants.MaxTaskDescriptionLength)
	if err != nil {
		return nil, err
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, invalidPriority(input.Priority)
	}

	column := strings.TrimSpace(input.Column)
	if column == "" {
		column = defaultColumn
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		BoardID:     input.BoardID,
		Column:      column,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedByID: input.CreatorID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.tasks.FindByID(ctx, task.ID, taskPreloads...)
}

// UpdateTask updates an existing task. Any board member may update any task.
func (s *TaskService) UpdateTask(ctx context.Context, actorID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.resolver.Task(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolver.Authorize(ctx, actorID, access.KindBoard, task.BoardID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if task.Title, err = requiredText("title", "Task title", *input.Title, constants.MaxTaskTitleLength); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if task.Description, err = optionalText("description", "Description", *input.Description, constants.MaxTaskDescriptionLength); err != nil {
			return nil, err
		}
	}
	if input.Column != nil {
		task.Column = *input.Column
	}
	if input.Position != nil {
		task.Position = *input.Position
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, invalidPriority(*input.Priority)
		}
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	var assignees []uint64
	if input.AssignedTo != nil {
		assignees = uniqueUint64(*input.AssignedTo)
		if len(assignees) > 0 {
			count, err := s.users.CountByIDs(ctx, assignees)
			if err != nil {
				return nil, fmt.Errorf("failed to verify assignees: %w", err)
			}
			if int(count) != len(assignees) {
				return nil, ErrUnknownAssignee
			}
		}
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if input.AssignedTo != nil {
		if err := s.tasks.ReplaceAssignees(ctx, task.ID, assignees); err != nil {
			return nil, fmt.Errorf("failed to update assignees: %w", err)
		}
	}

	return s.tasks.FindByID(ctx, task.ID, taskPreloads...)
}

// DeleteTask deletes a task. Comments on the task are left in place.
func (s *TaskService) DeleteTask(ctx context.Context, actorID, taskID uint64) error {
	task, err := s.resolver.Task(ctx, taskID)
	if err != nil {
		return err
	}

	if _, err := s.resolver.Authorize(ctx, actorID, access.KindBoard, task.BoardID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// MoveTask sets a task's column and position and nothing else.
//
// Unlike every other task mutation this does not check board membership
// unless the service was built WithMoveAccessCheck(true).
func (s *TaskService) MoveTask(ctx context.Context, input MoveTaskInput) (*models.Task, error) {
	task, err := s.resolver.Task(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	if s.moveRequiresAccess {
		if _, err := s.resolver.Authorize(ctx, input.ActorID, access.KindBoard, task.BoardID); err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Move(ctx, task.ID, input.Column, input.Position); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	return s.tasks.FindByID(ctx, task.ID, taskPreloads...)
}

// SuggestTasksInput represents input for AI task drafting
type SuggestTasksInput struct {
	BoardID uint64
	ActorID uint64
	Text    string
}

// SuggestTasks drafts tasks for a board from free-form text. Drafts are not saved.
func (s *TaskService) SuggestTasks(ctx context.Context, input SuggestTasksInput) ([]GeneratedTask, error) {
	if _, err := s.resolver.Authorize(ctx, input.ActorID, access.KindBoard, input.BoardID); err != nil {
		return nil, err
	}

	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := s.suggester.GenerateTasksFromText(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	valid := make([]GeneratedTask, 0, len(drafts))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, draft := range drafts {
		draft.Title = strings.TrimSpace(draft.Title)
		if draft.Title == "" {
			continue
		}

		if !draft.Priority.Valid() {
			draft.Priority = models.PriorityMedium
		}

		if draft.DueDate != nil && draft.DueDate.Before(cutoff) {
			draft.DueDate = nil
		}

		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

func invalidPriority(p models.TaskPriority) error {
	return invalid("priority", "`%s` is not a valid enum value for path `priority`", p)
}
