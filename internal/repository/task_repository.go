package repository

import (
	"context"

	"github.com/yukikurage/taskhive/internal/database"
	"github.com/yukikurage/taskhive/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByBoard lists a board's tasks by position, then creation time
func (r *GormTaskRepository) ListByBoard(ctx context.Context, boardID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Where("tasks.board_id = ?", boardID).
		Scopes(database.BoardOrder).
		Preload("CreatedBy").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_assignments.created_at ASC")
		}).
		Preload("Assignments.User").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves the task's scalar fields
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// Move sets only the column and position of a task
func (r *GormTaskRepository) Move(ctx context.Context, id uint64, column string, position float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"column_id": column,
			"position":  position,
		}).Error
}

// Delete deletes a single task. Its assignments go with it; comments stay.
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// DeleteByBoard deletes every task on a board
func (r *GormTaskRepository) DeleteByBoard(ctx context.Context, boardID uint64) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&models.Task{}).Error
}

// ReplaceAssignees swaps a task's assignees for userIDs
func (r *GormTaskRepository) ReplaceAssignees(ctx context.Context, taskID uint64, userIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		if len(userIDs) == 0 {
			return nil
		}

		assignments := make([]models.TaskAssignment, len(userIDs))
		for i, userID := range userIDs {
			assignments[i] = models.TaskAssignment{
				TaskID: taskID,
				UserID: userID,
			}
		}

		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&assignments).Error
	})
}
