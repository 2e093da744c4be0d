package repository

import (
	"context"

	"github.com/yukikurage/taskhive/internal/database"
	"github.com/yukikurage/taskhive/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

// FindByID finds a comment by ID with optional preloading
func (r *GormCommentRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Comment, error) {
	var comment models.Comment
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p, preloadOrder(p))
	}

	if err := query.First(&comment, id).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListTopLevel lists a task's top-level comments, newest first, each with
// its direct replies. Replies of replies are not loaded.
func (r *GormCommentRepository) ListTopLevel(ctx context.Context, taskID uint64) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.WithContext(ctx).
		Where("comments.task_id = ?", taskID).
		Scopes(database.TopLevel, database.NewestFirst).
		Preload("Author").
		Preload("Replies", preloadOrder("Replies")).
		Preload("Replies.Author").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateContent replaces a comment's content
func (r *GormCommentRepository) UpdateContent(ctx context.Context, id uint64, content string) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error
}

// Delete deletes a single comment
func (r *GormCommentRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
