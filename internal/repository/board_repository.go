package repository

import (
	"context"

	"github.com/yukikurage/taskhive/internal/database"
	"github.com/yukikurage/taskhive/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board
func (r *GormBoardRepository) Create(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// FindByID finds a board by ID with optional preloading
func (r *GormBoardRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Board, error) {
	var board models.Board
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p, preloadOrder(p))
	}

	if err := query.First(&board, id).Error; err != nil {
		return nil, err
	}

	return &board, nil
}

// ListForUser lists boards owned by or shared with a user
func (r *GormBoardRepository) ListForUser(ctx context.Context, userID uint64) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.WithContext(ctx).
		Scopes(database.VisibleTo(userID)).
		Preload("Owner").
		Preload("Members", preloadOrder("Members")).
		Preload("Members.User").
		Order("boards.updated_at DESC").
		Order("boards.id DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update saves the board's scalar fields
func (r *GormBoardRepository) Update(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(board).Error
}

// ReplaceMembers swaps the board's membership list
func (r *GormBoardRepository) ReplaceMembers(ctx context.Context, boardID uint64, members []models.BoardMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&models.BoardMember{}).Error; err != nil {
			return err
		}

		if len(members) == 0 {
			return nil
		}

		for i := range members {
			members[i].ID = 0
			members[i].BoardID = boardID
		}
		return tx.Omit(clause.Associations).Create(&members).Error
	})
}

// Delete deletes a board
func (r *GormBoardRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Board{}, id).Error
}

// preloadOrder keeps ordered relations in insertion order.
func preloadOrder(relation string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch relation {
		case "Members":
			return db.Order("board_members.id ASC")
		case "Replies":
			return db.Order("comments.created_at ASC").Order("comments.id ASC")
		}
		return db
	}
}
