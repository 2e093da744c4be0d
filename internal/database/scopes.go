package database

import (
	"gorm.io/gorm"
)

// VisibleTo restricts a board query to boards owned by or shared with userID.
func VisibleTo(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		members := db.Session(&gorm.Session{NewDB: true}).
			Table("board_members").
			Select("board_id").
			Where("user_id = ?", userID)
		return db.Where("boards.owner_id = ? OR boards.id IN (?)", userID, members)
	}
}

// BoardOrder sorts tasks by their manual position, falling back to creation order.
func BoardOrder(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.position ASC").Order("tasks.created_at ASC").Order("tasks.id ASC")
}

// NewestFirst sorts comments by creation time, most recent first.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("comments.created_at DESC").Order("comments.id DESC")
}

// TopLevel keeps only comments that are not replies.
func TopLevel(db *gorm.DB) *gorm.DB {
	return db.Where("comments.parent_comment_id IS NULL")
}
