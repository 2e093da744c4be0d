package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Content         string         `gorm:"type:varchar(500);not null" json:"content"`
	TaskID          uint64         `gorm:"not null;index" json:"task_id"`
	AuthorID        uint64         `gorm:"not null" json:"author_id"`
	ParentCommentID *uint64        `gorm:"index" json:"parent_comment_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author  User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Replies []Comment `gorm:"foreignKey:ParentCommentID" json:"replies,omitempty"`
}

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Board{},
		&BoardMember{},
		&Task{},
		&TaskAssignment{},
		&Comment{},
	}
}
