package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultBackgroundColor = "#0079bf"

// BoardColumn is a lane on a board. TaskIDs is display metadata only and is
// not kept in sync with Task.Column.
type BoardColumn struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"taskIds"`
}

type Board struct {
	ID              uint64                           `gorm:"primarykey" json:"id"`
	Title           string                           `gorm:"type:varchar(100);not null" json:"title"`
	Description     string                           `gorm:"type:varchar(500)" json:"description"`
	OwnerID         uint64                           `gorm:"not null;index" json:"owner_id"`
	Columns         datatypes.JSONSlice[BoardColumn] `json:"columns"`
	BackgroundColor string                           `gorm:"type:varchar(32);not null;default:'#0079bf'" json:"background_color"`
	IsPrivate       bool                             `gorm:"not null;default:false" json:"is_private"`
	CreatedAt       time.Time                        `json:"created_at"`
	UpdatedAt       time.Time                        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt                   `gorm:"index" json:"-"`

	// Relations
	Owner   User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []BoardMember `gorm:"foreignKey:BoardID" json:"members,omitempty"`
	Tasks   []Task        `gorm:"foreignKey:BoardID" json:"-"`
}

// DefaultColumns returns the fixed column layout every new board starts with.
func DefaultColumns() []BoardColumn {
	return []BoardColumn{
		{ID: "todo", Title: "To Do", TaskIDs: []string{}},
		{ID: "in-progress", Title: "In Progress", TaskIDs: []string{}},
		{ID: "review", Title: "Review", TaskIDs: []string{}},
		{ID: "done", Title: "Done", TaskIDs: []string{}},
	}
}
