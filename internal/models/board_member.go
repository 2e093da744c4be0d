package models

type BoardRole string

const (
	RoleAdmin  BoardRole = "admin"
	RoleMember BoardRole = "member"
)

// Valid reports whether r is a known role.
func (r BoardRole) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

type BoardMember struct {
	ID      uint64    `gorm:"primarykey" json:"-"`
	BoardID uint64    `gorm:"not null;uniqueIndex:idx_board_members_board_user" json:"board_id"`
	UserID  uint64    `gorm:"not null;uniqueIndex:idx_board_members_board_user" json:"user_id"`
	Role    BoardRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
