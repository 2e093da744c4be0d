// Package access decides who may read and write a board and everything that
// hangs off it.
//
// Every board-scoped operation resolves the owning board first and then asks
// CanAccess (read/write of tasks and comments) or IsOwner (board metadata and
// deletion). Admin and member roles are stored on the board but grant the same
// access. Decisions are recomputed on every call.
package access

import "github.com/yukikurage/taskhive/internal/models"

// CanAccess reports whether userID owns board or appears in its member list.
func CanAccess(userID uint64, board *models.Board) bool {
	if board == nil {
		return false
	}
	if IsOwner(userID, board) {
		return true
	}
	for _, member := range board.Members {
		if member.UserID == userID {
			return true
		}
	}
	return false
}

// IsOwner reports whether userID owns board.
func IsOwner(userID uint64, board *models.Board) bool {
	return board != nil && board.OwnerID == userID
}
