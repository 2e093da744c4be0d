// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskhive/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database. The pool is pinned to a
// single connection so every query sees the same in-memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t testing.TB, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateBoard inserts a board with the default columns and the given members.
func CreateBoard(t testing.TB, db *gorm.DB, title string, ownerID uint64, memberIDs ...uint64) *models.Board {
	t.Helper()

	board := &models.Board{
		Title:           title,
		OwnerID:         ownerID,
		Columns:         models.DefaultColumns(),
		BackgroundColor: models.DefaultBackgroundColor,
	}
	require.NoError(t, db.Omit("Owner", "Members").Create(board).Error)

	for _, id := range memberIDs {
		member := &models.BoardMember{BoardID: board.ID, UserID: id, Role: models.RoleMember}
		require.NoError(t, db.Omit("User").Create(member).Error)
		board.Members = append(board.Members, *member)
	}
	return board
}

// CreateTask inserts a task on a board.
func CreateTask(t testing.TB, db *gorm.DB, title string, boardID, creatorID uint64, column string, position float64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		BoardID:     boardID,
		Column:      column,
		Position:    position,
		Priority:    models.PriorityMedium,
		CreatedByID: creatorID,
	}
	require.NoError(t, db.Omit("CreatedBy", "Assignments").Create(task).Error)
	return task
}

// CreateComment inserts a comment, optionally as a reply to parentID.
func CreateComment(t testing.TB, db *gorm.DB, content string, taskID, authorID uint64, parentID *uint64) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Content:         content,
		TaskID:          taskID,
		AuthorID:        authorID,
		ParentCommentID: parentID,
	}
	require.NoError(t, db.Omit("Author", "Replies").Create(comment).Error)
	return comment
}
