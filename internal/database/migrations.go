package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/taskhive/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes behind the board and comment listings.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		name    string
		columns string
	}{
		// Board listing: tasks ordered by position then creation
		{&models.Task{}, "idx_tasks_board_position", "board_id, position, created_at"},

		// Top-level comments, newest first
		{&models.Comment{}, "idx_comments_task_parent_created", "task_id, parent_comment_id, created_at"},

		// Boards a user belongs to
		{&models.BoardMember{}, "idx_board_members_user_id", "user_id"},
		{&models.Board{}, "idx_boards_updated_at", "updated_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, stmt.Schema.Table, idx.columns)
	}

	return nil
}
