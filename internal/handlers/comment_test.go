package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskhive/internal/access"
	"github.com/yukikurage/taskhive/internal/dto"
	"github.com/yukikurage/taskhive/internal/models"
	"github.com/yukikurage/taskhive/internal/repository"
	"github.com/yukikurage/taskhive/internal/services"
	"github.com/yukikurage/taskhive/internal/testutil"
	"gorm.io/gorm"
)

type commentFixture struct {
	db      *gorm.DB
	handler *CommentHandler
	owner   *models.User
	member  *models.User
	task    *models.Task
}

func setupCommentHandler(t *testing.T) commentFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	commentRepo := repository.NewCommentRepository(db)
	resolver := access.NewResolver(repository.NewBoardRepository(db), repository.NewTaskRepository(db), commentRepo)

	owner := testutil.CreateUser(t, db, "Owner", "owner@example.com")
	member := testutil.CreateUser(t, db, "Member", "member@example.com")
	board := testutil.CreateBoard(t, db, "Board", owner.ID, member.ID)

	return commentFixture{
		db:      db,
		handler: NewCommentHandler(services.NewCommentService(commentRepo, resolver)),
		owner:   owner,
		member:  member,
		task:    testutil.CreateTask(t, db, "Task", board.ID, owner.ID, "todo", 0),
	}
}

func TestCommentHandler_CreateAndList(t *testing.T) {
	f := setupCommentHandler(t)

	c, w := createAuthContext(t, "POST", "/api/comments", map[string]interface{}{"content": "LGTM", "task": f.task.ID}, f.member.ID)
	f.handler.CreateComment(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var parent dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parent))
	assert.Equal(t, "LGTM", parent.Content)
	assert.Equal(t, f.member.ID, parent.Author.ID)
	assert.Equal(t, "member@example.com", parent.Author.Email)
	assert.Nil(t, parent.ParentComment)

	c, w = createAuthContext(t, "POST", "/api/comments", map[string]interface{}{"content": "thanks", "task": f.task.ID, "parentComment": parent.ID}, f.owner.ID)
	f.handler.CreateComment(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = createAuthContext(t, "GET", "/api/comments/task/1", nil, f.owner.ID, idParam("taskId", f.task.ID))
	f.handler.ListComments(c)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "thanks", comments[0].Replies[0].Content)
	assert.Equal(t, "Owner", comments[0].Replies[0].Author.Name)
	require.NotNil(t, comments[0].Replies[0].ParentComment)
	assert.Equal(t, parent.ID, *comments[0].Replies[0].ParentComment)
}

func TestCommentHandler_ListInvalidTaskID(t *testing.T) {
	f := setupCommentHandler(t)

	c, w := createAuthContext(t, "GET", "/api/comments/task/abc", nil, f.owner.ID, gin.Param{Key: "taskId", Value: "abc"})
	f.handler.ListComments(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid taskId")
}

func TestCommentHandler_CreateFailures(t *testing.T) {
	f := setupCommentHandler(t)
	outsider := testutil.CreateUser(t, f.db, "Outsider", "outsider@example.com")

	c, w := createAuthContext(t, "POST", "/api/comments", map[string]interface{}{"content": "hi", "task": f.task.ID}, outsider.ID)
	f.handler.CreateComment(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = createAuthContext(t, "POST", "/api/comments", map[string]interface{}{"content": "hi", "task": 999}, f.owner.ID)
	f.handler.CreateComment(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = createAuthContext(t, "POST", "/api/comments", map[string]interface{}{"content": "", "task": f.task.ID}, f.owner.ID)
	f.handler.CreateComment(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Comment is required")
}

func TestCommentHandler_AuthorOnly(t *testing.T) {
	f := setupCommentHandler(t)
	comment := testutil.CreateComment(t, f.db, "mine", f.task.ID, f.member.ID, nil)

	c, w := createAuthContext(t, "PUT", "/api/comments/1", map[string]string{"content": "edited"}, f.owner.ID, idParam("id", comment.ID))
	f.handler.UpdateComment(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = createAuthContext(t, "DELETE", "/api/comments/1", nil, f.owner.ID, idParam("id", comment.ID))
	f.handler.DeleteComment(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = createAuthContext(t, "PUT", "/api/comments/1", map[string]string{"content": "edited"}, f.member.ID, idParam("id", comment.ID))
	f.handler.UpdateComment(c)
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "edited", updated.Content)

	c, w = createAuthContext(t, "DELETE", "/api/comments/1", nil, f.member.ID, idParam("id", comment.ID))
	f.handler.DeleteComment(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Comment deleted successfully"}`, w.Body.String())

	c, w = createAuthContext(t, "DELETE", "/api/comments/1", nil, f.member.ID, idParam("id", comment.ID))
	f.handler.DeleteComment(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
