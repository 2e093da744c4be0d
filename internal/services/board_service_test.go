package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskhive/internal/access"
	"github.com/yukikurage/taskhive/internal/models"
	"github.com/yukikurage/taskhive/internal/repository"
	"github.com/yukikurage/taskhive/internal/testutil"
	"gorm.io/gorm"
)

// serviceEnv wires every service against one in-memory database
type serviceEnv struct {
	db       *gorm.DB
	boards   *BoardService
	tasks    *TaskService
	comments *CommentService
	auth     *AuthService
}

func newServiceEnv(t *testing.T, opts ...TaskServiceOption) serviceEnv {
	t.Helper()

	db := testutil.NewDB(t)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	userRepo := repository.NewUserRepository(db)
	resolver := access.NewResolver(boardRepo, taskRepo, commentRepo)

	return serviceEnv{
		db:       db,
		boards:   NewBoardService(boardRepo, taskRepo, userRepo, resolver),
		tasks:    NewTaskService(taskRepo, userRepo, resolver, opts...),
		comments: NewCommentService(commentRepo, resolver),
		auth:     NewAuthService(userRepo),
	}
}

type BoardServiceTestSuite struct {
	suite.Suite
	env    serviceEnv
	ctx    context.Context
	owner  *models.User
	member *models.User
	other  *models.User
}

func (suite *BoardServiceTestSuite) SetupTest() {
	suite.env = newServiceEnv(suite.T())
	suite.ctx = context.Background()
	suite.owner = testutil.CreateUser(suite.T(), suite.env.db, "Owner", "owner@example.com")
	suite.member = testutil.CreateUser(suite.T(), suite.env.db, "Member", "member@example.com")
	suite.other = testutil.CreateUser(suite.T(), suite.env.db, "Other", "other@example.com")
}

func (suite *BoardServiceTestSuite) TestCreateBoard_DefaultLayout() {
	board, err := suite.env.boards.CreateBoard(suite.ctx, CreateBoardInput{
		OwnerID: suite.owner.ID,
		Title:   "  Sprint 1  ",
	})
	suite.Require().NoError(err)

	suite.Equal("Sprint 1", board.Title)
	suite.Equal(suite.owner.ID, board.OwnerID)
	suite.Equal("Owner", board.Owner.Name)
	suite.Equal(models.DefaultBackgroundColor, board.BackgroundColor)
	suite.False(board.IsPrivate)

	suite.Require().Len(board.Columns, 4)
	ids := make([]string, 0, 4)
	for _, col := range board.Columns {
		ids = append(ids, col.ID)
		suite.Empty(col.TaskIDs)
	}
	suite.Equal([]string{"todo", "in-progress", "review", "done"}, ids)
}

func (suite *BoardServiceTestSuite) TestCreateBoard_CustomColor() {
	board, err := suite.env.boards.CreateBoard(suite.ctx, CreateBoardInput{
		OwnerID:         suite.owner.ID,
		Title:           "Colored",
		BackgroundColor: "#ff0000",
	})
	suite.Require().NoError(err)
	suite.Equal("#ff0000", board.BackgroundColor)
}

func (suite *BoardServiceTestSuite) TestCreateBoard_Validation() {
	cases := []CreateBoardInput{
		{OwnerID: suite.owner.ID, Title: ""},
		{OwnerID: suite.owner.ID, Title: "   "},
		{OwnerID: suite.owner.ID, Title: strings.Repeat("a", 101)},
		{OwnerID: suite.owner.ID, Title: "ok", Description: strings.Repeat("d", 501)},
	}
	for _, input := range cases {
		_, err := suite.env.boards.CreateBoard(suite.ctx, input)
		suite.ErrorIs(err, ErrValidation)
	}

	_, err := suite.env.boards.CreateBoard(suite.ctx, CreateBoardInput{
		OwnerID:     suite.owner.ID,
		Title:       strings.Repeat("a", 100),
		Description: strings.Repeat("d", 500),
	})
	suite.NoError(err)
}

func (suite *BoardServiceTestSuite) TestListBoards_OwnerAndMemberOnly() {
	owned := testutil.CreateBoard(suite.T(), suite.env.db, "Owned", suite.owner.ID)
	shared := testutil.CreateBoard(suite.T(), suite.env.db, "Shared", suite.other.ID, suite.owner.ID)
	testutil.CreateBoard(suite.T(), suite.env.db, "Hidden", suite.other.ID)

	// Touch the owned board so it becomes the most recently updated.
	suite.Require().NoError(suite.env.db.Model(&models.Board{}).
		Where("id = ?", owned.ID).
		UpdateColumn("updated_at", time.Now().Add(time.Hour)).Error)

	boards, err := suite.env.boards.ListBoards(suite.ctx, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Require().Len(boards, 2)
	suite.Equal(owned.ID, boards[0].ID)
	suite.Equal(shared.ID, boards[1].ID)
	suite.Equal("Other", boards[1].Owner.Name)
	suite.Require().Len(boards[1].Members, 1)
	suite.Equal("owner@example.com", boards[1].Members[0].User.Email)
}

func (suite *BoardServiceTestSuite) TestGetBoard() {
	board := testutil.CreateBoard(suite.T(), suite.env.db, "Board", suite.owner.ID, suite.member.ID)

	got, err := suite.env.boards.GetBoard(suite.ctx, suite.member.ID, board.ID)
	suite.Require().NoError(err)
	suite.Equal("Owner", got.Owner.Name)
	suite.Require().Len(got.Members, 1)
	suite.Equal("Member", got.Members[0].User.Name)

	_, err = suite.env.boards.GetBoard(suite.ctx, suite.other.ID, board.ID)
	suite.ErrorIs(err, access.ErrAccessDenied)

	_, err = suite.env.boards.GetBoard(suite.ctx, suite.owner.ID, 999)
	suite.ErrorIs(err, access.ErrBoardNotFound)
}

func (suite *BoardServiceTestSuite) TestBoardAccess_AgreesWithResolver() {
	db := suite.env.db
	resolver := access.NewResolver(repository.NewBoardRepository(db), repository.NewTaskRepository(db), repository.NewCommentRepository(db))
	board := testutil.CreateBoard(suite.T(), db, "Board", suite.owner.ID, suite.member.ID)

	for _, user := range []*models.User{suite.owner, suite.member, suite.other} {
		_, wantErr := resolver.Authorize(suite.ctx, user.ID, access.KindBoard, board.ID)
		_, gotErr := suite.env.boards.GetBoard(suite.ctx, user.ID, board.ID)
		suite.Equal(wantErr, gotErr, user.Name)
	}

	suite.Require().NoError(suite.env.boards.DeleteBoard(suite.ctx, suite.owner.ID, board.ID))

	_, err := resolver.ResolveOwningBoard(suite.ctx, access.KindBoard, board.ID)
	suite.ErrorIs(err, access.ErrBoardNotFound)
	_, err = suite.env.boards.GetBoard(suite.ctx, suite.owner.ID, board.ID)
	suite.ErrorIs(err, access.ErrBoardNotFound)
	_, err = suite.env.boards.UpdateBoard(suite.ctx, suite.owner.ID, board.ID, UpdateBoardInput{})
	suite.ErrorIs(err, access.ErrBoardNotFound)
	suite.ErrorIs(suite.env.boards.DeleteBoard(suite.ctx, suite.owner.ID, board.ID), access.ErrBoardNotFound)
}

func (suite *BoardServiceTestSuite) TestUpdateBoard_OwnerOnly() {
	board := testutil.CreateBoard(suite.T(), suite.env.db, "Board", suite.owner.ID, suite.member.ID)
	title := "Renamed"

	_, err := suite.env.boards.UpdateBoard(suite.ctx, suite.member.ID, board.ID, UpdateBoardInput{Title: &title})
	suite.ErrorIs(err, access.ErrAccessDenied)

	unchanged, err := suite.env.boards.GetBoard(suite.ctx, suite.owner.ID, board.ID)
	suite.Require().NoError(err)
	suite.Equal("Board", unchanged.Title)

	updated, err := suite.env.boards.UpdateBoard(suite.ctx, suite.owner.ID, board.ID, UpdateBoardInput{Title: &title})
	suite.Require().NoError(err)
	suite.Equal("Renamed", updated.Title)
	suite.Equal("Owner", updated.Owner.Name)
	suite.Require().Len(updated.Members, 1)
	suite.Equal("Member", updated.Members[0].User.Name)
}

func (suite *BoardServiceTestSuite) TestUpdateBoard_NotFound() {
	title := "x"
	_, err := suite.env.boards.UpdateBoard(suite.ctx, suite.owner.ID, 999, UpdateBoardInput{Title: &title})
	suite.ErrorIs(err, access.ErrBoardNotFound)
}

func (suite *BoardServiceTestSuite) TestUpdateBoard_Fields() {
	board := testutil.CreateBoard(suite.T(), suite.env.db, "Board", suite.owner.ID)
	description := "About"
	color := "#123456"
	private := true

	updated, err := suite.env.boards.UpdateBoard(suite.ctx, suite.owner.ID, board.ID, UpdateBoardInput{
		Description:     &description,
		BackgroundColor: &color,
		IsPrivate:       &private,
	})
	suite.Require().NoError(err)
	suite.Equal("Board", updated.Title)
	suite.Equal("About", updated.Description)
	suite.Equal("#123456", updated.BackgroundColor)
	suite.True(updated.IsPrivate)
	suite.Len(updated.Columns, 4)
}

func (suite *BoardServiceTestSuite) TestUpdateBoard_Validation() {
	board := testutil.CreateBoard(suite.T(), suite.env.db, "Board", suite.owner.ID)
	empty := ""

	_, err := suite.env.boards.UpdateBoard(suite.ctx, suite.owner.ID, board.ID, UpdateBoardInput{Title: &empty})
	suite.ErrorIs(err, ErrValidation)

	got, err := suite.env.boards.GetBoard(suite.ctx, suite.owner.ID, board.ID)
	suite.Require().NoError(err)
	suite.Equal("Board", got.Title)
}

func (suite *BoardServiceTestSuite) TestUpdateBoard_Members() {
	board := testutil.CreateBoard(suite.T(), suite.env.db, "Board", suite.owner.ID)

	members := []MemberInput{
		{UserID: suite.member.ID, Role: models.RoleAdmin},
		{UserID: suite.other.ID},
		{UserID: suite.member.ID, Role: models.RoleMember},
	}
	updated, err := suite.env.boards.UpdateBoard(suite.ctx, suite.owner.ID, board.ID, UpdateBoardInput{Members: &members})
	suite.Require().NoError(err)
	suite.Require().Len(updated.Members, 2)
	suite.Equal(suite.member.ID, updated.Members[0].UserID)
	suite.Equal(models.RoleAdmin, updated.Members[0].Role)
	suite.Equal(suite.other.ID, updated.Members[1].UserID)
	suite.Equal(models.RoleMember, updated.Members[1].Role)

	// Both roles get the same read access.
	_, err = suite.env.boards.GetBoard(suite.ctx, suite.other.ID, board.ID)
	suite.NoError(err)

	// Removing membership revokes access; the owner keeps it.
	none := []MemberInput{}
	_, err = suite.env.boards.UpdateBoard(suite.ctx, suite.owner.ID, board.ID, UpdateBoardInput{Members: &none})
	suite.Require().NoError(err)
	_, err = suite.env.boards.GetBoard(suite.ctx, suite.other.ID, board.ID)
	suite.ErrorIs(err, access.ErrAccessDenied)
	_, err = suite.env.boards.GetBoard(suite.ctx, suite.owner.ID, board.ID)
	suite.NoError(err)
}

func (suite *BoardServiceTestSuite) TestUpdateBoard_InvalidMembers() {
	board := testutil.CreateBoard(suite.T(), suite.env.db, "Board", suite.owner.ID)

	unknown := []MemberInput{{UserID: 999}}
	_, err := suite.env.boards.UpdateBoard(suite.ctx, suite.owner.ID, board.ID, UpdateBoardInput{Members: &unknown})
	suite.ErrorIs(err, ErrUnknownMember)
	suite.ErrorIs(err, ErrValidation)

	badRole := []MemberInput{{UserID: suite.member.ID, Role: "viewer"}}
	_, err = suite.env.boards.UpdateBoard(suite.ctx, suite.owner.ID, board.ID, UpdateBoardInput{Members: &badRole})
	suite.ErrorIs(err, ErrValidation)
}

func (suite *BoardServiceTestSuite) TestDeleteBoard_CascadesTasks() {
	board := testutil.CreateBoard(suite.T(), suite.env.db, "Board", suite.owner.ID)
	keep := testutil.CreateBoard(suite.T(), suite.env.db, "Keep", suite.owner.ID)
	testutil.CreateTask(suite.T(), suite.env.db, "A", board.ID, suite.owner.ID, "todo", 0)
	testutil.CreateTask(suite.T(), suite.env.db, "B", board.ID, suite.owner.ID, "done", 1)
	testutil.CreateTask(suite.T(), suite.env.db, "C", keep.ID, suite.owner.ID, "todo", 0)

	suite.Require().NoError(suite.env.boards.DeleteBoard(suite.ctx, suite.owner.ID, board.ID))

	tasks, err := suite.env.tasks.ListTasksForBoard(suite.ctx, board.ID)
	suite.Require().NoError(err)
	suite.Empty(tasks)

	kept, err := suite.env.tasks.ListTasksForBoard(suite.ctx, keep.ID)
	suite.Require().NoError(err)
	suite.Len(kept, 1)

	_, err = suite.env.boards.GetBoard(suite.ctx, suite.owner.ID, board.ID)
	suite.ErrorIs(err, access.ErrBoardNotFound)
}

func (suite *BoardServiceTestSuite) TestDeleteBoard_MemberDenied() {
	board := testutil.CreateBoard(suite.T(), suite.env.db, "Board", suite.owner.ID, suite.member.ID)
	testutil.CreateTask(suite.T(), suite.env.db, "A", board.ID, suite.owner.ID, "todo", 0)

	err := suite.env.boards.DeleteBoard(suite.ctx, suite.member.ID, board.ID)
	suite.ErrorIs(err, access.ErrAccessDenied)

	tasks, err := suite.env.tasks.ListTasksForBoard(suite.ctx, board.ID)
	suite.Require().NoError(err)
	suite.Len(tasks, 1)

	err = suite.env.boards.DeleteBoard(suite.ctx, suite.owner.ID, 999)
	suite.ErrorIs(err, access.ErrBoardNotFound)
}

func TestBoardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BoardServiceTestSuite))
}
