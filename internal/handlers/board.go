package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskhive/internal/dto"
	apierrors "github.com/yukikurage/taskhive/internal/errors"
	"github.com/yukikurage/taskhive/internal/models"
	"github.com/yukikurage/taskhive/internal/services"
)

type BoardHandler struct {
	boardService *services.BoardService
}

func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// ListBoards returns every board the current user owns or belongs to
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardService.ListBoards(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTOs(boards))
}

// GetBoard returns a single board
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "Board not found")
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// CreateBoard creates a board owned by the current user
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateBoardRequest struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		BackgroundColor string `json:"backgroundColor"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), services.CreateBoardInput{
		OwnerID:         userID,
		Title:           req.Title,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// UpdateBoard applies a partial update. Only the owner may update a board.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "Board not found")
	if !ok {
		return
	}

	type MemberRequest struct {
		User uint64           `json:"user"`
		Role models.BoardRole `json:"role"`
	}

	type UpdateBoardRequest struct {
		Title           *string          `json:"title"`
		Description     *string          `json:"description"`
		BackgroundColor *string          `json:"backgroundColor"`
		IsPrivate       *bool            `json:"isPrivate"`
		Members         *[]MemberRequest `json:"members"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateBoardInput{
		Title:           req.Title,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
		IsPrivate:       req.IsPrivate,
	}
	if req.Members != nil {
		members := make([]services.MemberInput, len(*req.Members))
		for i, m := range *req.Members {
			members[i] = services.MemberInput{UserID: m.User, Role: m.Role}
		}
		input.Members = &members
	}

	board, err := h.boardService.UpdateBoard(c.Request.Context(), userID, boardID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// DeleteBoard deletes a board and its tasks. Only the owner may delete a board.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "Board not found")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), userID, boardID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board deleted successfully",
	})
}
