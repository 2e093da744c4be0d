package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskhive/internal/access"
	apierrors "github.com/yukikurage/taskhive/internal/errors"
	"github.com/yukikurage/taskhive/internal/middleware"
	"github.com/yukikurage/taskhive/internal/services"
)

// respondError maps a service error onto the API's status codes. Anything
// unrecognized becomes a 500 carrying the error's own message.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, access.ErrBoardNotFound):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, access.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, access.ErrCommentNotFound):
		apierrors.NotFound(c, "Comment not found")
	case errors.Is(err, access.ErrAccessDenied), errors.Is(err, services.ErrNotCommentAuthor):
		apierrors.Forbidden(c, "Access denied")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr.Message)
	default:
		log.Printf("[%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.FullPath(), err)
		apierrors.InternalError(c, err.Error())
	}
}

// currentUserID reads the authenticated user, answering 401 when absent
func currentUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric path parameter. An id that cannot be parsed cannot
// resolve to anything, so it is answered like a missing resource.
func pathID(c *gin.Context, name, notFoundMessage string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.NotFound(c, notFoundMessage)
		return 0, false
	}
	return id, true
}

// listPathID parses the parent id of a list route. These routes fail only
// with 500, so an unparseable id is reported as a server error.
func listPathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.InternalError(c, fmt.Sprintf("Invalid %s %q", name, c.Param(name)))
		return 0, false
	}
	return id, true
}
