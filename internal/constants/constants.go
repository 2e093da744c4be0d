package constants

import "time"

const (
	// ContextKeyUserID is the key under which the authenticated user ID is
	// stored in both the gin context and the cookie session.
	ContextKeyUserID = "user_id"

	// ContextKeyRequestID holds the per-request correlation ID.
	ContextKeyRequestID = "request_id"

	// HeaderRequestID is echoed back on every response.
	HeaderRequestID = "X-Request-ID"

	SessionCookieName = "taskhive_session"

	MinPasswordLength = 6

	TokenTTL = 7 * 24 * time.Hour

	MaxBoardTitleLength       = 100
	MaxBoardDescriptionLength = 500
	MaxTaskTitleLength        = 200
	MaxTaskDescriptionLength  = 1000
	MaxCommentLength          = 500

	MaxAIGeneratedTasks = 20
)
