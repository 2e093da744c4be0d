package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskhive/internal/access"
	"github.com/yukikurage/taskhive/internal/auth"
	"github.com/yukikurage/taskhive/internal/config"
	"github.com/yukikurage/taskhive/internal/constants"
	"github.com/yukikurage/taskhive/internal/handlers"
	"github.com/yukikurage/taskhive/internal/middleware"
	"github.com/yukikurage/taskhive/internal/repository"
	"github.com/yukikurage/taskhive/internal/services"
	"gorm.io/gorm"
)

// Options carries the collaborators NewRouter cannot build from config alone.
type Options struct {
	SessionStore sessions.Store
	// Suggester enables POST /api/tasks/suggest; nil answers 503.
	Suggester services.TaskSuggester
}

func NewRouter(cfg *config.Config, db *gorm.DB, opts Options) *gin.Engine {
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	userRepo := repository.NewUserRepository(db)
	resolver := access.NewResolver(boardRepo, taskRepo, commentRepo)

	taskOpts := []services.TaskServiceOption{services.WithMoveAccessCheck(cfg.MoveRequiresAccess)}
	if opts.Suggester != nil {
		taskOpts = append(taskOpts, services.WithSuggester(opts.Suggester))
	}

	authService := services.NewAuthService(userRepo)
	boardService := services.NewBoardService(boardRepo, taskRepo, userRepo, resolver)
	taskService := services.NewTaskService(taskRepo, userRepo, resolver, taskOpts...)
	commentService := services.NewCommentService(commentRepo, resolver)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, constants.TokenTTL)

	authHandler := handlers.NewAuthHandler(authService, tokens)
	boardHandler := handlers.NewBoardHandler(boardService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(middleware.SecureHeaders())

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowAllOrigins:  len(cfg.CORSOrigins) == 0,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", constants.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)))
	r.Use(sessions.Sessions(constants.SessionCookieName, opts.SessionStore))

	requireAuth := middleware.RequireAuth(tokens, authService)

	r.GET("/", handlers.Welcome)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		// Auth routes (public except profile)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/profile", requireAuth, authHandler.Profile)
		}

		boards := api.Group("/boards", requireAuth)
		{
			boards.GET("", boardHandler.ListBoards)
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.PUT("/:id", boardHandler.UpdateBoard)
			boards.DELETE("/:id", boardHandler.DeleteBoard)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.GET("/board/:boardId", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/suggest", taskHandler.SuggestTasks)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PUT("/:id/move", taskHandler.MoveTask)
		}

		comments := api.Group("/comments", requireAuth)
		{
			comments.GET("/task/:taskId", commentHandler.ListComments)
			comments.POST("", commentHandler.CreateComment)
			comments.PUT("/:id", commentHandler.UpdateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}
	}

	r.NoRoute(middleware.NotFound)

	return r
}
