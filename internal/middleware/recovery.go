package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskhive/internal/errors"
)

// Recovery turns a panic anywhere in the chain into a 500 response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[%s] panic recovered: %v", GetRequestID(c), recovered)
		apierrors.AbortWithError(c, http.StatusInternalServerError, apierrors.NewAPIError(apierrors.ErrCodeInternalError, fmt.Sprint(recovered)))
	})
}

// NotFound answers requests that matched no route
func NotFound(c *gin.Context) {
	apierrors.NotFound(c, "Not Found - "+c.Request.URL.Path)
}
