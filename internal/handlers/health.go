package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports that the API is up
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "TaskHive API is running!",
	})
}

// Welcome answers the bare root path
func Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome To The BACKEND..!")
}
