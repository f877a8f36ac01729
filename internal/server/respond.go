package server

import "github.com/gin-gonic/gin"

// The service speaks a uniform envelope: {success, result} on success and
// {success:false, message} on failure.

func respondSuccess(c *gin.Context, result any) {
	c.JSON(200, gin.H{"success": true, "result": result})
}

func respondFailure(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
