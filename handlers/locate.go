package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jorget15/UnityAid/location"
)

// Locate previews what the location extractor would make of a description.
// Purely advisory; report creation never requires it.
func Locate(c *gin.Context, extractor *location.Extractor) {
	var request struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, extractor.Extract(c.Request.Context(), request.Text))
}
