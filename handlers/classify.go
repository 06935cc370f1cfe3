package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jorget15/UnityAid/classify"
	"github.com/jorget15/UnityAid/conversation"
	"github.com/jorget15/UnityAid/types"
)

// ClassifyPriority scores freeform text. When the heuristic is not confident
// enough the response carries clarifying questions for a follow-up call.
func ClassifyPriority(c *gin.Context, classifier classify.PriorityClassifier) {
	var request struct {
		Input string `json:"input" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := classify.WithFallback(c.Request.Context(), classifier, request.Input)

	response := gin.H{
		"classification":      result,
		"needs_clarification": false,
	}
	if conversation.NeedsClarification(result) {
		response["needs_clarification"] = true
		response["clarifying_questions"] = conversation.GenerateQuestions(result, request.Input)
	}

	c.JSON(http.StatusOK, response)
}

// ClassifyWithAnswers reclassifies a description after the caller answered
// the clarifying questions.
func ClassifyWithAnswers(c *gin.Context) {
	var request struct {
		Description string         `json:"description" binding:"required"`
		QAPairs     []types.QAPair `json:"qa_pairs" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := types.ConversationSession{
		OriginalDescription: request.Description,
		QAPairs:             request.QAPairs,
	}
	result := conversation.Reclassify(session.OriginalDescription, session.QAPairs)
	session.BasePriority = result.BasePriority
	session.Boost = result.QABoost

	c.JSON(http.StatusOK, gin.H{"classification": result, "session": session})
}
