package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/krispatl/mootie/internal/pkg/response"
	"github.com/krispatl/mootie/internal/rubric"
)

// ScoreHandler serves the local heuristic endpoints. No provider calls.
type ScoreHandler struct{}

func NewScoreHandler() *ScoreHandler {
	return &ScoreHandler{}
}

type scoreRequest struct {
	Text string `json:"text"`
}

func (h *ScoreHandler) Score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "missing text field")
		return
	}
	response.Success(c, rubric.Evaluate(req.Text))
}

type notesRequest struct {
	Transcript []rubric.Turn `json:"transcript"`
}

func (h *ScoreHandler) Notes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid request body")
		return
	}
	response.Success(c, gin.H{"notes": rubric.CoachingNotes(req.Transcript)})
}
