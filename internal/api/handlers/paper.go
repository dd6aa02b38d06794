package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"papergenius/internal/models"
	"papergenius/internal/paper"
)

// HandleGeneratePaper generates a question paper from a folder and template.
func (h *Handler) HandleGeneratePaper(c *gin.Context) {
	var req paper.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	generated, err := h.Paper.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generated)
}

// HandleGetPaper fetches a single question paper by its ID.
func (h *Handler) HandleGetPaper(c *gin.Context) {
	found, err := h.Store.GetPaper(c.Request.Context(), c.Param("paperId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// HandleListPapers returns all generated papers for a user.
func (h *Handler) HandleListPapers(c *gin.Context) {
	papers, err := h.Store.ListPapers(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if papers == nil {
		papers = []models.QuestionPaper{}
	}
	c.JSON(http.StatusOK, papers)
}
