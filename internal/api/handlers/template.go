package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"papergenius/internal/models"
)

type createTemplateRequest struct {
	Name          string                 `json:"name" binding:"required"`
	Description   string                 `json:"description"`
	InstituteType string                 `json:"instituteType" binding:"required"`
	InstituteName string                 `json:"instituteName"`
	Evaluation    string                 `json:"evaluation"`
	Duration      int                    `json:"duration"`
	PaperCode     string                 `json:"paper_code"`
	TotalMarks    int                    `json:"total_marks"`
	Sections      []models.SectionDetail `json:"sections" binding:"required,dive"`
	UserID        string                 `json:"user_id" binding:"required"`
}

// HandleCreateTemplate creates a question paper template.
func (h *Handler) HandleCreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	template := &models.Template{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Description:   req.Description,
		InstituteType: req.InstituteType,
		InstituteName: req.InstituteName,
		Evaluation:    req.Evaluation,
		Duration:      req.Duration,
		PaperCode:     req.PaperCode,
		TotalMarks:    req.TotalMarks,
		Sections:      req.Sections,
		UserID:        req.UserID,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Store.CreateTemplate(c.Request.Context(), template); err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("template created", "template_id", template.ID,
		"user_id", template.UserID, "sections", len(template.Sections))
	c.JSON(http.StatusOK, gin.H{"id": template.ID, "message": "Template created successfully"})
}

// HandleListTemplates returns all templates for a user.
func (h *Handler) HandleListTemplates(c *gin.Context) {
	templates, err := h.Store.ListTemplates(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if templates == nil {
		templates = []models.Template{}
	}
	c.JSON(http.StatusOK, templates)
}
