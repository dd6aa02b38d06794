// Package handlers contains the HTTP handlers for the PaperGenius API.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"papergenius/internal/models"
	"papergenius/internal/paper"
	"papergenius/internal/question"
	"papergenius/internal/store"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handler contains the API handlers' dependencies.
type Handler struct {
	Store  store.Store
	Paper  *paper.Service
	Gemini question.TextModel // nil when no credential is configured
	Logger *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(st store.Store, paperService *paper.Service, gemini question.TextModel, logger *slog.Logger) *Handler {
	return &Handler{
		Store:  st,
		Paper:  paperService,
		Gemini: gemini,
		Logger: logger,
	}
}

// HandleRoot reports the service banner.
func (h *Handler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "PaperGenius API is running!",
		"version": Version,
	})
}

// HandleTestGemini probes the LLM connection.
func (h *Handler) HandleTestGemini(c *gin.Context) {
	if h.Gemini == nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "Gemini API key not configured"})
		return
	}

	response, err := h.Gemini.GenerateText(c.Request.Context(),
		"Hello, this is a test. Please respond with 'Hello from Gemini!'")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "Gemini API error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Gemini API is working",
		"response": response,
	})
}

// respondError maps the error taxonomy to HTTP status codes: not-found to
// 404, validation to 400, everything else to 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErr *paper.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: validationErr.Message})
	default:
		h.Logger.Error("internal error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
}
