package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"papergenius/internal/extract"
	"papergenius/internal/models"
)

type createFolderRequest struct {
	Name   string            `json:"name" binding:"required"`
	Type   models.FolderType `json:"type" binding:"required,oneof=unit-wise syllabus"`
	UserID string            `json:"user_id" binding:"required"`
}

// HandleCreateFolder creates a new folder for organizing files.
func (h *Handler) HandleCreateFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	folder := &models.Folder{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Type:      req.Type,
		UserID:    req.UserID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Files:     []models.File{},
	}
	if err := h.Store.CreateFolder(c.Request.Context(), folder); err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("folder created", "folder_id", folder.ID, "user_id", folder.UserID)
	c.JSON(http.StatusOK, gin.H{"id": folder.ID, "message": "Folder created successfully"})
}

// HandleListFolders returns all folders for a user.
func (h *Handler) HandleListFolders(c *gin.Context) {
	folders, err := h.Store.ListFolders(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	c.JSON(http.StatusOK, folders)
}

// HandleUploadFile accepts a multipart upload, extracts its text
// synchronously, and appends the file to the folder.
func (h *Handler) HandleUploadFile(c *gin.Context) {
	folderID := c.Param("folderId")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required: " + err.Error()})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, fmt.Errorf("opening uploaded file %s: %w", fileHeader.Filename, err))
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		h.respondError(c, fmt.Errorf("reading uploaded file %s: %w", fileHeader.Filename, err))
		return
	}

	unitName := c.PostForm("unit_name")
	if unitName == "" {
		unitName = models.DefaultUnitName
	}

	file := models.File{
		ID:            uuid.New().String(),
		Filename:      fileHeader.Filename,
		UnitName:      unitName,
		ContentType:   fileHeader.Header.Get("Content-Type"),
		ExtractedText: extract.Text(fileHeader.Filename, content),
		UploadedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.Store.AppendFile(c.Request.Context(), folderID, file); err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("file uploaded", "folder_id", folderID, "file_id", file.ID,
		"filename", file.Filename, "unit", file.UnitName)
	c.JSON(http.StatusOK, gin.H{"message": "File uploaded and processed successfully", "file_id": file.ID})
}
