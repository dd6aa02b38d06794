// Package paper orchestrates question paper generation: it resolves a
// folder's unit content against a template's sections, drives the question
// generator per unit spec, and persists the assembled paper as an immutable
// snapshot.
package paper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"papergenius/internal/models"
	"papergenius/internal/question"
	"papergenius/internal/store"
)

// QuestionGenerator produces one batch of questions per unit spec. It never
// fails; degraded batches carry fallback provenance.
type QuestionGenerator interface {
	Generate(ctx context.Context, content string, n int, questionsType models.QuestionType, marks int) question.Result
}

// GenerateRequest is a request to generate one question paper.
type GenerateRequest struct {
	FolderID      string   `json:"folder_id" binding:"required"`
	TemplateID    string   `json:"template_id" binding:"required"`
	SelectedUnits []string `json:"selected_units" binding:"required"`
	PaperName     string   `json:"paper_name" binding:"required"`
	UserID        string   `json:"user_id" binding:"required"`
}

// Service generates and persists question papers.
type Service struct {
	store     store.Store
	generator QuestionGenerator
	logger    *slog.Logger
}

func NewService(st store.Store, generator QuestionGenerator, logger *slog.Logger) *Service {
	return &Service{
		store:     st,
		generator: generator,
		logger:    logger,
	}
}

// Generate builds a complete question paper from the request's folder,
// template, and selected units, persists it, and returns the snapshot.
// Either a full paper is persisted or nothing is.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*models.QuestionPaper, error) {
	folder, err := s.store.GetFolder(ctx, req.FolderID)
	if err != nil {
		return nil, fmt.Errorf("loading folder %s: %w", req.FolderID, err)
	}
	template, err := s.store.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", req.TemplateID, err)
	}

	unitContents := collectUnitContents(folder.Files, req.SelectedUnits)
	if !hasMeaningfulContent(unitContents) {
		return nil, newValidationError("no meaningful content found for any of the selected units; check unit names and ensure files have been uploaded and processed")
	}

	paperSections := make([]models.PaperSection, 0, len(template.Sections))
	totalQuestions := 0

	for _, section := range template.Sections {
		var questions []models.Question
		sawAI := false
		sawFallback := false

		for _, spec := range section.QuestionSpecs {
			if spec.NumQuestions == 0 {
				continue
			}
			content, ok := unitContents[spec.UnitName]
			if !ok || strings.TrimSpace(content) == "" {
				// A misconfigured unit name contributes nothing rather
				// than failing the whole request.
				s.logger.Warn("no content for unit, skipping",
					"unit", spec.UnitName, "section", section.SectionName)
				continue
			}

			result := s.generator.Generate(ctx, content, spec.NumQuestions,
				section.QuestionsType, section.MarksForEachQuestion)
			switch result.Provenance {
			case question.ProvenanceFallback:
				sawFallback = true
			default:
				sawAI = true
			}

			for i := range result.Questions {
				result.Questions[i].UnitNameSource = spec.UnitName
				result.Questions[i].SectionNameSource = section.SectionName
			}
			questions = append(questions, result.Questions...)
		}

		paperSections = append(paperSections, models.PaperSection{
			SectionName:           section.SectionName,
			SectionType:           section.SectionType,
			QuestionsType:         section.QuestionsType,
			TotalQuestions:        section.TotalQuestions,
			QuestionsToBeAnswered: section.QuestionsToBeAnswered,
			MarksForEachQuestion:  section.MarksForEachQuestion,
			CustomInstruction:     section.CustomInstruction,
			Questions:             questions,
			UnitDistributionSpecs: section.QuestionSpecs,
			Generation:            generationMode(sawAI, sawFallback),
		})
		totalQuestions += len(questions)
	}

	if totalQuestions == 0 {
		return nil, newValidationError("no questions were generated for any section; check content and template configuration")
	}

	paper := &models.QuestionPaper{
		ID:            uuid.New().String(),
		Name:          req.PaperName,
		UserID:        req.UserID,
		FolderID:      req.FolderID,
		TemplateID:    req.TemplateID,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		SelectedUnits: req.SelectedUnits,
		TemplateInfo: models.TemplateDetails{
			Name:              template.Name,
			Description:       template.Description,
			InstituteType:     template.InstituteType,
			InstituteName:     template.InstituteName,
			Evaluation:        template.Evaluation,
			Duration:          template.Duration,
			PaperCode:         template.PaperCode,
			OverallTotalMarks: template.TotalMarks,
		},
		PaperSections: paperSections,
	}

	if err := s.store.CreatePaper(ctx, paper); err != nil {
		return nil, fmt.Errorf("persisting question paper: %w", err)
	}

	s.logger.Info("generated question paper",
		"paper_id", paper.ID, "sections", len(paperSections), "questions", totalQuestions)
	return paper, nil
}

// collectUnitContents maps each selected unit name to the concatenation of
// all its files' extracted text, blank-line separated.
func collectUnitContents(files []models.File, selectedUnits []string) map[string]string {
	selected := make(map[string]bool, len(selectedUnits))
	for _, u := range selectedUnits {
		selected[u] = true
	}

	contents := make(map[string]string)
	for _, file := range files {
		if !selected[file.UnitName] {
			continue
		}
		contents[file.UnitName] += file.ExtractedText + "\n\n"
	}
	return contents
}

func hasMeaningfulContent(unitContents map[string]string) bool {
	for _, content := range unitContents {
		if strings.TrimSpace(content) != "" {
			return true
		}
	}
	return false
}

func generationMode(sawAI, sawFallback bool) models.GenerationMode {
	switch {
	case sawAI && sawFallback:
		return models.GenerationMixed
	case sawFallback:
		return models.GenerationFallback
	case sawAI:
		return models.GenerationAI
	default:
		return ""
	}
}
