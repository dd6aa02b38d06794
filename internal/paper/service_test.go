package paper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/time/rate"

	"papergenius/internal/models"
	"papergenius/internal/question"
	"papergenius/internal/store"
)

type fakeStore struct {
	folders   map[string]*models.Folder
	templates map[string]*models.Template
	papers    map[string]*models.QuestionPaper
	created   []*models.QuestionPaper
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		folders:   make(map[string]*models.Folder),
		templates: make(map[string]*models.Template),
		papers:    make(map[string]*models.QuestionPaper),
	}
}

func (f *fakeStore) CreateFolder(ctx context.Context, folder *models.Folder) error {
	f.folders[folder.ID] = folder
	return nil
}

func (f *fakeStore) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return folder, nil
}

func (f *fakeStore) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	return nil, nil
}

func (f *fakeStore) AppendFile(ctx context.Context, folderID string, file models.File) error {
	folder, ok := f.folders[folderID]
	if !ok {
		return store.ErrNotFound
	}
	folder.Files = append(folder.Files, file)
	return nil
}

func (f *fakeStore) CreateTemplate(ctx context.Context, template *models.Template) error {
	f.templates[template.ID] = template
	return nil
}

func (f *fakeStore) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	template, ok := f.templates[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return template, nil
}

func (f *fakeStore) ListTemplates(ctx context.Context, userID string) ([]models.Template, error) {
	return nil, nil
}

func (f *fakeStore) CreatePaper(ctx context.Context, paper *models.QuestionPaper) error {
	f.papers[paper.ID] = paper
	f.created = append(f.created, paper)
	return nil
}

func (f *fakeStore) GetPaper(ctx context.Context, id string) (*models.QuestionPaper, error) {
	paper, ok := f.papers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return paper, nil
}

func (f *fakeStore) ListPapers(ctx context.Context, userID string) ([]models.QuestionPaper, error) {
	return nil, nil
}

// fakeGenerator returns a fixed batch per call and records the units it was
// asked about through the content it received.
type fakeGenerator struct {
	result   question.Result
	contents []string
}

func (g *fakeGenerator) Generate(ctx context.Context, content string, n int, questionsType models.QuestionType, marks int) question.Result {
	g.contents = append(g.contents, content)
	return g.result
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedFolder(st *fakeStore, files ...models.File) *models.Folder {
	folder := &models.Folder{
		ID:     "folder-1",
		Name:   "Networks",
		Type:   models.FolderTypeUnitWise,
		UserID: "user-1",
		Files:  files,
	}
	st.folders[folder.ID] = folder
	return folder
}

func seedTemplate(st *fakeStore, sections ...models.SectionDetail) *models.Template {
	template := &models.Template{
		ID:            "template-1",
		Name:          "Midterm",
		InstituteType: "college",
		TotalMarks:    50,
		Sections:      sections,
		UserID:        "user-1",
	}
	st.templates[template.ID] = template
	return template
}

func baseRequest() GenerateRequest {
	return GenerateRequest{
		FolderID:      "folder-1",
		TemplateID:    "template-1",
		SelectedUnits: []string{"Unit 1"},
		PaperName:     "Midterm Paper",
		UserID:        "user-1",
	}
}

func TestGenerateFolderNotFound(t *testing.T) {
	st := newFakeStore()
	svc := NewService(st, &fakeGenerator{}, testLogger())

	_, err := svc.Generate(context.Background(), baseRequest())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want wrapped store.ErrNotFound", err)
	}
}

func TestGenerateTemplateNotFound(t *testing.T) {
	st := newFakeStore()
	seedFolder(st, models.File{ID: "f1", UnitName: "Unit 1", ExtractedText: "tcp handshake"})
	svc := NewService(st, &fakeGenerator{}, testLogger())

	_, err := svc.Generate(context.Background(), baseRequest())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want wrapped store.ErrNotFound", err)
	}
}

func TestGenerateNoMeaningfulContent(t *testing.T) {
	st := newFakeStore()
	seedFolder(st,
		models.File{ID: "f1", UnitName: "Unit 1", ExtractedText: "   \n  "},
		models.File{ID: "f2", UnitName: "Unit 2", ExtractedText: "real content not selected"},
	)
	seedTemplate(st, models.SectionDetail{
		SectionName:   "Section A",
		QuestionsType: models.QuestionTypeMCQ,
		QuestionSpecs: []models.UnitQuestionSpec{{UnitName: "Unit 1", NumQuestions: 2}},
	})
	svc := NewService(st, &fakeGenerator{}, testLogger())

	_, err := svc.Generate(context.Background(), baseRequest())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(st.created) != 0 {
		t.Error("a paper was persisted despite validation failure")
	}
}

func TestGenerateNoQuestionsProduced(t *testing.T) {
	st := newFakeStore()
	seedFolder(st, models.File{ID: "f1", UnitName: "Unit 1", ExtractedText: "tcp handshake"})
	seedTemplate(st, models.SectionDetail{
		SectionName:   "Section A",
		QuestionsType: models.QuestionTypeMCQ,
		QuestionSpecs: []models.UnitQuestionSpec{{UnitName: "Unit 1", NumQuestions: 0}},
	})
	svc := NewService(st, &fakeGenerator{}, testLogger())

	_, err := svc.Generate(context.Background(), baseRequest())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(st.created) != 0 {
		t.Error("a paper was persisted despite validation failure")
	}
}

func TestGenerateSkipsUnitsWithoutContent(t *testing.T) {
	st := newFakeStore()
	seedFolder(st, models.File{ID: "f1", UnitName: "Unit 1", ExtractedText: "tcp handshake"})
	seedTemplate(st, models.SectionDetail{
		SectionName:   "Section A",
		QuestionsType: models.QuestionTypeMCQ,
		QuestionSpecs: []models.UnitQuestionSpec{
			{UnitName: "Unit 1", NumQuestions: 1},
			{UnitName: "Unit 9", NumQuestions: 3}, // not in the folder
		},
	})
	gen := &fakeGenerator{result: question.Result{
		Questions:  []models.Question{{Question: "q1", Type: models.QuestionTypeMCQ}},
		Provenance: question.ProvenanceAI,
	}}
	svc := NewService(st, gen, testLogger())

	req := baseRequest()
	req.SelectedUnits = []string{"Unit 1", "Unit 9"}
	paper, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(gen.contents) != 1 {
		t.Errorf("generator called %d times, want 1 (missing unit skipped)", len(gen.contents))
	}
	if len(paper.PaperSections[0].Questions) != 1 {
		t.Errorf("got %d questions, want 1", len(paper.PaperSections[0].Questions))
	}
}

func TestGenerateTagsQuestionSources(t *testing.T) {
	st := newFakeStore()
	seedFolder(st, models.File{ID: "f1", UnitName: "Unit 1", ExtractedText: "tcp handshake"})
	seedTemplate(st, models.SectionDetail{
		SectionName:   "Section A",
		QuestionsType: models.QuestionTypeMCQ,
		QuestionSpecs: []models.UnitQuestionSpec{{UnitName: "Unit 1", NumQuestions: 2}},
	})
	gen := &fakeGenerator{result: question.Result{
		Questions: []models.Question{
			{Question: "q1", Type: models.QuestionTypeMCQ},
			{Question: "q2", Type: models.QuestionTypeMCQ},
		},
		Provenance: question.ProvenanceAI,
	}}
	svc := NewService(st, gen, testLogger())

	paper, err := svc.Generate(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, q := range paper.PaperSections[0].Questions {
		if q.UnitNameSource != "Unit 1" {
			t.Errorf("question %d unit source = %q, want Unit 1", i, q.UnitNameSource)
		}
		if q.SectionNameSource != "Section A" {
			t.Errorf("question %d section source = %q, want Section A", i, q.SectionNameSource)
		}
	}
}

func TestGenerateGenerationModes(t *testing.T) {
	tests := []struct {
		name       string
		provenance question.Provenance
		want       models.GenerationMode
	}{
		{name: "all ai", provenance: question.ProvenanceAI, want: models.GenerationAI},
		{name: "all fallback", provenance: question.ProvenanceFallback, want: models.GenerationFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newFakeStore()
			seedFolder(st, models.File{ID: "f1", UnitName: "Unit 1", ExtractedText: "tcp handshake"})
			seedTemplate(st, models.SectionDetail{
				SectionName:   "Section A",
				QuestionsType: models.QuestionTypeMCQ,
				QuestionSpecs: []models.UnitQuestionSpec{{UnitName: "Unit 1", NumQuestions: 1}},
			})
			gen := &fakeGenerator{result: question.Result{
				Questions:  []models.Question{{Question: "q1"}},
				Provenance: tt.provenance,
			}}
			svc := NewService(st, gen, testLogger())

			paper, err := svc.Generate(context.Background(), baseRequest())
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if got := paper.PaperSections[0].Generation; got != tt.want {
				t.Errorf("generation mode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateSnapshotsTemplateDetails(t *testing.T) {
	st := newFakeStore()
	seedFolder(st, models.File{ID: "f1", UnitName: "Unit 1", ExtractedText: "tcp handshake"})
	template := seedTemplate(st, models.SectionDetail{
		SectionName:          "Section A",
		QuestionsType:        models.QuestionTypeShortAnswer,
		MarksForEachQuestion: 5,
		QuestionSpecs:        []models.UnitQuestionSpec{{UnitName: "Unit 1", NumQuestions: 1}},
	})
	template.Duration = 120
	template.PaperCode = "CS301"
	gen := &fakeGenerator{result: question.Result{
		Questions:  []models.Question{{Question: "q1"}},
		Provenance: question.ProvenanceAI,
	}}
	svc := NewService(st, gen, testLogger())

	paper, err := svc.Generate(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	info := paper.TemplateInfo
	if info.Name != "Midterm" || info.Duration != 120 || info.PaperCode != "CS301" || info.OverallTotalMarks != 50 {
		t.Errorf("template snapshot mismatch: %+v", info)
	}
	if paper.ID == "" || paper.GeneratedAt == "" {
		t.Error("paper missing id or timestamp")
	}
	if len(st.created) != 1 {
		t.Errorf("persisted %d papers, want exactly 1", len(st.created))
	}
}

// End to end through the real generator with no model configured: every
// section degrades to the synthesizer and the paper reports it.
func TestGenerateEndToEndWithFallbackGenerator(t *testing.T) {
	st := newFakeStore()
	seedFolder(st, models.File{
		ID:            "f1",
		UnitName:      "Unit 1",
		ExtractedText: "database systems store data for software applications",
	})
	seedTemplate(st, models.SectionDetail{
		SectionName:          "Section A",
		QuestionsType:        models.QuestionTypeMCQ,
		TotalQuestions:       3,
		MarksForEachQuestion: 2,
		QuestionSpecs:        []models.UnitQuestionSpec{{UnitName: "Unit 1", NumQuestions: 3}},
	})
	gen := question.NewGenerator(nil, rate.NewLimiter(rate.Inf, 1), testLogger())
	svc := NewService(st, gen, testLogger())

	paper, err := svc.Generate(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(paper.PaperSections) != 1 {
		t.Fatalf("got %d sections, want 1", len(paper.PaperSections))
	}
	section := paper.PaperSections[0]
	if len(section.Questions) != 3 {
		t.Errorf("got %d questions, want 3", len(section.Questions))
	}
	if section.Generation != models.GenerationFallback {
		t.Errorf("generation mode = %q, want %q", section.Generation, models.GenerationFallback)
	}
	for i, q := range section.Questions {
		if q.UnitNameSource != "Unit 1" {
			t.Errorf("question %d unit source = %q, want Unit 1", i, q.UnitNameSource)
		}
	}

	stored, err := st.GetPaper(context.Background(), paper.ID)
	if err != nil {
		t.Fatalf("GetPaper: %v", err)
	}
	if stored.Name != "Midterm Paper" {
		t.Errorf("stored paper name = %q", stored.Name)
	}
}
