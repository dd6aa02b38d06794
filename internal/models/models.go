package models

// FolderType is the organizational strategy for a folder.
type FolderType string

const (
	FolderTypeUnitWise FolderType = "unit-wise"
	FolderTypeSyllabus FolderType = "syllabus"
)

// QuestionType enumerates the supported question formats.
type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "MCQ"
	QuestionTypeShortAnswer QuestionType = "Short Answer"
	QuestionTypeLongAnswer  QuestionType = "Long Answer"
	QuestionTypeFillBlanks  QuestionType = "Fill in the Blanks"
	QuestionTypeTrueFalse   QuestionType = "True/False"
)

// DefaultUnitName is assigned to uploaded files that carry no unit label.
const DefaultUnitName = "general"

// File is a single uploaded document inside a folder. Immutable once created.
// ExtractedText may hold an error description when extraction failed; consumers
// must tolerate that.
type File struct {
	ID            string `json:"id" bson:"id"`
	Filename      string `json:"filename" bson:"filename"`
	UnitName      string `json:"unit_name" bson:"unit_name"`
	ContentType   string `json:"content_type" bson:"content_type"`
	ExtractedText string `json:"extracted_text" bson:"extracted_text"`
	UploadedAt    string `json:"uploaded_at" bson:"uploaded_at"`
}

// Folder groups uploaded files for one user. Files are append-only.
type Folder struct {
	ID        string     `json:"id" bson:"id"`
	Name      string     `json:"name" bson:"name"`
	Type      FolderType `json:"type" bson:"type"`
	UserID    string     `json:"user_id" bson:"user_id"`
	CreatedAt string     `json:"created_at" bson:"created_at"`
	Files     []File     `json:"files" bson:"files"`
}

// UnitQuestionSpec maps a unit name to the number of questions to draw from it.
type UnitQuestionSpec struct {
	UnitName     string `json:"unit_name" bson:"unit_name" binding:"required"`
	NumQuestions int    `json:"num_questions" bson:"num_questions"`
}

// SectionDetail describes one block of uniform-type questions in a template.
// The sum of NumQuestions across QuestionSpecs is expected to equal
// TotalQuestions but is not enforced.
type SectionDetail struct {
	SectionName           string             `json:"section_name" bson:"section_name" binding:"required"`
	SectionType           string             `json:"section_type" bson:"section_type"`
	QuestionsType         QuestionType       `json:"questions_type" bson:"questions_type" binding:"required"`
	TotalQuestions        int                `json:"total_questions" bson:"total_questions"`
	QuestionsToBeAnswered int                `json:"questions_to_be_answered" bson:"questions_to_be_answered"`
	MarksForEachQuestion  int                `json:"marks_for_each_question" bson:"marks_for_each_question"`
	CustomInstruction     string             `json:"custom_instruction" bson:"custom_instruction"`
	QuestionSpecs         []UnitQuestionSpec `json:"question_specs" bson:"question_specs" binding:"required,dive"`
}

// Template is a reusable exam paper definition.
type Template struct {
	ID            string          `json:"id" bson:"id"`
	Name          string          `json:"name" bson:"name"`
	Description   string          `json:"description" bson:"description"`
	InstituteType string          `json:"instituteType" bson:"institute_type"`
	InstituteName string          `json:"instituteName" bson:"institute_name"`
	Evaluation    string          `json:"evaluation" bson:"evaluation"`
	Duration      int             `json:"duration" bson:"duration"`
	PaperCode     string          `json:"paper_code" bson:"paper_code"`
	TotalMarks    int             `json:"total_marks" bson:"total_marks"`
	Sections      []SectionDetail `json:"sections" bson:"sections"`
	UserID        string          `json:"user_id" bson:"user_id"`
	CreatedAt     string          `json:"created_at" bson:"created_at"`
}

// Question is a single generated question, tagged with the unit and section it
// was generated for.
type Question struct {
	Question          string       `json:"question" bson:"question"`
	Type              QuestionType `json:"type" bson:"type"`
	Difficulty        string       `json:"difficulty" bson:"difficulty"`
	Marks             int          `json:"marks" bson:"marks"`
	Options           []string     `json:"options,omitempty" bson:"options,omitempty"`
	Answer            string       `json:"answer,omitempty" bson:"answer,omitempty"`
	UnitNameSource    string       `json:"unit_name_source" bson:"unit_name_source"`
	SectionNameSource string       `json:"section_name_source" bson:"section_name_source"`
}

// GenerationMode records how a paper section's questions were produced.
type GenerationMode string

const (
	GenerationAI       GenerationMode = "ai"
	GenerationFallback GenerationMode = "fallback"
	GenerationMixed    GenerationMode = "mixed"
)

// PaperSection is a template section frozen at generation time together with
// the questions produced for it.
type PaperSection struct {
	SectionName           string             `json:"section_name" bson:"section_name"`
	SectionType           string             `json:"section_type" bson:"section_type"`
	QuestionsType         QuestionType       `json:"questions_type" bson:"questions_type"`
	TotalQuestions        int                `json:"total_questions_in_section" bson:"total_questions_in_section"`
	QuestionsToBeAnswered int                `json:"questions_to_be_answered_in_section" bson:"questions_to_be_answered_in_section"`
	MarksForEachQuestion  int                `json:"marks_for_each_question_in_section" bson:"marks_for_each_question_in_section"`
	CustomInstruction     string             `json:"custom_instruction_for_section" bson:"custom_instruction_for_section"`
	Questions             []Question         `json:"questions" bson:"questions"`
	UnitDistributionSpecs []UnitQuestionSpec `json:"unit_distribution_specs" bson:"unit_distribution_specs"`
	Generation            GenerationMode     `json:"generation,omitempty" bson:"generation,omitempty"`
}

// TemplateDetails is the snapshot of template display metadata embedded in a
// generated paper, so later template edits do not alter existing papers.
type TemplateDetails struct {
	Name              string `json:"name" bson:"name"`
	Description       string `json:"description" bson:"description"`
	InstituteType     string `json:"instituteType" bson:"institute_type"`
	InstituteName     string `json:"instituteName" bson:"institute_name"`
	Evaluation        string `json:"evaluation" bson:"evaluation"`
	Duration          int    `json:"duration" bson:"duration"`
	PaperCode         string `json:"paper_code" bson:"paper_code"`
	OverallTotalMarks int    `json:"overall_total_marks_from_template" bson:"overall_total_marks_from_template"`
}

// QuestionPaper is the full generated paper. Created once, read-only after.
type QuestionPaper struct {
	ID            string          `json:"id" bson:"id"`
	Name          string          `json:"name" bson:"name"`
	UserID        string          `json:"user_id" bson:"user_id"`
	FolderID      string          `json:"folder_id" bson:"folder_id"`
	TemplateID    string          `json:"template_id" bson:"template_id"`
	GeneratedAt   string          `json:"generated_at" bson:"generated_at"`
	SelectedUnits []string        `json:"selected_units_for_generation" bson:"selected_units_for_generation"`
	TemplateInfo  TemplateDetails `json:"template_details" bson:"template_details"`
	PaperSections []PaperSection  `json:"paper_sections" bson:"paper_sections"`
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
