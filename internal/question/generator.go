// Package question produces exam questions from course content, either
// through a configured LLM or, when that path is unavailable or unparsable,
// through a deterministic fallback synthesizer. Generation never returns an
// error to its caller; every failure degrades to the synthesizer and is
// recorded on the result's provenance.
package question

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"papergenius/internal/models"
)

// TextModel is the single LLM capability the generator needs: prompt in,
// free text out. A nil TextModel means no credential is configured.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Provenance records which path produced a batch of questions.
type Provenance string

const (
	ProvenanceAI       Provenance = "ai"
	ProvenanceFallback Provenance = "fallback"
)

// Result is one generation batch. FallbackReason is set only when
// Provenance is ProvenanceFallback.
type Result struct {
	Questions      []models.Question
	Provenance     Provenance
	FallbackReason string
}

const (
	// promptContentLimit bounds how much unit content is embedded in a
	// prompt, to keep token usage predictable.
	promptContentLimit = 1500

	// providerInterval is the minimum spacing between provider calls,
	// shared across all in-flight requests.
	providerInterval = 4 * time.Second
)

// NewLimiter returns the shared token bucket that paces provider calls. One
// token per call; waiting blocks only the calling goroutine.
func NewLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(providerInterval), 1)
}

// Generator builds prompts, invokes the LLM, and parses its output.
type Generator struct {
	model   TextModel
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewGenerator creates a Generator. model may be nil when no LLM credential
// is configured; every batch then comes from the fallback synthesizer.
func NewGenerator(model TextModel, limiter *rate.Limiter, logger *slog.Logger) *Generator {
	return &Generator{
		model:   model,
		limiter: limiter,
		logger:  logger,
	}
}

// Generate returns n questions of the given type for the given content.
// n == 0 short-circuits to an empty batch with no provider call and no
// limiter wait.
func (g *Generator) Generate(ctx context.Context, content string, n int, questionsType models.QuestionType, marks int) Result {
	if n == 0 {
		return Result{Provenance: ProvenanceAI}
	}
	if g.model == nil {
		return g.degrade(content, n, "llm credential not configured")
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return g.degrade(content, n, fmt.Sprintf("rate limiter wait aborted: %v", err))
	}

	prompt := buildPrompt(content, n, questionsType, marks)
	raw, err := g.model.GenerateText(ctx, prompt)
	if err != nil {
		return g.degrade(content, n, fmt.Sprintf("llm call failed: %v", err))
	}

	questions, err := parseQuestions(raw, questionsType, marks)
	if err != nil {
		return g.degrade(content, n, fmt.Sprintf("llm response unusable: %v", err))
	}

	g.logger.Info("generated questions with llm", "requested", n, "received", len(questions), "type", string(questionsType))
	return Result{Questions: questions, Provenance: ProvenanceAI}
}

func (g *Generator) degrade(content string, n int, reason string) Result {
	g.logger.Warn("degrading to fallback synthesizer", "reason", reason, "requested", n)
	return Result{
		Questions:      Fallback(content, n),
		Provenance:     ProvenanceFallback,
		FallbackReason: reason,
	}
}

// buildPrompt assembles the generation prompt: an exact-count instruction, a
// bounded prefix of the content, and a worked JSON example whose shape
// depends on the question type.
func buildPrompt(content string, n int, questionsType models.QuestionType, marks int) string {
	example := map[string]any{
		"question":   "Question text here",
		"type":       string(questionsType),
		"difficulty": "Medium",
		"marks":      marks,
	}
	switch questionsType {
	case models.QuestionTypeMCQ:
		example["options"] = []string{"A. Option 1", "B. Option 2", "C. Option 3", "D. Option 4"}
		example["answer"] = "A. Option 1"
	case models.QuestionTypeTrueFalse:
		example["options"] = []string{"True", "False"}
		example["answer"] = "True"
	case models.QuestionTypeFillBlanks:
		example["answer"] = "The correct answer phrase"
	default:
		example["answer"] = "A model answer or key points for evaluation."
	}
	exampleJSON, _ := json.MarshalIndent([]any{example}, "", "    ")

	snippet := content
	if len(snippet) > promptContentLimit {
		snippet = snippet[:promptContentLimit]
	}

	return fmt.Sprintf(`Based on the following educational content, generate exactly %d questions of type '%s'.
Ensure the output is a valid JSON array.

Content: %s...

Generate questions with this exact JSON structure for each question in the array:
%s

Make questions educational and relevant to the content. For 'MCQ' or 'True/False', provide options and a single correct answer. For other types, provide a model answer.
If the question type is 'Fill in the Blanks', the question text should clearly indicate where the blank is (e.g., using '___').`,
		n, questionsType, snippet, exampleJSON)
}

// rawQuestion is the strict schema an LLM question must satisfy.
type rawQuestion struct {
	Question   string   `json:"question"`
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Marks      int      `json:"marks"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
}

// parseQuestions locates the first '[' and last ']' of the response, decodes
// the span between them against the strict question schema, and normalizes
// fields the model left blank. Any shape mismatch is a parse failure.
func parseQuestions(response string, questionsType models.QuestionType, marks int) ([]models.Question, error) {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	decoder := json.NewDecoder(strings.NewReader(response[start : end+1]))
	decoder.DisallowUnknownFields()

	var raw []rawQuestion
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding question array: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("response contained an empty question array")
	}

	questions := make([]models.Question, 0, len(raw))
	for i, r := range raw {
		if strings.TrimSpace(r.Question) == "" {
			return nil, fmt.Errorf("question %d has no text", i)
		}
		q := models.Question{
			Question:   r.Question,
			Type:       models.QuestionType(r.Type),
			Difficulty: r.Difficulty,
			Marks:      r.Marks,
			Options:    r.Options,
			Answer:     r.Answer,
		}
		if q.Type == "" {
			q.Type = questionsType
		}
		if q.Difficulty == "" {
			q.Difficulty = "Medium"
		}
		if q.Marks == 0 {
			q.Marks = marks
		}
		questions = append(questions, q)
	}
	return questions, nil
}
