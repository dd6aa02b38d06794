package question

import (
	"reflect"
	"strings"
	"testing"

	"papergenius/internal/models"
)

func TestFallbackCount(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "zero", n: 0, want: 0},
		{name: "negative", n: -3, want: 0},
		{name: "one", n: 1, want: 1},
		{name: "five", n: 5, want: 5},
		{name: "exactly ten", n: 10, want: 10},
		{name: "capped at ten", n: 25, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback("some course content about algorithms", tt.n)
			if len(got) != tt.want {
				t.Errorf("Fallback(n=%d) returned %d questions, want %d", tt.n, len(got), tt.want)
			}
		})
	}
}

func TestFallbackCyclesTypeAndDifficulty(t *testing.T) {
	questions := Fallback("content with no matching vocabulary", 9)

	wantTypes := []models.QuestionType{
		models.QuestionTypeMCQ, models.QuestionTypeShortAnswer, models.QuestionTypeLongAnswer,
	}
	wantDifficulties := []string{"Easy", "Medium", "Hard"}
	wantMarks := []int{2, 5, 10}

	for i, q := range questions {
		if q.Type != wantTypes[i%3] {
			t.Errorf("question %d type = %q, want %q", i, q.Type, wantTypes[i%3])
		}
		if q.Difficulty != wantDifficulties[i%3] {
			t.Errorf("question %d difficulty = %q, want %q", i, q.Difficulty, wantDifficulties[i%3])
		}
		if q.Marks != wantMarks[i%3] {
			t.Errorf("question %d marks = %d, want %d", i, q.Marks, wantMarks[i%3])
		}
	}
}

func TestFallbackMCQAnswerIsFirstOption(t *testing.T) {
	questions := Fallback("database systems use network hardware", 10)
	for i, q := range questions {
		if q.Type != models.QuestionTypeMCQ {
			continue
		}
		if len(q.Options) != 4 {
			t.Fatalf("question %d has %d options, want 4", i, len(q.Options))
		}
		if q.Answer != q.Options[0] {
			t.Errorf("question %d answer = %q, want first option %q", i, q.Answer, q.Options[0])
		}
	}
}

func TestFallbackDeterministic(t *testing.T) {
	content := "programming with data structures and algorithm design"
	first := Fallback(content, 7)
	second := Fallback(content, 7)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different outputs")
	}
}

func TestFallbackUsesContentVocabulary(t *testing.T) {
	questions := Fallback("this text mentions database and network concepts", 2)
	for i, q := range questions {
		if !containsAny(q.Question, "database", "network") {
			t.Errorf("question %d %q does not reference a matched term", i, q.Question)
		}
	}
}

func TestFallbackPlaceholderTopics(t *testing.T) {
	questions := Fallback("nothing relevant here", 3)
	want := []string{"topic 1", "topic 2", "topic 3"}
	for i, q := range questions {
		if !containsAny(q.Question, want[i]) {
			t.Errorf("question %d %q does not reference %q", i, q.Question, want[i])
		}
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
