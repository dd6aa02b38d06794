package question

import (
	"fmt"
	"strings"

	"papergenius/internal/models"
)

// fallbackTerms is the fixed vocabulary scanned for in the content when the
// synthesizer needs topics to build questions around.
var fallbackTerms = []string{
	"algorithm", "data", "computer", "programming", "software",
	"hardware", "network", "database", "system", "technology",
}

var fallbackDifficulties = []string{"Easy", "Medium", "Hard"}

// maxFallbackQuestions caps a single synthesizer batch.
const maxFallbackQuestions = 10

// Fallback deterministically synthesizes up to min(n, 10) questions from the
// given content without any external calls. Question i cycles its archetype
// (MCQ, short, long) and difficulty by i mod 3 using the same index, so
// re-running with identical inputs yields identical output.
func Fallback(content string, n int) []models.Question {
	words := strings.Fields(strings.ToLower(content))
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}
	var foundTerms []string
	for _, term := range fallbackTerms {
		if wordSet[term] {
			foundTerms = append(foundTerms, term)
		}
	}

	count := n
	if count > maxFallbackQuestions {
		count = maxFallbackQuestions
	}

	questions := make([]models.Question, 0, max(count, 0))
	for i := 0; i < count; i++ {
		topic := fmt.Sprintf("topic %d", i+1)
		if len(foundTerms) > 0 {
			topic = foundTerms[i%len(foundTerms)]
		}
		difficulty := fallbackDifficulties[i%len(fallbackDifficulties)]

		switch i % 3 {
		case 0:
			options := []string{
				fmt.Sprintf("A. Basic understanding of %s", topic),
				fmt.Sprintf("B. Advanced application of %s", topic),
				fmt.Sprintf("C. Theoretical foundation of %s", topic),
				fmt.Sprintf("D. Practical implementation of %s", topic),
			}
			questions = append(questions, models.Question{
				Question:   fmt.Sprintf("What is the primary concept related to %s in the given content?", topic),
				Type:       models.QuestionTypeMCQ,
				Difficulty: difficulty,
				Marks:      2,
				Options:    options,
				Answer:     options[0],
			})
		case 1:
			questions = append(questions, models.Question{
				Question:   fmt.Sprintf("Briefly explain the significance of %s as mentioned in the content.", topic),
				Type:       models.QuestionTypeShortAnswer,
				Difficulty: difficulty,
				Marks:      5,
				Answer:     fmt.Sprintf("The content discusses %s as an important concept with practical applications and theoretical foundations.", topic),
			})
		default:
			questions = append(questions, models.Question{
				Question:   fmt.Sprintf("Discuss in detail the role and importance of %s based on the provided content.", topic),
				Type:       models.QuestionTypeLongAnswer,
				Difficulty: difficulty,
				Marks:      10,
				Answer:     fmt.Sprintf("A comprehensive discussion of %s should include its definition, applications, importance, and relationship to other concepts as outlined in the content.", topic),
			})
		}
	}
	return questions
}
