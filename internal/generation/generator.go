package generation

import (
	"context"

	"github.com/phrazzld/wordhoard/internal/domain"
)

// MaxCards caps how many cards of a wordlist are used for generation.
const MaxCards = 5

// SentencesPerWord is the number of example sentences requested per word.
const SentencesPerWord = 3

// QuestionType is the kind of quiz question.
type QuestionType string

const (
	QuestionMCQ  QuestionType = "mcq"
	QuestionFill QuestionType = "fill"
)

// ExampleSentence holds generated example usages for one word.
type ExampleSentence struct {
	Word      string   `json:"word"`
	Sentences []string `json:"sentences"`
}

// QuizQuestion is one generated quiz item. Choices is set for multiple
// choice questions only and always contains Answer.
type QuizQuestion struct {
	ID      string       `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"prompt"`
	Choices []string     `json:"choices,omitempty"`
	Answer  string       `json:"answer"`
}

// Generator produces study content for a wordlist. Implementations must not
// modify the cards they are given.
type Generator interface {
	// GenerateExamples returns example sentences for up to MaxCards cards.
	GenerateExamples(ctx context.Context, wordlistName string, cards []domain.Flashcard) ([]ExampleSentence, error)

	// GenerateQuiz returns one question for each of up to MaxCards cards.
	// Questions alternate between multiple choice and fill in the blank,
	// starting with multiple choice.
	GenerateQuiz(ctx context.Context, wordlistName string, cards []domain.Flashcard) ([]QuizQuestion, error)
}

// Limit returns at most the first MaxCards cards.
func Limit(cards []domain.Flashcard) []domain.Flashcard {
	if len(cards) > MaxCards {
		return cards[:MaxCards]
	}
	return cards
}

// QuestionTypeAt returns the question type used for the card at index i.
func QuestionTypeAt(i int) QuestionType {
	if i%2 == 0 {
		return QuestionMCQ
	}
	return QuestionFill
}
