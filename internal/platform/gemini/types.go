package gemini

import "github.com/phrazzld/wordhoard/internal/generation"

// promptCard is one card as rendered into a prompt template.
type promptCard struct {
	Word    string
	Meaning string
	Type    generation.QuestionType
}

// promptData represents the data passed to the prompt templates.
type promptData struct {
	WordlistName     string
	SentencesPerWord int
	Cards            []promptCard
}

// examplesResponse is the JSON shape requested for example sentences.
type examplesResponse struct {
	Examples []generation.ExampleSentence `json:"examples"`
}

// quizResponse is the JSON shape requested for quizzes.
type quizResponse struct {
	Questions []quizItem `json:"questions"`
}

type quizItem struct {
	Type    generation.QuestionType `json:"type"`
	Prompt  string                  `json:"prompt"`
	Choices []string                `json:"choices,omitempty"`
	Answer  string                  `json:"answer"`
}
