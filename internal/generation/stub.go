package generation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/phrazzld/wordhoard/internal/domain"
)

var distractors = []string{"A random distractor", "Another distractor", "Yet another"}

// StubGenerator returns canned content built from the cards themselves. It
// never calls out to a model.
type StubGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Generator = (*StubGenerator)(nil)

// NewStubGenerator creates a StubGenerator whose choice shuffling is
// driven by seed.
func NewStubGenerator(seed uint64) *StubGenerator {
	return &StubGenerator{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// GenerateExamples implements Generator.
func (g *StubGenerator) GenerateExamples(
	ctx context.Context,
	wordlistName string,
	cards []domain.Flashcard,
) ([]ExampleSentence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cards = Limit(cards)
	out := make([]ExampleSentence, 0, len(cards))
	for _, card := range cards {
		out = append(out, ExampleSentence{
			Word: card.Word,
			Sentences: []string{
				fmt.Sprintf("In %s, we often stress the word %q when presenting.", wordlistName, card.Word),
				fmt.Sprintf("She stayed %s despite the noisy room.", card.Word),
				fmt.Sprintf("%s practice keeps your skills sharp.", card.Word),
			},
		})
	}
	return out, nil
}

// GenerateQuiz implements Generator.
func (g *StubGenerator) GenerateQuiz(
	ctx context.Context,
	_ string,
	cards []domain.Flashcard,
) ([]QuizQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cards = Limit(cards)
	out := make([]QuizQuestion, 0, len(cards))
	for i, card := range cards {
		q := QuizQuestion{
			ID:     fmt.Sprintf("%s-%d", card.ID, i),
			Type:   QuestionTypeAt(i),
			Answer: card.Meaning,
		}
		if q.Type == QuestionMCQ {
			q.Prompt = fmt.Sprintf("Choose the closest meaning of %q", card.Word)
			q.Choices = g.shuffled(append([]string{card.Meaning}, distractors...))
		} else {
			q.Prompt = fmt.Sprintf("Fill in the blank: She remained ____ under pressure (%q).", card.Word)
		}
		out = append(out, q)
	}
	return out, nil
}

func (g *StubGenerator) shuffled(choices []string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}
