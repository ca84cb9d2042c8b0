package gemini

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/wordhoard/internal/config"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/generation"
	"google.golang.org/genai"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// modelClient is the part of the genai client the generator calls.
// *genai.Models satisfies it.
type modelClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger    *slog.Logger
	config    config.LLMConfig
	models    modelClient
	examples  *template.Template
	quiz      *template.Template
	baseDelay time.Duration
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator talking to the Gemini API with the
// configured key and model.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, cfg, client.Models)
}

func newGenerator(logger *slog.Logger, cfg config.LLMConfig, models modelClient) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelaySeconds < 1 {
		cfg.RetryDelaySeconds = 2
	}

	tmpl, err := template.ParseFS(promptFS, "prompts/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt templates: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:    logger.With("component", "gemini_generator"),
		config:    cfg,
		models:    models,
		examples:  tmpl.Lookup("examples.tmpl"),
		quiz:      tmpl.Lookup("quiz.tmpl"),
		baseDelay: time.Duration(cfg.RetryDelaySeconds) * time.Second,
	}, nil
}

// GenerateExamples implements generation.Generator.
func (g *Generator) GenerateExamples(
	ctx context.Context,
	wordlistName string,
	cards []domain.Flashcard,
) ([]generation.ExampleSentence, error) {
	cards = generation.Limit(cards)
	if len(cards) == 0 {
		return []generation.ExampleSentence{}, nil
	}

	prompt, err := render(g.examples, wordlistName, cards)
	if err != nil {
		return nil, err
	}

	var resp examplesResponse
	if err := g.callWithRetry(ctx, prompt, &resp); err != nil {
		return nil, err
	}

	if len(resp.Examples) == 0 {
		return nil, fmt.Errorf("%w: no examples in response", generation.ErrInvalidResponse)
	}
	if len(resp.Examples) > len(cards) {
		resp.Examples = resp.Examples[:len(cards)]
	}
	for i, ex := range resp.Examples {
		if strings.TrimSpace(ex.Word) == "" {
			return nil, fmt.Errorf("%w: example %d missing word", generation.ErrInvalidResponse, i)
		}
		if len(ex.Sentences) == 0 {
			return nil, fmt.Errorf("%w: example %d has no sentences", generation.ErrInvalidResponse, i)
		}
	}

	g.logger.InfoContext(ctx, "generated examples",
		"wordlist", wordlistName,
		"examples", len(resp.Examples))
	return resp.Examples, nil
}

// GenerateQuiz implements generation.Generator.
func (g *Generator) GenerateQuiz(
	ctx context.Context,
	wordlistName string,
	cards []domain.Flashcard,
) ([]generation.QuizQuestion, error) {
	cards = generation.Limit(cards)
	if len(cards) == 0 {
		return []generation.QuizQuestion{}, nil
	}

	prompt, err := render(g.quiz, wordlistName, cards)
	if err != nil {
		return nil, err
	}

	var resp quizResponse
	if err := g.callWithRetry(ctx, prompt, &resp); err != nil {
		return nil, err
	}

	if len(resp.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in response", generation.ErrInvalidResponse)
	}
	if len(resp.Questions) > len(cards) {
		resp.Questions = resp.Questions[:len(cards)]
	}

	out := make([]generation.QuizQuestion, 0, len(resp.Questions))
	for i, item := range resp.Questions {
		q, err := toQuestion(i, cards[i], item)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}

	g.logger.InfoContext(ctx, "generated quiz",
		"wordlist", wordlistName,
		"questions", len(out))
	return out, nil
}

func toQuestion(i int, card domain.Flashcard, item quizItem) (generation.QuizQuestion, error) {
	if strings.TrimSpace(item.Prompt) == "" {
		return generation.QuizQuestion{}, fmt.Errorf("%w: question %d missing prompt", generation.ErrInvalidResponse, i)
	}
	if strings.TrimSpace(item.Answer) == "" {
		return generation.QuizQuestion{}, fmt.Errorf("%w: question %d missing answer", generation.ErrInvalidResponse, i)
	}

	q := generation.QuizQuestion{
		ID:     fmt.Sprintf("%s-%d", card.ID, i),
		Type:   item.Type,
		Prompt: item.Prompt,
		Answer: item.Answer,
	}
	switch item.Type {
	case generation.QuestionMCQ:
		if len(item.Choices) < 2 {
			return generation.QuizQuestion{}, fmt.Errorf("%w: question %d needs at least two choices", generation.ErrInvalidResponse, i)
		}
		if !slices.Contains(item.Choices, item.Answer) {
			return generation.QuizQuestion{}, fmt.Errorf("%w: question %d answer is not among its choices", generation.ErrInvalidResponse, i)
		}
		q.Choices = item.Choices
	case generation.QuestionFill:
	default:
		return generation.QuizQuestion{}, fmt.Errorf("%w: question %d has unknown type %q", generation.ErrInvalidResponse, i, item.Type)
	}
	return q, nil
}

func render(tmpl *template.Template, wordlistName string, cards []domain.Flashcard) (string, error) {
	data := promptData{
		WordlistName:     wordlistName,
		SentencesPerWord: generation.SentencesPerWord,
		Cards:            make([]promptCard, 0, len(cards)),
	}
	for i, c := range cards {
		data.Cards = append(data.Cards, promptCard{
			Word:    c.Word,
			Meaning: c.Meaning,
			Type:    generation.QuestionTypeAt(i),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// callWithRetry sends prompt to the model and decodes the JSON answer into
// out. Transient failures are retried up to config.MaxRetries times with
// exponential backoff and jitter; blocked or malformed responses are not.
func (g *Generator) callWithRetry(ctx context.Context, prompt string, out any) error {
	maxRetries := g.config.MaxRetries

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1,
			"prompt_length", len(prompt))

		err := g.call(ctx, prompt, out)
		if err == nil {
			return nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if !generation.Retryable(err) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctxErr)
		}
		if attempt >= maxRetries {
			return fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * 2^attempt * [0.5, 1.0)
		backoff := float64(g.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rand.Float64()*0.5))

		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

func (g *Generator) call(ctx context.Context, prompt string, out any) error {
	resp, err := g.models.GenerateContent(ctx, g.config.ModelName, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	switch {
	case err != nil:
		return err
	case resp == nil:
		return fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	case len(resp.Candidates) == 0:
		return fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
		return fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	case resp.Candidates[0].Content == nil:
		return fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	if err := json.Unmarshal([]byte(stripFence(text.String())), out); err != nil {
		return fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	return nil
}

// stripFence removes a surrounding markdown code fence, which models
// sometimes add even in JSON mode.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
