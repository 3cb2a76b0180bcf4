package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizo/internal/llm"
)

// BatchSchema is the structured-output schema for an LLM-generated batch.
var BatchSchema = &llm.Schema{
	Name:        "trivia-batch",
	Description: "A batch of general-knowledge trivia questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text in plain text, no HTML",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The single correct answer",
						},
						"incorrect_answers": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Three plausible wrong answers, or one for true/false",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"category": map[string]any{
							"type":        "string",
							"description": "Short topic label such as History or Science: Computers",
						},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"multiple", "boolean"},
						},
					},
					"required":             []any{"question", "correct_answer", "incorrect_answers", "difficulty", "category", "type"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You write general-knowledge trivia for a timed quiz.
Mix categories and difficulties. Every question has exactly one correct answer.
Multiple-choice questions have three incorrect answers; true/false questions
use "True" and "False" with one of them incorrect. Never repeat a question.`

// LLMSource generates questions with an LLM provider.
type LLMSource struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

var _ Source = (*LLMSource)(nil)

// NewLLMSource creates an LLMSource over the given provider.
func NewLLMSource(provider llm.Provider) *LLMSource {
	return &LLMSource{provider: provider, maxTokens: 4096, temperature: 0.8}
}

func (s *LLMSource) Name() string { return "llm:" + s.provider.ModelID() }

type batchOutput struct {
	Questions []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
		Difficulty       string   `json:"difficulty"`
		Category         string   `json:"category"`
		Type             string   `json:"type"`
	} `json:"questions"`
}

func (s *LLMSource) Fetch(ctx context.Context, amount int) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "trivia-questions")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Write %d trivia questions.", amount)},
		},
		Schema:      BatchSchema,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, s.fail(err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, s.fail(fmt.Errorf("parse response: %w", err))
	}

	qs := make([]Question, 0, len(out.Questions))
	for _, raw := range out.Questions {
		q := Question{
			Text:             strings.TrimSpace(raw.Question),
			CorrectAnswer:    strings.TrimSpace(raw.CorrectAnswer),
			IncorrectAnswers: raw.IncorrectAnswers,
			Difficulty:       Difficulty(raw.Difficulty),
			Category:         raw.Category,
			Kind:             Kind(raw.Type),
		}
		if !wellFormed(q) {
			continue
		}
		qs = append(qs, q)
	}
	if len(qs) == 0 {
		return nil, s.fail(ErrNoQuestions)
	}
	return reindex(qs, amount), nil
}

func (s *LLMSource) fail(err error) error {
	return &FetchError{Source: s.Name(), Err: err}
}

// wellFormed rejects questions with empty text, no incorrect answers, or
// an incorrect answer equal to the correct one.
func wellFormed(q Question) bool {
	if q.Text == "" || q.CorrectAnswer == "" || len(q.IncorrectAnswers) == 0 {
		return false
	}
	for _, a := range q.IncorrectAnswers {
		if strings.TrimSpace(a) == "" || a == q.CorrectAnswer {
			return false
		}
	}
	return true
}
