package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/certprep/internal/llm"
)

// Generator produces validated question drafts.
type Generator interface {
	Generate(ctx context.Context, in Input) ([]Draft, error)
}

// ErrGeneration wraps failures of the model call itself.
var ErrGeneration = errors.New("question generation failed")

// LLMGenerator asks an llm.Provider for questions.
type LLMGenerator struct {
	provider llm.Provider
	config   GeneratorConfig
}

// GeneratorConfig tunes LLMGenerator.
type GeneratorConfig struct {
	// Validators run in order; the first failure rejects the reply.
	Validators  []Validator
	MaxTokens   int
	Temperature float64
}

// DefaultGeneratorConfig returns the standard validator chain for quizzes
// of up to maxQuestions questions.
func DefaultGeneratorConfig(maxQuestions int) GeneratorConfig {
	return GeneratorConfig{
		Validators:  DefaultValidators(maxQuestions),
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

func NewLLMGenerator(provider llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, in Input) ([]Draft, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGeneration)

	req := llm.UserPrompt(systemPrompt, buildPrompt(in), QuizSchema, g.config.MaxTokens)
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	drafts, err := parseDrafts(resp.Content)
	if err != nil {
		return nil, err
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(drafts, in); verr != nil {
			return nil, verr
		}
	}
	return drafts, nil
}

// parseDrafts decodes a reply, tolerating a surrounding code fence.
// Unknown fields are rejected.
func parseDrafts(raw []byte) ([]Draft, error) {
	dec := json.NewDecoder(bytes.NewReader(llm.StripCodeFence(raw)))
	dec.DisallowUnknownFields()

	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode reply: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after reply", ErrMalformed)
	}
	return p.Questions, nil
}
