package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/certprep/internal/llm"
	"github.com/abhisek/certprep/internal/lock"
	"github.com/abhisek/certprep/internal/progression"
	"github.com/abhisek/certprep/internal/quizgen"
)

// newLocker returns a Redis locker when CERTPREP_REDIS_ADDR is set and an
// in-process one otherwise. The returned func releases the Redis client.
func (e *env) newLocker(ctx context.Context) (lock.Locker, func(), error) {
	if e.cfg.RedisAddr == "" {
		return lock.NewLocal(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: e.cfg.RedisAddr})
	if err := lock.Ping(ctx, client); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", e.cfg.RedisAddr, err)
	}
	e.log.Info("using redis locks", "addr", e.cfg.RedisAddr)

	closeFn := func() {
		if err := client.Close(); err != nil {
			e.log.Warn("closing redis client failed", "error", err)
		}
	}
	return lock.NewRedis(client, lock.DefaultRedisConfig(), e.log), closeFn, nil
}

func (e *env) newEvaluator(locker lock.Locker) *progression.Service {
	cfg := progression.DefaultConfig()
	cfg.MaxAttempts = e.cfg.EvalMaxAttempts
	return progression.NewService(e.store.ProgressionRepo(), locker, cfg, e.log)
}

// newGenerator builds the quiz generation service on top of the configured
// LLM provider. Every provider call is recorded in the LLM event log.
func (e *env) newGenerator(ctx context.Context) (*quizgen.Service, error) {
	llmCfg := e.cfg.LLM
	provider, err := llm.NewProvider(ctx, llmCfg, e.store.EventRepo(), e.log)
	if err != nil {
		return nil, fmt.Errorf("create llm provider: %w", err)
	}
	e.log.Info("llm provider ready", "provider", llmCfg.Provider, "model", provider.ModelID())

	cfg := quizgen.DefaultConfig()
	cfg.QuestionCount = e.cfg.QuestionCount
	cfg.MaxQuestions = max(cfg.MaxQuestions, cfg.QuestionCount)
	gen := quizgen.NewLLMGenerator(provider, quizgen.DefaultGeneratorConfig(cfg.MaxQuestions))
	return quizgen.NewService(e.store.QuizRepo(), gen, cfg, e.log), nil
}

// disabledGenerator fails every generation with the reason the provider
// could not be configured.
type disabledGenerator struct {
	reason error
}

func (d disabledGenerator) Generate(context.Context, quizgen.Input) ([]quizgen.Draft, error) {
	return nil, fmt.Errorf("%w: llm provider not configured: %w", quizgen.ErrGeneration, d.reason)
}
