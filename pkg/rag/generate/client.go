package generate

import (
	"context"
	"errors"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/pkg/llm"
)

// maxAnswerTokens caps generation length. The composer trims sections to
// fixed budgets anyway, so tokens past this point are thrown away.
const maxAnswerTokens = 2048

// Client runs the language model with a per-attempt deadline and owns the
// retry policy: exactly one retry, and only after a timeout. A model that
// answers garbage fast will answer garbage twice, so transport and API
// failures surface immediately.
type Client struct {
	provider llm.LLMProvider
	timeout  time.Duration
	logger   logger.ILogger
}

func NewClient(provider llm.LLMProvider, timeout time.Duration, logger logger.ILogger) *Client {
	return &Client{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// Generate produces raw model text for the prompt. Failures come back as
// *dto.GenerationError; the Timeout flag says whether the final attempt hit
// its deadline.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	started := time.Now()
	raw, err := c.attempt(ctx, prompt)
	if err == nil {
		return raw, nil
	}

	genErr := classify(err)
	// Retry only a per-attempt timeout, and never once the caller itself has
	// gone away: their deadline or cancellation also reads as a ctx error.
	if !genErr.Timeout || ctx.Err() != nil {
		return "", genErr
	}

	c.logger.Warn("generate", "attempt timed out, retrying once", map[string]interface{}{
		"timeout_s":  c.timeout.Seconds(),
		"elapsed_ms": time.Since(started).Milliseconds(),
	})

	raw, err = c.attempt(ctx, prompt)
	if err != nil {
		return "", classify(err)
	}
	return raw, nil
}

func (c *Client) attempt(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.provider.Generate(attemptCtx, prompt, llm.WithMaxTokens(maxAnswerTokens))
}

func classify(err error) *dto.GenerationError {
	return &dto.GenerationError{
		Cause:   err,
		Timeout: errors.Is(err, context.DeadlineExceeded),
	}
}
