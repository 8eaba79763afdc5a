package generate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/pkg/llm"
)

// scriptedProvider plays one scripted outcome per attempt.
type scriptedProvider struct {
	calls   int
	attempt []func(ctx context.Context) (string, error)
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, _ ...llm.Option) (string, error) {
	fn := s.attempt[s.calls]
	s.calls++
	return fn(ctx)
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, "", opts...)
}

func succeed(text string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return text, nil }
}

// blockUntilDeadline behaves like a model that never answers in time.
func blockUntilDeadline(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestGenerateFirstAttemptSucceeds(t *testing.T) {
	p := &scriptedProvider{attempt: []func(context.Context) (string, error){succeed("**Summary** murder is...")}}
	c := NewClient(p, time.Second, logger.NewNopLogger())

	got, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "**Summary** murder is..." {
		t.Errorf("got %q", got)
	}
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1", p.calls)
	}
}

func TestGenerateRetriesOnceAfterTimeout(t *testing.T) {
	p := &scriptedProvider{attempt: []func(context.Context) (string, error){
		blockUntilDeadline,
		succeed("recovered"),
	}}
	c := NewClient(p, 20*time.Millisecond, logger.NewNopLogger())

	got, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "recovered" {
		t.Errorf("got %q, want recovered", got)
	}
	if p.calls != 2 {
		t.Errorf("calls = %d, want 2", p.calls)
	}
}

func TestGenerateBothAttemptsTimeOut(t *testing.T) {
	p := &scriptedProvider{attempt: []func(context.Context) (string, error){
		blockUntilDeadline,
		blockUntilDeadline,
	}}
	c := NewClient(p, 20*time.Millisecond, logger.NewNopLogger())

	_, err := c.Generate(context.Background(), "prompt")
	var genErr *dto.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *dto.GenerationError", err)
	}
	if !genErr.Timeout {
		t.Error("Timeout = false, want true")
	}
	if p.calls != 2 {
		t.Errorf("calls = %d, want exactly 2 (one retry)", p.calls)
	}
}

func TestGenerateTransportFailureNotRetried(t *testing.T) {
	p := &scriptedProvider{attempt: []func(context.Context) (string, error){
		func(context.Context) (string, error) { return "", errors.New("connection refused") },
		succeed("should never run"),
	}}
	c := NewClient(p, time.Second, logger.NewNopLogger())

	_, err := c.Generate(context.Background(), "prompt")
	var genErr *dto.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *dto.GenerationError", err)
	}
	if genErr.Timeout {
		t.Error("Timeout = true for a transport failure")
	}
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", p.calls)
	}
}

func TestGenerateCallerCancellationNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &scriptedProvider{attempt: []func(context.Context) (string, error){
		func(attemptCtx context.Context) (string, error) {
			cancel() // caller walks away mid-generation
			<-attemptCtx.Done()
			return "", attemptCtx.Err()
		},
		succeed("should never run"),
	}}
	c := NewClient(p, time.Second, logger.NewNopLogger())

	_, err := c.Generate(ctx, "prompt")
	if err == nil {
		t.Fatal("want error after caller cancellation")
	}
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry after cancellation)", p.calls)
	}
}
