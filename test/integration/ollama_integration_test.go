// FILE: test/integration/ollama_integration_test.go
// PURPOSE: Live Ollama integration test for the embedding and generation
// providers plus the answer parser. Requires a local Ollama server with the
// configured models pulled; every test skips when the server is unreachable.

package integration

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Prajankrish/Lex-AI/pkg/embedding"
	"github.com/Prajankrish/Lex-AI/pkg/llm"
	llmollama "github.com/Prajankrish/Lex-AI/pkg/llm/ollama"
	"github.com/Prajankrish/Lex-AI/pkg/rag/answer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaBaseURL() string {
	if url := os.Getenv("OLLAMA_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:11434"
}

func embeddingModel() string {
	if m := os.Getenv("EMBEDDING_MODEL"); m != "" {
		return m
	}
	return "nomic-embed-text"
}

func llmModel() string {
	if m := os.Getenv("LLM_MODEL"); m != "" {
		return m
	}
	return "phi3:latest"
}

func requireOllama(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 5 * time.Second}
	res, err := client.Get(ollamaBaseURL())
	if err != nil {
		t.Skipf("Skipping integration test: Ollama not running at %s: %v", ollamaBaseURL(), err)
	}
	res.Body.Close()
}

// TestOllamaConnection verifies Ollama is running and accessible
func TestOllamaConnection(t *testing.T) {
	requireOllama(t)
	t.Logf("✅ Ollama is running at %s", ollamaBaseURL())
}

// TestOllamaEmbeddingProvider embeds a statutory passage and a user question
// and checks that related texts score closer than unrelated ones.
func TestOllamaEmbeddingProvider(t *testing.T) {
	requireOllama(t)

	provider := embedding.NewOllamaProvider(ollamaBaseURL(), embeddingModel(), embedding.DefaultMaxChars)

	passage := "Section 302. Punishment for murder. Whoever commits murder shall be punished with death, or imprisonment for life, and shall also be liable to fine."
	question := "What is the punishment for murder?"
	offTopic := "Preheat the oven and fold the chocolate into the cake batter."

	passageRes, err := provider.Generate(passage, embedding.TaskRetrievalDocument)
	require.NoError(t, err)
	require.NotEmpty(t, passageRes.Embedding.Values)

	questionRes, err := provider.Generate(question, embedding.TaskRetrievalQuery)
	require.NoError(t, err)

	offTopicRes, err := provider.Generate(offTopic, embedding.TaskRetrievalQuery)
	require.NoError(t, err)

	// Providers return unit vectors, so the dot product is the cosine score.
	norm := 0.0
	for _, v := range passageRes.Embedding.Values {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 0.01, "embedding should be unit-normalized")

	related := dot(questionRes.Embedding.Values, passageRes.Embedding.Values)
	unrelated := dot(offTopicRes.Embedding.Values, passageRes.Embedding.Values)
	t.Logf("similarity related=%.4f unrelated=%.4f", related, unrelated)
	assert.Greater(t, related, unrelated, "on-topic question should score closer to the passage")
}

func dot(a, b []float32) float64 {
	var sum float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// TestOllamaChatGeneration tests basic chat response through the provider
func TestOllamaChatGeneration(t *testing.T) {
	requireOllama(t)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	provider := llmollama.NewOllamaProvider(ollamaBaseURL(), llmModel())

	response, err := provider.Chat(ctx, []llm.Message{
		{Role: "user", Content: "Say 'Ollama works!' in one sentence."},
	})
	require.NoError(t, err)
	t.Logf("✅ Response: %s", response)
	assert.NotEmpty(t, response)
}

// TestOllamaMultiTurnConversation tests context retention
func TestOllamaMultiTurnConversation(t *testing.T) {
	requireOllama(t)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	provider := llmollama.NewOllamaProvider(ollamaBaseURL(), llmModel())

	response, err := provider.Chat(ctx, []llm.Message{
		{Role: "user", Content: "My name is John"},
		{Role: "assistant", Content: "Nice to meet you, John!"},
		{Role: "user", Content: "What is my name?"},
	})
	require.NoError(t, err)
	t.Logf("✅ Response: %s", response)
	assert.NotEmpty(t, response)

	// Small local models occasionally drop context, so log rather than fail.
	if !strings.Contains(response, "John") {
		t.Logf("⚠️ Response may not correctly remember the name. Response: %s", response)
	}
}

// TestOllamaStructuredAnswerRoundTrip asks for the answer format the chat
// pipeline prompts for and runs the reply through the tolerant parser. The
// parser accepts any non-blank reply, so this asserts the full loop rather
// than the model's formatting discipline.
func TestOllamaStructuredAnswerRoundTrip(t *testing.T) {
	requireOllama(t)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	provider := llmollama.NewOllamaProvider(ollamaBaseURL(), llmModel())

	prompt := `Answer the question below using exactly these markdown headings:
### Summary
### Key Legal Points
### TLDR

Question: What does the right to life under Article 21 of the Indian Constitution protect?`

	raw, err := provider.Generate(ctx, prompt)
	require.NoError(t, err)
	t.Logf("raw reply:\n%s", raw)

	parsed, err := answer.Parse(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, parsed.ShortAnswer, "short answer should survive parsing")

	if len(parsed.KeyPoints) == 0 {
		t.Logf("⚠️ Model skipped the Key Legal Points heading; parser folded everything into the summary")
	}
	if parsed.Tldr == nil {
		t.Logf("⚠️ Model skipped the TLDR heading")
	}
}
