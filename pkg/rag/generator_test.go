package rag_test

import (
	"context"
	"strings"
	"testing"

	"github.com/easyops/videorag-go/pkg/rag"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// mockProvider implements llm.Provider for testing
type mockProvider struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, prompt)
	}
	return "mock answer", nil
}

func (m *mockProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (m *mockProvider) Name() string  { return "mock" }
func (m *mockProvider) Model() string { return "mock-model" }
func (m *mockProvider) Close() error  { return nil }

func TestFormatContext(t *testing.T) {
	groups := []retrieval.ContextGroup{
		{Content: "first group content"},
		{Content: "second group content"},
	}

	got := rag.FormatContext(groups)
	want := "first group content\nsecond group content"
	if got != want {
		t.Fatalf("FormatContext = %q, want %q", got, want)
	}

	if rag.FormatContext(nil) != "" {
		t.Error("expected empty string for no groups")
	}
}

func TestGeneratorAnswerIncludesContextAndQuery(t *testing.T) {
	var gotPrompt string
	provider := &mockProvider{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return "generated answer", nil
		},
	}
	generator := rag.NewLLMGenerator(provider)

	groups := []retrieval.ContextGroup{{Content: "transcripts about sorting"}}
	answer, err := generator.Answer(context.Background(), "explain sorting", groups)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if answer != "generated answer" {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(gotPrompt, "transcripts about sorting") {
		t.Error("prompt missing context")
	}
	if !strings.Contains(gotPrompt, "explain sorting") {
		t.Error("prompt missing query")
	}
}

func TestGeneratorAnswerEmptyContext(t *testing.T) {
	provider := &mockProvider{}
	generator := rag.NewLLMGenerator(provider)

	// empty context is a valid input, not an error
	if _, err := generator.Answer(context.Background(), "anything", nil); err != nil {
		t.Fatalf("Answer with empty context failed: %v", err)
	}
}

func TestGeneratorAnswerDirect(t *testing.T) {
	var gotPrompt string
	provider := &mockProvider{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return "direct answer", nil
		},
	}
	generator := rag.NewLLMGenerator(provider)

	answer, err := generator.AnswerDirect(context.Background(), "what is Go")
	if err != nil {
		t.Fatalf("AnswerDirect failed: %v", err)
	}
	if answer != "direct answer" {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(gotPrompt, "what is Go") {
		t.Error("prompt missing query")
	}
	if strings.Contains(gotPrompt, "Context:") {
		t.Error("direct prompt must not carry retrieval context")
	}
}
