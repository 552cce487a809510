package rag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/easyops/videorag-go/pkg/rag"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// mockEmbedder implements rag.Embedder for testing
type mockEmbedder struct {
	embedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

// mockStore implements rag.VectorStore for testing
type mockStore struct {
	rag.VectorStore
	searchFn func(ctx context.Context, query []float32, topK int) ([]rag.SearchResult, error)
}

func (m *mockStore) Search(ctx context.Context, query []float32, topK int) ([]rag.SearchResult, error) {
	return m.searchFn(ctx, query, topK)
}

func TestRetrieverBuildsCandidates(t *testing.T) {
	store := &mockStore{
		searchFn: func(ctx context.Context, query []float32, topK int) ([]rag.SearchResult, error) {
			return []rag.SearchResult{
				{
					Chunk: rag.Chunk{
						ID:      "chunk-1",
						Content: "transcript content",
						Metadata: retrieval.VideoMetadata{
							SourceID: "video-1", Title: "T", ViewCount: 1000,
						},
					},
					Distance: 0.25,
				},
			}, nil
		},
	}

	retriever := rag.NewVectorRetriever(&mockEmbedder{}, store)

	candidates, err := retriever.Retrieve(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}

	cand := candidates[0]
	if cand.ID != "chunk-1" || cand.Content != "transcript content" {
		t.Errorf("candidate identity wrong: %+v", cand)
	}
	// distance carries through unchanged as the candidate score
	if cand.Score != 0.25 {
		t.Errorf("Score = %v, want 0.25", cand.Score)
	}
	if cand.Metadata.SourceID != "video-1" {
		t.Errorf("metadata not carried: %+v", cand.Metadata)
	}
}

func TestRetrieverSkipsEmptyChunks(t *testing.T) {
	store := &mockStore{
		searchFn: func(ctx context.Context, query []float32, topK int) ([]rag.SearchResult, error) {
			return []rag.SearchResult{
				{Chunk: rag.Chunk{ID: "empty", Content: ""}, Distance: 0.1},
				{Chunk: rag.Chunk{ID: "ok", Content: "usable"}, Distance: 0.2},
			}, nil
		},
	}

	retriever := rag.NewVectorRetriever(&mockEmbedder{}, store)

	candidates, err := retriever.Retrieve(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	// defective chunks are skipped, not fatal
	if len(candidates) != 1 || candidates[0].ID != "ok" {
		t.Fatalf("expected only the usable chunk, got %+v", candidates)
	}
}

func TestRetrieverDefaultTopK(t *testing.T) {
	var gotTopK int
	store := &mockStore{
		searchFn: func(ctx context.Context, query []float32, topK int) ([]rag.SearchResult, error) {
			gotTopK = topK
			return nil, nil
		},
	}

	retriever := rag.NewVectorRetriever(&mockEmbedder{}, store)

	if _, err := retriever.Retrieve(context.Background(), "query", 0); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if gotTopK != rag.DefaultTopK {
		t.Errorf("topK = %d, want default %d", gotTopK, rag.DefaultTopK)
	}
}

func TestRetrieverEmbedError(t *testing.T) {
	embedder := &mockEmbedder{
		embedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("provider down")
		},
	}
	store := &mockStore{
		searchFn: func(ctx context.Context, query []float32, topK int) ([]rag.SearchResult, error) {
			t.Fatal("search must not be called when embedding fails")
			return nil, nil
		},
	}

	retriever := rag.NewVectorRetriever(embedder, store)

	if _, err := retriever.Retrieve(context.Background(), "query", 5); err == nil {
		t.Fatal("expected error from failed embedding")
	}
}
