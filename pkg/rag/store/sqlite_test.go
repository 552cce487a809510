package store_test

import (
	"context"
	"math"
	"testing"

	"github.com/easyops/videorag-go/pkg/rag"
	"github.com/easyops/videorag-go/pkg/rag/store"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

func newSQLiteStore(t *testing.T) *store.SQLiteVectorStore {
	t.Helper()
	s, err := store.NewSQLiteVectorStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	chunk := rag.Chunk{
		ID:         "chunk-1",
		DocumentID: "doc-1",
		Index:      0,
		Content:    "transcript about hash tables",
		Metadata: retrieval.VideoMetadata{
			SourceID:  "video-1",
			Title:     "Hash Tables",
			Author:    "CS Channel",
			URL:       "https://youtube.com/watch?v=ht",
			ViewCount: 4200,
		},
		Vector: []float32{0.5, -0.25, 1.0},
	}

	if err := s.Add(ctx, []rag.Chunk{chunk}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if s.Size() != 1 {
		t.Fatalf("Size = %d, want 1", s.Size())
	}

	results, err := s.Search(ctx, []float32{0.5, -0.25, 1.0}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	got := results[0].Chunk
	if got.ID != chunk.ID || got.Content != chunk.Content || got.DocumentID != chunk.DocumentID {
		t.Errorf("chunk round trip mismatch: %+v", got)
	}
	if got.Metadata.SourceID != chunk.Metadata.SourceID ||
		got.Metadata.Title != chunk.Metadata.Title ||
		got.Metadata.Author != chunk.Metadata.Author ||
		got.Metadata.URL != chunk.Metadata.URL ||
		got.Metadata.ViewCount != chunk.Metadata.ViewCount {
		t.Errorf("metadata round trip mismatch: %+v", got.Metadata)
	}
	// identical vectors, distance is zero
	if math.Abs(results[0].Distance) > 1e-6 {
		t.Errorf("Distance = %v, want 0", results[0].Distance)
	}
	for i := range chunk.Vector {
		if got.Vector[i] != chunk.Vector[i] {
			t.Errorf("vector[%d] = %v, want %v", i, got.Vector[i], chunk.Vector[i])
		}
	}
}

func TestSQLiteStoreSearchOrder(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	err := s.Add(ctx, []rag.Chunk{
		{ID: "far", Vector: []float32{0, 1}, Content: "far"},
		{ID: "exact", Vector: []float32{1, 0}, Content: "exact"},
		{ID: "near", Vector: []float32{1, 0.2}, Content: "near"},
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "exact" || results[1].Chunk.ID != "near" {
		t.Errorf("order = %s, %s; want exact, near", results[0].Chunk.ID, results[1].Chunk.ID)
	}
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_ = s.Add(ctx, []rag.Chunk{{ID: "a", Content: "old", Vector: []float32{1}}})
	_ = s.Add(ctx, []rag.Chunk{{ID: "a", Content: "new", Vector: []float32{1}}})

	if s.Size() != 1 {
		t.Fatalf("Size = %d, want 1 after upsert", s.Size())
	}

	results, err := s.Search(ctx, []float32{1}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if results[0].Chunk.Content != "new" {
		t.Errorf("content = %q, want new", results[0].Chunk.Content)
	}
}

func TestSQLiteStoreDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_ = s.Add(ctx, []rag.Chunk{
		{ID: "a", Vector: []float32{1}},
		{ID: "b", Vector: []float32{1}},
	})

	if err := s.Delete(ctx, []string{"a"}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Size() != 1 {
		t.Fatalf("Size after delete = %d, want 1", s.Size())
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Size() != 0 {
		t.Fatalf("Size after clear = %d, want 0", s.Size())
	}
}

func TestSQLiteStoreSkipsChunksWithoutVectors(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_ = s.Add(ctx, []rag.Chunk{
		{ID: "no-vector", Content: "not searchable"},
		{ID: "with-vector", Content: "searchable", Vector: []float32{1}},
	})

	results, err := s.Search(ctx, []float32{1}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Chunk.ID != "with-vector" {
		t.Fatalf("expected only the vectorized chunk, got %+v", results)
	}
}
