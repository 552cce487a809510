package rag_test

import (
	"context"
	"strings"
	"testing"

	"github.com/easyops/videorag-go/pkg/rag"
)

func TestIngestStoresChunksWithMetadata(t *testing.T) {
	ctx := context.Background()
	store := rag.NewInMemoryVectorStore()
	ingestor := rag.NewIngestor(&mockEmbedder{}, store)

	videos := []rag.Video{
		{
			VideoID:    "video-1",
			Title:      "Intro to Graphs",
			Author:     "Crash Course",
			URL:        "https://youtube.com/watch?v=abc",
			ViewCount:  12000,
			Transcript: "Graphs consist of nodes and edges connecting them.",
		},
	}

	count, err := ingestor.Ingest(ctx, videos)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one chunk")
	}
	if store.Size() != count {
		t.Errorf("store size %d != reported count %d", store.Size(), count)
	}

	results, err := store.Search(ctx, []float32{1, 0, 0}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	chunk := results[0].Chunk

	// document text carries the title prefix from the source video
	if !strings.HasPrefix(chunk.Content, "Title: Intro to Graphs") {
		t.Errorf("content = %q, want title prefix", chunk.Content)
	}
	if !strings.Contains(chunk.Content, "Transcript: Graphs consist") {
		t.Errorf("content missing transcript: %q", chunk.Content)
	}
	if chunk.Metadata.SourceID != "video-1" ||
		chunk.Metadata.Author != "Crash Course" ||
		chunk.Metadata.ViewCount != 12000 {
		t.Errorf("metadata not carried: %+v", chunk.Metadata)
	}
	if len(chunk.Vector) == 0 {
		t.Error("chunk vector not assigned")
	}
}

func TestIngestSkipsEmptyTranscripts(t *testing.T) {
	ctx := context.Background()
	store := rag.NewInMemoryVectorStore()
	ingestor := rag.NewIngestor(&mockEmbedder{}, store)

	videos := []rag.Video{
		{VideoID: "empty", Title: "No Transcript", Transcript: "   "},
		{VideoID: "ok", Title: "Has Transcript", Transcript: "Some actual spoken content to index."},
	}

	count, err := ingestor.Ingest(ctx, videos)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if count == 0 {
		t.Fatal("expected the non-empty video to produce chunks")
	}

	results, _ := store.Search(ctx, []float32{1, 0, 0}, 10)
	for _, r := range results {
		if r.Chunk.Metadata.SourceID == "empty" {
			t.Fatal("empty-transcript video must not be indexed")
		}
	}
}

func TestIngestAssignsMissingVideoID(t *testing.T) {
	ctx := context.Background()
	store := rag.NewInMemoryVectorStore()
	ingestor := rag.NewIngestor(&mockEmbedder{}, store)

	_, err := ingestor.Ingest(ctx, []rag.Video{
		{Title: "Anonymous", Transcript: "A transcript without a video id."},
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	results, _ := store.Search(ctx, []float32{1, 0, 0}, 1)
	if len(results) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(results))
	}
	if results[0].Chunk.Metadata.SourceID == "" {
		t.Error("expected a generated source id for video without one")
	}
}

func TestIngestEmptyBatch(t *testing.T) {
	store := rag.NewInMemoryVectorStore()
	ingestor := rag.NewIngestor(&mockEmbedder{}, store)

	count, err := ingestor.Ingest(context.Background(), nil)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if count != 0 || store.Size() != 0 {
		t.Fatalf("expected no chunks, got count=%d size=%d", count, store.Size())
	}
}
