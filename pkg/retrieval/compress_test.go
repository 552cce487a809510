package retrieval_test

import (
	"strings"
	"testing"

	"github.com/easyops/videorag-go/pkg/retrieval"
)

func TestCompressKeepsRelevantSentences(t *testing.T) {
	compressor := retrieval.NewCompressor(0.5)

	content := "Machine learning is great. Cooking pasta is fun."
	got := compressor.Compress(content, "machine learning")

	// 2 sentences * 0.5 = 1 kept, and it must be the relevant one
	if got != "Machine learning is great" {
		t.Fatalf("Compress = %q, want %q", got, "Machine learning is great")
	}
}

func TestCompressKeepsAtLeastOneSentence(t *testing.T) {
	compressor := retrieval.NewCompressor(0.1)

	content := "Only one sentence here"
	got := compressor.Compress(content, "unrelated query")

	if got != content {
		t.Fatalf("Compress = %q, want %q", got, content)
	}
}

func TestCompressOrdersByRelevance(t *testing.T) {
	compressor := retrieval.NewCompressor(0.7)

	content := "Pasta needs salt. Neural networks need data. Machine learning needs data"
	got := compressor.Compress(content, "machine learning data")

	// 3 sentences * 0.7 -> 2 kept, most relevant first
	parts := strings.Split(got, ". ")
	if len(parts) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %q", len(parts), got)
	}
	if parts[0] != "Machine learning needs data" {
		t.Errorf("first sentence = %q, want the most relevant one", parts[0])
	}
	if strings.Contains(got, "Pasta") {
		t.Errorf("irrelevant sentence survived: %q", got)
	}
}

func TestCompressShortensContent(t *testing.T) {
	compressor := retrieval.NewCompressor(0.6)

	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("This sentence pads the content with filler words for testing. ")
	}
	content := strings.TrimSpace(b.String())

	got := compressor.Compress(content, "query")
	if len(got) >= len(content) {
		t.Fatalf("compressed length %d not smaller than original %d", len(got), len(content))
	}
}

func TestNewCompressorClampsRatio(t *testing.T) {
	for _, ratio := range []float64{0, -1, 1.5} {
		c := retrieval.NewCompressor(ratio)
		if c.TargetRatio != 0.6 {
			t.Errorf("NewCompressor(%v).TargetRatio = %v, want 0.6", ratio, c.TargetRatio)
		}
	}
}
