package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// VectorStore 向量存储接口
//
// Search 返回按余弦距离升序排列的结果，距离越小越相似。
type VectorStore interface {
	// Add 添加分块
	Add(ctx context.Context, chunks []Chunk) error
	// Search 按向量搜索相似分块
	Search(ctx context.Context, query []float32, topK int) ([]SearchResult, error)
	// Delete 删除分块
	Delete(ctx context.Context, ids []string) error
	// Clear 清空存储
	Clear(ctx context.Context) error
	// Size 返回存储的分块数量
	Size() int
}

// Embedder 嵌入器接口
type Embedder interface {
	// Embed 生成文本嵌入向量
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// InMemoryVectorStore 内存向量存储
//
// 暴力扫描全量分块，适用于测试和小规模语料。
type InMemoryVectorStore struct {
	chunks map[string]Chunk
	mu     sync.RWMutex
}

// NewInMemoryVectorStore 创建内存向量存储
func NewInMemoryVectorStore() *InMemoryVectorStore {
	return &InMemoryVectorStore{
		chunks: make(map[string]Chunk),
	}
}

// Add 添加分块
func (s *InMemoryVectorStore) Add(ctx context.Context, chunks []Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

// Search 按向量搜索相似分块
func (s *InMemoryVectorStore) Search(ctx context.Context, query []float32, topK int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]SearchResult, 0, len(s.chunks))

	for _, chunk := range s.chunks {
		if len(chunk.Vector) == 0 {
			continue
		}
		scored = append(scored, SearchResult{
			Chunk:    chunk,
			Distance: CosineDistance(query, chunk.Vector),
		})
	}

	// 按距离升序排序
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Distance < scored[j].Distance
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

// Delete 删除分块
func (s *InMemoryVectorStore) Delete(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.chunks, id)
	}
	return nil
}

// Clear 清空存储
func (s *InMemoryVectorStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = make(map[string]Chunk)
	return nil
}

// Size 返回存储的分块数量
func (s *InMemoryVectorStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// CosineDistance 计算余弦距离（1 - 余弦相似度）
//
// 维度不匹配或零向量返回最大距离 1。
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}

	var dotProduct, normA, normB float64

	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 1
	}

	return 1 - dotProduct/(math.Sqrt(normA)*math.Sqrt(normB))
}

// generateID 生成唯一 ID
func generateID() string {
	return uuid.New().String()
}

// generateChunkID 生成确定性的分块 ID
func generateChunkID(docID string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s_chunk_%d", docID, index))).String()
}

// 编译时接口检查
var _ VectorStore = (*InMemoryVectorStore)(nil)
