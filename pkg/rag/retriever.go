package rag

import (
	"context"

	"github.com/easyops/videorag-go/pkg/core/errors"
	"github.com/easyops/videorag-go/pkg/otel"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// DefaultTopK 默认检索数量
const DefaultTopK = 5

// Retriever 检索器接口
//
// 返回的候选分数为余弦距离，越小越相似，
// 与 retrieval 包的过滤阈值语义一致。
type Retriever interface {
	// Retrieve 按查询检索候选
	Retrieve(ctx context.Context, query string, topK int) ([]retrieval.Candidate, error)
}

// VectorRetriever 向量检索器
type VectorRetriever struct {
	embedder Embedder
	store    VectorStore
	logger   otel.Logger
}

// RetrieverOption 检索器选项
type RetrieverOption func(*VectorRetriever)

// WithRetrieverLogger 设置日志器
func WithRetrieverLogger(logger otel.Logger) RetrieverOption {
	return func(r *VectorRetriever) {
		r.logger = logger
	}
}

// NewVectorRetriever 创建向量检索器
func NewVectorRetriever(embedder Embedder, store VectorStore, opts ...RetrieverOption) *VectorRetriever {
	r := &VectorRetriever{
		embedder: embedder,
		store:    store,
		logger:   otel.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve 按查询检索候选
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, topK int) ([]retrieval.Candidate, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, errors.Wrap(errors.ErrEmbeddingFailed, err.Error())
	}
	if len(vectors) == 0 {
		return nil, errors.ErrEmbeddingFailed
	}

	results, err := r.store.Search(ctx, vectors[0], topK)
	if err != nil {
		return nil, errors.Wrap(errors.ErrVectorStoreFailed, err.Error())
	}

	candidates := make([]retrieval.Candidate, 0, len(results))
	for _, result := range results {
		// 内容为空的分块无法参与后处理，跳过而不中断
		if result.Chunk.Content == "" {
			r.logger.WithContext(ctx).Warn("skipping empty chunk",
				"chunk_id", result.Chunk.ID)
			continue
		}
		candidates = append(candidates, retrieval.Candidate{
			ID:       result.Chunk.ID,
			Content:  result.Chunk.Content,
			Metadata: result.Chunk.Metadata,
			Score:    result.Distance,
		})
	}

	r.logger.WithContext(ctx).Debug("retrieved candidates",
		"query", query, "top_k", topK, "count", len(candidates))
	return candidates, nil
}

// 编译时接口检查
var _ Retriever = (*VectorRetriever)(nil)
