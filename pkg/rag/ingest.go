package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/easyops/videorag-go/pkg/core/errors"
	"github.com/easyops/videorag-go/pkg/otel"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// Ingestor 视频入库器
//
// 把视频转录组装为文档、分块、嵌入并写入向量存储。
// 单条视频的数据缺陷（空转录、嵌入数量不符）只跳过该条，
// 不中断整个批次。
type Ingestor struct {
	chunker  DocumentChunker
	embedder Embedder
	store    VectorStore
	logger   otel.Logger
}

// IngestorOption 入库器选项
type IngestorOption func(*Ingestor)

// WithChunker 设置分块器
func WithChunker(chunker DocumentChunker) IngestorOption {
	return func(i *Ingestor) {
		i.chunker = chunker
	}
}

// WithIngestLogger 设置日志器
func WithIngestLogger(logger otel.Logger) IngestorOption {
	return func(i *Ingestor) {
		i.logger = logger
	}
}

// NewIngestor 创建视频入库器
func NewIngestor(embedder Embedder, store VectorStore, opts ...IngestorOption) *Ingestor {
	i := &Ingestor{
		chunker:  NewRecursiveCharacterChunker(1000, 200),
		embedder: embedder,
		store:    store,
		logger:   otel.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ingest 将视频批量写入向量存储，返回入库的分块数量
func (i *Ingestor) Ingest(ctx context.Context, videos []Video) (int, error) {
	var chunks []Chunk

	for _, video := range videos {
		doc, ok := i.buildDocument(video)
		if !ok {
			continue
		}
		chunks = append(chunks, i.chunker.Chunk(doc)...)
	}

	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for idx, chunk := range chunks {
		texts[idx] = chunk.Content
	}

	vectors, err := i.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, errors.Wrap(errors.ErrEmbeddingFailed, err.Error())
	}
	if len(vectors) != len(chunks) {
		return 0, errors.Wrapf(errors.ErrEmbeddingFailed,
			"expected %d vectors, got %d", len(chunks), len(vectors))
	}

	for idx := range chunks {
		chunks[idx].Vector = vectors[idx]
	}

	if err := i.store.Add(ctx, chunks); err != nil {
		return 0, errors.Wrap(errors.ErrVectorStoreFailed, err.Error())
	}

	i.logger.WithContext(ctx).Info("videos ingested",
		"videos", len(videos), "chunks", len(chunks))
	return len(chunks), nil
}

// buildDocument 将视频组装为文档
//
// 缺失字段取宽松默认值：没有 ID 的视频分配随机 ID，
// 空转录直接跳过。
func (i *Ingestor) buildDocument(video Video) (Document, bool) {
	if strings.TrimSpace(video.Transcript) == "" {
		i.logger.Warn("skipping video with empty transcript",
			"video_id", video.VideoID, "title", video.Title)
		return Document{}, false
	}

	id := video.VideoID
	if id == "" {
		id = generateID()
	}

	return Document{
		ID:      id,
		Content: fmt.Sprintf("Title: %s\nTranscript: %s", video.Title, video.Transcript),
		Metadata: retrieval.VideoMetadata{
			SourceID:  id,
			Title:     video.Title,
			Author:    video.Author,
			URL:       video.URL,
			ViewCount: video.ViewCount,
		},
	}, true
}
