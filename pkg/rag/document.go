// Package rag 提供视频转录内容的检索增强生成（RAG）能力
//
// 包含文档分块、向量存储、相似度检索与答案生成，
// 检索结果经 retrieval 包的后处理管道过滤、重排与聚合后再送入生成。
package rag

import (
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// Video 视频源数据
//
// 对应采集阶段产出的一条视频记录，Transcript 为完整转录文本。
type Video struct {
	// VideoID 视频唯一标识
	VideoID string `json:"video_id"`
	// Title 视频标题
	Title string `json:"title"`
	// Author 频道名称
	Author string `json:"author,omitempty"`
	// URL 视频链接
	URL string `json:"url,omitempty"`
	// ViewCount 播放量
	ViewCount int `json:"view_count,omitempty"`
	// Transcript 转录文本
	Transcript string `json:"transcript"`
}

// Document 待入库的文档
type Document struct {
	// ID 文档唯一标识
	ID string `json:"id"`
	// Content 文档内容
	Content string `json:"content"`
	// Metadata 视频元数据（继承到所有分块）
	Metadata retrieval.VideoMetadata `json:"metadata"`
}

// Chunk 文档分块
type Chunk struct {
	// ID 分块唯一标识
	ID string `json:"id"`
	// DocumentID 所属文档 ID
	DocumentID string `json:"document_id"`
	// Content 分块内容
	Content string `json:"content"`
	// Index 分块在文档中的序号
	Index int `json:"index"`
	// Metadata 视频元数据
	Metadata retrieval.VideoMetadata `json:"metadata"`
	// Vector 嵌入向量
	Vector []float32 `json:"vector,omitempty"`
}

// SearchResult 向量检索结果
type SearchResult struct {
	// Chunk 命中的分块
	Chunk Chunk `json:"chunk"`
	// Distance 余弦距离（1 - 余弦相似度），越小越相似
	Distance float64 `json:"distance"`
}
