// Package retrieval 提供检索结果的后处理能力。
//
// 管道按顺序执行三个阶段：过滤清洗（Filter）、启发式重排序（Rerank）、
// 按来源聚合压缩（Aggregate）。每个阶段都是对内存集合的纯函数，
// 不做任何 I/O，输入相同则输出相同。
package retrieval

// Candidate 候选段落
//
// 一条从向量索引检索到的文本段落及其元数据。
// Score 采用距离语义：数值越小表示与查询越相似，
// 所有打分逻辑都建立在这个假设之上。
type Candidate struct {
	// ID 候选唯一标识
	ID string `json:"id"`
	// Content 段落内容
	Content string `json:"content"`
	// Metadata 视频元数据
	Metadata VideoMetadata `json:"metadata"`
	// Score 相似度距离分数（越小越相似）
	Score float64 `json:"score"`
}

// WithContent 返回替换内容后的新 Candidate。
// 清洗阶段通过它产生新值，避免多个集合引用同一对象时的别名问题。
func (c Candidate) WithContent(content string) Candidate {
	c.Content = content
	return c
}

// VideoMetadata 视频元数据
//
// 必需字段缺失时按零值处理：Author/Title/URL 视为空串，
// ViewCount 视为 0，单条元数据不完整不会导致整批失败。
type VideoMetadata struct {
	// SourceID 来源视频标识
	SourceID string `json:"source_id"`
	// Title 视频标题
	Title string `json:"title,omitempty"`
	// Author 频道作者
	Author string `json:"author,omitempty"`
	// URL 视频链接
	URL string `json:"url,omitempty"`
	// ViewCount 播放量
	ViewCount int `json:"view_count"`
	// Aggregated 是否为聚合产物（仅聚合阶段置位）
	Aggregated bool `json:"aggregated,omitempty"`
	// Custom 提供方自定义元数据
	Custom map[string]interface{} `json:"custom,omitempty"`
}

// ContextGroup 上下文分组
//
// 聚合阶段的输出单元：每个来源至多一个，内容为该来源
// 合并（或压缩）后的文本，Metadata.Aggregated 恒为 true。
type ContextGroup struct {
	// Content 合并后的文本
	Content string `json:"content"`
	// Metadata 元数据（取自该组第一个候选，Aggregated 置位）
	Metadata VideoMetadata `json:"metadata"`
	// EstimatedTokens 按估算计数器得到的 Token 数
	EstimatedTokens int `json:"estimated_tokens"`
}
