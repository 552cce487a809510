package retrieval

import (
	"sort"
	"strings"

	"github.com/easyops/videorag-go/pkg/token"
)

// Aggregator 聚合压缩器
//
// 把重排序后的候选按来源分组，组内合并最相关的若干分块，
// 在全局 Token 预算内产出 ContextGroup 序列。预算判定使用
// 确定性的估算计数器（字符数整除），以便预算测试可复现。
type Aggregator struct {
	config  AggregateConfig
	counter token.Counter
}

// AggregatorOption 配置 Aggregator。
type AggregatorOption func(*Aggregator)

// WithTokenCounter 替换 Token 计数器。
// 注意：替换为非确定性计数器会使预算行为依赖具体编码。
func WithTokenCounter(counter token.Counter) AggregatorOption {
	return func(a *Aggregator) {
		a.counter = counter
	}
}

// NewAggregator 创建聚合压缩器。
func NewAggregator(config AggregateConfig, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		config:  config,
		counter: token.NewHeuristicCounter(config.CharsPerToken),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate 按来源聚合候选并在预算内产出上下文分组。
//
// 分组顺序为首次出现顺序，也就是重排序给出的名次顺序，
// 因此排名靠前的来源优先占用预算。一旦某组（压缩后仍）放不进
// 剩余预算，处理立即停止——这是对组序的硬截断，不是尽力打包。
func (a *Aggregator) Aggregate(ranked []Candidate, query string) []ContextGroup {
	groups, order := groupBySource(ranked)

	result := make([]ContextGroup, 0, len(order))
	usedTokens := 0

	for _, sourceID := range order {
		members := groups[sourceID]

		merged := a.mergeChunks(members, query)
		estimated := a.counter.Count(merged)

		if usedTokens+estimated > a.config.TokenBudget {
			// 超预算时压缩一次，重新估算
			compressor := NewCompressor(a.config.CompressionRatio)
			merged = compressor.Compress(merged, query)
			estimated = a.counter.Count(merged)
		}

		if usedTokens+estimated > a.config.TokenBudget {
			break
		}

		meta := members[0].Metadata
		meta.Aggregated = true

		result = append(result, ContextGroup{
			Content:         merged,
			Metadata:        meta,
			EstimatedTokens: estimated,
		})
		usedTokens += estimated
	}

	return result
}

// mergeChunks 合并同一来源的分块。
//
// 按查询相关度稳定降序排序，至多保留 MaxChunksPerSource 个，
// 用空行拼接。
func (a *Aggregator) mergeChunks(members []Candidate, query string) string {
	words := queryWords(query)

	type scored struct {
		content   string
		relevance float64
	}
	sorted := make([]scored, len(members))
	for i, m := range members {
		sorted[i] = scored{content: m.Content, relevance: overlapRelevance(words, m.Content)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].relevance > sorted[j].relevance
	})

	limit := a.config.MaxChunksPerSource
	if limit <= 0 || limit > len(sorted) {
		limit = len(sorted)
	}

	contents := make([]string, limit)
	for i := 0; i < limit; i++ {
		contents[i] = sorted[i].content
	}
	return strings.Join(contents, "\n\n")
}

// groupBySource 按 SourceID 分组，保持首次出现顺序。
func groupBySource(candidates []Candidate) (map[string][]Candidate, []string) {
	groups := make(map[string][]Candidate)
	order := make([]string, 0)

	for _, cand := range candidates {
		sourceID := cand.Metadata.SourceID
		if sourceID == "" {
			sourceID = "unknown"
		}
		if _, seen := groups[sourceID]; !seen {
			order = append(order, sourceID)
		}
		groups[sourceID] = append(groups[sourceID], cand)
	}

	return groups, order
}
