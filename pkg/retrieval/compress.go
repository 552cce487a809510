package retrieval

import (
	"math"
	"sort"
	"strings"
)

// Compressor 内容压缩器
//
// 在保留查询相关信息的前提下缩减文本：按 ". " 切分句子，
// 按查询词重叠度打分，保留得分最高的一部分句子。
// 句子切分是朴素实现（缩写不做特判），以保持纯函数、零依赖。
type Compressor struct {
	// TargetRatio 保留比例，默认 0.6
	TargetRatio float64
}

// NewCompressor 创建压缩器。
func NewCompressor(targetRatio float64) *Compressor {
	if targetRatio <= 0 || targetRatio > 1 {
		targetRatio = 0.6
	}
	return &Compressor{TargetRatio: targetRatio}
}

// Compress 压缩内容。
//
// 保留 max(1, floor(句子数 * TargetRatio)) 个句子。
// 选出的句子按得分排序输出而不恢复原文顺序——压缩允许按
// 相关度重排句子，这是沿用参考行为的刻意选择。
// 同分句子间为稳定排序，保持原文相对顺序。
func (c *Compressor) Compress(content, query string) string {
	sentences := strings.Split(content, ". ")

	words := queryWords(query)

	type scored struct {
		sentence string
		score    float64
	}
	scoredSentences := make([]scored, len(sentences))
	for i, s := range sentences {
		scoredSentences[i] = scored{sentence: s, score: overlapRelevance(words, s)}
	}

	sort.SliceStable(scoredSentences, func(i, j int) bool {
		return scoredSentences[i].score > scoredSentences[j].score
	})

	target := int(math.Floor(float64(len(sentences)) * c.TargetRatio))
	if target < 1 {
		target = 1
	}
	if target > len(scoredSentences) {
		target = len(scoredSentences)
	}

	selected := make([]string, target)
	for i := 0; i < target; i++ {
		selected[i] = scoredSentences[i].sentence
	}
	return strings.Join(selected, ". ")
}
