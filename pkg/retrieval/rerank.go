package retrieval

import (
	"sort"
	"strings"
)

// Reranker 重排序器
//
// 使用元数据感知的复合启发式分数对过滤后的候选重新排序：
//
//	composite = (1 - 距离分数) + 播放量加分 + 权威频道加分 - 娱乐内容扣分
//
// 词表通过配置注入而非写死，测试可以替换为固定样例。
// 无随机性：输入与词表相同时输出完全确定。
type Reranker struct {
	config RerankConfig
}

// NewReranker 创建重排序器。
func NewReranker(config RerankConfig) *Reranker {
	return &Reranker{config: config}
}

// Rerank 按复合分数降序返回候选。
//
// 稳定排序：分数相同的候选保持输入相对顺序。
func (r *Reranker) Rerank(candidates []Candidate, query string) []Candidate {
	type scored struct {
		cand  Candidate
		score float64
	}

	ranked := make([]scored, len(candidates))
	for i, cand := range candidates {
		ranked[i] = scored{cand: cand, score: r.CompositeScore(cand, query)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	result := make([]Candidate, len(ranked))
	for i, s := range ranked {
		result[i] = s.cand
	}
	return result
}

// CompositeScore 计算单个候选的复合分数。
func (r *Reranker) CompositeScore(cand Candidate, query string) float64 {
	// 距离分数取反：越小越相似 -> 越大越好
	score := 1 - cand.Score

	score += r.popularityBonus(cand.Metadata.ViewCount)
	score += r.authorityBonus(cand.Metadata.Author)
	score -= r.entertainmentPenalty(query, cand.Metadata.Title)

	return score
}

// popularityBonus 按播放量返回加分。
func (r *Reranker) popularityBonus(viewCount int) float64 {
	if viewCount > r.config.PopularityHighThreshold {
		return r.config.PopularityHighBonus
	}
	if viewCount > r.config.PopularityLowThreshold {
		return r.config.PopularityLowBonus
	}
	return 0
}

// authorityBonus 作者命中教育频道允许列表时返回加分。
// 匹配为大小写不敏感的子串包含。
func (r *Reranker) authorityBonus(author string) float64 {
	if author == "" {
		return 0
	}
	lower := strings.ToLower(author)
	for _, channel := range r.config.EducationalChannels {
		if strings.Contains(lower, strings.ToLower(channel)) {
			return r.config.AuthorityBonus
		}
	}
	return 0
}

// entertainmentPenalty 技术查询命中娱乐标题时返回扣分。
func (r *Reranker) entertainmentPenalty(query, title string) float64 {
	if title == "" {
		return 0
	}

	lowerQuery := strings.ToLower(query)
	technical := false
	for _, kw := range r.config.TechnicalKeywords {
		if strings.Contains(lowerQuery, strings.ToLower(kw)) {
			technical = true
			break
		}
	}
	if !technical {
		return 0
	}

	lowerTitle := strings.ToLower(title)
	for _, indicator := range r.config.EntertainmentIndicators {
		if strings.Contains(lowerTitle, strings.ToLower(indicator)) {
			return r.config.EntertainmentPenalty
		}
	}
	return 0
}
