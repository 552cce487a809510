package retrieval

import (
	"strings"
)

// queryWords 返回查询的小写词集合（按空白切分）。
func queryWords(query string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(query))
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}

// overlapRelevance 计算文本与查询词集合的重叠相关度。
//
// 相关度 = |查询词 ∩ 文本词| / |查询词|，取值 [0, 1]。
// 查询没有词时相关度定义为 0，避免除零。
func overlapRelevance(words map[string]struct{}, text string) float64 {
	if len(words) == 0 {
		return 0
	}

	matched := make(map[string]struct{}, len(words))
	for _, f := range strings.Fields(strings.ToLower(text)) {
		if _, ok := words[f]; ok {
			matched[f] = struct{}{}
		}
	}
	return float64(len(matched)) / float64(len(words))
}
