package retrieval

import (
	"strings"
)

// Filter 后处理过滤器
//
// 按顺序执行：距离阈值过滤、内容清洗、指纹去重、质量判定。
// 输出保持幸存者的输入相对顺序，候选以替换内容后的新值返回。
type Filter struct {
	config  FilterConfig
	cleaner *ContentCleaner
}

// NewFilter 创建后处理过滤器。
func NewFilter(config FilterConfig) *Filter {
	return &Filter{
		config:  config,
		cleaner: NewContentCleaner(),
	}
}

// Filter 过滤并清洗候选集合。
//
// 空输入返回空结果，这是正常结束而非错误。
// 单个候选不合格只影响它自己，不会中断整批处理。
func (f *Filter) Filter(candidates []Candidate, query string) []Candidate {
	survivors := make([]Candidate, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, cand := range candidates {
		// 距离过大，相似度不足
		if cand.Score > f.config.MaxDistance {
			continue
		}

		cleaned := f.cleaner.Clean(cand.Content)

		// 指纹 = 清洗后内容前缀，精确去重（非语义去重）
		fp := fingerprint(cleaned, f.config.FingerprintLength)
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}

		if !f.IsHighQuality(cand, cleaned) {
			continue
		}

		survivors = append(survivors, cand.WithContent(cleaned))
	}

	return survivors
}

// IsHighQuality 判定清洗后的内容是否达到质量要求。
//
// 噪声标记按照参考实现的行为扫描清洗后的内容：清洗器已经剥掉
// [Music]/[Applause] 这类括号标记，因此通常只有裸词
// （inaudible、unclear）还能计数。该取舍在过滤器测试中固化。
func (f *Filter) IsHighQuality(cand Candidate, cleaned string) bool {
	if len(cleaned) < f.config.MinContentLength {
		return false
	}

	lower := strings.ToLower(cleaned)
	noiseCount := 0
	for _, marker := range f.config.NoiseMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			noiseCount++
		}
	}
	if noiseCount > f.config.MaxNoiseCount {
		return false
	}

	if cand.Metadata.ViewCount < f.config.MinViewCount {
		return false
	}

	return true
}

// fingerprint 返回内容前 n 个字符作为去重指纹。
func fingerprint(content string, n int) string {
	if n <= 0 || len(content) <= n {
		return content
	}
	return content[:n]
}
