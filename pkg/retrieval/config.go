package retrieval

// FilterConfig 过滤阶段配置
type FilterConfig struct {
	// MaxDistance 相似度距离上限，超过即丢弃
	MaxDistance float64 `koanf:"max_distance"`
	// MinContentLength 清洗后内容的最小字符数
	MinContentLength int `koanf:"min_content_length"`
	// MaxNoiseCount 噪声标记出现次数上限
	MaxNoiseCount int `koanf:"max_noise_count"`
	// MinViewCount 播放量下限
	MinViewCount int `koanf:"min_view_count"`
	// FingerprintLength 去重指纹取内容前缀的字符数
	FingerprintLength int `koanf:"fingerprint_length"`
	// NoiseMarkers 噪声标记词表（大小写不敏感）
	NoiseMarkers []string `koanf:"noise_markers"`
}

// DefaultFilterConfig 返回默认过滤配置。
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MaxDistance:       0.8,
		MinContentLength:  50,
		MaxNoiseCount:     3,
		MinViewCount:      100,
		FingerprintLength: 200,
		NoiseMarkers:      []string{"[Music]", "[Applause]", "inaudible", "unclear"},
	}
}

// RelaxedFilterConfig 返回宽松过滤配置。
//
// 用于调试和初始验证：更低的播放量门槛、更宽的距离阈值、
// 更短的内容下限、更高的噪声容忍度。
func RelaxedFilterConfig() FilterConfig {
	cfg := DefaultFilterConfig()
	cfg.MaxDistance = 1.0
	cfg.MinContentLength = 20
	cfg.MaxNoiseCount = 10
	cfg.MinViewCount = 10
	return cfg
}

// RerankConfig 重排序阶段配置
type RerankConfig struct {
	// PopularityHighThreshold 高播放量阈值
	PopularityHighThreshold int `koanf:"popularity_high_threshold"`
	// PopularityHighBonus 高播放量加分
	PopularityHighBonus float64 `koanf:"popularity_high_bonus"`
	// PopularityLowThreshold 中等播放量阈值
	PopularityLowThreshold int `koanf:"popularity_low_threshold"`
	// PopularityLowBonus 中等播放量加分
	PopularityLowBonus float64 `koanf:"popularity_low_bonus"`
	// AuthorityBonus 权威频道加分
	AuthorityBonus float64 `koanf:"authority_bonus"`
	// EntertainmentPenalty 技术查询命中娱乐标题的扣分
	EntertainmentPenalty float64 `koanf:"entertainment_penalty"`
	// EducationalChannels 权威教育频道允许列表
	EducationalChannels []string `koanf:"educational_channels"`
	// TechnicalKeywords 技术关键词集合
	TechnicalKeywords []string `koanf:"technical_keywords"`
	// EntertainmentIndicators 娱乐指示词集合
	EntertainmentIndicators []string `koanf:"entertainment_indicators"`
}

// DefaultRerankConfig 返回默认重排序配置。
func DefaultRerankConfig() RerankConfig {
	return RerankConfig{
		PopularityHighThreshold: 10000,
		PopularityHighBonus:     0.2,
		PopularityLowThreshold:  1000,
		PopularityLowBonus:      0.1,
		AuthorityBonus:          0.3,
		EntertainmentPenalty:    0.4,
		EducationalChannels: []string{
			"3Blue1Brown", "Khan Academy", "Crash Course",
			"MIT OpenCourseWare", "Stanford", "Harvard",
			"freeCodeCamp.org", "Coursera", "edX",
		},
		TechnicalKeywords: []string{
			"code", "programming", "tutorial", "learn", "how to",
			"algorithm", "software", "development", "engineering",
		},
		EntertainmentIndicators: []string{
			"music", "song", "funny", "meme", "reaction",
			"comedy", "entertainment", "viral", "trending",
		},
	}
}

// AggregateConfig 聚合压缩阶段配置
type AggregateConfig struct {
	// TokenBudget 全局 Token 预算
	TokenBudget int `koanf:"token_budget"`
	// MaxChunksPerSource 每个来源合并的最大分块数
	MaxChunksPerSource int `koanf:"max_chunks_per_source"`
	// CharsPerToken 每 Token 字符数估算
	CharsPerToken int `koanf:"chars_per_token"`
	// CompressionRatio 超预算时的压缩保留比例
	CompressionRatio float64 `koanf:"compression_ratio"`
}

// DefaultAggregateConfig 返回默认聚合配置。
func DefaultAggregateConfig() AggregateConfig {
	return AggregateConfig{
		TokenBudget:        4000,
		MaxChunksPerSource: 3,
		CharsPerToken:      4,
		CompressionRatio:   0.6,
	}
}

// Config 后处理管道配置
type Config struct {
	// Filter 过滤配置
	Filter FilterConfig `koanf:"filter"`
	// Rerank 重排序配置
	Rerank RerankConfig `koanf:"rerank"`
	// Aggregate 聚合配置
	Aggregate AggregateConfig `koanf:"aggregate"`
}

// DefaultConfig 返回默认管道配置。
func DefaultConfig() Config {
	return Config{
		Filter:    DefaultFilterConfig(),
		Rerank:    DefaultRerankConfig(),
		Aggregate: DefaultAggregateConfig(),
	}
}

// RelaxedConfig 返回宽松管道配置（仅过滤阶段放宽）。
func RelaxedConfig() Config {
	cfg := DefaultConfig()
	cfg.Filter = RelaxedFilterConfig()
	return cfg
}
