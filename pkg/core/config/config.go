// Package config 提供配置加载和管理功能
package config

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/easyops/videorag-go/pkg/otel"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "VIDEORAG_"

// Config 全局配置结构
type Config struct {
	// LLM LLM 配置
	LLM LLMConfig `koanf:"llm"`
	// Retrieval 检索后处理配置
	Retrieval retrieval.Config `koanf:"retrieval"`
	// Observability 可观测性配置
	Observability otel.Config `koanf:"observability"`
}

// LLMConfig LLM 配置
type LLMConfig struct {
	// Provider 提供商名称
	Provider string `koanf:"provider"`
	// APIKey API 密钥
	APIKey string `koanf:"api_key"`
	// BaseURL 服务地址（可选，用于代理或私有部署）
	BaseURL string `koanf:"base_url"`
	// Model 对话模型
	Model string `koanf:"model"`
	// EmbeddingModel 嵌入模型
	EmbeddingModel string `koanf:"embedding_model"`
	// Temperature 采样温度
	Temperature float64 `koanf:"temperature"`
	// MaxTokens 最大输出 Token 数
	MaxTokens int `koanf:"max_tokens"`
}

// DefaultLLMConfig 返回默认 LLM 配置。
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:       "openai",
		Model:          "gpt-4o",
		EmbeddingModel: "text-embedding-3-small",
		Temperature:    0.7,
		MaxTokens:      2048,
	}
}

// Default 返回默认全局配置。
func Default() Config {
	return Config{
		LLM:           DefaultLLMConfig(),
		Retrieval:     retrieval.DefaultConfig(),
		Observability: otel.DefaultConfig(),
	}
}

// Loader 配置加载器
type Loader struct {
	k *koanf.Koanf
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{
		k: koanf.New("."),
	}
}

// LoadEnv 从环境变量加载配置
//
// 变量名转换规则: VIDEORAG_RETRIEVAL_AGGREGATE_TOKEN_BUDGET
// -> retrieval.aggregate.token_budget。
// 由于键路径本身含下划线，转换使用双下划线作为层级分隔符优先匹配，
// 单下划线保留在叶子键名中。
func (l *Loader) LoadEnv() error {
	return l.k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		// 双下划线表示层级，单下划线保留为键名的一部分
		if strings.Contains(s, "__") {
			return strings.ReplaceAll(s, "__", ".")
		}
		return strings.ReplaceAll(s, "_", ".")
	}), nil)
}

// Unmarshal 把已加载的配置合并到默认值之上。
func (l *Loader) Unmarshal() (Config, error) {
	cfg := Default()
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load 加载完整配置：默认值 + 环境变量覆盖。
func Load() (Config, error) {
	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		return Config{}, err
	}
	return l.Unmarshal()
}
