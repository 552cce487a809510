package llm

import (
	"time"
)

// Options 客户端选项
type Options struct {
	// APIKey API 密钥
	APIKey string
	// BaseURL 服务地址（可选）
	BaseURL string
	// Model 对话模型
	Model string
	// EmbeddingModel 嵌入模型
	EmbeddingModel string
	// Temperature 采样温度
	Temperature float64
	// MaxTokens 最大输出 Token 数
	MaxTokens int
	// MaxRetries 最大重试次数
	MaxRetries int
	// RetryDelay 重试基础间隔
	RetryDelay time.Duration
}

// DefaultOptions 返回默认选项
func DefaultOptions() *Options {
	return &Options{
		Temperature: 0.7,
		MaxTokens:   2048,
		MaxRetries:  3,
		RetryDelay:  time.Second,
	}
}

// Option 选项函数
type Option func(*Options)

// WithAPIKey 设置 API 密钥
func WithAPIKey(key string) Option {
	return func(o *Options) {
		o.APIKey = key
	}
}

// WithBaseURL 设置服务地址
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

// WithLLMModel 设置对话模型
func WithLLMModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithEmbeddingModel 设置嵌入模型
func WithEmbeddingModel(model string) Option {
	return func(o *Options) {
		o.EmbeddingModel = model
	}
}

// WithTemperature 设置采样温度
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = t
	}
}

// WithMaxTokens 设置最大输出 Token 数
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithMaxRetries 设置最大重试次数
func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.MaxRetries = n
	}
}

// WithRetryDelay 设置重试基础间隔
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) {
		o.RetryDelay = d
	}
}
