// Package llm 提供 LLM 服务的统一接口
package llm

import (
	"context"
)

// Provider 定义 LLM 提供商接口
//
// 本模块只把 LLM 当作"给定提示生成文本"的协作方消费，
// 因此接口保持最小：文本生成 + 向量嵌入。
type Provider interface {
	// Generate 根据提示生成文本
	Generate(ctx context.Context, prompt string) (string, error)

	// Embed 生成文本嵌入向量
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Name 返回提供商名称
	Name() string

	// Model 返回当前模型名称
	Model() string

	// Close 关闭客户端连接
	Close() error
}
