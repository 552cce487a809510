// Package token 提供 Token 计数能力。
//
// 检索管道的预算控制依赖确定性的估算计数器（固定每 Token 字符数，
// 整数除法），而需要精确数字的调用方可以选用 tiktoken 计数器。
package token

import (
	"github.com/pkoukk/tiktoken-go"
)

// Counter 定义 Token 计数接口。
type Counter interface {
	// Count 返回给定文本的 Token 数量。
	Count(text string) int
}

// HeuristicCounter 使用固定字符数估算 Token 数量。
//
// 估算方式为 len(text) / CharsPerToken（整数除法），
// 这是聚合阶段预算判定所依赖的确定性计数器。
type HeuristicCounter struct {
	// CharsPerToken 每个 Token 的平均字符数，默认 4。
	CharsPerToken int
}

// NewHeuristicCounter 创建估算计数器。
func NewHeuristicCounter(charsPerToken int) *HeuristicCounter {
	if charsPerToken <= 0 {
		charsPerToken = 4
	}
	return &HeuristicCounter{CharsPerToken: charsPerToken}
}

// Count 返回估算的 Token 数量。
func (c *HeuristicCounter) Count(text string) int {
	n := c.CharsPerToken
	if n <= 0 {
		n = 4
	}
	return len(text) / n
}

// TiktokenCounter 使用 tiktoken 实现精确的 Token 计数。
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	model    string
}

// TiktokenOption 配置 TiktokenCounter。
type TiktokenOption func(*TiktokenCounter)

// WithModel 设置 Token 编码使用的模型。
// 支持的模型：gpt-4、gpt-4o、gpt-3.5-turbo 等。
func WithModel(model string) TiktokenOption {
	return func(c *TiktokenCounter) {
		c.model = model
	}
}

// NewTiktokenCounter 创建新的 TiktokenCounter。
// 默认使用 cl100k_base 编码（GPT-4、GPT-4o 等使用）。
func NewTiktokenCounter(opts ...TiktokenOption) (*TiktokenCounter, error) {
	c := &TiktokenCounter{
		model: "gpt-4o",
	}

	for _, opt := range opts {
		opt(c)
	}

	encoding, err := tiktoken.EncodingForModel(c.model)
	if err != nil {
		// 降级到 cl100k_base 编码
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	c.encoding = encoding
	return c, nil
}

// Count 返回给定文本的 Token 数量。
func (c *TiktokenCounter) Count(text string) int {
	if c.encoding == nil {
		return NewHeuristicCounter(4).Count(text)
	}
	return len(c.encoding.Encode(text, nil, nil))
}

// DefaultCounter 返回一个 Counter，
// 优先使用 TiktokenCounter，不可用时降级到 HeuristicCounter。
func DefaultCounter() Counter {
	counter, err := NewTiktokenCounter()
	if err != nil {
		return NewHeuristicCounter(4)
	}
	return counter
}

// 编译时接口检查
var _ Counter = (*HeuristicCounter)(nil)
var _ Counter = (*TiktokenCounter)(nil)
