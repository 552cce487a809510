// Package errors 定义框架的通用错误类型
package errors

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNotImplemented 功能未实现
	ErrNotImplemented = errors.New("not implemented")
)

// LLM 相关错误
var (
	// ErrRateLimited 请求被限速
	ErrRateLimited = errors.New("rate limited")
	// ErrTimeout 请求超时
	ErrTimeout = errors.New("request timeout")
	// ErrInvalidAPIKey API 密钥无效
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrModelNotFound 模型未找到
	ErrModelNotFound = errors.New("model not found")
	// ErrProviderUnavailable 提供商不可用
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrInvalidResponse LLM 响应无效
	ErrInvalidResponse = errors.New("invalid LLM response")
)

// 检索与存储相关错误
var (
	// ErrEmbeddingFailed 嵌入失败
	ErrEmbeddingFailed = errors.New("embedding failed")
	// ErrVectorStoreFailed 向量存储操作失败
	ErrVectorStoreFailed = errors.New("vector store operation failed")
	// ErrChunkNotFound 分块未找到
	ErrChunkNotFound = errors.New("chunk not found")
	// ErrDimensionMismatch 向量维度不匹配
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Wrap 包装错误并添加上下文信息
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf 包装错误并添加格式化上下文信息
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is 判断错误链中是否包含目标错误
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As 在错误链中查找目标类型
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
