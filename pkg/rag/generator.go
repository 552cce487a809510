package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/easyops/videorag-go/pkg/core/errors"
	"github.com/easyops/videorag-go/pkg/core/llm"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// ragSystemPrompt 基于上下文回答的系统提示
const ragSystemPrompt = `You are a helpful AI assistant that provides concise answers strictly based on the given context (YouTube video transcripts).
- Only use the provided context to answer the query.
- Do not recommend or cite any videos that are not in the context.
- If the context is empty or insufficient, say so and ask the user to refine the query.
- Prefer bullet points that synthesize lessons from the transcripts; avoid generic advice not present in the context.
- If citing, include at most one most relevant video title and URL.`

// directSystemPrompt 无检索直接回答的系统提示
const directSystemPrompt = `You are a helpful AI assistant that answers questions.
Since the question didn't mention YouTube specifically, provide a general answer.
If the user wants information from YouTube videos, remind them to include 'YouTube' in the question.`

// decisionSystemPrompt 判定是否检索视频的系统提示
const decisionSystemPrompt = `You are an AI that decides how to answer questions.

RULES:
- Choose SEARCH_VIDEOS only if the word "youtube" appears in the question
- Choose DIRECT_ANSWER for all other questions

Respond with exactly one token: SEARCH_VIDEOS or DIRECT_ANSWER. Do not include any reasoning.`

// AnswerGenerator 答案生成器接口
type AnswerGenerator interface {
	// Answer 基于聚合后的上下文回答查询
	Answer(ctx context.Context, query string, groups []retrieval.ContextGroup) (string, error)
	// AnswerDirect 不带上下文直接回答查询
	AnswerDirect(ctx context.Context, query string) (string, error)
}

// LLMGenerator 基于 LLM 的答案生成器
type LLMGenerator struct {
	provider llm.Provider
}

// NewLLMGenerator 创建 LLM 答案生成器
func NewLLMGenerator(provider llm.Provider) *LLMGenerator {
	return &LLMGenerator{provider: provider}
}

// Answer 基于聚合后的上下文回答查询
//
// 上下文为空不是错误：提示要求模型告知用户并建议改写查询。
func (g *LLMGenerator) Answer(ctx context.Context, query string, groups []retrieval.ContextGroup) (string, error) {
	prompt := fmt.Sprintf("%s\n\nContext: %s\n\nQuestion: %s",
		ragSystemPrompt, FormatContext(groups), query)

	answer, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, "answer generation failed")
	}
	return answer, nil
}

// AnswerDirect 不带上下文直接回答查询
func (g *LLMGenerator) AnswerDirect(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nQuestion: %s", directSystemPrompt, query)

	answer, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, "answer generation failed")
	}
	return answer, nil
}

// FormatContext 将聚合后的上下文组拼接为提示文本
func FormatContext(groups []retrieval.ContextGroup) string {
	if len(groups) == 0 {
		return ""
	}

	parts := make([]string, len(groups))
	for i, group := range groups {
		parts[i] = group.Content
	}
	return strings.Join(parts, "\n")
}

// 编译时接口检查
var _ AnswerGenerator = (*LLMGenerator)(nil)
