package rag

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/easyops/videorag-go/pkg/core/llm"
	"github.com/easyops/videorag-go/pkg/otel"
	"github.com/easyops/videorag-go/pkg/retrieval"
)

// Action 问答路径
type Action string

const (
	// ActionSearchVideos 检索视频后回答
	ActionSearchVideos Action = "search_videos"
	// ActionDirectAnswer 直接回答
	ActionDirectAnswer Action = "direct_answer"
)

// Answer 问答结果
type Answer struct {
	// Response 回答文本
	Response string `json:"response"`
	// Action 实际采用的问答路径
	Action Action `json:"action"`
	// Thought 路径判定说明
	Thought string `json:"thought"`
	// Groups 喂给生成器的上下文分组（直接回答时为空）
	Groups []retrieval.ContextGroup `json:"groups,omitempty"`
}

// VideoRAGPipeline 视频问答管道
//
// 完整流程：判定问答路径 -> 向量检索 -> 后处理 -> 生成回答。
// 只有查询明确提到 youtube 才走检索路径，其余查询直接回答。
type VideoRAGPipeline struct {
	retriever Retriever
	post      retrieval.PostProcessor
	generator AnswerGenerator
	decider   llm.Provider
	topK      int
	tracer    otel.Tracer
	logger    otel.Logger
	metrics   otel.Metrics
}

// PipelineOption 管道选项
type PipelineOption func(*VideoRAGPipeline)

// WithTopK 设置检索数量
func WithTopK(topK int) PipelineOption {
	return func(p *VideoRAGPipeline) {
		p.topK = topK
	}
}

// WithDecider 设置路径判定 LLM
//
// 设置后，提到 youtube 的查询会再经 LLM 确认是否检索；
// 未设置时仅按关键词判定。
func WithDecider(provider llm.Provider) PipelineOption {
	return func(p *VideoRAGPipeline) {
		p.decider = provider
	}
}

// WithPipelineTracer 设置追踪器
func WithPipelineTracer(tracer otel.Tracer) PipelineOption {
	return func(p *VideoRAGPipeline) {
		p.tracer = tracer
	}
}

// WithPipelineLogger 设置日志器
func WithPipelineLogger(logger otel.Logger) PipelineOption {
	return func(p *VideoRAGPipeline) {
		p.logger = logger
	}
}

// WithPipelineMetrics 设置指标
func WithPipelineMetrics(metrics otel.Metrics) PipelineOption {
	return func(p *VideoRAGPipeline) {
		p.metrics = metrics
	}
}

// NewVideoRAGPipeline 创建视频问答管道
func NewVideoRAGPipeline(retriever Retriever, post retrieval.PostProcessor, generator AnswerGenerator, opts ...PipelineOption) *VideoRAGPipeline {
	p := &VideoRAGPipeline{
		retriever: retriever,
		post:      post,
		generator: generator,
		topK:      DefaultTopK,
		tracer:    otel.NewNoopTracer(),
		logger:    otel.NewNoopLogger(),
		metrics:   otel.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Query 执行一次完整问答
//
// 检索不到任何上下文不是错误：空上下文照常送入生成器，
// 由提示要求模型告知用户。
func (p *VideoRAGPipeline) Query(ctx context.Context, query string) (*Answer, error) {
	ctx, span := p.tracer.Start(ctx, "rag.query")
	defer span.End()

	answer := &Answer{}
	answer.Action, answer.Thought = p.decide(ctx, query)
	span.SetAttributes(attribute.String("action", string(answer.Action)))

	if answer.Action == ActionDirectAnswer {
		response, err := p.generator.AnswerDirect(ctx, query)
		if err != nil {
			return nil, err
		}
		answer.Response = response
		return answer, nil
	}

	candidates, err := p.retriever.Retrieve(ctx, query, p.topK)
	if err != nil {
		return nil, err
	}
	p.metrics.Counter(otel.MetricRetrievalQueries).Add(ctx, 1)
	p.logger.WithContext(ctx).Debug("retrieved candidates for query",
		"query", query, "count", len(candidates))

	answer.Groups = p.post.Process(ctx, query, candidates)

	response, err := p.generator.Answer(ctx, query, answer.Groups)
	if err != nil {
		return nil, err
	}
	answer.Response = response

	span.SetAttributes(
		attribute.Int("candidates", len(candidates)),
		attribute.Int("groups", len(answer.Groups)),
	)
	return answer, nil
}

// decide 判定问答路径
//
// 没提到 youtube 一律直接回答。提到时若配置了判定 LLM，
// 再由 LLM 确认；LLM 不可用则退回关键词判定结果。
func (p *VideoRAGPipeline) decide(ctx context.Context, query string) (Action, string) {
	if !strings.Contains(strings.ToLower(query), "youtube") {
		return ActionDirectAnswer, "No explicit mention of YouTube. Using direct answer."
	}

	if p.decider == nil {
		return ActionSearchVideos, "Query mentions YouTube. Searching videos."
	}

	result, err := p.decider.Generate(ctx, decisionSystemPrompt+"\n\nQuestion: "+query)
	if err != nil {
		p.logger.WithContext(ctx).Warn("decision failed, falling back to keyword gate",
			"error", err)
		return ActionSearchVideos, "Query mentions YouTube. Searching videos."
	}

	if strings.Contains(result, "SEARCH_VIDEOS") {
		return ActionSearchVideos, result
	}
	return ActionDirectAnswer, result
}
