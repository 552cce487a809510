package retrieval

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/easyops/videorag-go/pkg/otel"
)

// PostProcessor 后处理器接口
//
// 把原始检索结果转换为可直接交给生成器的上下文分组。
type PostProcessor interface {
	// Process 执行 过滤 -> 重排序 -> 聚合压缩
	Process(ctx context.Context, query string, candidates []Candidate) []ContextGroup
}

// Pipeline 默认后处理管道
//
// 三个阶段都是纯函数，管道自身只负责串联和观测埋点。
// 配置数据在构造后只读，同一实例可被多个查询并发使用。
type Pipeline struct {
	filter     *Filter
	reranker   *Reranker
	aggregator *Aggregator
	tracer     otel.Tracer
	logger     otel.Logger
	metrics    otel.Metrics
}

// PipelineOption 配置 Pipeline。
type PipelineOption func(*Pipeline)

// WithTracer 设置追踪器。
func WithTracer(tracer otel.Tracer) PipelineOption {
	return func(p *Pipeline) {
		p.tracer = tracer
	}
}

// WithLogger 设置日志器。
func WithLogger(logger otel.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMetrics 设置指标。
func WithMetrics(metrics otel.Metrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

// NewPipeline 创建后处理管道。
func NewPipeline(config Config, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		filter:     NewFilter(config.Filter),
		reranker:   NewReranker(config.Rerank),
		aggregator: NewAggregator(config.Aggregate),
		tracer:     otel.NewNoopTracer(),
		logger:     otel.NewNoopLogger(),
		metrics:    otel.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process 执行完整的后处理管道。
//
// 任何阶段产出空集合都正常传递下去，最终返回空分组序列而非错误；
// "没有结果"是结果的一种，由调用方决定如何呈现。
func (p *Pipeline) Process(ctx context.Context, query string, candidates []Candidate) []ContextGroup {
	ctx, span := p.tracer.Start(ctx, "retrieval.post_process",
		otel.WithAttributes(
			attribute.Int("candidates.in", len(candidates)),
		))
	defer span.End()

	start := time.Now()
	p.metrics.Counter(otel.MetricPipelineRuns).Add(ctx, 1)
	p.metrics.Counter(otel.MetricPipelineCandidatesIn).Add(ctx, int64(len(candidates)))

	filtered := p.runFilter(ctx, query, candidates)
	ranked := p.runRerank(ctx, query, filtered)
	groups := p.runAggregate(ctx, query, ranked)

	usedTokens := 0
	for _, g := range groups {
		usedTokens += g.EstimatedTokens
	}

	span.SetAttributes(
		attribute.Int("groups.out", len(groups)),
		attribute.Int("tokens.used", usedTokens),
	)
	p.metrics.Counter(otel.MetricPipelineGroupsOut).Add(ctx, int64(len(groups)))
	p.metrics.Histogram(otel.MetricPipelineTokensUsed).Record(ctx, float64(usedTokens))
	p.metrics.Histogram(otel.MetricPipelineDuration).Record(ctx, float64(time.Since(start).Milliseconds()))

	p.logger.WithContext(ctx).Debug("post-processing complete",
		"candidates_in", len(candidates),
		"survivors", len(filtered),
		"groups_out", len(groups),
		"tokens_used", usedTokens,
	)

	return groups
}

// runFilter 执行过滤阶段。
func (p *Pipeline) runFilter(ctx context.Context, query string, candidates []Candidate) []Candidate {
	ctx, span := p.tracer.Start(ctx, "retrieval.filter")
	defer span.End()

	filtered := p.filter.Filter(candidates, query)

	dropped := len(candidates) - len(filtered)
	span.SetAttributes(attribute.Int("candidates.dropped", dropped))
	p.metrics.Counter(otel.MetricPipelineCandidatesDropped).Add(ctx, int64(dropped))

	return filtered
}

// runRerank 执行重排序阶段。
func (p *Pipeline) runRerank(ctx context.Context, query string, candidates []Candidate) []Candidate {
	_, span := p.tracer.Start(ctx, "retrieval.rerank")
	defer span.End()

	return p.reranker.Rerank(candidates, query)
}

// runAggregate 执行聚合压缩阶段。
func (p *Pipeline) runAggregate(ctx context.Context, query string, ranked []Candidate) []ContextGroup {
	_, span := p.tracer.Start(ctx, "retrieval.aggregate")
	defer span.End()

	return p.aggregator.Aggregate(ranked, query)
}

// 编译时接口检查
var _ PostProcessor = (*Pipeline)(nil)
