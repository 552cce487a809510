package otel

// 预定义的指标名称
// 遵循 OpenTelemetry 语义约定
const (
	// 检索后处理管道指标
	MetricPipelineRuns              = "pipeline.runs"               // 计数器: 管道执行次数
	MetricPipelineDuration          = "pipeline.duration"           // 直方图: 管道执行时间(ms)
	MetricPipelineCandidatesIn      = "pipeline.candidates.in"      // 计数器: 进入管道的候选数
	MetricPipelineCandidatesDropped = "pipeline.candidates.dropped" // 计数器: 被过滤的候选数
	MetricPipelineGroupsOut         = "pipeline.groups.out"         // 计数器: 产出的上下文分组数
	MetricPipelineTokensUsed        = "pipeline.tokens.used"        // 直方图: 每次产出的估算 Token 数

	// 检索指标
	MetricRetrievalQueries       = "retrieval.queries"        // 计数器: 检索次数
	MetricRetrievalQueryDuration = "retrieval.query.duration" // 直方图: 检索时间(ms)
	MetricRetrievalChunksIndexed = "retrieval.chunks.indexed" // 计数器: 索引分块数

	// LLM 指标
	MetricLLMRequests        = "llm.requests"         // 计数器: LLM 请求次数
	MetricLLMRequestDuration = "llm.request.duration" // 直方图: LLM 请求时间(ms)
	MetricLLMErrors          = "llm.errors"           // 计数器: LLM 错误次数
	MetricLLMRetries         = "llm.retries"          // 计数器: LLM 重试次数
)
