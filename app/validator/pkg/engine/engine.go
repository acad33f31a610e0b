package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/saas_validator/app/common/metrics"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/config"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/logger"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

// ErrModelFailure 模型调用出错、超时或返回了无法解析的结构
var ErrModelFailure = errors.New("model failure")

// TrendsUnavailableNotice 趋势数据缺失时追加到建议列表末尾
const TrendsUnavailableNotice = "Trend data was unavailable for this analysis; the assessment above is based on general market knowledge only. Re-run the validation once the trends service is reachable."

// Engine 验证编排引擎：分类 -> 关键词 -> 趋势 -> 模型结论 -> 组装
type Engine struct {
	chatModel        einomodel.BaseChatModel
	provider         trends.Provider
	limiter          *rate.Limiter
	chain            compose.Runnable[*state, *model.ValidationResult]
	synthesisTimeout time.Duration
	maxRetries       int
	parallelism      int
}

// state 单次验证在各阶段间传递的状态
type state struct {
	idea         string
	opts         model.Options
	start        time.Time
	analysisType string
	keywords     []string
	series       *trends.Series
	notices      []string
	synthesis    *synthesis
	err          error
}

// NewEngine 根据配置创建 OpenAI 兼容的模型客户端与引擎
func NewEngine(cfg *config.Config, provider trends.Provider) (*Engine, error) {
	ctx := context.Background()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return New(cfg, chatModel, provider)
}

// New 使用给定的模型与趋势后端创建引擎
func New(cfg *config.Config, chatModel einomodel.BaseChatModel, provider trends.Provider) (*Engine, error) {
	cfg.ApplyDefaults()

	e := &Engine{
		chatModel:        chatModel,
		provider:         provider,
		limiter:          rate.NewLimiter(rate.Limit(float64(cfg.Concurrency.RPM)/60.0), cfg.Concurrency.QPS),
		synthesisTimeout: time.Duration(cfg.Engine.SynthesisTimeout) * time.Second,
		maxRetries:       cfg.Engine.MaxRetries,
		parallelism:      cfg.Engine.BatchParallelism,
	}

	chain, err := compose.NewChain[*state, *model.ValidationResult]().
		AppendLambda(compose.InvokableLambda(e.classifyStage)).
		AppendLambda(compose.InvokableLambda(e.keywordStage)).
		AppendLambda(compose.InvokableLambda(e.trendsStage)).
		AppendLambda(compose.InvokableLambda(e.synthesisStage)).
		AppendLambda(compose.InvokableLambda(assembleStage)).
		Compile(context.Background())
	if err != nil {
		return nil, fmt.Errorf("编排链编译失败: %w", err)
	}
	e.chain = chain
	return e, nil
}

// Ready 模型与趋势后端均已就绪
func (e *Engine) Ready() bool {
	return e != nil && e.chatModel != nil && e.provider != nil
}

// Validate 验证一个想法，失败时返回 success=false 的结果而不是错误
func (e *Engine) Validate(ctx context.Context, idea string, opts model.Options) *model.ValidationResult {
	st := &state{idea: strings.TrimSpace(idea), opts: opts, start: time.Now()}
	if st.idea == "" {
		st.err = fmt.Errorf("%w: query is required", trends.ErrInvalidArgument)
		return assemble(st)
	}
	logger.Log.Infof("开始验证想法: %q", st.idea)

	res, err := e.chain.Invoke(ctx, st)
	if err != nil {
		if st.err == nil {
			st.err = err
		}
		res = assemble(st)
	}

	metrics.RecordValidation(res.Success, res.ProcessingTime)
	if res.Success {
		logger.Log.Infof("验证完成: %q verdict=%s opportunity=%d risk=%d 耗时=%.2fs",
			res.Query, res.Recommendation, res.OpportunityScore, res.RiskScore, res.ProcessingTime)
	} else {
		logger.Log.Errorf("验证失败: %q: %s", res.Query, res.Error)
	}
	return res
}

// ValidateBatch 并发验证多个想法，结果与输入一一对应，单项失败不影响其他项
func (e *Engine) ValidateBatch(ctx context.Context, ideas []string, opts model.Options) *model.BatchResult {
	results := make([]*model.ValidationResult, len(ideas))

	var g errgroup.Group
	g.SetLimit(e.parallelism)
	for i, idea := range ideas {
		g.Go(func() error {
			results[i] = e.Validate(ctx, idea, opts)
			return nil
		})
	}
	_ = g.Wait()

	br := model.NewBatchResult(results)
	logger.Log.Infof("批量验证完成: total=%d success=%d failed=%d", br.TotalQueries, br.SuccessfulQueries, br.FailedQueries)
	return br
}

func (e *Engine) classifyStage(_ context.Context, st *state) (*state, error) {
	st.analysisType = classify(st.idea)
	return st, nil
}

func (e *Engine) keywordStage(ctx context.Context, st *state) (*state, error) {
	st.keywords = e.deriveKeywords(ctx, st.idea, st.opts.Queries())
	logger.Log.Debugf("关键词: %v", st.keywords)
	return st, nil
}

func (e *Engine) trendsStage(ctx context.Context, st *state) (*state, error) {
	if !st.opts.WithTrends() {
		return st, nil
	}

	series, err := e.fetchTrends(ctx, st)
	if err != nil {
		logger.Log.Warnf("趋势数据不可用，继续分析: %v", err)
		st.notices = append(st.notices, TrendsUnavailableNotice)
		return st, nil
	}
	st.series = series
	return st, nil
}

// fetchTrends 先按后端的规则规范化关键词，结果中的 keywords 即实际查询的关键词
func (e *Engine) fetchTrends(ctx context.Context, st *state) (*trends.Series, error) {
	req := &trends.Request{Keywords: st.keywords}
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	st.keywords = req.Keywords

	series, err := e.provider.Trends(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := series.Validate(st.keywords); err != nil {
		return nil, err
	}
	return series, nil
}

func (e *Engine) synthesisStage(ctx context.Context, st *state) (*state, error) {
	s, err := e.synthesize(ctx, st.idea, st.analysisType, st.series)
	if err != nil {
		st.err = err
		return st, nil
	}
	st.synthesis = s
	return st, nil
}

func assembleStage(_ context.Context, st *state) (*model.ValidationResult, error) {
	return assemble(st), nil
}

// assemble 组装最终结果；失败时不返回任何分数或建议
func assemble(st *state) *model.ValidationResult {
	res := &model.ValidationResult{
		Query:           st.idea,
		Recommendations: []string{},
		AnalysisType:    st.analysisType,
		Keywords:        st.keywords,
		ProcessingTime:  time.Since(st.start).Seconds(),
	}
	if st.series != nil {
		iot := st.series.InterestOverTime
		res.TrendsData = &model.TrendsData{InterestOverTime: &iot}
	}

	if st.err != nil || st.synthesis == nil {
		err := st.err
		if err == nil {
			err = fmt.Errorf("%w: no synthesis produced", ErrModelFailure)
		}
		res.Error = err.Error()
		return res
	}

	s := st.synthesis
	res.Success = true
	res.OpportunityScore = s.opportunity()
	res.RiskScore = s.risk()
	res.Recommendation = model.ParseVerdict(s.Recommendation)
	res.TrendAnalysis = s.TrendAnalysis
	res.KeyInsights = s.KeyInsights
	res.Recommendations = append(append(res.Recommendations, s.Recommendations...), st.notices...)
	return res
}
