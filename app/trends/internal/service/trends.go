package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/saas_validator/app/common/metrics"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
)

// TrendsRequest GET /api/trends 查询参数
type TrendsRequest struct {
	Keywords string `json:"keywords"`
	Date     string `json:"date"`
}

// HealthReply GET /api/health 响应
type HealthReply struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// IndexReply 服务信息
type IndexReply struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type TrendsService struct {
	provider trends.Provider
	backend  string
	version  string
	log      *log.Helper
}

func NewTrendsService(provider trends.Provider, backend, version string, logger log.Logger) *TrendsService {
	if backend == "" {
		backend = "mock"
	}
	return &TrendsService{
		provider: provider,
		backend:  backend,
		version:  version,
		log:      log.NewHelper(logger),
	}
}

// GetTrends 查询关键词热度，错误映射为 400 / 502
func (s *TrendsService) GetTrends(ctx context.Context, req *TrendsRequest) (*trends.Series, error) {
	keywords, err := trends.ParseKeywords(req.Keywords)
	if err != nil {
		return nil, errors.BadRequest("INVALID_ARGUMENT", "keywords parameter is required")
	}

	start := time.Now()
	series, err := s.provider.Trends(ctx, &trends.Request{Keywords: keywords, Date: req.Date})
	metrics.RecordTrends(s.backend, err)
	if err != nil {
		s.log.WithContext(ctx).Errorf("获取趋势失败 keywords=%v: %v", keywords, err)
		if stderrors.Is(err, trends.ErrInvalidArgument) {
			return nil, errors.BadRequest("INVALID_ARGUMENT", err.Error())
		}
		return nil, errors.New(502, "UPSTREAM_UNAVAILABLE", err.Error())
	}
	s.log.WithContext(ctx).Infof("趋势查询完成 keywords=%v points=%d 耗时=%s",
		keywords, len(series.InterestOverTime.TimelineData), time.Since(start))
	return series, nil
}

func (s *TrendsService) Health(_ context.Context) *HealthReply {
	return &HealthReply{Status: "OK", Message: "Google Trends API is running (" + s.backend + " backend)"}
}

func (s *TrendsService) Index(_ context.Context) *IndexReply {
	return &IndexReply{Message: "Google Trends API", Version: s.version, Status: "running"}
}
