package service

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/saas_validator/app/display/internal/domain"
	"github.com/iWorld-y/saas_validator/app/display/internal/usecase"
)

// 展示给用户的提示，不包含任何内部错误信息
const (
	MsgEmptyIdea = "Please describe your SaaS idea before submitting."
	MsgRetry     = "We couldn't validate your idea right now. Please try again in a moment."
)

type DisplayService struct {
	uc  *usecase.SubmitUseCase
	log *log.Helper
}

func NewDisplayService(uc *usecase.SubmitUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// Submit 返回交接 token；失败时返回可展示的提示
func (s *DisplayService) Submit(ctx context.Context, idea string) (token string, message string) {
	token, err := s.uc.Submit(ctx, idea)
	switch {
	case err == nil:
		return token, ""
	case errors.Is(err, usecase.ErrEmptyIdea):
		return "", MsgEmptyIdea
	default:
		s.log.WithContext(ctx).Warnf("submit failed: %v", err)
		return "", MsgRetry
	}
}

// Result 一次性读取结果，ok=false 表示应展示"无数据，重新开始"
func (s *DisplayService) Result(ctx context.Context, token string) (*domain.ResultView, bool) {
	view, err := s.uc.Result(ctx, token)
	if err != nil {
		if !errors.Is(err, usecase.ErrNoResult) {
			s.log.WithContext(ctx).Errorf("read result failed: %v", err)
		}
		return nil, false
	}
	return view, true
}
