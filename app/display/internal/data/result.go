package data

import (
	"context"
	"sync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/saas_validator/app/common/metrics"
	"github.com/iWorld-y/saas_validator/app/display/internal/repo"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

type resultRepo struct {
	data *Data
	mu   sync.Mutex
	log  *log.Helper
}

func NewResultRepo(data *Data, logger log.Logger) repo.ResultRepo {
	return &resultRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *resultRepo) Put(_ context.Context, result *model.ValidationResult) (string, error) {
	token := uuid.NewString()
	r.data.handoff.Add(token, &handoffEntry{result: result})
	metrics.RecordHandoff("stored")
	return token, nil
}

func (r *resultRepo) Consume(ctx context.Context, token string) (*model.ValidationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.data.handoff.Get(token)
	if !ok {
		metrics.RecordHandoff("missing")
		return nil, repo.ErrResultNotFound
	}
	if entry.consumed {
		metrics.RecordHandoff("replayed")
		r.log.WithContext(ctx).Infof("结果已被读取过 token=%s", token)
		return nil, repo.ErrResultConsumed
	}

	entry.consumed = true
	result := entry.result
	entry.result = nil
	metrics.RecordHandoff("consumed")
	return result, nil
}
