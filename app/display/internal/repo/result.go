package repo

import (
	"context"
	"errors"

	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

var (
	// ErrResultNotFound token 不存在或已过期
	ErrResultNotFound = errors.New("result not found")
	// ErrResultConsumed token 对应的结果已被读取过
	ErrResultConsumed = errors.New("result already consumed")
)

// ResultRepo 一次性结果交接存储
type ResultRepo interface {
	// Put 保存结果并返回新的 token
	Put(ctx context.Context, result *model.ValidationResult) (string, error)
	// Consume 读取并作废 token，第二次读取返回 ErrResultConsumed
	Consume(ctx context.Context, token string) (*model.ValidationResult, error)
}
