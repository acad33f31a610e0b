package data

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/saas_validator/app/display/internal/conf"
	"github.com/iWorld-y/saas_validator/app/display/internal/repo"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

func newRepo(t *testing.T, c *conf.Data) repo.ResultRepo {
	t.Helper()
	d, cleanup, err := NewData(c, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewResultRepo(d, log.DefaultLogger)
}

func TestResultRepo_ConsumeOnce(t *testing.T) {
	r := newRepo(t, nil)
	ctx := context.Background()

	token, err := r.Put(ctx, &model.ValidationResult{Success: true, Query: "coffee"})
	require.NoError(t, err)
	assert.Len(t, token, 36)

	got, err := r.Consume(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "coffee", got.Query)

	_, err = r.Consume(ctx, token)
	assert.ErrorIs(t, err, repo.ErrResultConsumed)

	_, err = r.Consume(ctx, "unknown")
	assert.ErrorIs(t, err, repo.ErrResultNotFound)
}

func TestResultRepo_TokensAreIndependent(t *testing.T) {
	r := newRepo(t, nil)
	ctx := context.Background()

	a, _ := r.Put(ctx, &model.ValidationResult{Query: "a"})
	b, _ := r.Put(ctx, &model.ValidationResult{Query: "b"})
	assert.NotEqual(t, a, b)

	got, err := r.Consume(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Query)
	got, err = r.Consume(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Query)
}

func TestResultRepo_ConcurrentConsume(t *testing.T) {
	r := newRepo(t, nil)
	ctx := context.Background()
	token, _ := r.Put(ctx, &model.ValidationResult{Query: "race"})

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Consume(ctx, token); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestResultRepo_Expires(t *testing.T) {
	r := newRepo(t, &conf.Data{Handoff: &conf.Handoff{Size: 4, Ttl: "20ms"}})
	ctx := context.Background()
	token, _ := r.Put(ctx, &model.ValidationResult{Query: "stale"})

	time.Sleep(60 * time.Millisecond)
	_, err := r.Consume(ctx, token)
	assert.ErrorIs(t, err, repo.ErrResultNotFound)
}
