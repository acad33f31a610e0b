package data

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/iWorld-y/saas_validator/app/display/internal/conf"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

const (
	defaultHandoffSize = 1024
	defaultHandoffTTL  = 10 * time.Minute
)

// handoffEntry 交接条目，consumed 标记作用于当前存储实例
type handoffEntry struct {
	result   *model.ValidationResult
	consumed bool
}

type Data struct {
	handoff *expirable.LRU[string, *handoffEntry]
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	size, ttl := defaultHandoffSize, defaultHandoffTTL
	if c != nil && c.Handoff != nil {
		if c.Handoff.Size > 0 {
			size = int(c.Handoff.Size)
		}
		if c.Handoff.Ttl != "" {
			if d, err := time.ParseDuration(c.Handoff.Ttl); err == nil {
				ttl = d
			}
		}
	}

	d := &Data{handoff: expirable.NewLRU[string, *handoffEntry](size, nil, ttl)}
	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		d.handoff.Purge()
	}
	return d, cleanup, nil
}
