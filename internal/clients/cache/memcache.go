package cache

import (
	"encoding/json"

	"github.com/pkg/errors"

	"go.uber.org/zap"
	"max.ks1230/spending-nav/internal/logger"
	"max.ks1230/spending-nav/internal/model/analytics"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheClient keeps computed spending summaries so repeat analytics reads
// skip the full ledger scan. Entries are invalidated on every write for the
// owning user.
type MemcacheClient struct {
	client *memcache.Client
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{mc}, mc.Ping()
}

func formatKey(userID, period string) string {
	return userID + ":" + period
}

func (mc *MemcacheClient) CacheSummary(userID, period string, summary analytics.Summary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return errors.Wrap(err, "cache summary")
	}
	return mc.client.Set(&memcache.Item{
		Key:   formatKey(userID, period),
		Value: raw,
	})
}

func (mc *MemcacheClient) GetSummary(userID, period string) (analytics.Summary, error) {
	item, err := mc.client.Get(formatKey(userID, period))
	if err != nil {
		return analytics.Summary{}, err
	}
	var summary analytics.Summary
	if err = json.Unmarshal(item.Value, &summary); err != nil {
		return analytics.Summary{}, errors.Wrap(err, "get summary")
	}
	return summary, nil
}

func (mc *MemcacheClient) InvalidateSummaries(userID string, periods []string) error {
	logger.Info("invalidate summaries", zap.String("userID", userID))

	for _, p := range periods {
		err := mc.client.Delete(formatKey(userID, p))
		if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
			return err
		}
	}
	return nil
}
