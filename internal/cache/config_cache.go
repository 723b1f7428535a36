package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ReceiptRecommend/internal/interfaces"
	"ReceiptRecommend/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ActiveConfigKey 生效推荐配置快照的缓存键
const ActiveConfigKey = "recommend:config:active"

// DefaultConfigTTL 未配置 TTL 时的缓存时长
const DefaultConfigTTL = 30 * time.Second

// ConfigCache 推荐配置读穿缓存。client 为 nil 时直接透传到底层存储；
// Redis 故障只记日志并回源，不影响推荐请求
type ConfigCache struct {
	store  interfaces.RecommendConfigStore
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewConfigCache 创建配置缓存
func NewConfigCache(store interfaces.RecommendConfigStore, client *redis.Client, ttl time.Duration, logger *logrus.Logger) *ConfigCache {
	if ttl <= 0 {
		ttl = DefaultConfigTTL
	}
	return &ConfigCache{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetActive 先查 Redis，未命中或出错时回源并回写
func (c *ConfigCache) GetActive(ctx context.Context) (*model.RecommendConfig, error) {
	if c.client == nil {
		return c.store.GetActive(ctx)
	}

	data, err := c.client.Get(ctx, ActiveConfigKey).Bytes()
	switch {
	case err == nil:
		var cfg model.RecommendConfig
		jsonErr := json.Unmarshal(data, &cfg)
		if jsonErr == nil {
			return &cfg, nil
		}
		c.logger.WithError(jsonErr).Warn("推荐配置缓存反序列化失败，回源读取")
	case errors.Is(err, redis.Nil):
	default:
		c.logger.WithError(err).Warn("读取推荐配置缓存失败，回源读取")
	}

	cfg, err := c.store.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, cfg)
	return cfg, nil
}

// Update 写入底层存储后删除缓存，下次读取回源
func (c *ConfigCache) Update(ctx context.Context, cfg *model.RecommendConfig) error {
	if err := c.store.Update(ctx, cfg); err != nil {
		return err
	}
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, ActiveConfigKey).Err(); err != nil {
		c.logger.WithError(err).Warn("删除推荐配置缓存失败")
	}
	return nil
}

func (c *ConfigCache) set(ctx context.Context, cfg *model.RecommendConfig) {
	data, err := json.Marshal(cfg)
	if err != nil {
		c.logger.WithError(err).Warn("序列化推荐配置失败")
		return
	}
	if err := c.client.Set(ctx, ActiveConfigKey, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("写入推荐配置缓存失败")
	}
}
