package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"ReceiptRecommend/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	cfg     model.RecommendConfig
	gets    int
	updates int
	err     error
}

func (s *countingStore) GetActive(context.Context) (*model.RecommendConfig, error) {
	s.gets++
	if s.err != nil {
		return nil, s.err
	}
	cp := s.cfg
	return &cp, nil
}

func (s *countingStore) Update(_ context.Context, cfg *model.RecommendConfig) error {
	if s.err != nil {
		return s.err
	}
	s.cfg = *cfg
	s.updates++
	return nil
}

func newStore() *countingStore {
	cfg := model.DefaultRecommendConfig()
	cfg.ID = 7
	return &countingStore{cfg: *cfg}
}

// unreachableClient 指向无人监听的端口，所有命令都会失败
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestConfigCache_DisabledPassesThrough(t *testing.T) {
	logger, _ := test.NewNullLogger()
	store := newStore()
	c := NewConfigCache(store, nil, 0, logger)

	cfg, err := c.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.ID)
	_, _ = c.GetActive(context.Background())
	assert.Equal(t, 2, store.gets)

	cfg.LeagueWeight = 1
	require.NoError(t, c.Update(context.Background(), cfg))
	assert.Equal(t, 1, store.cfg.LeagueWeight)
	assert.Equal(t, DefaultConfigTTL, c.ttl)
}

func TestConfigCache_RedisDownFallsBackToStore(t *testing.T) {
	logger, hook := test.NewNullLogger()
	client := unreachableClient()
	defer client.Close()

	store := newStore()
	c := NewConfigCache(store, client, time.Minute, logger)

	cfg, err := c.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLeagueWeight, cfg.LeagueWeight)
	assert.Equal(t, 1, store.gets)

	cfg.TeamWeight = 3
	require.NoError(t, c.Update(context.Background(), cfg))
	assert.Equal(t, 3, store.cfg.TeamWeight)

	var warns int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warns++
		}
	}
	assert.GreaterOrEqual(t, warns, 2)
}

func TestConfigCache_StoreErrorsPropagate(t *testing.T) {
	logger, _ := test.NewNullLogger()
	boom := errors.New("db down")
	store := newStore()
	store.err = boom

	c := NewConfigCache(store, nil, time.Minute, logger)
	_, err := c.GetActive(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, c.Update(context.Background(), model.DefaultRecommendConfig()), boom)
}
