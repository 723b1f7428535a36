package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"ReceiptRecommend/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func quietLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// memReceipts 内存版小票仓储
type memReceipts struct {
	mu        sync.Mutex
	receipts  []*model.Receipt
	err       error
	lastSince time.Time
	calls     int
}

func (m *memReceipts) ListByUserSince(_ context.Context, userNo string, since time.Time) ([]*model.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastSince = since
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.Receipt
	for _, r := range m.receipts {
		if r.UserNo == userNo && (since.IsZero() || !r.CreatedAt.Before(since)) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memReceipts) Create(_ context.Context, r *model.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.receipts = append(m.receipts, r)
	return nil
}

func (m *memReceipts) GetByReceiptID(_ context.Context, receiptID string) (*model.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.receipts {
		if r.ReceiptID == receiptID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memReceipts) UpdateStatus(_ context.Context, receiptID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.receipts {
		if r.ReceiptID == receiptID {
			r.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// memConfigs 内存版推荐配置存储
type memConfigs struct {
	cfg     *model.RecommendConfig
	err     error
	updates int
}

func (m *memConfigs) GetActive(context.Context) (*model.RecommendConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.cfg == nil {
		m.cfg = model.DefaultRecommendConfig()
		m.cfg.ID = 1
	}
	cp := *m.cfg
	return &cp, nil
}

func (m *memConfigs) Update(_ context.Context, cfg *model.RecommendConfig) error {
	if m.err != nil {
		return m.err
	}
	cp := *cfg
	m.cfg = &cp
	m.updates++
	return nil
}

var errStoreDown = errors.New("store down")

func historyReceipt(userNo, status string, created time.Time, league, home, away, betType string) *model.Receipt {
	return &model.Receipt{
		ReceiptID: userNo + "-" + created.Format(time.RFC3339),
		UserNo:    userNo,
		SelectedGames: []model.SelectedGame{{
			GameNo:       "001",
			Compe:        "baseball",
			LeagueName:   league,
			HomeTeamName: home,
			AwayTeamName: away,
			MatchDate:    "2026-05-04",
			MatchTime:    "18:00",
		}},
		BettingItems: []model.BettingItem{{BettingType: betType, Odds: "2.0", BettingAmount: 1000}},
		TotalOdds:    "2.0",
		Status:       status,
		CreatedAt:    created,
	}
}
