package service

import (
	"context"
	"fmt"
	"testing"

	"ReceiptRecommend/internal/config"
	"ReceiptRecommend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecommendationService(receipts *memReceipts, configs *memConfigs) *RecommendationService {
	logger, _ := quietLogger()
	cfg := config.RecommendConfig{HistoryMonths: 6, PatternRecentDays: 30, Timezone: "UTC"}
	return NewRecommendationService(receipts, configs, cfg, logger).WithClock(fixedClock)
}

func openGames(n int) []model.CandidateGame {
	out := make([]model.CandidateGame, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.CandidateGame{
			GameID:       fmt.Sprintf("g-%d", i),
			Compe:        "baseball",
			LeagueName:   "NPB",
			HomeTeamName: fmt.Sprintf("Home%d", i),
			AwayTeamName: fmt.Sprintf("Away%d", i),
			MatchDate:    "2026-05-11",
			MatchTime:    "18:00",
			HomeBetRt:    "2.0",
			AwayBetRt:    "1.8",
		})
	}
	return out
}

func TestRecommend_InvalidRequest(t *testing.T) {
	svc := newTestRecommendationService(&memReceipts{}, &memConfigs{})

	_, err := svc.Recommend(context.Background(), "  ", openGames(1))
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Recommend(context.Background(), "u1", nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRecommend_ColdStart(t *testing.T) {
	svc := newTestRecommendationService(&memReceipts{}, &memConfigs{})

	res, err := svc.Recommend(context.Background(), "newbie", openGames(3))
	require.NoError(t, err)
	assert.Equal(t, "newbie", res.UserNo)
	assert.Equal(t, testNow, res.GeneratedAt)
	require.Len(t, res.RecommendedGames, 3)
	for _, g := range res.RecommendedGames {
		assert.Equal(t, 50, g.ConfidenceScore)
		assert.Equal(t, "popular game", g.Reason)
	}
	assert.Equal(t, 0, res.Analysis.TotalReceipts)
	assert.Equal(t, "-", res.Analysis.FavoriteLeague)
}

func TestRecommend_StaleHistoryOutsideLookbackIsColdStart(t *testing.T) {
	receipts := &memReceipts{receipts: []*model.Receipt{
		historyReceipt("u1", model.ReceiptStatusWon, testNow.AddDate(0, -7, 0), "NPB", "Giants", "Tigers", model.BetTypeHome),
	}}
	svc := newTestRecommendationService(receipts, &memConfigs{})

	res, err := svc.Recommend(context.Background(), "u1", openGames(2))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Analysis.TotalReceipts)
	assert.Equal(t, testNow.AddDate(0, -6, 0), receipts.lastSince)
}

func TestRecommend_WithHistory(t *testing.T) {
	receipts := &memReceipts{}
	for i := 0; i < 6; i++ {
		status := model.ReceiptStatusWon
		if i%3 == 0 {
			status = model.ReceiptStatusLost
		}
		receipts.receipts = append(receipts.receipts,
			historyReceipt("u1", status, testNow.AddDate(0, 0, -i-1), "NPB", "Home1", "Tigers", model.BetTypeHome))
	}
	// 关闭联赛与项目权重，避免所有 NPB 比赛同时封顶 100 分
	cfg := model.DefaultRecommendConfig()
	cfg.LeagueWeight, cfg.CompeWeight = 0, 0
	configs := &memConfigs{cfg: cfg}
	svc := newTestRecommendationService(receipts, configs)

	games := append(openGames(4), model.CandidateGame{GameID: "nhl", Compe: "hockey", LeagueName: "NHL"})
	res, err := svc.Recommend(context.Background(), "u1", games)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(res.RecommendedGames), cfg.MaxRecommendations)
	require.NotEmpty(t, res.RecommendedGames)
	for i, g := range res.RecommendedGames {
		assert.GreaterOrEqual(t, g.ConfidenceScore, cfg.MinRecommendationScore)
		assert.LessOrEqual(t, g.ConfidenceScore, 100)
		if i > 0 {
			assert.GreaterOrEqual(t, res.RecommendedGames[i-1].ConfidenceScore, g.ConfidenceScore)
		}
	}
	// Home1 是常选球队，应排在第一；其余同分比赛保持输入顺序
	require.Len(t, res.RecommendedGames, 5)
	assert.Equal(t, "g-1", res.RecommendedGames[0].GameID)
	assert.Equal(t, 83, res.RecommendedGames[0].ConfidenceScore)
	assert.Equal(t, "g-0", res.RecommendedGames[1].GameID)
	assert.Equal(t, 68, res.RecommendedGames[1].ConfidenceScore)
	assert.Equal(t, "nhl", res.RecommendedGames[4].GameID)

	assert.Equal(t, 6, res.Analysis.TotalReceipts)
	assert.Equal(t, "NPB", res.Analysis.FavoriteLeague)
	assert.Equal(t, "baseball", res.Analysis.FavoriteCompe)
	assert.Equal(t, model.BetTypeHome, res.Analysis.FavoriteBettingType)
	assert.Equal(t, 5, res.Analysis.RecentActivityDays)
	assert.Equal(t, 66.67, res.Analysis.Accuracy)
}

func TestRecommend_HighThresholdYieldsEmptyList(t *testing.T) {
	receipts := &memReceipts{receipts: []*model.Receipt{
		historyReceipt("u1", model.ReceiptStatusLost, testNow.AddDate(0, -2, 0), "KBO", "Bears", "Twins", model.BetTypeAway),
	}}
	cfg := model.DefaultRecommendConfig()
	cfg.MinRecommendationScore = 90
	svc := newTestRecommendationService(receipts, &memConfigs{cfg: cfg})

	res, err := svc.Recommend(context.Background(), "u1", openGames(3))
	require.NoError(t, err)
	assert.NotNil(t, res.RecommendedGames)
	assert.Empty(t, res.RecommendedGames)
	assert.Equal(t, 1, res.Analysis.TotalReceipts)
}

func TestRecommend_HistoryFailurePropagates(t *testing.T) {
	receipts := &memReceipts{err: errStoreDown}
	svc := newTestRecommendationService(receipts, &memConfigs{})

	_, err := svc.Recommend(context.Background(), "u1", openGames(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, 1, receipts.calls)
}

func TestRecommend_ConfigFailurePropagates(t *testing.T) {
	svc := newTestRecommendationService(&memReceipts{}, &memConfigs{err: errStoreDown})

	_, err := svc.Recommend(context.Background(), "u1", openGames(1))
	assert.ErrorIs(t, err, errStoreDown)
}

func TestPattern(t *testing.T) {
	receipts := &memReceipts{receipts: []*model.Receipt{
		historyReceipt("u1", model.ReceiptStatusWon, testNow.AddDate(0, 0, -3), "NPB", "Giants", "Tigers", model.BetTypeHandicapHome),
		historyReceipt("u1", model.ReceiptStatusPending, testNow.AddDate(0, 0, -45), "NPB", "Giants", "Carp", model.BetTypeHome),
	}}
	svc := newTestRecommendationService(receipts, &memConfigs{})

	report, err := svc.Pattern(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, report.HasHistory)
	require.NotNil(t, report.Pattern)
	assert.Equal(t, 2, report.Pattern.Leagues["NPB"].Count)
	assert.Equal(t, 1, report.Pattern.Leagues["NPB"].RecentCount)
	assert.Equal(t, 2, report.Pattern.Teams["Giants"].Count)
	assert.Equal(t, 2, report.Pattern.DayPreferences["월"])
	require.NotNil(t, report.Analysis)
	assert.Equal(t, 100.0, report.Analysis.Accuracy)

	empty, err := svc.Pattern(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, empty.HasHistory)
	assert.Nil(t, empty.Pattern)
	assert.NotEmpty(t, empty.Message)

	_, err = svc.Pattern(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUserStats_CoversAllReceipts(t *testing.T) {
	receipts := &memReceipts{receipts: []*model.Receipt{
		historyReceipt("u1", model.ReceiptStatusWon, testNow.AddDate(-1, 0, 0), "NPB", "Giants", "Tigers", model.BetTypeHome),
		historyReceipt("u1", model.ReceiptStatusWon, testNow.AddDate(0, 0, -1), "NPB", "Giants", "Tigers", model.BetTypeHome),
		historyReceipt("u1", model.ReceiptStatusLost, testNow.AddDate(0, 0, -2), "NPB", "Giants", "Tigers", model.BetTypeHome),
		historyReceipt("u1", model.ReceiptStatusCancelled, testNow.AddDate(0, 0, -3), "NPB", "Giants", "Tigers", model.BetTypeHome),
		historyReceipt("u2", model.ReceiptStatusLost, testNow.AddDate(0, 0, -3), "NPB", "Giants", "Tigers", model.BetTypeHome),
	}}
	svc := newTestRecommendationService(receipts, &memConfigs{})

	stats, err := svc.UserStats(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, receipts.lastSince.IsZero())
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Won)
	assert.Equal(t, 1, stats.Lost)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 66.67, stats.WinRate)
}

func TestAlgorithmInfo(t *testing.T) {
	cfg := model.DefaultRecommendConfig()
	cfg.RecencyDays = 14
	svc := newTestRecommendationService(&memReceipts{}, &memConfigs{cfg: cfg})

	info, err := svc.AlgorithmInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfigVersion, info.Version)
	assert.Len(t, info.CurrentWeights, 9)
	assert.Equal(t, 30, info.CurrentWeights["league_preference"].Weight)
	assert.Contains(t, info.CurrentWeights["recency_bonus"].Description, "14 days")
	assert.Equal(t, 155, info.TotalWeight)
	assert.Equal(t, 6, info.Settings.HistoryMonths)
	assert.Equal(t, 30, info.Settings.PatternRecentDays)
	assert.Equal(t, 14, info.Settings.RecencyDays)
	assert.NotEmpty(t, info.Features)
	assert.NotEmpty(t, info.Limitations)
}
