package service

import (
	"context"
	"fmt"

	"ReceiptRecommend/internal/model"
)

const algorithmType = "rule-based weighted scoring"

// WeightInfo 单个评分因子的权重与说明
type WeightInfo struct {
	Weight      int    `json:"weight"`
	Description string `json:"description"`
}

// AlgorithmSettings 推荐流程参数
type AlgorithmSettings struct {
	HistoryMonths          int `json:"history_months"`
	PatternRecentDays      int `json:"pattern_recent_days"`
	RecencyDays            int `json:"recency_days"`
	MinRecommendationScore int `json:"minimum_score"`
	MaxRecommendations     int `json:"recommendation_count"`
}

// AlgorithmInfo 当前推荐算法说明
type AlgorithmInfo struct {
	Version        string                `json:"version"`
	Type           string                `json:"type"`
	Description    string                `json:"description"`
	CurrentWeights map[string]WeightInfo `json:"current_weights"`
	TotalWeight    int                   `json:"total_weight"`
	Settings       AlgorithmSettings     `json:"settings"`
	Features       []string              `json:"features"`
	Limitations    []string              `json:"limitations"`
}

// AlgorithmInfo 按当前生效配置描述算法
func (s *RecommendationService) AlgorithmInfo(ctx context.Context) (*AlgorithmInfo, error) {
	cfg, err := s.configs.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取推荐配置失败: %w", err)
	}
	return describeAlgorithm(cfg, s.historyMonths, s.recentDays), nil
}

func describeAlgorithm(cfg *model.RecommendConfig, historyMonths, recentDays int) *AlgorithmInfo {
	return &AlgorithmInfo{
		Version:     cfg.Version,
		Type:        algorithmType,
		Description: "scores open games against the user's betting history with configurable weights",
		CurrentWeights: map[string]WeightInfo{
			"league_preference":        {cfg.LeagueWeight, "leagues the user picks often"},
			"compe_preference":         {cfg.CompeWeight, "sports the user picks often"},
			"team_preference":          {cfg.TeamWeight, "games involving frequently picked teams"},
			"time_preference":          {cfg.TimeWeight, "preferred kick-off time slots"},
			"day_preference":           {cfg.DayWeight, "preferred days of the week"},
			"recency_bonus":            {cfg.RecencyWeight, fmt.Sprintf("leagues picked within the last %d days", cfg.RecencyDays)},
			"user_accuracy":            {cfg.AccuracyWeight, "scaled by the user's hit rate"},
			"betting_type_consistency": {cfg.BettingTypeConsistencyWeight, "share of the recommended betting type in history"},
			"odds_preference":          {cfg.OddsPreferenceWeight, "closeness of home odds to the user's average total odds"},
		},
		TotalWeight: cfg.TotalWeight(),
		Settings: AlgorithmSettings{
			HistoryMonths:          historyMonths,
			PatternRecentDays:      recentDays,
			RecencyDays:            cfg.RecencyDays,
			MinRecommendationScore: cfg.MinRecommendationScore,
			MaxRecommendations:     cfg.MaxRecommendations,
		},
		Features: []string{
			"league frequency",
			"sport frequency",
			"team frequency",
			"betting type preference",
			"time slot preference",
			"day of week preference",
			fmt.Sprintf("%d-day recent activity", recentDays),
			"multi-sport combination tracking",
			"hit-rate based confidence",
			"odds preference",
			"betting type consistency",
		},
		Limitations: []string{
			"new users only get flat cold-start picks",
			"few receipts give low-quality recommendations (5+ suggested)",
			"live match state is not considered",
		},
	}
}
