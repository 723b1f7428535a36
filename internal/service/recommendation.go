package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ReceiptRecommend/internal/config"
	"ReceiptRecommend/internal/engine"
	"ReceiptRecommend/internal/interfaces"
	"ReceiptRecommend/internal/model"

	"github.com/sirupsen/logrus"
)

// DefaultHistoryMonths 读取历史小票的回溯月数
const DefaultHistoryMonths = 6

// ErrInvalidRequest 推荐请求参数不合法（user_no 或候选比赛为空）
var ErrInvalidRequest = errors.New("invalid recommendation request")

// RecommendationService 个性化比赛推荐：读历史 -> 分析 -> 评分 -> 排序
type RecommendationService struct {
	receipts      interfaces.ReceiptHistoryReader
	configs       interfaces.RecommendConfigReader
	analyzer      *engine.Analyzer
	scorer        *engine.Scorer
	historyMonths int
	recentDays    int
	now           func() time.Time
	logger        *logrus.Logger
}

// NewRecommendationService 创建 RecommendationService，窗口与时区来自 recommend 配置段
func NewRecommendationService(receipts interfaces.ReceiptHistoryReader, configs interfaces.RecommendConfigReader, cfg config.RecommendConfig, logger *logrus.Logger) *RecommendationService {
	months := cfg.HistoryMonths
	if months <= 0 {
		months = DefaultHistoryMonths
	}
	recentDays := cfg.PatternRecentDays
	if recentDays <= 0 {
		recentDays = engine.DefaultPatternRecentDays
	}
	loc := cfg.Location()
	return &RecommendationService{
		receipts:      receipts,
		configs:       configs,
		analyzer:      engine.NewAnalyzer(recentDays, loc),
		scorer:        engine.NewScorer(loc),
		historyMonths: months,
		recentDays:    recentDays,
		now:           time.Now,
		logger:        logger,
	}
}

// WithClock 统一替换服务、分析器与评分器的时钟（测试用）
func (s *RecommendationService) WithClock(now func() time.Time) *RecommendationService {
	s.now = now
	s.analyzer.WithClock(now)
	s.scorer.WithClock(now)
	return s
}

// Recommend 为用户从候选比赛中挑选推荐。没有历史小票时走冷启动
func (s *RecommendationService) Recommend(ctx context.Context, userNo string, games []model.CandidateGame) (*model.RecommendationResult, error) {
	userNo = strings.TrimSpace(userNo)
	if userNo == "" {
		return nil, fmt.Errorf("%w: user_no is required", ErrInvalidRequest)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: available_games is required", ErrInvalidRequest)
	}

	receipts, err := s.loadHistory(ctx, userNo)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configs.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取推荐配置失败: %w", err)
	}

	result := &model.RecommendationResult{
		UserNo:      userNo,
		GeneratedAt: s.now(),
	}
	log := s.logger.WithFields(logrus.Fields{
		"user_no":    userNo,
		"candidates": len(games),
		"receipts":   len(receipts),
		"version":    cfg.Version,
	})

	if len(receipts) == 0 {
		result.RecommendedGames, result.Analysis = engine.ColdStart(games, cfg)
		log.Info("无历史小票，使用冷启动推荐")
		return result, nil
	}

	pattern := s.analyzer.Analyze(receipts)
	accuracy := engine.Accuracy(receipts)
	scored := s.scorer.Score(games, pattern, receipts, accuracy, cfg)
	result.RecommendedGames = engine.Rank(scored, cfg)
	result.Analysis = engine.Summarize(pattern, receipts, accuracy)

	log.WithField("recommended", len(result.RecommendedGames)).Info("推荐生成完成")
	return result, nil
}

// PatternReport 用户投注模式调试视图
type PatternReport struct {
	UserNo     string                 `json:"user_no"`
	HasHistory bool                   `json:"has_history"`
	Message    string                 `json:"message,omitempty"`
	Pattern    *engine.UserPattern    `json:"pattern,omitempty"`
	Analysis   *model.AnalysisSummary `json:"analysis,omitempty"`
}

// Pattern 返回用户原始投注画像；无历史时 HasHistory=false
func (s *RecommendationService) Pattern(ctx context.Context, userNo string) (*PatternReport, error) {
	userNo = strings.TrimSpace(userNo)
	if userNo == "" {
		return nil, fmt.Errorf("%w: user_no is required", ErrInvalidRequest)
	}
	receipts, err := s.loadHistory(ctx, userNo)
	if err != nil {
		return nil, err
	}
	if len(receipts) == 0 {
		return &PatternReport{
			UserNo:  userNo,
			Message: "no betting history in the lookback window",
		}, nil
	}

	pattern := s.analyzer.Analyze(receipts)
	summary := engine.Summarize(pattern, receipts, engine.Accuracy(receipts))
	return &PatternReport{
		UserNo:     userNo,
		HasHistory: true,
		Pattern:    pattern,
		Analysis:   &summary,
	}, nil
}

// UserStats 用户小票状态统计与命中率
type UserStats struct {
	UserNo string `json:"user_no"`
	engine.StatusTally
	WinRate float64 `json:"win_rate"` // 百分比，保留两位小数
}

// UserStats 统计用户全部小票的状态分布与命中率（不受回溯窗口限制）
func (s *RecommendationService) UserStats(ctx context.Context, userNo string) (*UserStats, error) {
	userNo = strings.TrimSpace(userNo)
	if userNo == "" {
		return nil, fmt.Errorf("%w: user_no is required", ErrInvalidRequest)
	}
	receipts, err := s.receipts.ListByUserSince(ctx, userNo, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("读取用户小票失败: %w", err)
	}
	tally := engine.Tally(receipts)
	return &UserStats{
		UserNo:      userNo,
		StatusTally: tally,
		WinRate:     tally.WinRatePercent(),
	}, nil
}

// loadHistory 读取回溯窗口内的小票，失败直接返回，不重试
func (s *RecommendationService) loadHistory(ctx context.Context, userNo string) ([]*model.Receipt, error) {
	since := s.now().AddDate(0, -s.historyMonths, 0)
	receipts, err := s.receipts.ListByUserSince(ctx, userNo, since)
	if err != nil {
		return nil, fmt.Errorf("读取用户小票失败: %w", err)
	}
	return receipts, nil
}
