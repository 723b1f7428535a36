package service

import (
	"context"
	"errors"
	"fmt"

	"ReceiptRecommend/internal/interfaces"
	"ReceiptRecommend/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

// ErrInvalidConfig 推荐配置更新参数越界
var ErrInvalidConfig = errors.New("invalid recommend config")

// ConfigPatch 推荐配置局部更新，nil 字段保持原值
type ConfigPatch struct {
	LeagueWeight                 *int    `json:"league_weight" binding:"omitempty,min=0,max=100"`
	CompeWeight                  *int    `json:"compe_weight" binding:"omitempty,min=0,max=100"`
	TeamWeight                   *int    `json:"team_weight" binding:"omitempty,min=0,max=100"`
	TimeWeight                   *int    `json:"time_weight" binding:"omitempty,min=0,max=100"`
	DayWeight                    *int    `json:"day_weight" binding:"omitempty,min=0,max=100"`
	RecencyWeight                *int    `json:"recency_weight" binding:"omitempty,min=0,max=100"`
	AccuracyWeight               *int    `json:"accuracy_weight" binding:"omitempty,min=0,max=100"`
	BettingTypeConsistencyWeight *int    `json:"betting_type_consistency_weight" binding:"omitempty,min=0,max=100"`
	OddsPreferenceWeight         *int    `json:"odds_preference_weight" binding:"omitempty,min=0,max=100"`
	MinRecommendationScore       *int    `json:"min_recommendation_score" binding:"omitempty,min=0,max=100"`
	MaxRecommendations           *int    `json:"max_recommendations" binding:"omitempty,min=1,max=10"`
	RecencyDays                  *int    `json:"recency_days" binding:"omitempty,min=1,max=30"`
	Version                      *string `json:"version" binding:"omitempty,min=1,max=32"`
}

// Validate 与 gin 绑定时使用同一套校验规则，服务被直接调用时也能拦截越界值
func (p *ConfigPatch) Validate() error {
	if err := binding.Validator.ValidateStruct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (p *ConfigPatch) applyTo(cfg *model.RecommendConfig) {
	setInt(&cfg.LeagueWeight, p.LeagueWeight)
	setInt(&cfg.CompeWeight, p.CompeWeight)
	setInt(&cfg.TeamWeight, p.TeamWeight)
	setInt(&cfg.TimeWeight, p.TimeWeight)
	setInt(&cfg.DayWeight, p.DayWeight)
	setInt(&cfg.RecencyWeight, p.RecencyWeight)
	setInt(&cfg.AccuracyWeight, p.AccuracyWeight)
	setInt(&cfg.BettingTypeConsistencyWeight, p.BettingTypeConsistencyWeight)
	setInt(&cfg.OddsPreferenceWeight, p.OddsPreferenceWeight)
	setInt(&cfg.MinRecommendationScore, p.MinRecommendationScore)
	setInt(&cfg.MaxRecommendations, p.MaxRecommendations)
	setInt(&cfg.RecencyDays, p.RecencyDays)
	if p.Version != nil {
		cfg.Version = *p.Version
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// ConfigService 推荐配置的读取与更新
type ConfigService struct {
	store  interfaces.RecommendConfigStore
	logger *logrus.Logger
}

// NewConfigService 创建 ConfigService
func NewConfigService(store interfaces.RecommendConfigStore, logger *logrus.Logger) *ConfigService {
	return &ConfigService{store: store, logger: logger}
}

// Get 返回当前生效配置，首次访问时由存储创建默认配置
func (s *ConfigService) Get(ctx context.Context) (*model.RecommendConfig, error) {
	cfg, err := s.store.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取推荐配置失败: %w", err)
	}
	return cfg, nil
}

// Update 校验并合并局部更新。权重总和超过 200 只告警，仍然保存
func (s *ConfigService) Update(ctx context.Context, patch *ConfigPatch) (*model.RecommendConfig, error) {
	if patch == nil {
		return nil, fmt.Errorf("%w: empty patch", ErrInvalidConfig)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	patch.applyTo(cfg)

	if total := cfg.TotalWeight(); total > model.MaxTotalWeight {
		s.logger.WithFields(logrus.Fields{
			"total_weight": total,
			"limit":        model.MaxTotalWeight,
		}).Warn("推荐权重总和超过上限，配置仍会保存")
	}

	if err := s.store.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("保存推荐配置失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"config_id": cfg.ID,
		"version":   cfg.Version,
	}).Info("推荐配置已更新")
	return cfg, nil
}
