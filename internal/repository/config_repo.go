package repository

import (
	"context"
	"errors"
	"fmt"

	"ReceiptRecommend/internal/model"

	"gorm.io/gorm"
)

// RecommendConfigRepository 推荐配置持久化，同一时刻只有一条生效配置
type RecommendConfigRepository interface {
	GetActive(ctx context.Context) (*model.RecommendConfig, error)
	Update(ctx context.Context, cfg *model.RecommendConfig) error
}

type recommendConfigRepository struct {
	db *gorm.DB
}

// NewRecommendConfigRepository 创建推荐配置仓储
func NewRecommendConfigRepository(db *gorm.DB) RecommendConfigRepository {
	return &recommendConfigRepository{db: db}
}

// GetActive 读取生效配置；表中没有生效配置时写入并返回默认配置
func (r *recommendConfigRepository) GetActive(ctx context.Context) (*model.RecommendConfig, error) {
	var cfg model.RecommendConfig
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id DESC").First(&cfg).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	def := model.DefaultRecommendConfig()
	if err := r.db.WithContext(ctx).Create(def).Error; err != nil {
		return nil, fmt.Errorf("创建默认推荐配置失败: %w", err)
	}
	return def, nil
}

// Update 整行保存配置（包含零值字段）
func (r *recommendConfigRepository) Update(ctx context.Context, cfg *model.RecommendConfig) error {
	if cfg.ID == 0 {
		return errors.New("recommend config id is required")
	}
	return r.db.WithContext(ctx).Save(cfg).Error
}
