package interfaces

import (
	"context"
	"time"

	"ReceiptRecommend/internal/model"
)

// ReceiptHistoryReader 按用户读取回溯窗口内的小票（按创建时间倒序），推荐流程只读
type ReceiptHistoryReader interface {
	ListByUserSince(ctx context.Context, userNo string, since time.Time) ([]*model.Receipt, error)
}

// RecommendConfigReader 读取当前生效的推荐配置，不存在时由实现方创建默认配置
type RecommendConfigReader interface {
	GetActive(ctx context.Context) (*model.RecommendConfig, error)
}

// RecommendConfigStore 可读写的推荐配置存储
type RecommendConfigStore interface {
	RecommendConfigReader
	Update(ctx context.Context, cfg *model.RecommendConfig) error
}
