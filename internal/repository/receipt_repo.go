package repository

import (
	"context"
	"time"

	"ReceiptRecommend/internal/model"

	"gorm.io/gorm"
)

// ReceiptRepository 投注小票持久化
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *model.Receipt) error
	GetByReceiptID(ctx context.Context, receiptID string) (*model.Receipt, error)
	ListByUserSince(ctx context.Context, userNo string, since time.Time) ([]*model.Receipt, error)
	UpdateStatus(ctx context.Context, receiptID, status string) error
}

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository 创建小票仓储
func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *model.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

// GetByReceiptID 不存在时返回 gorm.ErrRecordNotFound
func (r *receiptRepository) GetByReceiptID(ctx context.Context, receiptID string) (*model.Receipt, error) {
	var receipt model.Receipt
	if err := r.db.WithContext(ctx).Where("receipt_id = ?", receiptID).First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListByUserSince 按创建时间倒序返回 since 之后（含）的小票；since 为零值时不限制时间
func (r *receiptRepository) ListByUserSince(ctx context.Context, userNo string, since time.Time) ([]*model.Receipt, error) {
	db := r.db.WithContext(ctx).Where("user_no = ?", userNo)
	if !since.IsZero() {
		db = db.Where("created_at >= ?", since)
	}
	var list []*model.Receipt
	if err := db.Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus 更新小票状态，未命中任何行时返回 gorm.ErrRecordNotFound
func (r *receiptRepository) UpdateStatus(ctx context.Context, receiptID, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Receipt{}).
		Where("receipt_id = ?", receiptID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
