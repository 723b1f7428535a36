package engine

import (
	"time"

	"ReceiptRecommend/internal/model"
)

// Summarize 生成推荐结果中的用户习惯摘要，accuracy 为 [0,1] 比例，输出转为保留两位小数的百分比
func Summarize(pattern *UserPattern, receipts []*model.Receipt, accuracy float64) model.AnalysisSummary {
	if pattern == nil {
		pattern = NewUserPattern()
	}
	s := model.AnalysisSummary{
		TotalReceipts:       countReceipts(receipts),
		FavoriteLeague:      orPlaceholder(pattern.FavoriteLeague()),
		FavoriteCompe:       orPlaceholder(pattern.FavoriteCompe()),
		FavoriteBettingType: orPlaceholder(pattern.FavoriteBettingType()),
		MostSelectedTeam:    orPlaceholder(pattern.MostSelectedTeam()),
		RecentActivityDays:  activitySpanDays(receipts),
		Accuracy:            RoundPercent(accuracy),
	}
	return s
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func countReceipts(receipts []*model.Receipt) int {
	n := 0
	for _, r := range receipts {
		if r != nil {
			n++
		}
	}
	return n
}

// activitySpanDays 最早与最新小票之间相隔的整天数
func activitySpanDays(receipts []*model.Receipt) int {
	var oldest, newest time.Time
	for _, r := range receipts {
		if r == nil {
			continue
		}
		if oldest.IsZero() || r.CreatedAt.Before(oldest) {
			oldest = r.CreatedAt
		}
		if newest.IsZero() || r.CreatedAt.After(newest) {
			newest = r.CreatedAt
		}
	}
	if oldest.IsZero() {
		return 0
	}
	return int(newest.Sub(oldest) / (24 * time.Hour))
}
