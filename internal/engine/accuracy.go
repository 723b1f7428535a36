package engine

import (
	"ReceiptRecommend/internal/model"

	"github.com/shopspring/decimal"
)

// StatusTally 按小票状态统计
type StatusTally struct {
	Total               int   `json:"total_bets"`
	Won                 int   `json:"winning_bets"`
	Lost                int   `json:"losing_bets"`
	Pending             int   `json:"pending_bets"`
	Cancelled           int   `json:"cancelled_bets"`
	TotalBettingAmount  int64 `json:"total_betting_amount"`
	TotalExpectedPayout int64 `json:"total_expected_payout"`
}

// Tally 统计小票各状态数量与金额
func Tally(receipts []*model.Receipt) StatusTally {
	var t StatusTally
	for _, r := range receipts {
		if r == nil {
			continue
		}
		t.Total++
		t.TotalBettingAmount += r.TotalBettingAmount
		t.TotalExpectedPayout += r.TotalExpectedPayout
		switch r.Status {
		case model.ReceiptStatusWon:
			t.Won++
		case model.ReceiptStatusLost:
			t.Lost++
		case model.ReceiptStatusPending:
			t.Pending++
		case model.ReceiptStatusCancelled:
			t.Cancelled++
		}
	}
	return t
}

// Completed 已结算（won+lost）的小票数
func (t StatusTally) Completed() int {
	return t.Won + t.Lost
}

// WinRatio 命中率 [0,1]，没有已结算小票时为 0
func (t StatusTally) WinRatio() float64 {
	if t.Completed() == 0 {
		return 0
	}
	return float64(t.Won) / float64(t.Completed())
}

// WinRatePercent 命中率百分比，保留两位小数
func (t StatusTally) WinRatePercent() float64 {
	return RoundPercent(t.WinRatio())
}

// Accuracy 用户命中率：wins / (wins + losses)，pending/cancelled 不计入分母
func Accuracy(receipts []*model.Receipt) float64 {
	return Tally(receipts).WinRatio()
}

// RoundPercent 将 [0,1] 的比例转为保留两位小数的百分比
func RoundPercent(ratio float64) float64 {
	return decimal.NewFromFloat(ratio * 100).Round(2).InexactFloat64()
}
