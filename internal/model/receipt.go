package model

import (
	"time"

	"gorm.io/datatypes"
)

// 小票状态
const (
	ReceiptStatusPending   = "pending"
	ReceiptStatusWon       = "won"
	ReceiptStatusLost      = "lost"
	ReceiptStatusCancelled = "cancelled"
)

// 下注类型
const (
	BetTypeHome         = "home"
	BetTypeAway         = "away"
	BetTypeDraw         = "draw"
	BetTypeHandicapHome = "handicap_home"
	BetTypeHandicapAway = "handicap_away"
	BetTypeOver         = "over"
	BetTypeUnder        = "under"
)

// ValidReceiptStatus 判断状态是否合法
func ValidReceiptStatus(status string) bool {
	switch status {
	case ReceiptStatusPending, ReceiptStatusWon, ReceiptStatusLost, ReceiptStatusCancelled:
		return true
	}
	return false
}

// Game 比赛信息。小票里的已选比赛与请求中的候选比赛共用同一结构
type Game struct {
	GameID          string `json:"game_id"`
	GameNo          string `json:"game_no"`
	Compe           string `json:"compe"` // 运动项目代码（baseball/basketball/soccer...）
	LeagueID        string `json:"league_id"`
	LeagueName      string `json:"league_name"`
	HomeTeamName    string `json:"home_team_name"`
	AwayTeamName    string `json:"away_team_name"`
	MatchDate       string `json:"match_date"`                  // 2006-01-02
	MatchTime       string `json:"match_time"`                  // 15:04
	HandicapScoreCN string `json:"handicap_score_cn,omitempty"` // 让分盘口，带符号的数字字符串
	HomeBetRt       string `json:"home_bet_rt,omitempty"`       // 主胜赔率
	AwayBetRt       string `json:"away_bet_rt,omitempty"`       // 客胜赔率
}

// SelectedGame 小票内嵌的已选比赛
type SelectedGame = Game

// CandidateGame 当前可下注、待评分的比赛（由调用方提供，不落库）
type CandidateGame = Game

// BettingItem 小票内对某场比赛的具体下注
type BettingItem struct {
	GameID         string `json:"game_id"`
	BettingType    string `json:"betting_type"` // home/away/draw/handicap_home/handicap_away/over/under
	SelectedTeam   string `json:"selected_team"`
	Odds           string `json:"odds"`
	BettingAmount  int64  `json:"betting_amount"`
	ExpectedPayout int64  `json:"expected_payout"`
}

// Receipt 对应 betting_receipts 表。创建后只有 status 会变化，推荐引擎只读
type Receipt struct {
	ID                  uint64                            `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ReceiptID           string                            `gorm:"column:receipt_id;type:varchar(64);uniqueIndex;not null" json:"receipt_id"`
	UserNo              string                            `gorm:"column:user_no;type:varchar(128);index:idx_receipt_user_created,priority:1;not null" json:"user_no"`
	SelectedGames       datatypes.JSONSlice[SelectedGame] `gorm:"column:selected_games;not null" json:"selected_games"`
	BettingItems        datatypes.JSONSlice[BettingItem]  `gorm:"column:betting_items;not null" json:"betting_items"`
	TotalBettingAmount  int64                             `gorm:"column:total_betting_amount;not null" json:"total_betting_amount"`
	TotalExpectedPayout int64                             `gorm:"column:total_expected_payout;not null" json:"total_expected_payout"`
	TotalOdds           string                            `gorm:"column:total_odds;type:varchar(32);not null" json:"total_odds"`
	Status              string                            `gorm:"column:status;type:varchar(16);not null;default:pending" json:"status"`
	BettingType         string                            `gorm:"column:betting_type;type:varchar(16);not null;default:P" json:"betting_type"` // 投注单类型 P/F/A/B
	CreatedAt           time.Time                         `gorm:"column:created_at;index:idx_receipt_user_created,priority:2" json:"created_at"`
	UpdatedAt           time.Time                         `gorm:"column:updated_at" json:"updated_at"`
}

func (Receipt) TableName() string { return "betting_receipts" }
