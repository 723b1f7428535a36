package model

import "time"

// ScoreBreakdown 各评分因子的得分明细（四舍五入前）
type ScoreBreakdown struct {
	League         float64 `json:"league"`
	Compe          float64 `json:"compe"`
	Team           float64 `json:"team"`
	Time           float64 `json:"time"`
	Day            float64 `json:"day"`
	Recency        float64 `json:"recency"`
	Accuracy       float64 `json:"accuracy"`
	BetTypeConsist float64 `json:"betting_type_consistency"`
	OddsPreference float64 `json:"odds_preference"`
}

// Total 各因子之和
func (b ScoreBreakdown) Total() float64 {
	return b.League + b.Compe + b.Team + b.Time + b.Day + b.Recency + b.Accuracy + b.BetTypeConsist + b.OddsPreference
}

// RecommendedGame 推荐结果中的单场比赛
type RecommendedGame struct {
	Game
	RecommendedBettingType string          `json:"recommended_betting_type"`
	ConfidenceScore        int             `json:"confidence_score"` // 0-100
	Reason                 string          `json:"reason"`
	Frequency              int             `json:"frequency"`              // 联赛+主队+客队历史选择次数，仅用于展示
	RecentSelectionCount   int             `json:"recent_selection_count"` // 同上，最近窗口内
	Breakdown              *ScoreBreakdown `json:"score_breakdown,omitempty"`
}

// AnalysisSummary 用户投注习惯摘要
type AnalysisSummary struct {
	TotalReceipts       int     `json:"total_receipts"`
	FavoriteLeague      string  `json:"favorite_league"`
	FavoriteCompe       string  `json:"favorite_compe"`
	FavoriteBettingType string  `json:"favorite_betting_type"`
	MostSelectedTeam    string  `json:"most_selected_team"`
	RecentActivityDays  int     `json:"recent_activity_days"` // 回溯窗口内最早与最新小票相隔天数
	Accuracy            float64 `json:"accuracy"`             // 命中率百分比
}

// RecommendationResult 推荐接口返回体
type RecommendationResult struct {
	UserNo           string            `json:"user_no"`
	RecommendedGames []RecommendedGame `json:"recommended_games"`
	Analysis         AnalysisSummary   `json:"analysis"`
	GeneratedAt      time.Time         `json:"generated_at"`
}
