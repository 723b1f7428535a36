package engine

import "ReceiptRecommend/internal/model"

const (
	coldStartScore  = 50
	coldStartReason = "popular game"
	placeholder     = "-"
)

// ColdStart 没有历史小票时的兜底推荐：按调用方顺序取前 max_recommendations 场，统一 50 分、推荐主胜
func ColdStart(games []model.CandidateGame, cfg *model.RecommendConfig) ([]model.RecommendedGame, model.AnalysisSummary) {
	if cfg == nil {
		cfg = model.DefaultRecommendConfig()
	}
	n := len(games)
	if limit := maxRecommendations(cfg); n > limit {
		n = limit
	}

	out := make([]model.RecommendedGame, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.RecommendedGame{
			Game:                   games[i],
			RecommendedBettingType: model.BetTypeHome,
			ConfidenceScore:        coldStartScore,
			Reason:                 coldStartReason,
		})
	}
	return out, EmptySummary()
}

// EmptySummary 无历史时的摘要，字符串字段为 "-"
func EmptySummary() model.AnalysisSummary {
	return model.AnalysisSummary{
		FavoriteLeague:      placeholder,
		FavoriteCompe:       placeholder,
		FavoriteBettingType: placeholder,
		MostSelectedTeam:    placeholder,
	}
}
