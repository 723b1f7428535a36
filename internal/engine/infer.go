package engine

import (
	"strings"

	"ReceiptRecommend/internal/model"
)

// DominantBetType 使用次数最多的下注类型，画像为空时返回 home
func DominantBetType(betTypes map[string]*EntryStat) string {
	if t := favoriteEntry(betTypes); t != "" {
		return t
	}
	return model.BetTypeHome
}

// InferBetType 根据用户偏好的下注类型决定对候选比赛推荐的具体玩法：
// 偏好让分时按盘口方向选 handicap_home/handicap_away；偏好平局时推荐 draw；
// 其余情况比较主客赔率，推荐赔率更高的一方
func InferBetType(game *model.CandidateGame, betTypes map[string]*EntryStat) string {
	preferred := DominantBetType(betTypes)

	if strings.Contains(preferred, "handicap") {
		if ParseHandicap(game.HandicapScoreCN) < 0 {
			return model.BetTypeHandicapHome
		}
		return model.BetTypeHandicapAway
	}

	if preferred == model.BetTypeDraw {
		return model.BetTypeDraw
	}

	if ParseOdds(game.HomeBetRt) > ParseOdds(game.AwayBetRt) {
		return model.BetTypeHome
	}
	return model.BetTypeAway
}
