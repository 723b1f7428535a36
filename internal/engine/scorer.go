package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"ReceiptRecommend/internal/model"
)

// 各因子内部使用的固定系数
const (
	leagueRecentBonus   = 5.0
	compeRecentBonus    = 4.0
	teamCountFactor     = 3.0
	teamRecentFactor    = 2.0
	homeTeamShare       = 0.6
	awayTeamShare       = 0.4
	slotCountFactor     = 2.0
	oddsDistancePenalty = 2.0

	maxConfidenceScore = 100
)

// 理由文案触发阈值
const (
	reasonLeagueCount  = 3
	reasonRecentCompe  = 2
	reasonTeamCount    = 2
	reasonTimeCount    = 3
	reasonAccuracy     = 0.5
	reasonBetTypeShare = 0.5
	reasonDefault      = "new game"
	reasonSeparator    = ", "
)

// Scorer 多因子加权评分器。除时钟外无状态，可并发使用
type Scorer struct {
	loc *time.Location
	now func() time.Time
}

// NewScorer loc 用于计算候选比赛的星期，应与 Analyzer 一致；nil 时为 UTC
func NewScorer(loc *time.Location) *Scorer {
	if loc == nil {
		loc = time.UTC
	}
	return &Scorer{loc: loc, now: time.Now}
}

// WithClock 替换时钟（测试用）
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// scoringContext 一次评分请求内对所有候选比赛共享的预计算数据
type scoringContext struct {
	pattern       *UserPattern
	cfg           *model.RecommendConfig
	receiptCount  float64
	accuracy      float64
	oddsBaseline  float64
	recentLeagues map[string]struct{}
	loc           *time.Location
}

// Score 对候选比赛逐一评分，返回顺序与输入一致，不做过滤和排序
func (s *Scorer) Score(games []model.CandidateGame, pattern *UserPattern, receipts []*model.Receipt, accuracy float64, cfg *model.RecommendConfig) []model.RecommendedGame {
	if pattern == nil {
		pattern = NewUserPattern()
	}
	if cfg == nil {
		cfg = model.DefaultRecommendConfig()
	}
	sc := &scoringContext{
		pattern:       pattern,
		cfg:           cfg,
		receiptCount:  float64(len(receipts)),
		accuracy:      accuracy,
		oddsBaseline:  averageTotalOdds(receipts),
		recentLeagues: leaguesSince(receipts, s.now().AddDate(0, 0, -cfg.RecencyDays)),
		loc:           s.loc,
	}

	out := make([]model.RecommendedGame, 0, len(games))
	for i := range games {
		out = append(out, sc.scoreGame(&games[i]))
	}
	return out
}

func (sc *scoringContext) scoreGame(game *model.CandidateGame) model.RecommendedGame {
	var (
		b       model.ScoreBreakdown
		reasons []string
		cfg     = sc.cfg
	)

	// 1. 联赛偏好
	league := sc.pattern.Leagues[game.LeagueName]
	if league != nil {
		w := float64(cfg.LeagueWeight)
		b.League = math.Min(w, sc.share(league.Count)*w+float64(league.RecentCount)*leagueRecentBonus)
		if league.Count > reasonLeagueCount {
			reasons = append(reasons, fmt.Sprintf("picked %s %d times", game.LeagueName, league.Count))
		}
	}

	// 2. 项目偏好
	if compe := sc.pattern.Compes[game.Compe]; compe != nil {
		w := float64(cfg.CompeWeight)
		b.Compe = math.Min(w, sc.share(compe.Count)*w+float64(compe.RecentCount)*compeRecentBonus)
		if compe.RecentCount > reasonRecentCompe {
			reasons = append(reasons, fmt.Sprintf("often picked %s games recently", game.Compe))
		}
	}

	// 3. 球队偏好：主队上限 60%，客队上限 40%
	home := sc.pattern.Teams[game.HomeTeamName]
	away := sc.pattern.Teams[game.AwayTeamName]
	if home != nil {
		b.Team += math.Min(homeTeamShare*float64(cfg.TeamWeight), teamPoints(home))
		if home.Count > reasonTeamCount {
			reasons = append(reasons, fmt.Sprintf("you seem to like %s", game.HomeTeamName))
		}
	}
	if away != nil {
		b.Team += math.Min(awayTeamShare*float64(cfg.TeamWeight), teamPoints(away))
		if away.Count > reasonTeamCount {
			reasons = append(reasons, fmt.Sprintf("you seem to like %s", game.AwayTeamName))
		}
	}

	// 4. 时段偏好
	if n := sc.pattern.TimePreferences[game.MatchTime]; n > 0 {
		b.Time = math.Min(float64(cfg.TimeWeight), float64(n)*slotCountFactor)
		if n > reasonTimeCount {
			reasons = append(reasons, fmt.Sprintf("prefers games at %s", game.MatchTime))
		}
	}

	// 5. 星期偏好
	if day := dayOfWeek(game.MatchDate, sc.loc); day != "" {
		if n := sc.pattern.DayPreferences[day]; n > 0 {
			b.Day = math.Min(float64(cfg.DayWeight), float64(n)*slotCountFactor)
		}
	}

	// 6. 最近 recency_days 天内选过同联赛
	if _, ok := sc.recentLeagues[game.LeagueName]; ok {
		b.Recency = float64(cfg.RecencyWeight)
		reasons = append(reasons, "league you showed interest in recently")
	}

	// 7. 命中率加成
	b.Accuracy = sc.accuracy * float64(cfg.AccuracyWeight)
	if sc.accuracy > reasonAccuracy {
		reasons = append(reasons, fmt.Sprintf("strong hit rate (%.0f%%)", sc.accuracy*100))
	}

	// 8. 下注类型一致性（先推断推荐玩法）
	betType := InferBetType(game, sc.pattern.BettingTypes)
	if bt := sc.pattern.BettingTypes[betType]; bt != nil {
		w := float64(cfg.BettingTypeConsistencyWeight)
		share := sc.share(bt.Count)
		b.BetTypeConsist = math.Min(w, share*w)
		if share > reasonBetTypeShare {
			reasons = append(reasons, fmt.Sprintf("consistent %s bets", betType))
		}
	}

	// 9. 赔率偏好：主胜赔率越接近历史平均总赔率得分越高
	b.OddsPreference = math.Max(0, float64(cfg.OddsPreferenceWeight)-math.Abs(ParseOdds(game.HomeBetRt)-sc.oddsBaseline)*oddsDistancePenalty)

	rg := model.RecommendedGame{
		Game:                   *game,
		RecommendedBettingType: betType,
		ConfidenceScore:        confidence(b.Total()),
		Reason:                 reasonDefault,
		Breakdown:              &b,
	}
	if len(reasons) > 0 {
		rg.Reason = strings.Join(reasons, reasonSeparator)
	}
	if league != nil {
		rg.Frequency += league.Count
		rg.RecentSelectionCount += league.RecentCount
	}
	if home != nil {
		rg.Frequency += home.Count
		rg.RecentSelectionCount += home.RecentCount
	}
	if away != nil {
		rg.Frequency += away.Count
		rg.RecentSelectionCount += away.RecentCount
	}
	return rg
}

// share count 占小票总数的比例
func (sc *scoringContext) share(count int) float64 {
	if sc.receiptCount == 0 {
		return 0
	}
	return float64(count) / sc.receiptCount
}

func teamPoints(t *TeamStat) float64 {
	return float64(t.Count)*teamCountFactor + float64(t.RecentCount)*teamRecentFactor
}

// confidence 四舍五入并限制在 [0,100]
func confidence(total float64) int {
	score := int(math.Round(total))
	if score > maxConfidenceScore {
		return maxConfidenceScore
	}
	if score < 0 {
		return 0
	}
	return score
}

// averageTotalOdds 小票总赔率的平均值，作为赔率偏好的基准
func averageTotalOdds(receipts []*model.Receipt) float64 {
	var sum float64
	var n int
	for _, r := range receipts {
		if r == nil {
			continue
		}
		sum += ParseOdds(r.TotalOdds)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// leaguesSince since 之后创建的小票中出现过的联赛
func leaguesSince(receipts []*model.Receipt, since time.Time) map[string]struct{} {
	leagues := make(map[string]struct{})
	for _, r := range receipts {
		if r == nil || r.CreatedAt.Before(since) {
			continue
		}
		for i := range r.SelectedGames {
			leagues[r.SelectedGames[i].LeagueName] = struct{}{}
		}
	}
	return leagues
}

// Rank 过滤低于 min_recommendation_score 的比赛，按分数降序（同分保持输入顺序）并截断到 max_recommendations
func Rank(scored []model.RecommendedGame, cfg *model.RecommendConfig) []model.RecommendedGame {
	if cfg == nil {
		cfg = model.DefaultRecommendConfig()
	}
	out := make([]model.RecommendedGame, 0, len(scored))
	for _, g := range scored {
		if g.ConfidenceScore >= cfg.MinRecommendationScore {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConfidenceScore > out[j].ConfidenceScore
	})
	if limit := maxRecommendations(cfg); len(out) > limit {
		out = out[:limit]
	}
	return out
}

func maxRecommendations(cfg *model.RecommendConfig) int {
	if cfg.MaxRecommendations <= 0 {
		return model.DefaultMaxRecommendations
	}
	return cfg.MaxRecommendations
}
