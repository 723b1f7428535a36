package engine

import (
	"sort"
	"strings"
	"time"

	"ReceiptRecommend/internal/model"
)

// DefaultPatternRecentDays 模式分析中“最近”计数的固定窗口，与配置里的 recency_days 无关
const DefaultPatternRecentDays = 30

// 星期简称，下标与 time.Weekday 对应
var weekdayLabels = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// EntryStat 联赛/项目/下注类型的选择次数
type EntryStat struct {
	Count       int `json:"count"`
	RecentCount int `json:"recent_count"`
}

// TeamStat 球队选择次数，League 记录首次出现时所在联赛
type TeamStat struct {
	Count       int    `json:"count"`
	RecentCount int    `json:"recent_count"`
	League      string `json:"league"`
}

// UserPattern 由用户小票聚合出的投注画像，每次请求重新计算
type UserPattern struct {
	Leagues           map[string]*EntryStat `json:"leagues"`
	Compes            map[string]*EntryStat `json:"compes"`
	Teams             map[string]*TeamStat  `json:"teams"`
	BettingTypes      map[string]*EntryStat `json:"betting_types"`
	TimePreferences   map[string]int        `json:"time_preferences"`
	DayPreferences    map[string]int        `json:"day_preferences"`
	CompeCombinations map[string]int        `json:"compe_combinations"`
}

// NewUserPattern 创建空画像
func NewUserPattern() *UserPattern {
	return &UserPattern{
		Leagues:           make(map[string]*EntryStat),
		Compes:            make(map[string]*EntryStat),
		Teams:             make(map[string]*TeamStat),
		BettingTypes:      make(map[string]*EntryStat),
		TimePreferences:   make(map[string]int),
		DayPreferences:    make(map[string]int),
		CompeCombinations: make(map[string]int),
	}
}

// Analyzer 投注模式分析器
type Analyzer struct {
	recentWindow time.Duration
	loc          *time.Location
	now          func() time.Time
}

// NewAnalyzer recentDays<=0 时使用 30 天；loc 为 nil 时用 UTC 计算星期
func NewAnalyzer(recentDays int, loc *time.Location) *Analyzer {
	if recentDays <= 0 {
		recentDays = DefaultPatternRecentDays
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Analyzer{
		recentWindow: time.Duration(recentDays) * 24 * time.Hour,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock 替换时钟（测试用）
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Analyze 将小票列表折叠为投注画像
func (a *Analyzer) Analyze(receipts []*model.Receipt) *UserPattern {
	p := NewUserPattern()
	cutoff := a.now().Add(-a.recentWindow)

	for _, r := range receipts {
		if r == nil {
			continue
		}
		recent := !r.CreatedAt.Before(cutoff)

		for i := range r.SelectedGames {
			g := &r.SelectedGames[i]
			bumpEntry(p.Leagues, g.LeagueName, recent)
			bumpEntry(p.Compes, g.Compe, recent)
			bumpTeam(p.Teams, g.HomeTeamName, g.LeagueName, recent)
			bumpTeam(p.Teams, g.AwayTeamName, g.LeagueName, recent)

			p.TimePreferences[g.MatchTime]++
			if day := a.DayOfWeek(g.MatchDate); day != "" {
				p.DayPreferences[day]++
			}
		}

		for i := range r.BettingItems {
			bumpEntry(p.BettingTypes, r.BettingItems[i].BettingType, recent)
		}

		if key := compeComboKey(r.SelectedGames); key != "" {
			p.CompeCombinations[key]++
		}
	}
	return p
}

// DayOfWeek 按分析器时区把比赛日期转为星期简称；无法解析时返回空串
func (a *Analyzer) DayOfWeek(matchDate string) string {
	return dayOfWeek(matchDate, a.loc)
}

func dayOfWeek(matchDate string, loc *time.Location) string {
	matchDate = strings.TrimSpace(matchDate)
	for _, layout := range []string{"2006-01-02", "20060102", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, matchDate, loc); err == nil {
			return weekdayLabels[t.In(loc).Weekday()]
		}
	}
	return ""
}

func bumpEntry(m map[string]*EntryStat, key string, recent bool) {
	e, ok := m[key]
	if !ok {
		e = &EntryStat{}
		m[key] = e
	}
	e.Count++
	if recent {
		e.RecentCount++
	}
}

func bumpTeam(m map[string]*TeamStat, team, league string, recent bool) {
	t, ok := m[team]
	if !ok {
		t = &TeamStat{League: league}
		m[team] = t
	}
	t.Count++
	if recent {
		t.RecentCount++
	}
}

// compeComboKey 单张小票出现多个项目时返回排序后以 + 连接的键
func compeComboKey(games []model.SelectedGame) string {
	seen := make(map[string]struct{}, len(games))
	compes := make([]string, 0, len(games))
	for i := range games {
		c := games[i].Compe
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		compes = append(compes, c)
	}
	if len(compes) < 2 {
		return ""
	}
	sort.Strings(compes)
	return strings.Join(compes, "+")
}

// FavoriteLeague 选择次数最多的联赛，次数相同时取字典序最小者
func (p *UserPattern) FavoriteLeague() string { return favoriteEntry(p.Leagues) }

// FavoriteCompe 选择次数最多的项目
func (p *UserPattern) FavoriteCompe() string { return favoriteEntry(p.Compes) }

// FavoriteBettingType 使用次数最多的下注类型
func (p *UserPattern) FavoriteBettingType() string { return favoriteEntry(p.BettingTypes) }

// MostSelectedTeam 出现次数最多的球队
func (p *UserPattern) MostSelectedTeam() string {
	best, top := "", 0
	for _, k := range sortedKeys(p.Teams) {
		if c := p.Teams[k].Count; c > top {
			best, top = k, c
		}
	}
	return best
}

func favoriteEntry(m map[string]*EntryStat) string {
	best, top := "", 0
	for _, k := range sortedKeys(m) {
		if c := m[k].Count; c > top {
			best, top = k, c
		}
	}
	return best
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
