package model

import "time"

// 默认推荐参数（同时也是首次访问时写入的默认配置）
const (
	DefaultLeagueWeight                 = 30
	DefaultCompeWeight                  = 25
	DefaultTeamWeight                   = 25
	DefaultTimeWeight                   = 10
	DefaultDayWeight                    = 10
	DefaultRecencyWeight                = 10
	DefaultAccuracyWeight               = 20
	DefaultBettingTypeConsistencyWeight = 15
	DefaultOddsPreferenceWeight         = 10
	DefaultMinRecommendationScore       = 20
	DefaultMaxRecommendations           = 5
	DefaultRecencyDays                  = 7
	DefaultConfigVersion                = "v1.1"

	// MaxTotalWeight 权重总和超过该值只告警，不拒绝更新
	MaxTotalWeight = 200
)

// RecommendConfig 对应 recommendation_configs 表，同一时刻只有一条 is_active=true
type RecommendConfig struct {
	ID                           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LeagueWeight                 int       `gorm:"column:league_weight;not null;default:30" json:"league_weight"`
	CompeWeight                  int       `gorm:"column:compe_weight;not null;default:25" json:"compe_weight"`
	TeamWeight                   int       `gorm:"column:team_weight;not null;default:25" json:"team_weight"`
	TimeWeight                   int       `gorm:"column:time_weight;not null;default:10" json:"time_weight"`
	DayWeight                    int       `gorm:"column:day_weight;not null;default:10" json:"day_weight"`
	RecencyWeight                int       `gorm:"column:recency_weight;not null;default:10" json:"recency_weight"`
	AccuracyWeight               int       `gorm:"column:accuracy_weight;not null;default:20" json:"accuracy_weight"`
	BettingTypeConsistencyWeight int       `gorm:"column:betting_type_consistency_weight;not null;default:15" json:"betting_type_consistency_weight"`
	OddsPreferenceWeight         int       `gorm:"column:odds_preference_weight;not null;default:10" json:"odds_preference_weight"`
	MinRecommendationScore       int       `gorm:"column:min_recommendation_score;not null;default:20" json:"min_recommendation_score"`
	MaxRecommendations           int       `gorm:"column:max_recommendations;not null;default:5" json:"max_recommendations"`
	RecencyDays                  int       `gorm:"column:recency_days;not null;default:7" json:"recency_days"`
	Version                      string    `gorm:"column:version;type:varchar(32);not null;default:v1.1" json:"version"`
	IsActive                     bool      `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	CreatedAt                    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt                    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (RecommendConfig) TableName() string { return "recommendation_configs" }

// DefaultRecommendConfig 返回默认配置
func DefaultRecommendConfig() *RecommendConfig {
	return &RecommendConfig{
		LeagueWeight:                 DefaultLeagueWeight,
		CompeWeight:                  DefaultCompeWeight,
		TeamWeight:                   DefaultTeamWeight,
		TimeWeight:                   DefaultTimeWeight,
		DayWeight:                    DefaultDayWeight,
		RecencyWeight:                DefaultRecencyWeight,
		AccuracyWeight:               DefaultAccuracyWeight,
		BettingTypeConsistencyWeight: DefaultBettingTypeConsistencyWeight,
		OddsPreferenceWeight:         DefaultOddsPreferenceWeight,
		MinRecommendationScore:       DefaultMinRecommendationScore,
		MaxRecommendations:           DefaultMaxRecommendations,
		RecencyDays:                  DefaultRecencyDays,
		Version:                      DefaultConfigVersion,
		IsActive:                     true,
	}
}

// TotalWeight 九个评分因子的权重之和
func (c *RecommendConfig) TotalWeight() int {
	return c.LeagueWeight + c.CompeWeight + c.TeamWeight + c.TimeWeight + c.DayWeight +
		c.RecencyWeight + c.AccuracyWeight + c.BettingTypeConsistencyWeight + c.OddsPreferenceWeight
}
