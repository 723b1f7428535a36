package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// 数字字段解析失败时的兜底值，与评分结果保持一致，不向上抛错
const (
	fallbackOdds     = 1.0
	fallbackHandicap = 0.0
)

// ParseOdds 解析赔率字符串，空串或非法值返回 1
func ParseOdds(s string) float64 {
	return parseNumber(s, fallbackOdds)
}

// ParseHandicap 解析让分盘口字符串，空串或非法值返回 0
func ParseHandicap(s string) float64 {
	return parseNumber(s, fallbackHandicap)
}

func parseNumber(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fallback
	}
	return d.InexactFloat64()
}
