package engine

import (
	"time"

	"ReceiptRecommend/internal/model"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func daysAgo(n int) time.Time { return testNow.AddDate(0, 0, -n) }

func game(compe, league, home, away, date, clock string) model.Game {
	return model.Game{
		Compe:        compe,
		LeagueName:   league,
		HomeTeamName: home,
		AwayTeamName: away,
		MatchDate:    date,
		MatchTime:    clock,
	}
}

func receipt(status string, created time.Time, totalOdds string, games []model.SelectedGame, betTypes ...string) *model.Receipt {
	items := make([]model.BettingItem, 0, len(betTypes))
	for i, bt := range betTypes {
		item := model.BettingItem{BettingType: bt, Odds: "1.9", BettingAmount: 1000}
		if i < len(games) {
			item.GameID = games[i].GameID
		}
		items = append(items, item)
	}
	return &model.Receipt{
		UserNo:             "u1",
		SelectedGames:      games,
		BettingItems:       items,
		TotalBettingAmount: 1000,
		TotalOdds:          totalOdds,
		Status:             status,
		CreatedAt:          created,
	}
}

func receiptsWithStatus(won, lost, pending, cancelled int) []*model.Receipt {
	var out []*model.Receipt
	add := func(status string, n int) {
		for i := 0; i < n; i++ {
			g := game("soccer", "EPL", "Arsenal", "Chelsea", "2026-04-01", "20:00")
			out = append(out, receipt(status, daysAgo(40+len(out)), "2.0", []model.SelectedGame{g}, model.BetTypeHome))
		}
	}
	add(model.ReceiptStatusWon, won)
	add(model.ReceiptStatusLost, lost)
	add(model.ReceiptStatusPending, pending)
	add(model.ReceiptStatusCancelled, cancelled)
	return out
}
