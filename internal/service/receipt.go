package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ReceiptRecommend/internal/model"
	"ReceiptRecommend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MinBetPrice 单张小票最低投注金额
const MinBetPrice = 500

// 预测结果：W 主胜 / D 平 / L 客胜 / U 小 / O 大
const (
	PredictWin   = "W"
	PredictDraw  = "D"
	PredictLoss  = "L"
	PredictUnder = "U"
	PredictOver  = "O"
)

// 盘口类型：H 让分，U 大小球，空为胜平负
const (
	TypeHandicap  = "H"
	TypeUnderOver = "U"
)

var (
	// ErrInvalidReceipt 创建小票参数不合法
	ErrInvalidReceipt = errors.New("invalid betting receipt")
	// ErrReceiptNotFound 小票不存在
	ErrReceiptNotFound = errors.New("betting receipt not found")
	// ErrInvalidStatusTransition 只有 pending 小票可以结算或取消
	ErrInvalidStatusTransition = errors.New("invalid receipt status transition")
)

// Bookmark 投注单中对单场比赛的预测
type Bookmark struct {
	GameNo       string `json:"game_no" binding:"required"`
	PredictState string `json:"predict_state" binding:"required,oneof=W D L U O"`
	TypeSC       string `json:"type_sc"`
	WBetRt       string `json:"w_bet_rt"`
	DBetRt       string `json:"d_bet_rt"`
	LBetRt       string `json:"l_bet_rt"`
}

// CalcModel 投注金额与各场预测
type CalcModel struct {
	BetPrice  int64      `json:"bet_price" binding:"required"`
	Bookmarks []Bookmark `json:"bookmarks" binding:"required,min=1,dive"`
}

// CreateReceiptRequest 创建小票请求
type CreateReceiptRequest struct {
	UserNo        string               `json:"user_no" binding:"required"`
	Type          string               `json:"type"` // P/F/A/B，默认 P
	CreateDate    *time.Time           `json:"create_date"`
	SelectedGames []model.SelectedGame `json:"selected_games" binding:"required,min=1"`
	CalcModel     CalcModel            `json:"calc_model"`
}

// ReceiptService 投注小票写入与结算，为推荐提供历史数据
type ReceiptService struct {
	repo   repository.ReceiptRepository
	now    func() time.Time
	logger *logrus.Logger
}

// NewReceiptService 创建 ReceiptService
func NewReceiptService(repo repository.ReceiptRepository, logger *logrus.Logger) *ReceiptService {
	return &ReceiptService{repo: repo, now: time.Now, logger: logger}
}

// Create 根据投注单生成小票：拆分每场投注金额、计算总赔率与预计派彩
func (s *ReceiptService) Create(ctx context.Context, req *CreateReceiptRequest) (*model.Receipt, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	items, err := buildBettingItems(req)
	if err != nil {
		return nil, err
	}
	totalOdds, err := calculateTotalOdds(req.CalcModel.Bookmarks)
	if err != nil {
		return nil, err
	}

	createdAt := s.now()
	if req.CreateDate != nil && !req.CreateDate.IsZero() {
		createdAt = *req.CreateDate
	}
	betType := req.Type
	if betType == "" {
		betType = "P"
	}

	receipt := &model.Receipt{
		ReceiptID:           uuid.NewString(),
		UserNo:              strings.TrimSpace(req.UserNo),
		SelectedGames:       req.SelectedGames,
		BettingItems:        items,
		TotalBettingAmount:  req.CalcModel.BetPrice,
		TotalExpectedPayout: payout(req.CalcModel.BetPrice, totalOdds),
		TotalOdds:           formatTotalOdds(totalOdds, len(req.CalcModel.Bookmarks)),
		Status:              model.ReceiptStatusPending,
		BettingType:         betType,
		CreatedAt:           createdAt,
	}

	if err := s.repo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("保存小票失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"receipt_id": receipt.ReceiptID,
		"user_no":    receipt.UserNo,
		"games":      len(receipt.SelectedGames),
		"total_odds": receipt.TotalOdds,
	}).Info("小票已创建")
	return receipt, nil
}

// UpdateStatus 结算或取消小票，只允许 pending -> won/lost/cancelled
func (s *ReceiptService) UpdateStatus(ctx context.Context, receiptID, status string) (*model.Receipt, error) {
	if !model.ValidReceiptStatus(status) || status == model.ReceiptStatusPending {
		return nil, fmt.Errorf("%w: unsupported status %q", ErrInvalidStatusTransition, status)
	}
	receipt, err := s.repo.GetByReceiptID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("读取小票失败: %w", err)
	}
	if receipt.Status != model.ReceiptStatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, receipt.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, receiptID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("更新小票状态失败: %w", err)
	}
	receipt.Status = status
	s.logger.WithFields(logrus.Fields{
		"receipt_id": receiptID,
		"status":     status,
	}).Info("小票状态已更新")
	return receipt, nil
}

func validateCreate(req *CreateReceiptRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidReceipt)
	}
	if strings.TrimSpace(req.UserNo) == "" {
		return fmt.Errorf("%w: user_no is required", ErrInvalidReceipt)
	}
	if len(req.CalcModel.Bookmarks) == 0 {
		return fmt.Errorf("%w: no games selected", ErrInvalidReceipt)
	}
	if req.CalcModel.BetPrice < MinBetPrice {
		return fmt.Errorf("%w: bet_price must be at least %d", ErrInvalidReceipt, MinBetPrice)
	}
	if len(req.CalcModel.Bookmarks) != len(req.SelectedGames) {
		return fmt.Errorf("%w: bookmarks and selected_games do not match", ErrInvalidReceipt)
	}
	return nil
}

// buildBettingItems 投注金额按场次均分（向下取整），逐场计算预计派彩
func buildBettingItems(req *CreateReceiptRequest) ([]model.BettingItem, error) {
	games := make(map[string]*model.SelectedGame, len(req.SelectedGames))
	for i := range req.SelectedGames {
		games[req.SelectedGames[i].GameNo] = &req.SelectedGames[i]
	}
	perGame := req.CalcModel.BetPrice / int64(len(req.CalcModel.Bookmarks))

	items := make([]model.BettingItem, 0, len(req.CalcModel.Bookmarks))
	for _, b := range req.CalcModel.Bookmarks {
		g, ok := games[b.GameNo]
		if !ok {
			return nil, fmt.Errorf("%w: game_no %s not in selected_games", ErrInvalidReceipt, b.GameNo)
		}
		oddsStr := oddsFor(b)
		odds, err := parseOdds(oddsStr)
		if err != nil {
			return nil, err
		}
		items = append(items, model.BettingItem{
			GameID:         g.GameID,
			BettingType:    bettingTypeOf(b.PredictState, b.TypeSC),
			SelectedTeam:   selectedTeam(b, g),
			Odds:           oddsStr,
			BettingAmount:  perGame,
			ExpectedPayout: payout(perGame, odds),
		})
	}
	return items, nil
}

// calculateTotalOdds 各场赔率连乘。单场保留两位；多场先截断到两位再向上取一位
func calculateTotalOdds(bookmarks []Bookmark) (decimal.Decimal, error) {
	total := decimal.NewFromInt(1)
	for _, b := range bookmarks {
		odds, err := parseOdds(oddsFor(b))
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Mul(odds)
	}
	if len(bookmarks) == 1 {
		return total.Round(2), nil
	}
	ten := decimal.NewFromInt(10)
	return total.Truncate(2).Mul(ten).Ceil().Div(ten), nil
}

func formatTotalOdds(total decimal.Decimal, games int) string {
	if games == 1 {
		return total.StringFixed(2)
	}
	return total.StringFixed(1)
}

func parseOdds(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: invalid odds %q", ErrInvalidReceipt, s)
	}
	return d, nil
}

func payout(amount int64, odds decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(odds).Floor().IntPart()
}

// bettingTypeOf 预测结果转下注类型，未知组合按主胜处理
func bettingTypeOf(predict, typeSC string) string {
	switch typeSC {
	case TypeUnderOver:
		switch predict {
		case PredictUnder:
			return model.BetTypeUnder
		case PredictOver:
			return model.BetTypeOver
		}
	case TypeHandicap:
		switch predict {
		case PredictWin:
			return model.BetTypeHandicapHome
		case PredictLoss:
			return model.BetTypeHandicapAway
		}
	}
	switch predict {
	case PredictDraw:
		return model.BetTypeDraw
	case PredictLoss:
		return model.BetTypeAway
	}
	return model.BetTypeHome
}

// oddsFor W/U 取主胜赔率，D 取平局赔率，L/O 取客胜赔率
func oddsFor(b Bookmark) string {
	switch b.PredictState {
	case PredictDraw:
		return b.DBetRt
	case PredictLoss, PredictOver:
		return b.LBetRt
	}
	return b.WBetRt
}

func selectedTeam(b Bookmark, g *model.SelectedGame) string {
	if b.TypeSC == TypeUnderOver {
		if b.PredictState == PredictUnder {
			return "under"
		}
		return "over"
	}
	switch b.PredictState {
	case PredictDraw:
		return "draw"
	case PredictLoss, PredictOver:
		return g.AwayTeamName
	}
	return g.HomeTeamName
}
