package api

import (
	"errors"
	"net/http"

	"ReceiptRecommend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UpdateStatusRequest 小票结算请求体
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=won lost cancelled"`
}

// ReceiptHandler 投注小票写入、结算与统计接口
type ReceiptHandler struct {
	receipts *service.ReceiptService
	stats    *service.RecommendationService
	logger   *logrus.Logger
}

// NewReceiptHandler 创建 ReceiptHandler，stats 用于用户命中率统计
func NewReceiptHandler(receipts *service.ReceiptService, stats *service.RecommendationService, logger *logrus.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		receipts: receipts,
		stats:    stats,
		logger:   logger,
	}
}

// Register 挂载到 /api/v1/betting-receipts
func (h *ReceiptHandler) Register(r gin.IRouter) {
	g := r.Group("/api/v1/betting-receipts")
	g.POST("", h.Create)
	g.PUT("/:receipt_id/status", h.UpdateStatus)
	g.GET("/stats/user/:user_no", h.UserStats)
}

// Create 创建小票 POST /api/v1/betting-receipts
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req service.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	receipt, err := h.receipts.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReceipt) {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).WithField("user_no", req.UserNo).Error("创建小票失败")
		respondFail(c, http.StatusInternalServerError, "failed to create betting receipt")
		return
	}
	respondCreated(c, receipt, "betting receipt created")
}

// UpdateStatus 结算/取消小票 PUT /api/v1/betting-receipts/:receipt_id/status
func (h *ReceiptHandler) UpdateStatus(c *gin.Context) {
	receiptID := c.Param("receipt_id")
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid status: "+err.Error())
		return
	}
	receipt, err := h.receipts.UpdateStatus(c.Request.Context(), receiptID, req.Status)
	switch {
	case err == nil:
		respondOK(c, receipt, "betting receipt status updated")
	case errors.Is(err, service.ErrReceiptNotFound):
		respondFail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidStatusTransition):
		respondFail(c, http.StatusConflict, err.Error())
	default:
		h.logger.WithError(err).WithField("receipt_id", receiptID).Error("更新小票状态失败")
		respondFail(c, http.StatusInternalServerError, "failed to update betting receipt")
	}
}

// UserStats 用户投注统计 GET /api/v1/betting-receipts/stats/user/:user_no
func (h *ReceiptHandler) UserStats(c *gin.Context) {
	userNo := c.Param("user_no")
	stats, err := h.stats.UserStats(c.Request.Context(), userNo)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).WithField("user_no", userNo).Error("统计用户小票失败")
		respondFail(c, http.StatusInternalServerError, "failed to load betting stats")
		return
	}
	respondOK(c, stats, "betting stats loaded")
}
