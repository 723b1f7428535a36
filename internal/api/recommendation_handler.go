package api

import (
	"errors"
	"net/http"

	"ReceiptRecommend/internal/model"
	"ReceiptRecommend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RecommendRequest POST /api/v1/recommendations/games 请求体
type RecommendRequest struct {
	UserNo         string                `json:"user_no"`
	AvailableGames []model.CandidateGame `json:"available_games"`
}

// RecommendationHandler 推荐、投注模式与推荐配置接口
type RecommendationHandler struct {
	recommender *service.RecommendationService
	configs     *service.ConfigService
	logger      *logrus.Logger
}

// NewRecommendationHandler 创建 RecommendationHandler
func NewRecommendationHandler(recommender *service.RecommendationService, configs *service.ConfigService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		configs:     configs,
		logger:      logger,
	}
}

// Register 挂载到 /api/v1/recommendations
func (h *RecommendationHandler) Register(r gin.IRouter) {
	g := r.Group("/api/v1/recommendations")
	g.POST("/games", h.Recommend)
	g.GET("/pattern/:user_no", h.Pattern)
	g.GET("/algorithm/info", h.AlgorithmInfo)
	g.GET("/config", h.GetConfig)
	g.PUT("/config", h.UpdateConfig)
}

// Recommend 个性化比赛推荐 POST /api/v1/recommendations/games
// user_no 或 available_games 为空时返回 200 + success=false
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.recommender.Recommend(c.Request.Context(), req.UserNo, req.AvailableGames)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			respondFail(c, http.StatusOK, err.Error())
			return
		}
		h.logger.WithError(err).WithField("user_no", req.UserNo).Error("生成推荐失败")
		respondFail(c, http.StatusInternalServerError, "failed to generate recommendations")
		return
	}
	respondOK(c, result, "recommendations generated")
}

// Pattern 用户投注模式（调试用） GET /api/v1/recommendations/pattern/:user_no
func (h *RecommendationHandler) Pattern(c *gin.Context) {
	userNo := c.Param("user_no")
	report, err := h.recommender.Pattern(c.Request.Context(), userNo)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).WithField("user_no", userNo).Error("分析投注模式失败")
		respondFail(c, http.StatusInternalServerError, "failed to analyze betting pattern")
		return
	}
	if !report.HasHistory {
		respondOK(c, report, report.Message)
		return
	}
	respondOK(c, report, "betting pattern analyzed")
}

// AlgorithmInfo 当前算法说明 GET /api/v1/recommendations/algorithm/info
func (h *RecommendationHandler) AlgorithmInfo(c *gin.Context) {
	info, err := h.recommender.AlgorithmInfo(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("读取算法信息失败")
		respondFail(c, http.StatusInternalServerError, "failed to load algorithm info")
		return
	}
	respondOK(c, info, "algorithm info loaded")
}

// GetConfig 当前生效配置 GET /api/v1/recommendations/config
func (h *RecommendationHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configs.Get(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("读取推荐配置失败")
		respondFail(c, http.StatusInternalServerError, "failed to load recommendation config")
		return
	}
	respondOK(c, cfg, "recommendation config loaded")
}

// UpdateConfig 局部更新配置 PUT /api/v1/recommendations/config
func (h *RecommendationHandler) UpdateConfig(c *gin.Context) {
	var patch service.ConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid config: "+err.Error())
		return
	}
	cfg, err := h.configs.Update(c.Request.Context(), &patch)
	if err != nil {
		if errors.Is(err, service.ErrInvalidConfig) {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("更新推荐配置失败")
		respondFail(c, http.StatusInternalServerError, "failed to update recommendation config")
		return
	}
	respondOK(c, cfg, "recommendation config updated")
}
