package handler

import (
	"errors"
	"strconv"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/api/middleware"
	"cutmatch-go/internal/api/response"
	"cutmatch-go/internal/service"
	"cutmatch-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create POST /api/v1/hairstyles/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	hairstyleID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的发型ID")
		return
	}

	var req dto.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.reviewService.Create(c.Request.Context(), userID, hairstyleID, &req)
	if err != nil {
		handleReviewError(c, err)
		return
	}

	response.Created(c, "发表评价成功", info)
}

// ListByHairstyle GET /api/v1/hairstyles/:id/reviews
func (h *ReviewHandler) ListByHairstyle(c *gin.Context) {
	hairstyleID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的发型ID")
		return
	}

	page, pageSize := parsePagination(c)

	data, err := h.reviewService.ListByHairstyle(hairstyleID, page, pageSize)
	if err != nil {
		handleReviewError(c, err)
		return
	}

	response.OK(c, "获取评价列表成功", data)
}

// Update PUT /api/v1/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评价ID")
		return
	}

	var req dto.ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	callerID, _ := middleware.GetCurrentUserID(c)
	callerRole := middleware.GetCurrentUserRole(c)

	info, err := h.reviewService.Update(c.Request.Context(), reviewID, callerID, callerRole, &req)
	if err != nil {
		handleReviewError(c, err)
		return
	}

	response.OK(c, "更新评价成功", info)
}

// Delete DELETE /api/v1/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评价ID")
		return
	}

	callerID, _ := middleware.GetCurrentUserID(c)
	callerRole := middleware.GetCurrentUserRole(c)

	if err := h.reviewService.Delete(c.Request.Context(), reviewID, callerID, callerRole); err != nil {
		handleReviewError(c, err)
		return
	}

	response.OK(c, "删除评价成功", nil)
}

func handleReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrHairstyleNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadyReviewed):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrReviewNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Review operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
