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

type RelationHandler struct {
	relationService *service.RelationService
}

func NewRelationHandler(relationService *service.RelationService) *RelationHandler {
	return &RelationHandler{relationService: relationService}
}

// Follow POST /api/v1/relations/follow
func (h *RelationHandler) Follow(c *gin.Context) {
	var req dto.RelationActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.relationService.Follow(userID, req.UserID); err != nil {
		handleRelationError(c, err)
		return
	}

	response.OK(c, "关注成功", nil)
}

// Unfollow POST /api/v1/relations/unfollow
func (h *RelationHandler) Unfollow(c *gin.Context) {
	var req dto.RelationActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.relationService.Unfollow(userID, req.UserID); err != nil {
		handleRelationError(c, err)
		return
	}

	response.OK(c, "取消关注成功", nil)
}

// GetFollowingList GET /api/v1/relations/:id/following
func (h *RelationHandler) GetFollowingList(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	page, pageSize := parsePagination(c)

	data, err := h.relationService.GetFollowingList(userID, page, pageSize)
	if err != nil {
		handleRelationError(c, err)
		return
	}

	response.OK(c, "获取关注列表成功", data)
}

// GetFollowerList GET /api/v1/relations/:id/followers
func (h *RelationHandler) GetFollowerList(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	page, pageSize := parsePagination(c)

	data, err := h.relationService.GetFollowerList(userID, page, pageSize)
	if err != nil {
		handleRelationError(c, err)
		return
	}

	response.OK(c, "获取粉丝列表成功", data)
}

func handleRelationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCannotFollowSelf):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAlreadyFollowed):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNotFollowed):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Relation operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// parsePagination 解析分页参数，page 默认 1，page_size 默认 20、上限 100
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
