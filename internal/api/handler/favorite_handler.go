package handler

import (
	"errors"

	"cutmatch-go/internal/api/middleware"
	"cutmatch-go/internal/api/response"
	"cutmatch-go/internal/service"
	"cutmatch-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add POST /api/v1/hairstyles/:id/favorite
func (h *FavoriteHandler) Add(c *gin.Context) {
	hairstyleID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的发型ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.favoriteService.Add(userID, hairstyleID); err != nil {
		handleFavoriteError(c, err)
		return
	}

	response.Created(c, "收藏成功", nil)
}

// Remove DELETE /api/v1/hairstyles/:id/favorite
func (h *FavoriteHandler) Remove(c *gin.Context) {
	hairstyleID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的发型ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.favoriteService.Remove(userID, hairstyleID); err != nil {
		handleFavoriteError(c, err)
		return
	}

	response.OK(c, "取消收藏成功", nil)
}

// ListMine GET /api/v1/users/me/favorites
func (h *FavoriteHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	data, err := h.favoriteService.ListByUser(userID, page, pageSize)
	if err != nil {
		handleFavoriteError(c, err)
		return
	}

	response.OK(c, "获取收藏列表成功", data)
}

func handleFavoriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHairstyleNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadyFavorited):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNotFavorited):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Favorite operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
