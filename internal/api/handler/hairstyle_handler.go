package handler

import (
	"errors"
	"strconv"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/api/middleware"
	"cutmatch-go/internal/api/response"
	"cutmatch-go/internal/repository"
	"cutmatch-go/internal/service"
	"cutmatch-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HairstyleHandler struct {
	hairstyleService *service.HairstyleService
}

func NewHairstyleHandler(hairstyleService *service.HairstyleService) *HairstyleHandler {
	return &HairstyleHandler{hairstyleService: hairstyleService}
}

// Create POST /api/v1/hairstyles （管理员）
func (h *HairstyleHandler) Create(c *gin.Context) {
	var req dto.HairstyleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.hairstyleService.Create(c.Request.Context(), &req)
	if err != nil {
		handleHairstyleError(c, err)
		return
	}

	response.Created(c, "新增发型成功", info)
}

// GetByID GET /api/v1/hairstyles/:id
func (h *HairstyleHandler) GetByID(c *gin.Context) {
	hairstyleID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的发型ID")
		return
	}

	callerID, _ := middleware.GetCurrentUserID(c)

	info, err := h.hairstyleService.GetByID(c.Request.Context(), hairstyleID, callerID)
	if err != nil {
		handleHairstyleError(c, err)
		return
	}

	response.OK(c, "获取发型成功", info)
}

// List GET /api/v1/hairstyles
func (h *HairstyleHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	callerID, _ := middleware.GetCurrentUserID(c)

	filters := repository.HairstyleFilters{
		Gender:    c.Query("gender"),
		Tag:       c.Query("tag"),
		FaceShape: c.Query("face_shape"),
	}
	if v := c.Query("min_rating"); v != "" {
		if rating, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinRating = rating
		}
	}

	data, err := h.hairstyleService.List(callerID, page, pageSize, filters)
	if err != nil {
		handleHairstyleError(c, err)
		return
	}

	response.OK(c, "获取发型列表成功", data)
}

// Update PUT /api/v1/hairstyles/:id （管理员）
func (h *HairstyleHandler) Update(c *gin.Context) {
	hairstyleID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的发型ID")
		return
	}

	var req dto.HairstyleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.hairstyleService.Update(c.Request.Context(), hairstyleID, &req)
	if err != nil {
		handleHairstyleError(c, err)
		return
	}

	response.OK(c, "更新发型成功", info)
}

// Delete DELETE /api/v1/hairstyles/:id （管理员）
func (h *HairstyleHandler) Delete(c *gin.Context) {
	hairstyleID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的发型ID")
		return
	}

	if err := h.hairstyleService.Delete(c.Request.Context(), hairstyleID); err != nil {
		handleHairstyleError(c, err)
		return
	}

	response.OK(c, "删除发型成功", nil)
}

func handleHairstyleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHairstyleNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Hairstyle operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
