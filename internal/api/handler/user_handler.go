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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.userService.GetByID(userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取当前用户成功", info)
}

// GetByID GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	info, err := h.userService.GetByID(userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取用户成功", info)
}

// Update PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	callerID, _ := middleware.GetCurrentUserID(c)
	callerRole := middleware.GetCurrentUserRole(c)

	info, err := h.userService.Update(userID, callerID, callerRole, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "更新用户成功", info)
}

// UploadAvatar POST /api/v1/users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "缺少头像文件")
		return
	}

	info, err := h.userService.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "头像上传成功", info)
}

// Delete DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	callerID, _ := middleware.GetCurrentUserID(c)
	callerRole := middleware.GetCurrentUserRole(c)

	if err := h.userService.Delete(userID, callerID, callerRole); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "删除用户成功", nil)
}

// List GET /api/v1/users （管理员）
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var username, userRole *string
	if v := c.Query("username"); v != "" {
		username = &v
	}
	if v := c.Query("user_role"); v != "" {
		userRole = &v
	}

	data, err := h.userService.List(page, pageSize, username, userRole)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取用户列表成功", data)
}

// Restore POST /api/v1/users/:id/restore （管理员）
func (h *UserHandler) Restore(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	info, err := h.userService.Restore(userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "恢复用户成功", info)
}

// Promote POST /api/v1/users/:id/promote （管理员）
func (h *UserHandler) Promote(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	info, err := h.userService.Promote(userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "设置管理员成功", info)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidImageType):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// parseIDParam 解析路径中的 :id 参数
func parseIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
