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

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create POST /api/v1/posts （multipart：text + image 文件 + 可选 linked_hairstyle_id）
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.PostCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "帖子必须携带一张配图")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.postService.Create(c.Request.Context(), userID, &req, image)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.Created(c, "发帖成功", info)
}

// GetByID GET /api/v1/posts/:post_id
func (h *PostHandler) GetByID(c *gin.Context) {
	postID, err := parsePostIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的帖子ID")
		return
	}

	callerID, _ := middleware.GetCurrentUserID(c)

	info, err := h.postService.GetByID(postID, callerID)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "获取帖子成功", info)
}

// Feed GET /api/v1/posts （?following=true 只看关注的人）
func (h *PostHandler) Feed(c *gin.Context) {
	page, pageSize := parsePagination(c)
	callerID, _ := middleware.GetCurrentUserID(c)

	onlyFollowing := c.Query("following") == "true"
	if onlyFollowing && callerID == 0 {
		response.Unauthorized(c, "关注流需要登录")
		return
	}

	data, err := h.postService.Feed(callerID, page, pageSize, onlyFollowing)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "获取帖子流成功", data)
}

// ListByUser GET /api/v1/users/:id/posts
func (h *PostHandler) ListByUser(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	page, pageSize := parsePagination(c)
	callerID, _ := middleware.GetCurrentUserID(c)

	data, err := h.postService.ListByUser(userID, callerID, page, pageSize)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "获取用户帖子成功", data)
}

// Update PUT /api/v1/posts/:post_id
func (h *PostHandler) Update(c *gin.Context) {
	postID, err := parsePostIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的帖子ID")
		return
	}

	var req dto.PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	callerID, _ := middleware.GetCurrentUserID(c)
	callerRole := middleware.GetCurrentUserRole(c)

	info, err := h.postService.Update(postID, callerID, callerRole, &req)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "更新帖子成功", info)
}

// Delete DELETE /api/v1/posts/:post_id
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := parsePostIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的帖子ID")
		return
	}

	callerID, _ := middleware.GetCurrentUserID(c)
	callerRole := middleware.GetCurrentUserRole(c)

	if err := h.postService.Delete(c.Request.Context(), postID, callerID, callerRole); err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "删除帖子成功", nil)
}

// ToggleLike POST /api/v1/posts/:post_id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, err := parsePostIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的帖子ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.postService.ToggleLike(postID, userID)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "操作成功", data)
}

func handlePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrHairstyleNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrPostNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrPostImageRequired):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidImageType):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Post operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

func parsePostIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("post_id"), 10, 64)
}
