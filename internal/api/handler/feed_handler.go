package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/pkg/response"
)

// ListPosts 全站 feed
// @Summary 全站帖子
// @Tags feed
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	page, err := h.feedService.Global(c.Request.Context(), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, page)
}

// ListGroupPosts 社区 feed
// @Summary 社区帖子
// @Tags feed
// @Produce json
// @Param slug path string true "社区 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/groups/{slug}/posts [get]
func (h *Handler) ListGroupPosts(c *gin.Context) {
	feed, err := h.feedService.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, feed)
}

// ListProfilePosts 作者主页 feed，含当前用户是否已关注
// @Summary 作者帖子
// @Tags feed
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{username}/posts [get]
func (h *Handler) ListProfilePosts(c *gin.Context) {
	feed, err := h.feedService.Profile(c.Request.Context(), middleware.ViewerFrom(c), c.Param("username"), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, feed)
}

// ListFollowPosts 关注作者的帖子
// @Summary 关注 feed
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 302 "未登录时跳转登录页"
// @Router /api/v1/follow/posts [get]
func (h *Handler) ListFollowPosts(c *gin.Context) {
	page, err := h.feedService.Following(c.Request.Context(), middleware.ViewerFrom(c), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, page)
}

// ListGroups 社区列表（发帖表单的社区选项）
// @Summary 社区列表
// @Tags feed
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/groups [get]
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.feedService.Groups(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, groups)
}
