package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/pkg/response"
)

// Follow 关注作者（关注自己静默忽略），跳转到作者主页
// @Summary 关注用户
// @Tags 关系链
// @Security BearerAuth
// @Param username path string true "被关注的用户名"
// @Success 302 "跳转到作者主页"
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{username}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	author, err := h.relService.Follow(c.Request.Context(), middleware.ViewerFrom(c), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, ProfileURL(author.Username))
}

// Unfollow 取消关注，跳转到作者主页
// @Summary 取消关注
// @Tags 关系链
// @Security BearerAuth
// @Param username path string true "被取消关注的用户名"
// @Success 302 "跳转到作者主页"
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{username}/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	author, err := h.relService.Unfollow(c.Request.Context(), middleware.ViewerFrom(c), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, ProfileURL(author.Username))
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{username}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	page, err := h.relService.ListFollowing(c.Request.Context(), c.Param("username"), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, page)
}
