package handler

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

// Handler HTTP 处理器集合
type Handler struct {
	feedService    service.FeedService
	postService    service.PostService
	commentService service.CommentService
	relService     service.RelationshipService
	loginURL       string
}

func NewHandler(feeds service.FeedService, posts service.PostService, comments service.CommentService, rels service.RelationshipService, loginURL string) *Handler {
	return &Handler{
		feedService:    feeds,
		postService:    posts,
		commentService: comments,
		relService:     rels,
		loginURL:       loginURL,
	}
}

// ProfileURL 作者主页 feed
func ProfileURL(username string) string {
	return "/api/v1/profiles/" + url.PathEscape(username) + "/posts"
}

// PostURL 帖子详情
func PostURL(id uint) string {
	return fmt.Sprintf("/api/v1/posts/%d", id)
}

// fail 把服务层错误映射成响应
func (h *Handler) fail(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		middleware.LoginRedirect(c, h.loginURL)
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.As(err, &ve):
		response.ValidationFailed(c, ve.Fields)
	default:
		response.InternalError(c, err)
	}
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.NotFound(c, "post not found")
		return 0, false
	}
	return uint(id), true
}
