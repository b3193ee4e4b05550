package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

type postForm struct {
	Text  string `form:"text"`
	Group string `form:"group"`
	// 复选框提交 "on"
	ImageClear string `form:"image-clear"`
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off":
		return false
	}
	return true
}

type commentForm struct {
	Text string `form:"text" json:"text"`
}

// bindPostForm 读取表单与可选图片；返回的 closer 需要在处理完后调用。
// 解析失败不在这里报错，由服务层在作者校验之后返回字段错误。
func bindPostForm(c *gin.Context) (service.PostInput, func()) {
	noop := func() {}
	var f postForm
	if err := c.ShouldBind(&f); err != nil {
		return service.PostInput{Malformed: err}, noop
	}
	in := service.PostInput{Text: f.Text, ClearImage: checked(f.ImageClear)}
	if g := strings.TrimSpace(f.Group); g != "" {
		// 非数字按不存在的社区 0 处理，由服务层在鉴权之后报字段错误
		id, _ := strconv.ParseUint(g, 10, 64)
		gid := uint(id)
		in.GroupID = &gid
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, noop
	}
	if err != nil {
		in.Image = &service.Upload{Err: err}
		return in, noop
	}
	file, err := fh.Open()
	if err != nil {
		in.Image = &service.Upload{Filename: fh.Filename, Err: err}
		return in, noop
	}
	in.Image = &service.Upload{Filename: fh.Filename, ContentType: contentType(fh), Body: file}
	return in, func() { _ = file.Close() }
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// GetPost 帖子详情与评论（最新在前）
// @Summary 帖子详情
// @Tags posts
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	detail, err := h.postService.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"post":              detail.Post,
		"author_post_count": detail.AuthorPostCount,
		"comments":          detail.Comments,
		"comment_form":      commentForm{},
	})
}

// CreatePost 发帖，成功后跳转到作者主页
// @Summary 发帖
// @Tags posts
// @Accept multipart/form-data
// @Security BearerAuth
// @Param text formData string true "正文"
// @Param group formData int false "社区ID"
// @Param image formData file false "图片"
// @Success 302 "跳转到作者主页"
// @Failure 400 {object} response.ValidationResponse
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	in, closeImage := bindPostForm(c)
	defer closeImage()
	p, err := h.postService.Create(c.Request.Context(), middleware.ViewerFrom(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	// token 只保证带用户 id，用户名以库里的作者为准
	response.Redirect(c, ProfileURL(p.Author.Username))
}

// EditPost 编辑帖子；非作者静默跳转到帖子详情且不做修改
// @Summary 编辑帖子
// @Tags posts
// @Accept multipart/form-data
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Param text formData string true "正文"
// @Param group formData int false "社区ID"
// @Param image formData file false "图片"
// @Success 302 "跳转到帖子详情"
// @Failure 400 {object} response.ValidationResponse
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/edit [post]
func (h *Handler) EditPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	in, closeImage := bindPostForm(c)
	defer closeImage()
	_, err := h.postService.Edit(c.Request.Context(), middleware.ViewerFrom(c), id, in)
	if err != nil && !errors.Is(err, service.ErrNotAuthor) {
		h.fail(c, err)
		return
	}
	response.Redirect(c, PostURL(id))
}

// AddComment 评论，成功后跳转到帖子详情
// @Summary 评论帖子
// @Tags posts
// @Accept x-www-form-urlencoded
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Param text formData string true "评论（最多200字符）"
// @Success 302 "跳转到帖子详情"
// @Failure 400 {object} response.ValidationResponse
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	var f commentForm
	if err := c.ShouldBind(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, err := h.commentService.Add(c.Request.Context(), middleware.ViewerFrom(c), id, service.CommentInput{Text: f.Text}); err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, PostURL(id))
}
