package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/pkg/storage"
)

// Upload 上传的图片；Err 非空表示上传本身读取失败
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Err         error
}

// PostInput 新建/编辑帖子的表单
type PostInput struct {
	Text    string  `form:"text" validate:"required"`
	GroupID *uint   `form:"group"`
	Image   *Upload `form:"-"`
	// ClearImage 编辑时移除已有图片
	ClearImage bool `form:"image-clear"`
	// Malformed 请求体无法解析；在作者校验之后才作为字段错误返回
	Malformed error `form:"-"`
}

// PostDetail 帖子详情页
type PostDetail struct {
	Post *model.Post `json:"post"`
	// AuthorPostCount 作者的帖子总数
	AuthorPostCount int64            `json:"author_post_count"`
	Comments        []*model.Comment `json:"comments"`
}

type PostService interface {
	Create(ctx context.Context, viewer *Viewer, in PostInput) (*model.Post, error)
	// Edit 非作者返回 ErrNotAuthor 且不做任何修改
	Edit(ctx context.Context, viewer *Viewer, postID uint, in PostInput) (*model.Post, error)
	Detail(ctx context.Context, postID uint) (*PostDetail, error)
}

type postService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	comments repository.CommentRepository
	images   storage.ImageStore
	cache    FeedCache
}

func NewPostService(posts repository.PostRepository, groups repository.GroupRepository, comments repository.CommentRepository, images storage.ImageStore, cache FeedCache) PostService {
	if cache == nil {
		cache = nopCache{}
	}
	return &postService{posts: posts, groups: groups, comments: comments, images: images, cache: cache}
}

// clean 校验表单并保存图片，返回图片引用（无上传时为空）
func (s *postService) clean(ctx context.Context, in *PostInput) (string, error) {
	if in.Malformed != nil {
		logger.Warn("post form unreadable", zap.Error(in.Malformed))
		return "", fieldError("form", "The submitted form could not be read.")
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := validateInput(in); err != nil {
		return "", err
	}
	if in.GroupID != nil {
		if _, err := s.groups.GetByID(ctx, *in.GroupID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", fieldError("group", "Select a valid choice. That choice is not one of the available choices.")
			}
			return "", err
		}
	}
	if in.Image == nil {
		return "", nil
	}
	if in.Image.Err != nil {
		logger.Warn("image upload unreadable", zap.Error(in.Image.Err))
		return "", fieldError("image", "The submitted file could not be read.")
	}
	if s.images == nil {
		return "", fieldError("image", "Image uploads are not available.")
	}
	ref, err := s.images.Save(in.Image.Filename, in.Image.ContentType, in.Image.Body)
	if errors.Is(err, storage.ErrNotImage) {
		return "", fieldError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	if err != nil {
		return "", err
	}
	return ref, nil
}

func (s *postService) Create(ctx context.Context, viewer *Viewer, in PostInput) (*model.Post, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	image, err := s.clean(ctx, &in)
	if err != nil {
		return nil, err
	}
	p := &model.Post{Text: in.Text, AuthorID: viewer.ID, GroupID: in.GroupID, Image: image}
	if err := s.posts.Create(ctx, p); err != nil {
		s.discard(image)
		return nil, err
	}
	s.cache.Invalidate(ctx)
	logger.Info("post created", zap.Uint("post_id", p.ID), zap.String("author_id", viewer.ID))
	// 重新读取以带出 Author，调用方用它拼作者主页地址
	return s.posts.GetByID(ctx, p.ID)
}

// discard 删除已保存但不再被引用的图片
func (s *postService) discard(ref string) {
	if ref == "" || s.images == nil {
		return
	}
	if err := s.images.Delete(ref); err != nil {
		logger.Warn("image cleanup failed", zap.String("image", ref), zap.Error(err))
	}
}

func (s *postService) Edit(ctx context.Context, viewer *Viewer, postID uint, in PostInput) (*model.Post, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	p, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("post %d", postID)
	}
	if err != nil {
		return nil, err
	}
	if p.AuthorID != viewer.ID {
		logger.Info("edit refused for non-author", zap.Uint("post_id", postID), zap.String("viewer_id", viewer.ID))
		return p, ErrNotAuthor
	}

	image, err := s.clean(ctx, &in)
	if err != nil {
		return nil, err
	}
	previous := p.Image
	p.Text = in.Text
	p.GroupID = in.GroupID
	switch {
	case image != "":
		p.Image = image
	case in.ClearImage:
		p.Image = ""
	}
	if err := s.posts.Update(ctx, p); err != nil {
		s.discard(image)
		return nil, err
	}
	if previous != p.Image {
		s.discard(previous)
	}
	s.cache.Invalidate(ctx)
	return s.posts.GetByID(ctx, postID)
}

func (s *postService) Detail(ctx context.Context, postID uint) (*PostDetail, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("post %d", postID)
	}
	if err != nil {
		return nil, err
	}
	count, err := s.posts.Count(ctx, repository.PostFilter{AuthorID: p.AuthorID})
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	return &PostDetail{Post: p, AuthorPostCount: count, Comments: comments}, nil
}
