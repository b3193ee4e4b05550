package service

import (
	"context"
	"errors"
	"strings"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

// CommentInput 评论表单，正文最多 200 个字符，超出即校验失败而不是截断
type CommentInput struct {
	Text string `form:"text" validate:"required,max=200"`
}

type CommentService interface {
	Add(ctx context.Context, viewer *Viewer, postID uint, in CommentInput) (*model.Comment, error)
}

type commentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	cache    FeedCache
}

func NewCommentService(posts repository.PostRepository, comments repository.CommentRepository, cache FeedCache) CommentService {
	if cache == nil {
		cache = nopCache{}
	}
	return &commentService{posts: posts, comments: comments, cache: cache}
}

func (s *commentService) Add(ctx context.Context, viewer *Viewer, postID uint, in CommentInput) (*model.Comment, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("post %d", postID)
		}
		return nil, err
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	c := &model.Comment{PostID: postID, AuthorID: viewer.ID, Text: in.Text}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return c, nil
}
