package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/pkg/paginator"
)

// RelationshipService 关系链服务
type RelationshipService interface {
	// Follow 保证关注关系存在；关注自己静默忽略
	Follow(ctx context.Context, viewer *Viewer, username string) (*model.User, error)
	// Unfollow 保证关注关系不存在；本就未关注时不报错
	Unfollow(ctx context.Context, viewer *Viewer, username string) (*model.User, error)
	ListFollowing(ctx context.Context, username, rawPage string) (*paginator.Page[*model.User], error)
}

type relationshipService struct {
	users      repository.UserRepository
	followRepo repository.FollowRepository
	cache      FeedCache
}

func NewRelationshipService(users repository.UserRepository, followRepo repository.FollowRepository, cache FeedCache) RelationshipService {
	if cache == nil {
		cache = nopCache{}
	}
	return &relationshipService{users: users, followRepo: followRepo, cache: cache}
}

func (s *relationshipService) target(ctx context.Context, username string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("user %q", username)
	}
	return u, err
}

func (s *relationshipService) Follow(ctx context.Context, viewer *Viewer, username string) (*model.User, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	author, err := s.target(ctx, username)
	if err != nil {
		return nil, err
	}
	if author.ID == viewer.ID {
		logger.Debug("self-follow ignored", zap.String("user_id", viewer.ID))
		return author, nil
	}
	created, err := s.followRepo.Ensure(ctx, viewer.ID, author.ID)
	if err != nil {
		return nil, err
	}
	if created {
		s.cache.Invalidate(ctx)
		logger.Info("follow created", zap.String("follower", viewer.ID), zap.String("followee", author.ID))
	}
	return author, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, viewer *Viewer, username string) (*model.User, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	author, err := s.target(ctx, username)
	if err != nil {
		return nil, err
	}
	removed, err := s.followRepo.Remove(ctx, viewer.ID, author.ID)
	if err != nil {
		return nil, err
	}
	if removed {
		s.cache.Invalidate(ctx)
		logger.Info("follow removed", zap.String("follower", viewer.ID), zap.String("followee", author.ID))
	}
	return author, nil
}

func (s *relationshipService) ListFollowing(ctx context.Context, username, rawPage string) (*paginator.Page[*model.User], error) {
	u, err := s.target(ctx, username)
	if err != nil {
		return nil, err
	}
	st, err := s.followRepo.Stats(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	w := paginator.Resolve(st.Followings, rawPage, paginator.PageSize)
	users, err := s.followRepo.ListFollowees(ctx, u.ID, w.Offset(), w.Limit())
	if err != nil {
		return nil, err
	}
	p := paginator.NewPage(w, users)
	return &p, nil
}
