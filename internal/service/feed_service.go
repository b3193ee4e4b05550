package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/paginator"
)

// PostPage 一页帖子
type PostPage = paginator.Page[*model.Post]

// FeedCache 全局 feed 的可选缓存；任何写操作后必须 Invalidate。
// GetGlobal 返回读取时的代数（读失败时为负），回填只能写入该代数，
// 这样查询期间发生的写操作不会被旧数据覆盖。
type FeedCache interface {
	GetGlobal(ctx context.Context, page int) (p *PostPage, gen int64, ok bool)
	SetGlobal(ctx context.Context, gen int64, page int, p *PostPage)
	Invalidate(ctx context.Context)
}

type nopCache struct{}

func (nopCache) GetGlobal(context.Context, int) (*PostPage, int64, bool) { return nil, -1, false }
func (nopCache) SetGlobal(context.Context, int64, int, *PostPage)        {}
func (nopCache) Invalidate(context.Context)                              {}

type GroupFeed struct {
	Group *model.Group `json:"group"`
	Page  PostPage     `json:"page"`
}

type ProfileFeed struct {
	Author     *model.User `json:"author"`
	Followers  int64       `json:"followers"`
	Followings int64       `json:"followings"`
	// Following 当前用户是否已关注该作者，匿名用户恒为 false
	Following bool     `json:"following"`
	Page      PostPage `json:"page"`
}

// FeedService 组装各类 feed，只读
type FeedService interface {
	Global(ctx context.Context, rawPage string) (*PostPage, error)
	Group(ctx context.Context, slug, rawPage string) (*GroupFeed, error)
	Profile(ctx context.Context, viewer *Viewer, username, rawPage string) (*ProfileFeed, error)
	Following(ctx context.Context, viewer *Viewer, rawPage string) (*PostPage, error)
	Groups(ctx context.Context) ([]*model.Group, error)
}

type feedService struct {
	posts   repository.PostRepository
	groups  repository.GroupRepository
	users   repository.UserRepository
	follows repository.FollowRepository
	cache   FeedCache
}

func NewFeedService(posts repository.PostRepository, groups repository.GroupRepository, users repository.UserRepository, follows repository.FollowRepository, cache FeedCache) FeedService {
	if cache == nil {
		cache = nopCache{}
	}
	return &feedService{posts: posts, groups: groups, users: users, follows: follows, cache: cache}
}

func (s *feedService) page(ctx context.Context, f repository.PostFilter, rawPage string) (*PostPage, error) {
	total, err := s.posts.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	w := paginator.Resolve(total, rawPage, paginator.PageSize)
	items, err := s.posts.List(ctx, f, w.Offset(), w.Limit())
	if err != nil {
		return nil, err
	}
	p := paginator.NewPage(w, items)
	return &p, nil
}

func (s *feedService) Global(ctx context.Context, rawPage string) (*PostPage, error) {
	key := cacheKeyPage(rawPage)
	cached, gen, ok := s.cache.GetGlobal(ctx, key)
	if ok {
		return cached, nil
	}
	p, err := s.page(ctx, repository.PostFilter{}, rawPage)
	if err != nil {
		return nil, err
	}
	if gen >= 0 {
		s.cache.SetGlobal(ctx, gen, key, p)
	}
	return p, nil
}

func (s *feedService) Group(ctx context.Context, slug, rawPage string) (*GroupFeed, error) {
	g, err := s.groups.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("group %q", slug)
	}
	if err != nil {
		return nil, err
	}
	p, err := s.page(ctx, repository.PostFilter{GroupID: &g.ID}, rawPage)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: g, Page: *p}, nil
}

func (s *feedService) Profile(ctx context.Context, viewer *Viewer, username, rawPage string) (*ProfileFeed, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("user %q", username)
	}
	if err != nil {
		return nil, err
	}
	p, err := s.page(ctx, repository.PostFilter{AuthorID: author.ID}, rawPage)
	if err != nil {
		return nil, err
	}
	out := &ProfileFeed{Author: author, Page: *p}
	st, err := s.follows.Stats(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	out.Followers, out.Followings = st.Followers, st.Followings
	if viewer.Authenticated() {
		if out.Following, err = s.follows.IsFollowing(ctx, viewer.ID, author.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Following 只包含关注作者的帖子，不含自己的
func (s *feedService) Following(ctx context.Context, viewer *Viewer, rawPage string) (*PostPage, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	return s.page(ctx, repository.PostFilter{FollowerID: viewer.ID}, rawPage)
}

func (s *feedService) Groups(ctx context.Context) ([]*model.Group, error) {
	return s.groups.List(ctx)
}

// cacheKeyPage 非数字页码与缺省页码共用第 1 页的缓存
func cacheKeyPage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}
