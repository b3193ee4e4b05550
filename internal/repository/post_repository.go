package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
)

// PostFilter 限定 feed 的范围，零值表示全部帖子
type PostFilter struct {
	AuthorID string
	GroupID  *uint
	// FollowerID 只保留该用户关注的作者发布的帖子
	FollowerID string
}

func (f PostFilter) apply(db *gorm.DB) *gorm.DB {
	if f.FollowerID != "" {
		db = db.Joins("JOIN follows ON follows.followee_id = posts.author_id AND follows.follower_id = ?", f.FollowerID)
	}
	if f.AuthorID != "" {
		db = db.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.GroupID != nil {
		db = db.Where("posts.group_id = ?", *f.GroupID)
	}
	return db
}

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	// GetByID 同时带出作者与社区
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	// Update 只更新正文、社区与图片
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, f PostFilter) (int64, error)
	// List 按 created_at DESC, id DESC 排序，作者与社区在同一条查询中 JOIN 取出
	List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).Omit("Author", "Group").Create(p).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Joins("Author").
		Joins("Group").
		Where("posts.id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	res := r.db.WithContext(ctx).
		Model(&model.Post{ID: p.ID}).
		Updates(map[string]any{"text": p.Text, "group_id": p.GroupID, "image": p.Image})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *postRepository) Count(ctx context.Context, f PostFilter) (int64, error) {
	var cnt int64
	err := f.apply(r.db.WithContext(ctx).Model(&model.Post{})).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	q := r.db.WithContext(ctx).Model(&model.Post{}).Joins("Author").Joins("Group")
	err := f.apply(q).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}
