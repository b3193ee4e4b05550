package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/yatube/internal/model"
)

// FollowStats 个人主页上的关注数
type FollowStats struct {
	Followers  int64
	Followings int64
}

type FollowRepository interface {
	// Ensure 不存在才插入，返回是否新建了边
	Ensure(ctx context.Context, followerID, followeeID string) (bool, error)
	// Remove 返回是否真的删掉了边
	Remove(ctx context.Context, followerID, followeeID string) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	Stats(ctx context.Context, userID string) (FollowStats, error)
	// ListFollowees 该用户关注的作者，最近关注的在前
	ListFollowees(ctx context.Context, followerID string, offset, limit int) ([]*model.User, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Ensure(ctx context.Context, followerID, followeeID string) (bool, error) {
	edge := &model.Follow{ID: uuid.NewString(), FollowerID: followerID, FolloweeID: followeeID}
	// 由 idx_follow_edge 兜底，并发的重复关注只会落一条
	res := r.db.WithContext(ctx).
		Omit("Follower", "Followee").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge)
	return res.RowsAffected > 0, res.Error
}

func (r *followRepository) Remove(ctx context.Context, followerID, followeeID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{})
	return res.RowsAffected > 0, res.Error
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Limit(1).
		Pluck("id", &ids).Error
	return len(ids) > 0, err
}

func (r *followRepository) Stats(ctx context.Context, userID string) (FollowStats, error) {
	var st FollowStats
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Select(`COALESCE(SUM(CASE WHEN followee_id = ? THEN 1 ELSE 0 END), 0) AS followers,
			COALESCE(SUM(CASE WHEN follower_id = ? THEN 1 ELSE 0 END), 0) AS followings`, userID, userID).
		Where("follower_id = ? OR followee_id = ?", userID, userID).
		Scan(&st).Error
	return st, err
}

func (r *followRepository) ListFollowees(ctx context.Context, followerID string, offset, limit int) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.created_at DESC, follows.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, err
}
