package model

import (
	"time"
)

// Follow 有向订阅边：follower 在 following feed 里看到 followee 的帖子。
// (follower_id, followee_id) 唯一，且不允许自环。
type Follow struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FollowerID string    `json:"follower_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_edge,priority:1"`
	FolloweeID string    `json:"followee_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_edge,priority:2;index:idx_follow_followee;check:chk_follow_not_self,follower_id <> followee_id"`
	Follower   *User     `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followee   *User     `json:"-" gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }
