package model

import "time"

// Post 帖子；AuthorID 与 CreatedAt 创建后不再变化
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_post_created"`
	UpdatedAt time.Time `json:"updated_at"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	// 社区被删除时置空，不级联删除帖子
	GroupID *uint  `json:"group_id" gorm:"index:idx_post_group"`
	Group   *Group `json:"group,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Image   string `json:"image,omitempty" gorm:"type:varchar(255)"`
}

func (Post) TableName() string { return "posts" }
