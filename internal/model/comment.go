package model

import "time"

// CommentMaxLength 评论正文最大字符数
const CommentMaxLength = 200

// Comment 评论，随帖子级联删除
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index:idx_comment_post;not null"`
	Post      *Post     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);not null"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string    `json:"text" gorm:"type:varchar(200);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_comment_post"`
}

func (Comment) TableName() string { return "comments" }
