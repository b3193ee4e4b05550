package model

import "time"

// User 账号由外部身份系统维护，这里只使用 id 与展示名
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username    string    `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(150)"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// Name 展示名为空时退回用户名
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
