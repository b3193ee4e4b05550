package model

import "gorm.io/gorm"

// AutoMigrate 建表（含外键与唯一约束）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Group{}, &Post{}, &Comment{}, &Follow{})
}
