// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/pkg/database"
)

// NewDB 打开一个临时 sqlite 文件库并建表
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.NewString(), Username: username}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateGroup(t testing.TB, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreatePosts 按顺序插入 n 条帖子，返回插入顺序的切片
func CreatePosts(t testing.TB, db *gorm.DB, author *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	posts := make([]*model.Post, n)
	for i := range posts {
		p := &model.Post{Text: "post text", AuthorID: author.ID}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(t, db.Create(p).Error)
		posts[i] = p
	}
	return posts
}
