// Package storage keeps uploaded post images on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotImage 上传内容不是图片
var ErrNotImage = errors.New("uploaded file is not an image")

// ImageStore 保存图片并返回相对引用（如 posts/<uuid>.gif）
type ImageStore interface {
	Save(name, contentType string, r io.Reader) (string, error)
	// Delete 删除 Save 返回的引用；不存在时不报错
	Delete(ref string) error
}

// LocalStore 写入 root/posts 目录
type LocalStore struct {
	root     string
	maxBytes int64
}

func NewLocalStore(root string, maxBytes int64) *LocalStore {
	return &LocalStore{root: root, maxBytes: maxBytes}
}

func (s *LocalStore) Save(name, contentType string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	dir := filepath.Join(s.root, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	ref := path.Join("posts", uuid.NewString()+strings.ToLower(filepath.Ext(name)))
	f, err := os.Create(filepath.Join(s.root, filepath.FromSlash(ref)))
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	defer f.Close()

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = fmt.Errorf("image exceeds %d bytes", s.maxBytes)
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return ref, nil
}

func (s *LocalStore) Delete(ref string) error {
	clean := path.Clean(ref)
	if !strings.HasPrefix(clean, "posts/") {
		return fmt.Errorf("invalid image reference %q", ref)
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
