package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound 引用的社区、帖子或用户不存在
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized 需要登录
	ErrUnauthorized = errors.New("authentication required")
	// ErrNotAuthor 非作者编辑帖子；调用方应静默跳转到帖子详情
	ErrNotAuthor = errors.New("only the author may edit this post")
)

// ValidationError 字段级校验错误，key 为表单字段名
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
