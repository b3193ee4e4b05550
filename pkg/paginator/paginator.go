// Package paginator slices ordered result sets into fixed-size pages.
//
// Page numbers are 1-based. A missing or non-numeric page number selects the
// first page; a numeric one outside [1, NumPages] selects the last page. An
// empty result set still has one (empty) page.
package paginator

import (
	"errors"
	"strconv"
	"strings"
)

// PageSize 所有 feed 共用的每页条数
const PageSize = 10

// Window 描述一页在完整结果集中的位置
type Window struct {
	Number   int
	NumPages int
	Size     int
	Total    int64
}

// Offset 供数据库分页使用
func (w Window) Offset() int { return (w.Number - 1) * w.Size }

func (w Window) Limit() int { return w.Size }

// Page 一页数据与导航信息
type Page[T any] struct {
	Items        []T   `json:"items"`
	Number       int   `json:"number"`
	PageSize     int   `json:"page_size"`
	TotalCount   int64 `json:"total_count"`
	NumPages     int   `json:"num_pages"`
	HasPrevious  bool  `json:"has_previous"`
	HasNext      bool  `json:"has_next"`
	PreviousPage int   `json:"previous_page,omitempty"`
	NextPage     int   `json:"next_page,omitempty"`
}

// Resolve 根据总数和原始页码计算实际页
func Resolve(total int64, raw string, size int) Window {
	if size <= 0 {
		size = PageSize
	}
	if total < 0 {
		total = 0
	}
	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages == 0 {
		numPages = 1
	}
	number := 1
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, strconv.ErrRange):
		// 超出 int 的数字同样属于越界页码
		number = numPages
	case err != nil:
	case n < 1 || n > numPages:
		number = numPages
	default:
		number = n
	}
	return Window{Number: number, NumPages: numPages, Size: size, Total: total}
}

// NewPage 用已取出的当前页数据组装 Page
func NewPage[T any](w Window, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	p := Page[T]{
		Items:       items,
		Number:      w.Number,
		PageSize:    w.Size,
		TotalCount:  w.Total,
		NumPages:    w.NumPages,
		HasPrevious: w.Number > 1,
		HasNext:     w.Number < w.NumPages,
	}
	if p.HasPrevious {
		p.PreviousPage = w.Number - 1
	}
	if p.HasNext {
		p.NextPage = w.Number + 1
	}
	return p
}
