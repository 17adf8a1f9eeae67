// Package filter 列表页的搜索与精确筛选组合。
//
// 每种实体声明一个 Schema：哪些字段参与模糊搜索、哪些字段参与精确筛选。
// 所有条件按逻辑与组合；任意条件为空即视为不限制。
package filter

import (
	"strings"

	"golang.org/x/text/cases"
)

// Accessor 读取记录的某个文本字段；false 表示字段缺失
type Accessor[T any] func(T) (string, bool)

// Criteria 一次查询的筛选条件
type Criteria struct {
	Search string
	Exact  map[string]string
}

// IsEmpty 是否没有任何有效条件
func (c Criteria) IsEmpty() bool {
	if c.Search != "" {
		return false
	}
	for _, v := range c.Exact {
		if v != "" {
			return false
		}
	}
	return true
}

// Schema 某实体的可搜索字段与精确筛选字段
type Schema[T any] struct {
	Searchable []Accessor[T]
	Exact      map[string]Accessor[T]
}

// Match 判断单条记录是否满足条件
func (s Schema[T]) Match(rec T, c Criteria) bool {
	return newMatcher(s, c).match(rec)
}

// Apply 全量扫描记录，返回满足条件的新切片（保持原顺序，不与输入共享底层数组）
func Apply[T any](records []T, s Schema[T], c Criteria) []T {
	m := newMatcher(s, c)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if m.match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// matcher 预先折叠搜索词；cases.Caser 有状态，每次查询单独创建
type matcher[T any] struct {
	schema Schema[T]
	exact  map[string]string
	needle string
	fold   cases.Caser
}

func newMatcher[T any](s Schema[T], c Criteria) *matcher[T] {
	m := &matcher[T]{schema: s, exact: c.Exact, fold: cases.Fold()}
	if c.Search != "" {
		m.needle = m.fold.String(c.Search)
	}
	return m
}

func (m *matcher[T]) match(rec T) bool {
	return m.matchSearch(rec) && m.matchExact(rec)
}

func (m *matcher[T]) matchSearch(rec T) bool {
	if m.needle == "" {
		return true
	}
	for _, get := range m.schema.Searchable {
		v, ok := get(rec)
		if !ok {
			continue
		}
		if strings.Contains(m.fold.String(v), m.needle) {
			return true
		}
	}
	return false
}

// matchExact 未声明的键没有取值器，等同字段缺失
func (m *matcher[T]) matchExact(rec T) bool {
	for key, want := range m.exact {
		if want == "" {
			continue
		}
		get, ok := m.schema.Exact[key]
		if !ok {
			return false
		}
		v, ok := get(rec)
		if !ok || v != want {
			return false
		}
	}
	return true
}
