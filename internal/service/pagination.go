package service

import (
	"twitter-backend/internal/errors"
)

// Pagination 分页参数，page 和 limit 都从 1 开始。
// 非法的分页参数在这里统一拒绝，后续查询可以假定参数合法。
type Pagination struct {
	Page  int64
	Limit int64
}

// NewPagination 构造分页参数，page < 1 或 limit < 1 时返回错误
func NewPagination(page, limit int64) (Pagination, error) {
	if page < 1 {
		return Pagination{}, errors.New(errors.ErrBadRequest, "page 必须大于等于 1")
	}
	if limit < 1 {
		return Pagination{}, errors.New(errors.ErrBadRequest, "limit 必须大于等于 1")
	}
	return Pagination{Page: page, Limit: limit}, nil
}

// Skip 返回需要跳过的文档数
func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// TotalPages 按总数计算总页数，total 为 0 时返回 0
func (p Pagination) TotalPages(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
