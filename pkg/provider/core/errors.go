package core

import (
	"errors"
	"fmt"
)

// 数据源层错误分类。调用方用 errors.Is 区分输入错误与上游错误。
var (
	// ErrInvalidDateFormat 日期参数格式非法，发起上游请求前即被拒绝
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidPattern 名称匹配的正则表达式非法
	ErrInvalidPattern = errors.New("invalid name pattern")

	// ErrInvalidArgument 其他非法入参（如指标类型取值越界）
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUpstream 上游数据源请求失败或返回不可解析的内容
	ErrUpstream = errors.New("upstream data source error")

	// ErrProviderUnavailable 数据源被熔断器暂时隔离
	ErrProviderUnavailable = errors.New("provider temporarily unavailable")
)

// UpstreamError 携带数据源名称与底层原因的上游错误
type UpstreamError struct {
	Provider string
	Op       string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is 使 UpstreamError 匹配 ErrUpstream 哨兵
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// NewUpstreamError 包装上游请求失败
func NewUpstreamError(provider, op string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Op: op, Err: err}
}
