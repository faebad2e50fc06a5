package core

import (
	"context"
	"time"

	"astock/pkg/schema"
)

// Provider 数据源基础接口
type Provider interface {
	// Name 返回数据源名称
	Name() string
	// GetRateLimit 返回建议的最小请求间隔
	GetRateLimit() time.Duration
	// IsHealthy 返回数据源当前是否可用
	IsHealthy() bool
}

// MarketDataSource 行情与财务数据源。
// 所有方法返回以上游原生列名（中文）为键的原始行，列名翻译与类型规整由上层完成。
type MarketDataSource interface {
	Provider

	// ListStockCodes 获取全市场股票代码与名称
	ListStockCodes(ctx context.Context) ([]schema.RawRow, error)

	// FetchKline 获取指定区间的历史K线。
	// period: daily/weekly/monthly；adjust: ""/qfq/hfq；日期为 YYYYMMDD
	FetchKline(ctx context.Context, symbol, start, end, period, adjust string) ([]schema.RawRow, error)

	// FetchFinancialAbstract 获取财务概要。
	// indicator: 按报告期/按年度/按单季度
	FetchFinancialAbstract(ctx context.Context, symbol, indicator string) ([]schema.RawRow, error)

	// FetchDividendDetail 获取分红送配详情
	FetchDividendDetail(ctx context.Context, symbol string) ([]schema.RawRow, error)
}

// MarginDataSource 融资融券数据源
type MarginDataSource interface {
	Provider

	// FetchMarginDetail 获取单个交易日的融资融券明细，date 为 YYYYMMDD
	FetchMarginDetail(ctx context.Context, date string) ([]schema.RawRow, error)
}

// StockNewsSource 个股新闻数据源
type StockNewsSource interface {
	Provider

	// FetchStockNews 获取指定股票的新闻
	FetchStockNews(ctx context.Context, symbol string) ([]schema.RawRow, error)
}

// MarketNewsSource 财经要闻数据源
type MarketNewsSource interface {
	Provider

	// FetchMarketNews 获取最新财经要闻
	FetchMarketNews(ctx context.Context) ([]schema.RawRow, error)
}
