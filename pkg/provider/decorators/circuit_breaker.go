package decorators

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"astock/pkg/logger"
	"astock/pkg/provider/core"
	"astock/pkg/schema"
)

// CircuitBreakerConfig 熔断器配置
type CircuitBreakerConfig struct {
	MaxRequests      uint32        // 半开状态下允许的最大请求数
	Interval         time.Duration // 闭合状态下计数器的重置周期
	Timeout          time.Duration // 打开状态持续时长，到期进入半开
	FailureThreshold uint32        // 连续失败次数达到该值后熔断
}

// DefaultCircuitBreakerConfig 默认熔断配置
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

func newBreaker(name string, cfg CircuitBreakerConfig, log *logrus.Entry) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("熔断器状态变更")
		},
	})
}

func executeRows(cb *gobreaker.CircuitBreaker, fn func() ([]schema.RawRow, error)) ([]schema.RawRow, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%w: %v", core.ErrProviderUnavailable, err)
		}
		return nil, err
	}
	rows, ok := result.([]schema.RawRow)
	if !ok {
		return nil, fmt.Errorf("熔断器返回了意外的结果类型: %T", result)
	}
	return rows, nil
}

// MarketSource 行情数据与个股新闻的组合数据源
type MarketSource interface {
	core.MarketDataSource
	core.StockNewsSource
}

// MarketBreaker 为行情数据源加熔断保护
type MarketBreaker struct {
	source MarketSource
	cb     *gobreaker.CircuitBreaker
}

// NewMarketBreaker 包装行情数据源
func NewMarketBreaker(source MarketSource, cfg CircuitBreakerConfig) *MarketBreaker {
	log := logger.WithComponent("decorator.circuit_breaker")
	return &MarketBreaker{
		source: source,
		cb:     newBreaker(source.Name()+"_market", cfg, log),
	}
}

func (b *MarketBreaker) Name() string {
	return b.source.Name()
}

func (b *MarketBreaker) GetRateLimit() time.Duration {
	return b.source.GetRateLimit()
}

// IsHealthy 熔断器打开时视为不可用
func (b *MarketBreaker) IsHealthy() bool {
	return b.source.IsHealthy() && b.cb.State() != gobreaker.StateOpen
}

func (b *MarketBreaker) ListStockCodes(ctx context.Context) ([]schema.RawRow, error) {
	return executeRows(b.cb, func() ([]schema.RawRow, error) {
		return b.source.ListStockCodes(ctx)
	})
}

func (b *MarketBreaker) FetchKline(ctx context.Context, symbol, start, end, period, adjust string) ([]schema.RawRow, error) {
	return executeRows(b.cb, func() ([]schema.RawRow, error) {
		return b.source.FetchKline(ctx, symbol, start, end, period, adjust)
	})
}

func (b *MarketBreaker) FetchFinancialAbstract(ctx context.Context, symbol, indicator string) ([]schema.RawRow, error) {
	return executeRows(b.cb, func() ([]schema.RawRow, error) {
		return b.source.FetchFinancialAbstract(ctx, symbol, indicator)
	})
}

func (b *MarketBreaker) FetchDividendDetail(ctx context.Context, symbol string) ([]schema.RawRow, error) {
	return executeRows(b.cb, func() ([]schema.RawRow, error) {
		return b.source.FetchDividendDetail(ctx, symbol)
	})
}

func (b *MarketBreaker) FetchStockNews(ctx context.Context, symbol string) ([]schema.RawRow, error) {
	return executeRows(b.cb, func() ([]schema.RawRow, error) {
		return b.source.FetchStockNews(ctx, symbol)
	})
}

// MarginBreaker 为融资融券数据源加熔断保护
type MarginBreaker struct {
	source core.MarginDataSource
	cb     *gobreaker.CircuitBreaker
}

// NewMarginBreaker 包装融资融券数据源
func NewMarginBreaker(source core.MarginDataSource, cfg CircuitBreakerConfig) *MarginBreaker {
	log := logger.WithComponent("decorator.circuit_breaker")
	return &MarginBreaker{
		source: source,
		cb:     newBreaker(source.Name()+"_margin", cfg, log),
	}
}

func (b *MarginBreaker) Name() string {
	return b.source.Name()
}

func (b *MarginBreaker) GetRateLimit() time.Duration {
	return b.source.GetRateLimit()
}

func (b *MarginBreaker) IsHealthy() bool {
	return b.source.IsHealthy() && b.cb.State() != gobreaker.StateOpen
}

func (b *MarginBreaker) FetchMarginDetail(ctx context.Context, date string) ([]schema.RawRow, error) {
	return executeRows(b.cb, func() ([]schema.RawRow, error) {
		return b.source.FetchMarginDetail(ctx, date)
	})
}

// MarketNewsBreaker 为财经要闻数据源加熔断保护
type MarketNewsBreaker struct {
	source core.MarketNewsSource
	cb     *gobreaker.CircuitBreaker
}

// NewMarketNewsBreaker 包装财经要闻数据源
func NewMarketNewsBreaker(source core.MarketNewsSource, cfg CircuitBreakerConfig) *MarketNewsBreaker {
	log := logger.WithComponent("decorator.circuit_breaker")
	return &MarketNewsBreaker{
		source: source,
		cb:     newBreaker(source.Name()+"_news", cfg, log),
	}
}

func (b *MarketNewsBreaker) Name() string {
	return b.source.Name()
}

func (b *MarketNewsBreaker) GetRateLimit() time.Duration {
	return b.source.GetRateLimit()
}

func (b *MarketNewsBreaker) IsHealthy() bool {
	return b.source.IsHealthy() && b.cb.State() != gobreaker.StateOpen
}

func (b *MarketNewsBreaker) FetchMarketNews(ctx context.Context) ([]schema.RawRow, error) {
	return executeRows(b.cb, func() ([]schema.RawRow, error) {
		return b.source.FetchMarketNews(ctx)
	})
}
