package decorators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astock/pkg/provider/core"
	"astock/pkg/schema"
)

type flakySource struct {
	failing bool
	calls   int
}

func (f *flakySource) Name() string                { return "flaky" }
func (f *flakySource) GetRateLimit() time.Duration { return 0 }
func (f *flakySource) IsHealthy() bool             { return true }

func (f *flakySource) do() ([]schema.RawRow, error) {
	f.calls++
	if f.failing {
		return nil, errors.New("boom")
	}
	return []schema.RawRow{{"代码": "000001"}}, nil
}

func (f *flakySource) ListStockCodes(ctx context.Context) ([]schema.RawRow, error) {
	return f.do()
}

func (f *flakySource) FetchKline(ctx context.Context, symbol, start, end, period, adjust string) ([]schema.RawRow, error) {
	return f.do()
}

func (f *flakySource) FetchFinancialAbstract(ctx context.Context, symbol, indicator string) ([]schema.RawRow, error) {
	return f.do()
}

func (f *flakySource) FetchDividendDetail(ctx context.Context, symbol string) ([]schema.RawRow, error) {
	return f.do()
}

func (f *flakySource) FetchStockNews(ctx context.Context, symbol string) ([]schema.RawRow, error) {
	return f.do()
}

func (f *flakySource) FetchMarginDetail(ctx context.Context, date string) ([]schema.RawRow, error) {
	return f.do()
}

func testBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 3,
	}
}

func TestMarketBreaker(t *testing.T) {
	t.Run("正常请求透传", func(t *testing.T) {
		source := &flakySource{}
		b := NewMarketBreaker(source, testBreakerConfig())

		rows, err := b.ListStockCodes(context.Background())
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.True(t, b.IsHealthy())
	})

	t.Run("连续失败后熔断", func(t *testing.T) {
		source := &flakySource{failing: true}
		b := NewMarketBreaker(source, testBreakerConfig())

		for i := 0; i < 3; i++ {
			_, err := b.FetchKline(context.Background(), "000001", "20250101", "20250131", "daily", "")
			require.Error(t, err)
			assert.NotErrorIs(t, err, core.ErrProviderUnavailable, "熔断前应返回原始错误")
		}

		callsBefore := source.calls
		_, err := b.FetchKline(context.Background(), "000001", "20250101", "20250131", "daily", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrProviderUnavailable)
		assert.Equal(t, callsBefore, source.calls, "熔断后不再请求底层数据源")
		assert.False(t, b.IsHealthy())
	})

	t.Run("各方法共用一个熔断器", func(t *testing.T) {
		source := &flakySource{failing: true}
		b := NewMarketBreaker(source, testBreakerConfig())

		for i := 0; i < 3; i++ {
			_, _ = b.ListStockCodes(context.Background())
		}
		_, err := b.FetchStockNews(context.Background(), "000001")
		assert.ErrorIs(t, err, core.ErrProviderUnavailable)
	})
}

func TestMarginBreaker(t *testing.T) {
	source := &flakySource{failing: true}
	b := NewMarginBreaker(source, testBreakerConfig())

	for i := 0; i < 3; i++ {
		_, _ = b.FetchMarginDetail(context.Background(), "20250106")
	}
	_, err := b.FetchMarginDetail(context.Background(), "20250106")
	assert.ErrorIs(t, err, core.ErrProviderUnavailable)
	assert.False(t, b.IsHealthy())
}

func TestMarketNewsBreakerPassthrough(t *testing.T) {
	source := &fakeNewsSource{}
	b := NewMarketNewsBreaker(source, testBreakerConfig())

	rows, err := b.FetchMarketNews(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "fake_news", b.Name())
}

type fakeNewsSource struct{}

func (f *fakeNewsSource) Name() string                { return "fake_news" }
func (f *fakeNewsSource) GetRateLimit() time.Duration { return 0 }
func (f *fakeNewsSource) IsHealthy() bool             { return true }

func (f *fakeNewsSource) FetchMarketNews(ctx context.Context) ([]schema.RawRow, error) {
	return []schema.RawRow{{"tag": "要闻"}}, nil
}
