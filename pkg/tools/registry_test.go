package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astock/pkg/market"
	"astock/pkg/news"
	"astock/pkg/schema"
	"astock/pkg/timing"
)

type stubSource struct{}

func (s *stubSource) Name() string                { return "stub" }
func (s *stubSource) GetRateLimit() time.Duration { return 0 }
func (s *stubSource) IsHealthy() bool             { return true }

func (s *stubSource) ListStockCodes(ctx context.Context) ([]schema.RawRow, error) {
	return []schema.RawRow{
		{"代码": "000001", "名称": "平安银行"},
		{"代码": "600519", "名称": "贵州茅台"},
	}, nil
}

func (s *stubSource) FetchKline(ctx context.Context, symbol, start, end, period, adjust string) ([]schema.RawRow, error) {
	return nil, nil
}

func (s *stubSource) FetchFinancialAbstract(ctx context.Context, symbol, indicator string) ([]schema.RawRow, error) {
	return nil, nil
}

func (s *stubSource) FetchDividendDetail(ctx context.Context, symbol string) ([]schema.RawRow, error) {
	return nil, nil
}

func (s *stubSource) FetchStockNews(ctx context.Context, symbol string) ([]schema.RawRow, error) {
	return nil, nil
}

func (s *stubSource) FetchMarginDetail(ctx context.Context, date string) ([]schema.RawRow, error) {
	return nil, nil
}

func (s *stubSource) FetchMarketNews(ctx context.Context) ([]schema.RawRow, error) {
	return nil, nil
}

func newTestRegistry() *Registry {
	source := &stubSource{}
	clock := timing.NewFixedTimeService(time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local))
	marketSvc := market.NewService(source, source)
	newsSvc := news.NewService(source, source, clock, 7)
	return NewRegistry(marketSvc, newsSvc, clock)
}

func TestGetTodayDate(t *testing.T) {
	r := newTestRegistry()

	_, out, err := r.getTodayDate(context.Background(), nil, TodayDateInput{})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", out.Date)
}

func TestGetStockCodeTool(t *testing.T) {
	r := newTestRegistry()

	t.Run("返回全部记录", func(t *testing.T) {
		_, out, err := r.getStockCode(context.Background(), nil, StockCodeInput{})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Count)
		assert.Equal(t, "平安银行", out.Records[0]["name"])
	})

	t.Run("正则过滤", func(t *testing.T) {
		_, out, err := r.getStockCode(context.Background(), nil, StockCodeInput{NamePattern: "茅台"})
		require.NoError(t, err)
		require.Equal(t, 1, out.Count)
		assert.Equal(t, "600519", out.Records[0]["stock_code"])
	})

	t.Run("非法正则报错", func(t *testing.T) {
		_, _, err := r.getStockCode(context.Background(), nil, StockCodeInput{NamePattern: "(["})
		assert.Error(t, err)
	})
}

func TestGetStockMarginDetailToolRejectsBadFreq(t *testing.T) {
	r := newTestRegistry()

	_, _, err := r.getStockMarginDetail(context.Background(), nil, MarginDetailInput{
		StockCode: "600000",
		StartDate: "20250101",
		EndDate:   "20250110",
		Freq:      "hourly",
	})
	assert.Error(t, err)
}
