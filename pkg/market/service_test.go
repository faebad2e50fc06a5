package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astock/pkg/provider/core"
	"astock/pkg/schema"
	"astock/pkg/timing"
)

type fakeMarketSource struct {
	codes     []schema.RawRow
	kline     []schema.RawRow
	abstract  []schema.RawRow
	dividends []schema.RawRow
	err       error

	listCalls     int
	klineCalls    int
	abstractCalls int
	dividendCalls int
}

func (f *fakeMarketSource) Name() string                { return "fake" }
func (f *fakeMarketSource) GetRateLimit() time.Duration { return 0 }
func (f *fakeMarketSource) IsHealthy() bool             { return true }

func (f *fakeMarketSource) ListStockCodes(ctx context.Context) ([]schema.RawRow, error) {
	f.listCalls++
	return f.codes, f.err
}

func (f *fakeMarketSource) FetchKline(ctx context.Context, symbol, start, end, period, adjust string) ([]schema.RawRow, error) {
	f.klineCalls++
	return f.kline, f.err
}

func (f *fakeMarketSource) FetchFinancialAbstract(ctx context.Context, symbol, indicator string) ([]schema.RawRow, error) {
	f.abstractCalls++
	return f.abstract, f.err
}

func (f *fakeMarketSource) FetchDividendDetail(ctx context.Context, symbol string) ([]schema.RawRow, error) {
	f.dividendCalls++
	return f.dividends, f.err
}

type fakeMarginSource struct {
	rowsByDate map[string][]schema.RawRow
	errDates   map[string]bool
	calls      []string
}

func (f *fakeMarginSource) Name() string                { return "fake_margin" }
func (f *fakeMarginSource) GetRateLimit() time.Duration { return 0 }
func (f *fakeMarginSource) IsHealthy() bool             { return true }

func (f *fakeMarginSource) FetchMarginDetail(ctx context.Context, date string) ([]schema.RawRow, error) {
	f.calls = append(f.calls, date)
	if f.errDates[date] {
		return nil, core.NewUpstreamError("fake_margin", "fetch_margin_detail", errors.New("boom"))
	}
	return f.rowsByDate[date], nil
}

func marginRow(date, code string) schema.RawRow {
	return schema.RawRow{
		"信用交易日期": date,
		"标的证券代码": code,
		"标的证券简称": "测试股份",
		"融资余额":   "1000",
	}
}

func TestGetStockCode(t *testing.T) {
	source := &fakeMarketSource{codes: []schema.RawRow{
		{"代码": "000001", "名称": "平安银行"},
		{"代码": "600519", "名称": "贵州茅台"},
		{"代码": "600036", "名称": "招商银行"},
	}}
	svc := NewService(source, &fakeMarginSource{})

	t.Run("空表达式返回全部", func(t *testing.T) {
		records, err := svc.GetStockCode(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("按名称正则过滤", func(t *testing.T) {
		records, err := svc.GetStockCode(context.Background(), "银行$")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "000001", records[0].Get("stock_code"))
		assert.Equal(t, "600036", records[1].Get("stock_code"))
	})

	t.Run("非法正则不发起上游请求", func(t *testing.T) {
		before := source.listCalls
		_, err := svc.GetStockCode(context.Background(), "([银行")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidPattern)
		assert.Equal(t, before, source.listCalls)
	})

	t.Run("缺少名称的行被丢弃", func(t *testing.T) {
		badSource := &fakeMarketSource{codes: []schema.RawRow{
			{"代码": "000001", "名称": "平安银行"},
			{"代码": "000002"},
		}}
		records, err := NewService(badSource, &fakeMarginSource{}).GetStockCode(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestGetHistoricalStockPrice(t *testing.T) {
	klineRow := func(date, open string) schema.RawRow {
		return schema.RawRow{
			"日期": date, "股票代码": "000001",
			"开盘": open, "收盘": "10.5", "最高": "10.8", "最低": "10.1",
			"成交量": "120000", "成交额": "1260000.5",
		}
	}

	t.Run("非法日期不发起上游请求", func(t *testing.T) {
		source := &fakeMarketSource{}
		svc := NewService(source, &fakeMarginSource{})

		_, err := svc.GetHistoricalStockPrice(context.Background(), "000001", "2025-01-01", "20250131", "daily", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidDateFormat)
		assert.Equal(t, 0, source.klineCalls)

		_, err = svc.GetHistoricalStockPrice(context.Background(), "000001", "20250101", "bad", "daily", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidDateFormat)
		assert.Equal(t, 0, source.klineCalls)
	})

	t.Run("结果按日期升序", func(t *testing.T) {
		source := &fakeMarketSource{kline: []schema.RawRow{
			klineRow("2025-01-03", "10.2"),
			klineRow("2025-01-02", "10.0"),
		}}
		svc := NewService(source, &fakeMarginSource{})

		records, err := svc.GetHistoricalStockPrice(context.Background(), "000001", "20250101", "20250131", "daily", "")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "2025-01-02", records[0].Map()["date"])
		assert.Equal(t, "2025-01-03", records[1].Map()["date"])
	})

	t.Run("必填字段缺失的行被丢弃", func(t *testing.T) {
		bad := klineRow("2025-01-02", "--")
		source := &fakeMarketSource{kline: []schema.RawRow{bad, klineRow("2025-01-03", "10.2")}}
		svc := NewService(source, &fakeMarginSource{})

		records, err := svc.GetHistoricalStockPrice(context.Background(), "000001", "20250101", "20250131", "daily", "")
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("上游错误原样返回", func(t *testing.T) {
		source := &fakeMarketSource{err: core.NewUpstreamError("fake", "fetch_kline", errors.New("boom"))}
		svc := NewService(source, &fakeMarginSource{})

		_, err := svc.GetHistoricalStockPrice(context.Background(), "000001", "20250101", "20250131", "daily", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUpstream)
	})
}

func TestGetStockMarginDetail(t *testing.T) {
	t.Run("单日失败不中断整体查询", func(t *testing.T) {
		margin := &fakeMarginSource{
			rowsByDate: map[string][]schema.RawRow{
				"20250106": {marginRow("2025-01-06", "600000")},
				"20250108": {marginRow("2025-01-08", "600000")},
				"20250110": {marginRow("2025-01-10", "600000")},
			},
			errDates: map[string]bool{"20250107": true, "20250109": true},
		}
		svc := NewService(&fakeMarketSource{}, margin)

		records, err := svc.GetStockMarginDetail(context.Background(), "600000", "20250106", "20250110", timing.FreqDaily)
		require.NoError(t, err)
		assert.Len(t, records, 3)
		assert.Len(t, margin.calls, 5, "每个日期都应被尝试")
	})

	t.Run("按标的证券代码过滤", func(t *testing.T) {
		margin := &fakeMarginSource{
			rowsByDate: map[string][]schema.RawRow{
				"20250106": {
					marginRow("2025-01-06", "600000"),
					marginRow("2025-01-06", "600519"),
				},
			},
		}
		svc := NewService(&fakeMarketSource{}, margin)

		records, err := svc.GetStockMarginDetail(context.Background(), "600000", "20250106", "20250106", timing.FreqDaily)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "600000", records[0].Get("target_security_code"))
	})

	t.Run("非法日期不发起上游请求", func(t *testing.T) {
		margin := &fakeMarginSource{}
		svc := NewService(&fakeMarketSource{}, margin)

		_, err := svc.GetStockMarginDetail(context.Background(), "600000", "bad", "20250110", timing.FreqDaily)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidDateFormat)
		assert.Empty(t, margin.calls)
	})

	t.Run("结果按交易日升序", func(t *testing.T) {
		margin := &fakeMarginSource{
			rowsByDate: map[string][]schema.RawRow{
				"20250106": {marginRow("2025-01-06", "600000")},
				"20250107": {marginRow("2025-01-07", "600000")},
			},
		}
		svc := NewService(&fakeMarketSource{}, margin)

		records, err := svc.GetStockMarginDetail(context.Background(), "600000", "20250106", "20250107", timing.FreqDaily)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "2025-01-06", records[0].Map()["trading_date"])
		assert.Equal(t, "2025-01-07", records[1].Map()["trading_date"])
	})

	t.Run("周频只请求周日", func(t *testing.T) {
		margin := &fakeMarginSource{}
		svc := NewService(&fakeMarketSource{}, margin)

		_, err := svc.GetStockMarginDetail(context.Background(), "600000", "20250101", "20250114", timing.FreqWeekly)
		require.NoError(t, err)
		assert.Equal(t, []string{"20250105", "20250112"}, margin.calls)
	})
}

func TestGetStockCodeIdempotent(t *testing.T) {
	source := &fakeMarketSource{codes: []schema.RawRow{
		{"代码": "000001", "名称": "平安银行"},
		{"代码": "600519", "名称": "贵州茅台"},
	}}
	svc := NewService(source, &fakeMarginSource{})

	first, err := svc.GetStockCode(context.Background(), "银行")
	require.NoError(t, err)
	second, err := svc.GetStockCode(context.Background(), "银行")
	require.NoError(t, err)

	assert.Equal(t, first, second, "相同参数与确定性数据源应返回相同结果")
}

func TestGetStockFinancialAbstract(t *testing.T) {
	source := &fakeMarketSource{abstract: []schema.RawRow{
		{"报告期": "2024-12-31", "净利润": "46455.0亿", "净资产收益率": "10.26%"},
		{"报告期": "--", "净利润": "1.0"},
	}}
	svc := NewService(source, &fakeMarginSource{})

	records, err := svc.GetStockFinancialAbstract(context.Background(), "000001", "按报告期")
	require.NoError(t, err)
	require.Len(t, records, 1, "报告期缺失的行应被丢弃")
	assert.Equal(t, "2024-12-31", records[0].Get("reporting_period"))
	assert.Equal(t, "46455.0亿", records[0].Get("net_profit"), "指标值应原样透传")
}

func TestGetStockFhpsDetail(t *testing.T) {
	source := &fakeMarketSource{dividends: []schema.RawRow{
		{
			"报告期":          "2024年年报",
			"现金分红-现金分红比例":  2.861,
			"总股本":          19405918198.0,
			"股权登记日":        "2025-06-11",
		},
	}}
	svc := NewService(source, &fakeMarginSource{})

	records, err := svc.GetStockFhpsDetail(context.Background(), "000001")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2.861, records[0].Get("cash_dividend_payout_ratio"))
	assert.Equal(t, int64(19405918198), records[0].Get("total_shares_outstanding"))
	assert.Equal(t, "2025-06-11", records[0].Get("record_date"))
}
