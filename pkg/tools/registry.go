package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"astock/pkg/logger"
	"astock/pkg/market"
	"astock/pkg/news"
	"astock/pkg/schema"
	"astock/pkg/timing"
)

// Registry 把行情与新闻服务暴露为 MCP 工具
type Registry struct {
	market *market.Service
	news   *news.Service
	clock  timing.TimeService
	log    *logrus.Entry
}

// NewRegistry 创建工具注册器
func NewRegistry(marketSvc *market.Service, newsSvc *news.Service, clock timing.TimeService) *Registry {
	return &Registry{
		market: marketSvc,
		news:   newsSvc,
		clock:  clock,
		log:    logger.WithComponent("tools"),
	}
}

// Register 在服务器上注册全部工具
func (r *Registry) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_today_date",
		Description: "获取今天的日期，格式为 YYYY-MM-DD",
	}, r.getTodayDate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stock_code",
		Description: "获取A股上市公司的股票名称及代码，可按名称用正则表达式过滤",
	}, r.getStockCode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_historical_stockprice_data",
		Description: "获取指定股票在日期区间内的历史价格数据（开高低收、成交量等）",
	}, r.getHistoricalStockPrice)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stock_financial_abstract",
		Description: "获取指定股票的财务报告概要数据",
	}, r.getStockFinancialAbstract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stock_margin_detail",
		Description: "获取指定股票在日期区间内的融资融券明细数据",
	}, r.getStockMarginDetail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stock_fhps_detail",
		Description: "获取指定股票历年的分红送配详情",
	}, r.getStockFhpsDetail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stock_news",
		Description: "获取指定股票在日期区间内的新闻报道",
	}, r.stockNews)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "financial_news",
		Description: "获取日期区间内的财经要闻及市场动态",
	}, r.financialNews)

	r.log.Info("MCP工具注册完成")
}

func toMaps(records []schema.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Map())
	}
	return out
}

// RecordsOutput 行数据类工具的统一输出
type RecordsOutput struct {
	Records []map[string]any `json:"records" jsonschema:"查询结果记录列表"`
	Count   int              `json:"count" jsonschema:"记录条数"`
}

func recordsOutput(records []schema.Record) RecordsOutput {
	return RecordsOutput{Records: toMaps(records), Count: len(records)}
}

type TodayDateInput struct{}

type TodayDateOutput struct {
	Date string `json:"date" jsonschema:"今天的日期，格式为 YYYY-MM-DD"`
}

func (r *Registry) getTodayDate(ctx context.Context, req *mcp.CallToolRequest, input TodayDateInput) (*mcp.CallToolResult, TodayDateOutput, error) {
	return nil, TodayDateOutput{Date: timing.FormatISO(r.clock.Today())}, nil
}

type StockCodeInput struct {
	NamePattern string `json:"name_pattern,omitempty" jsonschema:"按股票名称过滤的正则表达式，区分大小写，留空返回全部"`
}

func (r *Registry) getStockCode(ctx context.Context, req *mcp.CallToolRequest, input StockCodeInput) (*mcp.CallToolResult, RecordsOutput, error) {
	records, err := r.market.GetStockCode(ctx, input.NamePattern)
	if err != nil {
		return nil, RecordsOutput{}, err
	}
	return nil, recordsOutput(records), nil
}

type HistoricalPriceInput struct {
	StockCode string `json:"stock_code" jsonschema:"股票代码，如 000001"`
	StartDate string `json:"start_date" jsonschema:"开始日期，格式为 YYYYMMDD"`
	EndDate   string `json:"end_date" jsonschema:"结束日期，格式为 YYYYMMDD"`
	Period    string `json:"period,omitempty" jsonschema:"数据周期，可选 daily/weekly/monthly，默认 daily"`
	Adjust    string `json:"adjust,omitempty" jsonschema:"复权方式，可选 qfq（前复权）/hfq（后复权），默认不复权"`
}

func (r *Registry) getHistoricalStockPrice(ctx context.Context, req *mcp.CallToolRequest, input HistoricalPriceInput) (*mcp.CallToolResult, RecordsOutput, error) {
	period := input.Period
	if period == "" {
		period = "daily"
	}
	records, err := r.market.GetHistoricalStockPrice(ctx, input.StockCode, input.StartDate, input.EndDate, period, input.Adjust)
	if err != nil {
		return nil, RecordsOutput{}, err
	}
	return nil, recordsOutput(records), nil
}

type FinancialAbstractInput struct {
	StockCode string `json:"stock_code" jsonschema:"股票代码，如 000001"`
	Indicator string `json:"indicator,omitempty" jsonschema:"指标类型，可选 按报告期/按年度/按单季度，默认 按报告期"`
}

func (r *Registry) getStockFinancialAbstract(ctx context.Context, req *mcp.CallToolRequest, input FinancialAbstractInput) (*mcp.CallToolResult, RecordsOutput, error) {
	indicator := input.Indicator
	if indicator == "" {
		indicator = "按报告期"
	}
	records, err := r.market.GetStockFinancialAbstract(ctx, input.StockCode, indicator)
	if err != nil {
		return nil, RecordsOutput{}, err
	}
	return nil, recordsOutput(records), nil
}

type MarginDetailInput struct {
	StockCode string `json:"stock_code" jsonschema:"股票代码，如 600000"`
	StartDate string `json:"start_date" jsonschema:"开始日期，格式为 YYYYMMDD"`
	EndDate   string `json:"end_date" jsonschema:"结束日期，格式为 YYYYMMDD"`
	Freq      string `json:"freq,omitempty" jsonschema:"取样频率，可选 D（每日）/W（每周日）/MS（每月初）/ME（每月末）/Q（每季末）/Y（每年末），默认 D"`
}

func (r *Registry) getStockMarginDetail(ctx context.Context, req *mcp.CallToolRequest, input MarginDetailInput) (*mcp.CallToolResult, RecordsOutput, error) {
	freqText := input.Freq
	if freqText == "" {
		freqText = string(timing.FreqDaily)
	}
	freq, err := timing.ParseFrequency(freqText)
	if err != nil {
		return nil, RecordsOutput{}, err
	}
	records, err := r.market.GetStockMarginDetail(ctx, input.StockCode, input.StartDate, input.EndDate, freq)
	if err != nil {
		return nil, RecordsOutput{}, err
	}
	return nil, recordsOutput(records), nil
}

type FhpsDetailInput struct {
	StockCode string `json:"stock_code" jsonschema:"股票代码，如 000001"`
}

func (r *Registry) getStockFhpsDetail(ctx context.Context, req *mcp.CallToolRequest, input FhpsDetailInput) (*mcp.CallToolResult, RecordsOutput, error) {
	records, err := r.market.GetStockFhpsDetail(ctx, input.StockCode)
	if err != nil {
		return nil, RecordsOutput{}, err
	}
	return nil, recordsOutput(records), nil
}

type StockNewsInput struct {
	StockCode string `json:"stock_code" jsonschema:"股票代码，如 000001"`
	StartDate string `json:"start_date,omitempty" jsonschema:"开始日期，格式为 YYYY-MM-DD，默认一周前"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"结束日期，格式为 YYYY-MM-DD，默认今天"`
}

func (r *Registry) stockNews(ctx context.Context, req *mcp.CallToolRequest, input StockNewsInput) (*mcp.CallToolResult, RecordsOutput, error) {
	records, err := r.news.StockNews(ctx, input.StockCode, input.StartDate, input.EndDate)
	if err != nil {
		return nil, RecordsOutput{}, err
	}
	return nil, recordsOutput(records), nil
}

type FinancialNewsInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"开始日期，格式为 YYYY-MM-DD，默认一周前"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"结束日期，格式为 YYYY-MM-DD，默认今天"`
}

func (r *Registry) financialNews(ctx context.Context, req *mcp.CallToolRequest, input FinancialNewsInput) (*mcp.CallToolResult, RecordsOutput, error) {
	records, err := r.news.FinancialNews(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, RecordsOutput{}, err
	}
	return nil, recordsOutput(records), nil
}
