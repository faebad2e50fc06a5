package market

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"astock/pkg/logger"
	"astock/pkg/provider/core"
	"astock/pkg/schema"
	"astock/pkg/timing"
)

// Service 行情数据服务。
// 负责参数校验、列名翻译、行规整与排序，数据获取交给底层数据源。
type Service struct {
	source core.MarketDataSource
	margin core.MarginDataSource
	log    *logrus.Entry
}

// NewService 创建行情数据服务
func NewService(source core.MarketDataSource, margin core.MarginDataSource) *Service {
	return &Service{
		source: source,
		margin: margin,
		log:    logger.WithComponent("market.service"),
	}
}

// GetStockCode 获取股票代码列表，namePattern 为按名称过滤的正则表达式。
// 空表达式匹配全部；非法表达式不发起上游请求，直接返回错误。
func (s *Service) GetStockCode(ctx context.Context, namePattern string) ([]schema.Record, error) {
	log := s.requestLog("get_stock_code")

	re, err := regexp.Compile(namePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", core.ErrInvalidPattern, namePattern, err)
	}

	raw, err := s.source.ListStockCodes(ctx)
	if err != nil {
		return nil, err
	}

	records := s.normalizeRows(log, raw, schema.StockCodeMapping, schema.StockCodeSchema)
	filtered := make([]schema.Record, 0, len(records))
	for _, rec := range records {
		name, _ := rec.Get("name").(string)
		if re.MatchString(name) {
			filtered = append(filtered, rec)
		}
	}
	log.WithField("count", len(filtered)).Info("股票代码查询完成")
	return filtered, nil
}

// GetHistoricalStockPrice 获取历史价格。
// 日期必须为 YYYYMMDD，非法日期不发起上游请求；结果按日期升序。
func (s *Service) GetHistoricalStockPrice(ctx context.Context, symbol, start, end, period, adjust string) ([]schema.Record, error) {
	log := s.requestLog("get_historical_stockprice_data").WithField("symbol", symbol)

	if err := timing.ValidateCompactDate(start); err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", core.ErrInvalidDateFormat, err)
	}
	if err := timing.ValidateCompactDate(end); err != nil {
		return nil, fmt.Errorf("%w: end_date: %v", core.ErrInvalidDateFormat, err)
	}

	raw, err := s.source.FetchKline(ctx, symbol, start, end, period, adjust)
	if err != nil {
		return nil, err
	}

	records := s.normalizeRows(log, raw, schema.PriceBarMapping, schema.PriceBarSchema)
	sort.SliceStable(records, func(i, j int) bool {
		return recordDate(records[i], "date").Before(recordDate(records[j], "date"))
	})
	log.WithField("count", len(records)).Info("历史价格查询完成")
	return records, nil
}

// GetStockFinancialAbstract 获取财务概要，indicator 为 按报告期/按年度/按单季度
func (s *Service) GetStockFinancialAbstract(ctx context.Context, symbol, indicator string) ([]schema.Record, error) {
	log := s.requestLog("get_stock_financial_abstract").WithField("symbol", symbol)

	raw, err := s.source.FetchFinancialAbstract(ctx, symbol, indicator)
	if err != nil {
		return nil, err
	}

	records := s.normalizeRows(log, raw, schema.FinancialAbstractMapping, schema.FinancialAbstractSchema)
	log.WithField("count", len(records)).Info("财务概要查询完成")
	return records, nil
}

// GetStockMarginDetail 获取指定股票在日期区间内的融资融券明细。
// 按频率展开日期序列，逐日拉取全市场明细后过滤出目标股票；
// 单日失败或无数据只记日志不中断，结果按交易日升序。
func (s *Service) GetStockMarginDetail(ctx context.Context, symbol, start, end string, freq timing.Frequency) ([]schema.Record, error) {
	log := s.requestLog("get_stock_margin_detail").WithField("symbol", symbol)

	startDate, err := timing.ParseCompactDate(start)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", core.ErrInvalidDateFormat, err)
	}
	endDate, err := timing.ParseCompactDate(end)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date: %v", core.ErrInvalidDateFormat, err)
	}

	var records []schema.Record
	for _, day := range timing.DateRange(startDate, endDate, freq) {
		date := timing.FormatCompact(day)
		raw, err := s.margin.FetchMarginDetail(ctx, date)
		if err != nil {
			log.WithField("date", date).WithError(err).Warn("单日融资融券明细获取失败，跳过该日期")
			continue
		}

		var matched []schema.RawRow
		for _, row := range raw {
			if code, _ := row["标的证券代码"].(string); code == symbol {
				matched = append(matched, row)
			}
		}
		if len(matched) == 0 {
			log.WithField("date", date).Debug("当日无该股票的融资融券记录")
			continue
		}
		records = append(records, s.normalizeRows(log, matched, schema.MarginDetailMapping, schema.MarginDetailSchema)...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return recordDate(records[i], "trading_date").Before(recordDate(records[j], "trading_date"))
	})
	log.WithField("count", len(records)).Info("融资融券明细查询完成")
	return records, nil
}

// GetStockFhpsDetail 获取分红送配详情
func (s *Service) GetStockFhpsDetail(ctx context.Context, symbol string) ([]schema.Record, error) {
	log := s.requestLog("get_stock_fhps_detail").WithField("symbol", symbol)

	raw, err := s.source.FetchDividendDetail(ctx, symbol)
	if err != nil {
		return nil, err
	}

	records := s.normalizeRows(log, raw, schema.DividendDetailMapping, schema.DividendDetailSchema)
	log.WithField("count", len(records)).Info("分红送配查询完成")
	return records, nil
}

// normalizeRows 翻译列名并逐行规整，规整失败的行丢弃并记日志
func (s *Service) normalizeRows(log *logrus.Entry, raw []schema.RawRow, mapping schema.ColumnMapping, ds *schema.DataSchema) []schema.Record {
	records := make([]schema.Record, 0, len(raw))
	for _, row := range raw {
		rec, err := schema.Normalize(schema.Translate(row, mapping), ds)
		if err != nil {
			log.WithField("schema", ds.Name).WithError(err).Warn("数据行校验失败，已丢弃")
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (s *Service) requestLog(op string) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"operation":  op,
	})
}

func recordDate(rec schema.Record, field string) time.Time {
	if t, ok := rec.Get(field).(time.Time); ok {
		return t
	}
	return time.Time{}
}
