package news

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"astock/pkg/logger"
	"astock/pkg/provider/core"
	"astock/pkg/schema"
	"astock/pkg/timing"
)

// 新闻发布时间的候选格式
var publishTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Service 新闻服务。
// 按发布时间窗口过滤新闻，缺省窗口为截至今天的最近一周。
type Service struct {
	stock      core.StockNewsSource
	market     core.MarketNewsSource
	clock      timing.TimeService
	windowDays int
	log        *logrus.Entry
}

// NewService 创建新闻服务
func NewService(stock core.StockNewsSource, market core.MarketNewsSource, clock timing.TimeService, windowDays int) *Service {
	return &Service{
		stock:      stock,
		market:     market,
		clock:      clock,
		windowDays: windowDays,
		log:        logger.WithComponent("news.service"),
	}
}

// StockNews 获取个股新闻。
// start/end 为 YYYY-MM-DD，留空使用缺省窗口；结束日期按全天计（含当日新闻）。
func (s *Service) StockNews(ctx context.Context, symbol, start, end string) ([]schema.Record, error) {
	log := s.requestLog("stock_news").WithField("symbol", symbol)

	window, err := s.resolveWindow(start, end)
	if err != nil {
		return nil, err
	}

	raw, err := s.stock.FetchStockNews(ctx, symbol)
	if err != nil {
		return nil, err
	}

	records := s.filterByWindow(log, raw, schema.StockNewsMapping, schema.StockNewsSchema, window)
	log.WithField("count", len(records)).Info("个股新闻查询完成")
	return records, nil
}

// FinancialNews 获取财经要闻，窗口语义与 StockNews 相同
func (s *Service) FinancialNews(ctx context.Context, start, end string) ([]schema.Record, error) {
	log := s.requestLog("financial_news")

	window, err := s.resolveWindow(start, end)
	if err != nil {
		return nil, err
	}

	raw, err := s.market.FetchMarketNews(ctx)
	if err != nil {
		return nil, err
	}

	records := s.filterByWindow(log, raw, schema.FinancialNewsMapping, schema.FinancialNewsSchema, window)
	log.WithField("count", len(records)).Info("财经要闻查询完成")
	return records, nil
}

type timeWindow struct {
	start time.Time
	end   time.Time // 不含，已包含结束日期的全天
}

func (w timeWindow) contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

func (s *Service) resolveWindow(start, end string) (timeWindow, error) {
	today := s.clock.Today()

	startDate := today.AddDate(0, 0, -s.windowDays)
	if start != "" {
		t, err := timing.ParseISODate(start)
		if err != nil {
			return timeWindow{}, fmt.Errorf("%w: start_date: %v", core.ErrInvalidDateFormat, err)
		}
		startDate = t
	}

	endDate := today
	if end != "" {
		t, err := timing.ParseISODate(end)
		if err != nil {
			return timeWindow{}, fmt.Errorf("%w: end_date: %v", core.ErrInvalidDateFormat, err)
		}
		endDate = t
	}

	return timeWindow{start: startDate, end: endDate.AddDate(0, 0, 1)}, nil
}

// filterByWindow 翻译并规整新闻行，丢弃发布时间不可解析或在窗口外的记录
func (s *Service) filterByWindow(log *logrus.Entry, raw []schema.RawRow, mapping schema.ColumnMapping, ds *schema.DataSchema, window timeWindow) []schema.Record {
	records := make([]schema.Record, 0, len(raw))
	for _, row := range raw {
		rec, err := schema.Normalize(schema.Translate(row, mapping), ds)
		if err != nil {
			log.WithField("schema", ds.Name).WithError(err).Warn("新闻记录校验失败，已丢弃")
			continue
		}

		publishText, _ := rec.Get("publish_time").(string)
		publishedAt, ok := parsePublishTime(publishText)
		if !ok {
			log.WithField("publish_time", publishText).Debug("发布时间不可解析，已丢弃")
			continue
		}
		if window.contains(publishedAt) {
			records = append(records, rec)
		}
	}
	return records
}

func parsePublishTime(s string) (time.Time, bool) {
	for _, layout := range publishTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *Service) requestLog(op string) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"operation":  op,
	})
}
