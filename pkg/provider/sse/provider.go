package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"astock/pkg/config"
	"astock/pkg/logger"
	"astock/pkg/provider/core"
	"astock/pkg/schema"
)

const (
	defaultMarginURL = "https://query.sse.com.cn/marketdata/tradedata/queryMarginTradeDetail.do"
	refererHeader    = "https://www.sse.com.cn/"
)

// 上交所接口字段到原生列名的映射
var marginFieldMap = map[string]string{
	"opDate":       "信用交易日期",
	"securityCode": "标的证券代码",
	"securityAbbr": "标的证券简称",
	"rzye":         "融资余额",
	"rzmre":        "融资买入额",
	"rzche":        "融资偿还额",
	"rqyl":         "融券余量",
	"rqmcl":        "融券卖出量",
	"rqchl":        "融券偿还量",
}

// Provider 上海证券交易所融资融券数据源
type Provider struct {
	httpClient *http.Client
	log        *logrus.Entry
	rateLimit  time.Duration
	maxRetries int
	userAgent  string

	mu          sync.Mutex
	lastRequest time.Time

	marginURL string
}

// New 创建上交所数据源
func New(cfg config.SourceConfig) *Provider {
	return &Provider{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.WithComponent("provider.sse"),
		rateLimit:  cfg.RateLimit,
		maxRetries: cfg.MaxRetries,
		userAgent:  cfg.UserAgent,
		marginURL:  defaultMarginURL,
	}
}

func (p *Provider) Name() string {
	return "sse"
}

func (p *Provider) GetRateLimit() time.Duration {
	return p.rateLimit
}

func (p *Provider) IsHealthy() bool {
	return true
}

type marginResponse struct {
	Result []map[string]any `json:"result"`
}

// FetchMarginDetail 获取单个交易日的全市场融资融券明细，date 为 YYYYMMDD
func (p *Provider) FetchMarginDetail(ctx context.Context, date string) ([]schema.RawRow, error) {
	params := url.Values{}
	params.Set("isPagination", "true")
	params.Set("tabType", "mxtype")
	params.Set("detailsDate", date)
	params.Set("stockCode", "")
	params.Set("beginDate", "")
	params.Set("endDate", "")
	params.Set("pageHelp.pageSize", "5000")
	params.Set("pageHelp.pageNo", "1")
	params.Set("pageHelp.beginPage", "1")
	params.Set("pageHelp.endPage", "21")
	params.Set("pageHelp.cacheSize", "1")

	body, err := p.fetch(ctx, p.marginURL+"?"+params.Encode())
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_margin_detail", err)
	}

	var resp marginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_margin_detail", err)
	}

	rows := make([]schema.RawRow, 0, len(resp.Result))
	for _, item := range resp.Result {
		row := make(schema.RawRow, len(marginFieldMap))
		for field, name := range marginFieldMap {
			if v, ok := item[field]; ok {
				row[name] = v
			}
		}
		rows = append(rows, row)
	}
	p.log.WithField("date", date).WithField("count", len(rows)).Debug("获取融资融券明细完成")
	return rows, nil
}

func (p *Provider) waitForRateLimit() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.lastRequest)
	if elapsed < p.rateLimit {
		time.Sleep(p.rateLimit - elapsed)
	}
	p.lastRequest = time.Now()
}

func (p *Provider) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		p.waitForRateLimit()

		body, err := p.doOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("请求失败（重试%d次后）: %w", p.maxRetries, lastErr)
}

func (p *Provider) doOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)
	// 上交所接口校验来源页
	req.Header.Set("Referer", refererHeader)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP状态码异常: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	return body, nil
}
