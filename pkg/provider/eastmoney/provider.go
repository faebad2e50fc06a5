package eastmoney

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"astock/pkg/config"
	"astock/pkg/logger"
)

const (
	defaultListURL    = "https://82.push2.eastmoney.com/api/qt/clist/get"
	defaultKlineURL   = "https://push2his.eastmoney.com/api/qt/stock/kline/get"
	defaultFinanceURL = "https://basic.10jqka.com.cn/new/%s/finance.html"
	defaultFhpsURL    = "https://datacenter-web.eastmoney.com/api/data/v1/get"
	defaultNewsURL    = "https://search-api-web.eastmoney.com/search/jsonp"
)

// Provider 东方财富数据源。
// 覆盖股票代码表、历史K线、财务概要（同花顺页面）、分红送配与个股新闻。
type Provider struct {
	httpClient *http.Client
	log        *logrus.Entry
	rateLimit  time.Duration
	maxRetries int
	userAgent  string

	mu          sync.Mutex
	lastRequest time.Time

	// 各接口地址可覆盖，测试时指向 httptest.Server
	listURL    string
	klineURL   string
	financeURL string
	fhpsURL    string
	newsURL    string
}

// New 创建东方财富数据源
func New(cfg config.SourceConfig) *Provider {
	return &Provider{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.WithComponent("provider.eastmoney"),
		rateLimit:  cfg.RateLimit,
		maxRetries: cfg.MaxRetries,
		userAgent:  cfg.UserAgent,
		listURL:    defaultListURL,
		klineURL:   defaultKlineURL,
		financeURL: defaultFinanceURL,
		fhpsURL:    defaultFhpsURL,
		newsURL:    defaultNewsURL,
	}
}

func (p *Provider) Name() string {
	return "eastmoney"
}

func (p *Provider) GetRateLimit() time.Duration {
	return p.rateLimit
}

func (p *Provider) IsHealthy() bool {
	return true
}

// waitForRateLimit 保证相邻请求之间的最小间隔
func (p *Provider) waitForRateLimit() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.lastRequest)
	if elapsed < p.rateLimit {
		time.Sleep(p.rateLimit - elapsed)
	}
	p.lastRequest = time.Now()
}

// fetch 发起带限流与重试的 GET 请求，返回响应体
func (p *Provider) fetch(req *http.Request) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
			p.log.WithFields(logrus.Fields{
				"attempt": attempt,
				"url":     req.URL.Host,
			}).Debug("重试请求")
		}
		p.waitForRateLimit()

		body, err := p.doOnce(req)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
	}
	return nil, fmt.Errorf("请求失败（重试%d次后）: %w", p.maxRetries, lastErr)
}

func (p *Provider) doOnce(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", p.userAgent)
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
