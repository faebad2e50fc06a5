package caixin

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

const defaultNewsURL = "https://cxdata.caixin.com/api/dataplus/sjtPc/news"

// Provider 财新数据源，提供财经要闻
type Provider struct {
	httpClient *http.Client
	log        *logrus.Entry
	rateLimit  time.Duration
	maxRetries int
	userAgent  string

	mu          sync.Mutex
	lastRequest time.Time

	newsURL string
}

// New 创建财新数据源
func New(cfg config.SourceConfig) *Provider {
	return &Provider{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.WithComponent("provider.caixin"),
		rateLimit:  cfg.RateLimit,
		maxRetries: cfg.MaxRetries,
		userAgent:  cfg.UserAgent,
		newsURL:    defaultNewsURL,
	}
}

func (p *Provider) Name() string {
	return "caixin"
}

func (p *Provider) GetRateLimit() time.Duration {
	return p.rateLimit
}

func (p *Provider) IsHealthy() bool {
	return true
}

type newsResponse struct {
	Data struct {
		Data []struct {
			Tag     string `json:"tag"`
			Summary string `json:"summary"`
			PubTime string `json:"pub_time"`
			URL     string `json:"url"`
		} `json:"data"`
	} `json:"data"`
}

// FetchMarketNews 获取最新财经要闻，单页最多100条
func (p *Provider) FetchMarketNews(ctx context.Context) ([]schema.RawRow, error) {
	params := url.Values{}
	params.Set("pageNum", "1")
	params.Set("pageSize", "100")
	params.Set("showLabels", "true")

	body, err := p.fetch(ctx, p.newsURL+"?"+params.Encode())
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_market_news", err)
	}

	var resp newsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_market_news", err)
	}

	rows := make([]schema.RawRow, 0, len(resp.Data.Data))
	for _, item := range resp.Data.Data {
		rows = append(rows, schema.RawRow{
			"tag":      item.Tag,
			"summary":  item.Summary,
			"pub_time": item.PubTime,
			"url":      item.URL,
		})
	}
	p.log.WithField("count", len(rows)).Debug("获取财经要闻完成")
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
