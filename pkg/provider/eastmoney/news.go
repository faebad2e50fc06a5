package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"astock/pkg/provider/core"
	"astock/pkg/schema"
)

const newsCallback = "jQuery_astock_news"

type newsResponse struct {
	Result struct {
		Articles []struct {
			Title     string `json:"title"`
			Content   string `json:"content"`
			Date      string `json:"date"`
			MediaName string `json:"mediaName"`
			URL       string `json:"url"`
		} `json:"cmsArticleWebOld"`
	} `json:"result"`
}

// FetchStockNews 获取个股新闻，单页最多100条
func (p *Provider) FetchStockNews(ctx context.Context, symbol string) ([]schema.RawRow, error) {
	searchParam := map[string]any{
		"uid":           "",
		"keyword":       symbol,
		"type":          []string{"cmsArticleWebOld"},
		"client":        "web",
		"clientType":    "web",
		"clientVersion": "curr",
		"param": map[string]any{
			"cmsArticleWebOld": map[string]any{
				"searchScope": "default",
				"sort":        "default",
				"pageIndex":   1,
				"pageSize":    100,
				"preTag":      "<em>",
				"postTag":     "</em>",
			},
		},
	}
	paramJSON, err := json.Marshal(searchParam)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_stock_news", err)
	}

	params := url.Values{}
	params.Set("cb", newsCallback)
	params.Set("param", string(paramJSON))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.newsURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_stock_news", err)
	}
	body, err := p.fetch(req)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_stock_news", err)
	}

	payload, err := stripJSONP(body)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_stock_news", err)
	}
	var resp newsResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_stock_news", err)
	}

	rows := make([]schema.RawRow, 0, len(resp.Result.Articles))
	for _, a := range resp.Result.Articles {
		rows = append(rows, schema.RawRow{
			"关键词":  symbol,
			"新闻标题": stripEmphasis(a.Title),
			"新闻内容": stripEmphasis(a.Content),
			"发布时间": a.Date,
			"文章来源": a.MediaName,
			"新闻链接": a.URL,
		})
	}
	p.log.WithField("symbol", symbol).WithField("count", len(rows)).Debug("获取个股新闻完成")
	return rows, nil
}

// stripJSONP 去掉 callback(...) 包装，返回其中的 JSON
func stripJSONP(body []byte) ([]byte, error) {
	s := string(body)
	open := strings.Index(s, "(")
	close_ := strings.LastIndex(s, ")")
	if open < 0 || close_ <= open {
		return nil, fmt.Errorf("响应不是合法的JSONP: %.50s", s)
	}
	return []byte(s[open+1 : close_]), nil
}

// stripEmphasis 去掉搜索接口插入的高亮标签
func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "<em>", "")
	return strings.ReplaceAll(s, "</em>", "")
}
