package eastmoney

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"astock/pkg/provider/core"
	"astock/pkg/schema"
)

// 周期与复权方式到接口参数的映射。未知取值按原样透传，由上游决定是否拒绝。
var (
	periodMap = map[string]string{
		"daily":   "101",
		"weekly":  "102",
		"monthly": "103",
	}
	adjustMap = map[string]string{
		"":    "0",
		"qfq": "1",
		"hfq": "2",
	}
)

type klineResponse struct {
	Data struct {
		Code   string   `json:"code"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

// secID 拼接东方财富的市场标识代码。沪市（6/5/9开头）前缀1，其余前缀0。
func secID(symbol string) string {
	if strings.HasPrefix(symbol, "6") || strings.HasPrefix(symbol, "5") || strings.HasPrefix(symbol, "9") {
		return "1." + symbol
	}
	return "0." + symbol
}

func mapOrRaw(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// FetchKline 获取指定区间的历史K线，日期为 YYYYMMDD
func (p *Provider) FetchKline(ctx context.Context, symbol, start, end, period, adjust string) ([]schema.RawRow, error) {
	params := url.Values{}
	params.Set("fields1", "f1,f2,f3,f4,f5,f6")
	params.Set("fields2", "f51,f52,f53,f54,f55,f56,f57,f58,f59,f60,f61")
	params.Set("klt", mapOrRaw(periodMap, period))
	params.Set("fqt", mapOrRaw(adjustMap, adjust))
	params.Set("secid", secID(symbol))
	params.Set("beg", start)
	params.Set("end", end)
	params.Set("lmt", "1000000")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.klineURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_kline", err)
	}
	body, err := p.fetch(req)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_kline", err)
	}

	var resp klineResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_kline", err)
	}

	rows := make([]schema.RawRow, 0, len(resp.Data.Klines))
	for _, line := range resp.Data.Klines {
		row, ok := parseKlineRow(line, resp.Data.Code)
		if !ok {
			p.log.WithField("line", line).Warn("K线记录字段数不足，已跳过")
			continue
		}
		rows = append(rows, row)
	}
	p.log.WithFields(logrus.Fields{
		"symbol": symbol,
		"count":  len(rows),
	}).Debug("获取历史K线完成")
	return rows, nil
}

// parseKlineRow 解析逗号分隔的K线记录：
// 日期,开盘,收盘,最高,最低,成交量,成交额,振幅,涨跌幅,涨跌额,换手率
func parseKlineRow(line, code string) (schema.RawRow, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 11 {
		return nil, false
	}
	return schema.RawRow{
		"日期":   parts[0],
		"股票代码": code,
		"开盘":   parts[1],
		"收盘":   parts[2],
		"最高":   parts[3],
		"最低":   parts[4],
		"成交量":  parts[5],
		"成交额":  parts[6],
		"振幅":   parts[7],
		"涨跌幅":  parts[8],
		"涨跌额":  parts[9],
		"换手率":  parts[10],
	}, true
}
