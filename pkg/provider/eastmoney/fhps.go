package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"astock/pkg/provider/core"
	"astock/pkg/schema"
)

// 数据中心分红送配接口字段到原生列名的映射
var fhpsFieldMap = map[string]string{
	"REPORT_DATE":          "报告期",
	"EARLIEST_NOTICE_DATE": "业绩披露日期",
	"BONUS_IT_RATIO":       "送转股份-送转总比例",
	"BONUS_RATIO":          "送转股份-送股比例",
	"IT_RATIO":             "送转股份-转股比例",
	"PRETAX_BONUS_RMB":     "现金分红-现金分红比例",
	"IMPL_PLAN_PROFILE":    "现金分红-现金分红比例描述",
	"DIVIDENT_RATIO":       "现金分红-股息率",
	"BASIC_EPS":            "每股收益",
	"BVPS":                 "每股净资产",
	"PER_CAPITAL_RESERVE":  "每股公积金",
	"PER_UNASSIGN_PROFIT":  "每股未分配利润",
	"PNP_YOY_RATIO":        "净利润同比增长",
	"TOTAL_SHARES":         "总股本",
	"PLAN_NOTICE_DATE":     "预案公告日",
	"EQUITY_RECORD_DATE":   "股权登记日",
	"EX_DIVIDEND_DATE":     "除权除息日",
	"ASSIGN_PROGRESS":      "方案进度",
	"NOTICE_DATE":          "最新公告日期",
}

type fhpsResponse struct {
	Result *struct {
		Pages int              `json:"pages"`
		Data  []map[string]any `json:"data"`
	} `json:"result"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FetchDividendDetail 获取分红送配详情，分页取全量
func (p *Provider) FetchDividendDetail(ctx context.Context, symbol string) ([]schema.RawRow, error) {
	var rows []schema.RawRow
	for page := 1; ; page++ {
		resp, err := p.fetchFhpsPage(ctx, symbol, page)
		if err != nil {
			return nil, err
		}
		if resp.Result == nil {
			break
		}
		for _, item := range resp.Result.Data {
			row := make(schema.RawRow, len(fhpsFieldMap))
			for field, name := range fhpsFieldMap {
				if v, ok := item[field]; ok {
					row[name] = v
				}
			}
			rows = append(rows, row)
		}
		if page >= resp.Result.Pages {
			break
		}
	}
	p.log.WithField("symbol", symbol).WithField("count", len(rows)).Debug("获取分红送配详情完成")
	return rows, nil
}

func (p *Provider) fetchFhpsPage(ctx context.Context, symbol string, page int) (*fhpsResponse, error) {
	params := url.Values{}
	params.Set("sortColumns", "PLAN_NOTICE_DATE")
	params.Set("sortTypes", "-1")
	params.Set("pageSize", "500")
	params.Set("pageNumber", strconv.Itoa(page))
	params.Set("reportName", "RPT_SHAREBONUS_DET")
	params.Set("columns", "ALL")
	params.Set("quoteColumns", "")
	params.Set("source", "WEB")
	params.Set("client", "WEB")
	params.Set("filter", fmt.Sprintf(`(SECURITY_CODE="%s")`, symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.fhpsURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_dividend_detail", err)
	}
	body, err := p.fetch(req)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_dividend_detail", err)
	}

	var resp fhpsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_dividend_detail", err)
	}
	return &resp, nil
}
