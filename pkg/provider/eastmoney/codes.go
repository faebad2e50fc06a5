package eastmoney

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"astock/pkg/provider/core"
	"astock/pkg/schema"
)

type listResponse struct {
	Data struct {
		Total int `json:"total"`
		Diff  []struct {
			Code string `json:"f12"`
			Name string `json:"f14"`
		} `json:"diff"`
	} `json:"data"`
}

// ListStockCodes 获取全市场A股代码与名称列表
func (p *Provider) ListStockCodes(ctx context.Context) ([]schema.RawRow, error) {
	params := url.Values{}
	params.Set("pn", "1")
	params.Set("pz", "50000")
	params.Set("po", "1")
	params.Set("np", "1")
	params.Set("fltt", "2")
	params.Set("invt", "2")
	params.Set("fid", "f3")
	params.Set("fs", "m:0 t:6,m:0 t:80,m:1 t:2,m:1 t:23,m:0 t:81 s:2048")
	params.Set("fields", "f12,f14")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.listURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "list_stock_codes", err)
	}
	body, err := p.fetch(req)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "list_stock_codes", err)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, core.NewUpstreamError(p.Name(), "list_stock_codes", err)
	}

	rows := make([]schema.RawRow, 0, len(resp.Data.Diff))
	for _, item := range resp.Data.Diff {
		rows = append(rows, schema.RawRow{
			"代码": item.Code,
			"名称": item.Name,
		})
	}
	p.log.WithField("count", len(rows)).Debug("获取股票代码列表完成")
	return rows, nil
}
