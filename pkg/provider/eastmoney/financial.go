package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"golang.org/x/text/encoding/simplifiedchinese"

	"astock/pkg/provider/core"
	"astock/pkg/schema"
)

// 指标类型到页面数据段的映射
var indicatorMap = map[string]string{
	"按报告期": "report",
	"按年度":  "year",
	"按单季度": "simple",
}

// 财务概要页面把数据嵌在隐藏的 <p id="main"> 节点里
var financeDataRe = regexp.MustCompile(`(?s)<p[^>]*id="main"[^>]*>(.*?)</p>`)

// FetchFinancialAbstract 获取财务概要。
// 页面为GBK编码，数据段按指标类型选取：按报告期/按年度/按单季度。
func (p *Provider) FetchFinancialAbstract(ctx context.Context, symbol, indicator string) ([]schema.RawRow, error) {
	section, ok := indicatorMap[indicator]
	if !ok {
		return nil, fmt.Errorf("%w: 指标类型 %q 不受支持，可选值: 按报告期/按年度/按单季度", core.ErrInvalidArgument, indicator)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(p.financeURL, symbol), nil)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_financial_abstract", err)
	}
	body, err := p.fetch(req)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_financial_abstract", err)
	}

	utf8Body, err := simplifiedchinese.GBK.NewDecoder().Bytes(body)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_financial_abstract", fmt.Errorf("GBK解码失败: %w", err))
	}

	rows, err := parseFinancePage(utf8Body, section)
	if err != nil {
		return nil, core.NewUpstreamError(p.Name(), "fetch_financial_abstract", err)
	}
	p.log.WithField("symbol", symbol).WithField("count", len(rows)).Debug("获取财务概要完成")
	return rows, nil
}

// parseFinancePage 提取页面内嵌的 JSON 并转为按报告期的行。
// title 为指标名列表（每项首元素为名称），各数据段按指标×报告期排列。
func parseFinancePage(page []byte, section string) ([]schema.RawRow, error) {
	m := financeDataRe.FindSubmatch(page)
	if m == nil {
		return nil, fmt.Errorf("页面中未找到财务数据节点")
	}

	var payload struct {
		Title    [][]any `json:"title"`
		Sections map[string]json.RawMessage
	}
	if err := json.Unmarshal(m[1], &payload.Sections); err != nil {
		return nil, fmt.Errorf("财务数据JSON解析失败: %w", err)
	}
	if err := json.Unmarshal(payload.Sections["title"], &payload.Title); err != nil {
		return nil, fmt.Errorf("财务数据指标名解析失败: %w", err)
	}

	raw, ok := payload.Sections[section]
	if !ok {
		return nil, fmt.Errorf("财务数据缺少 %s 段", section)
	}
	var matrix [][]any
	if err := json.Unmarshal(raw, &matrix); err != nil {
		return nil, fmt.Errorf("财务数据 %s 段解析失败: %w", section, err)
	}
	if len(matrix) == 0 {
		return nil, nil
	}

	titles := make([]string, 0, len(payload.Title))
	for _, item := range payload.Title {
		if len(item) == 0 {
			return nil, fmt.Errorf("财务数据指标名为空")
		}
		name, ok := item[0].(string)
		if !ok {
			return nil, fmt.Errorf("财务数据指标名不是字符串: %v", item[0])
		}
		titles = append(titles, name)
	}
	if len(matrix) != len(titles) {
		return nil, fmt.Errorf("财务数据段与指标名数量不一致: %d vs %d", len(matrix), len(titles))
	}

	// 转置：数据段按指标排列，输出按报告期排列
	periods := len(matrix[0])
	rows := make([]schema.RawRow, 0, periods)
	for j := 0; j < periods; j++ {
		row := make(schema.RawRow, len(titles))
		for i, name := range titles {
			if j < len(matrix[i]) {
				row[name] = matrix[i][j]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
