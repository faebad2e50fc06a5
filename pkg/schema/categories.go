package schema

// 预定义数据类别模式与列名映射表。
// 映射表逐条对应上游数据源的原生列名，任何上游改名都是集成层面的破坏性变更。

func fields(defs ...*FieldDefinition) (map[string]*FieldDefinition, []string) {
	m := make(map[string]*FieldDefinition, len(defs))
	order := make([]string, 0, len(defs))
	for _, def := range defs {
		m[def.Name] = def
		order = append(order, def.Name)
	}
	return m, order
}

func newSchema(name, description string, defs ...*FieldDefinition) *DataSchema {
	m, order := fields(defs...)
	return &DataSchema{
		Name:        name,
		Description: description,
		Fields:      m,
		FieldOrder:  order,
	}
}

// StockCodeSchema 股票名称及代码
var StockCodeSchema = newSchema("stock_code", "A股上市公司股票名称及代码",
	&FieldDefinition{Name: "name", Type: FieldTypeString, Description: "股票名称", Required: true},
	&FieldDefinition{Name: "stock_code", Type: FieldTypeString, Description: "股票代码", Required: true},
)

// StockCodeMapping 股票代码列表的列名映射
var StockCodeMapping = ColumnMapping{
	{Source: "名称", Target: "name"},
	{Source: "代码", Target: "stock_code"},
}

// PriceBarSchema 历史价格K线
var PriceBarSchema = newSchema("price_bar", "A股历史价格数据",
	&FieldDefinition{Name: "date", Type: FieldTypeDate, Description: "交易日期", Required: true},
	&FieldDefinition{Name: "stock_code", Type: FieldTypeString, Description: "股票代码（不带市场标识）", Required: true},
	&FieldDefinition{Name: "open", Type: FieldTypeFloat64, Description: "开盘价", Required: true},
	&FieldDefinition{Name: "close", Type: FieldTypeFloat64, Description: "收盘价", Required: true},
	&FieldDefinition{Name: "high", Type: FieldTypeFloat64, Description: "最高价", Required: true},
	&FieldDefinition{Name: "low", Type: FieldTypeFloat64, Description: "最低价", Required: true},
	&FieldDefinition{Name: "volume", Type: FieldTypeInt, Description: "成交量（单位：手）", Required: true},
	&FieldDefinition{Name: "turnover", Type: FieldTypeFloat64, Description: "成交额（单位：元）"},
	&FieldDefinition{Name: "amplitude", Type: FieldTypeFloat64, Description: "振幅（单位：%）"},
	&FieldDefinition{Name: "change_rate", Type: FieldTypeFloat64, Description: "涨跌幅（单位：%）"},
	&FieldDefinition{Name: "change_amount", Type: FieldTypeFloat64, Description: "涨跌额（单位：元）"},
	&FieldDefinition{Name: "turnover_rate", Type: FieldTypeFloat64, Description: "换手率（单位：%）"},
)

// PriceBarMapping 历史价格的列名映射
var PriceBarMapping = ColumnMapping{
	{Source: "日期", Target: "date"},
	{Source: "股票代码", Target: "stock_code"},
	{Source: "开盘", Target: "open"},
	{Source: "收盘", Target: "close"},
	{Source: "最高", Target: "high"},
	{Source: "最低", Target: "low"},
	{Source: "成交量", Target: "volume"},
	{Source: "成交额", Target: "turnover"},
	{Source: "振幅", Target: "amplitude"},
	{Source: "涨跌幅", Target: "change_rate"},
	{Source: "涨跌额", Target: "change_amount"},
	{Source: "换手率", Target: "turnover_rate"},
}

// FinancialAbstractSchema 财务报告概要
// 指标字段上游以数字或字符串混合返回，并使用 "--" 表示缺失，故全部为 Any 类型透传
var FinancialAbstractSchema = newSchema("financial_abstract", "A股财务报告概要数据",
	&FieldDefinition{Name: "reporting_period", Type: FieldTypeString, Description: "报告期", Required: true},
	&FieldDefinition{Name: "net_profit", Type: FieldTypeAny, Description: "净利润"},
	&FieldDefinition{Name: "net_profit_growth_rate", Type: FieldTypeAny, Description: "净利润同比增长率"},
	&FieldDefinition{Name: "non_recurring_net_profit", Type: FieldTypeAny, Description: "扣非净利润"},
	&FieldDefinition{Name: "non_recurring_net_profit_growth_rate", Type: FieldTypeAny, Description: "扣非净利润同比增长率"},
	&FieldDefinition{Name: "total_operating_revenue", Type: FieldTypeAny, Description: "营业总收入"},
	&FieldDefinition{Name: "total_operating_revenue_growth_rate", Type: FieldTypeAny, Description: "营业总收入同比增长率"},
	&FieldDefinition{Name: "basic_earnings_per_share", Type: FieldTypeAny, Description: "基本每股收益"},
	&FieldDefinition{Name: "net_asset_per_share", Type: FieldTypeAny, Description: "每股净资产"},
	&FieldDefinition{Name: "capital_reserve_fund_per_share", Type: FieldTypeAny, Description: "每股资本公积金"},
	&FieldDefinition{Name: "undistributed_profit_per_share", Type: FieldTypeAny, Description: "每股未分配利润"},
	&FieldDefinition{Name: "operating_cash_flow_per_share", Type: FieldTypeAny, Description: "每股经营现金流"},
	&FieldDefinition{Name: "net_profit_margin", Type: FieldTypeAny, Description: "销售净利率"},
	&FieldDefinition{Name: "gross_profit_margin", Type: FieldTypeAny, Description: "销售毛利率"},
	&FieldDefinition{Name: "return_on_equity_of_roe", Type: FieldTypeAny, Description: "净资产收益率"},
	&FieldDefinition{Name: "diluted_return_on_equity_of_roe", Type: FieldTypeAny, Description: "净资产收益率-摊薄"},
	&FieldDefinition{Name: "operating_cycle", Type: FieldTypeAny, Description: "营业周期"},
	&FieldDefinition{Name: "inventory_turnover_ratio", Type: FieldTypeAny, Description: "存货周转率"},
	&FieldDefinition{Name: "days_inventory_outstanding", Type: FieldTypeAny, Description: "存货周转天数"},
	&FieldDefinition{Name: "days_sales_outstanding", Type: FieldTypeAny, Description: "应收账款周转天数"},
	&FieldDefinition{Name: "current_ratio", Type: FieldTypeAny, Description: "流动比率"},
	&FieldDefinition{Name: "quick_ratio", Type: FieldTypeAny, Description: "速动比率"},
	&FieldDefinition{Name: "conservative_quick_ratio", Type: FieldTypeAny, Description: "保守速动比率"},
	&FieldDefinition{Name: "debt_to_equity_ratio", Type: FieldTypeAny, Description: "产权比率"},
	&FieldDefinition{Name: "asset_to_liability_ratio", Type: FieldTypeAny, Description: "资产负债率"},
)

// FinancialAbstractMapping 财务概要的列名映射
var FinancialAbstractMapping = ColumnMapping{
	{Source: "报告期", Target: "reporting_period"},
	{Source: "净利润", Target: "net_profit"},
	{Source: "净利润同比增长率", Target: "net_profit_growth_rate"},
	{Source: "扣非净利润", Target: "non_recurring_net_profit"},
	{Source: "扣非净利润同比增长率", Target: "non_recurring_net_profit_growth_rate"},
	{Source: "营业总收入", Target: "total_operating_revenue"},
	{Source: "营业总收入同比增长率", Target: "total_operating_revenue_growth_rate"},
	{Source: "基本每股收益", Target: "basic_earnings_per_share"},
	{Source: "每股净资产", Target: "net_asset_per_share"},
	{Source: "每股资本公积金", Target: "capital_reserve_fund_per_share"},
	{Source: "每股未分配利润", Target: "undistributed_profit_per_share"},
	{Source: "每股经营现金流", Target: "operating_cash_flow_per_share"},
	{Source: "销售净利率", Target: "net_profit_margin"},
	{Source: "销售毛利率", Target: "gross_profit_margin"},
	{Source: "净资产收益率", Target: "return_on_equity_of_roe"},
	{Source: "净资产收益率-摊薄", Target: "diluted_return_on_equity_of_roe"},
	{Source: "营业周期", Target: "operating_cycle"},
	{Source: "存货周转率", Target: "inventory_turnover_ratio"},
	{Source: "存货周转天数", Target: "days_inventory_outstanding"},
	{Source: "应收账款周转天数", Target: "days_sales_outstanding"},
	{Source: "流动比率", Target: "current_ratio"},
	{Source: "速动比率", Target: "quick_ratio"},
	{Source: "保守速动比率", Target: "conservative_quick_ratio"},
	{Source: "产权比率", Target: "debt_to_equity_ratio"},
	{Source: "资产负债率", Target: "asset_to_liability_ratio"},
}

// MarginDetailSchema 融资融券明细
var MarginDetailSchema = newSchema("margin_detail", "A股融资融券明细数据",
	&FieldDefinition{Name: "trading_date", Type: FieldTypeDate, Description: "信用交易日期", Required: true},
	&FieldDefinition{Name: "target_security_code", Type: FieldTypeString, Description: "标的证券代码", Required: true},
	&FieldDefinition{Name: "target_security_name", Type: FieldTypeString, Description: "标的证券简称"},
	&FieldDefinition{Name: "margin_balance", Type: FieldTypeInt, Description: "融资余额（单位：元）"},
	&FieldDefinition{Name: "margin_buy_amount", Type: FieldTypeInt, Description: "融资买入额（单位：元）"},
	&FieldDefinition{Name: "margin_repayment", Type: FieldTypeInt, Description: "融资偿还额（单位：元）"},
	&FieldDefinition{Name: "short_selling_balance", Type: FieldTypeInt, Description: "融券余量"},
	&FieldDefinition{Name: "short_selling_volume", Type: FieldTypeInt, Description: "融券卖出量"},
	&FieldDefinition{Name: "short_selling_repayment", Type: FieldTypeInt, Description: "融券偿还量"},
)

// MarginDetailMapping 融资融券明细的列名映射
var MarginDetailMapping = ColumnMapping{
	{Source: "信用交易日期", Target: "trading_date"},
	{Source: "标的证券代码", Target: "target_security_code"},
	{Source: "标的证券简称", Target: "target_security_name"},
	{Source: "融资余额", Target: "margin_balance"},
	{Source: "融资买入额", Target: "margin_buy_amount"},
	{Source: "融资偿还额", Target: "margin_repayment"},
	{Source: "融券余量", Target: "short_selling_balance"},
	{Source: "融券卖出量", Target: "short_selling_volume"},
	{Source: "融券偿还量", Target: "short_selling_repayment"},
}

// DividendDetailSchema 分红送配详情
// 日期类字段上游均为字符串，按原样透传，不解析为结构化日期
var DividendDetailSchema = newSchema("dividend_detail", "A股历年分红送配详情",
	&FieldDefinition{Name: "reporting_period", Type: FieldTypeAny, Description: "报告期"},
	&FieldDefinition{Name: "earnings_disclosure_date", Type: FieldTypeAny, Description: "业绩披露日期"},
	&FieldDefinition{Name: "total_share_conversion_ratio", Type: FieldTypeFloat64, Description: "送转股份-送转总比例"},
	&FieldDefinition{Name: "bonus_share_ratio", Type: FieldTypeFloat64, Description: "送转股份-送股比例"},
	&FieldDefinition{Name: "capitalization_ratio", Type: FieldTypeFloat64, Description: "送转股份-转股比例"},
	&FieldDefinition{Name: "cash_dividend_payout_ratio", Type: FieldTypeFloat64, Description: "现金分红-现金分红比例"},
	&FieldDefinition{Name: "cash_dividend_payout_ratio_description", Type: FieldTypeAny, Description: "现金分红-现金分红比例描述"},
	&FieldDefinition{Name: "dividend_yield", Type: FieldTypeFloat64, Description: "现金分红-股息率"},
	&FieldDefinition{Name: "earnings_per_share", Type: FieldTypeFloat64, Description: "每股收益"},
	&FieldDefinition{Name: "net_asset_value_per_share", Type: FieldTypeFloat64, Description: "每股净资产"},
	&FieldDefinition{Name: "surplus_reserve_fund_per_share", Type: FieldTypeFloat64, Description: "每股公积金"},
	&FieldDefinition{Name: "undistributed_profit_per_share", Type: FieldTypeFloat64, Description: "每股未分配利润"},
	&FieldDefinition{Name: "net_profit_growth_rate", Type: FieldTypeFloat64, Description: "净利润同比增长"},
	&FieldDefinition{Name: "total_shares_outstanding", Type: FieldTypeInt, Description: "总股本"},
	&FieldDefinition{Name: "preliminary_plan_announcement_date", Type: FieldTypeAny, Description: "预案公告日"},
	&FieldDefinition{Name: "record_date", Type: FieldTypeAny, Description: "股权登记日"},
	&FieldDefinition{Name: "ex_dividend_date", Type: FieldTypeAny, Description: "除权除息日"},
	&FieldDefinition{Name: "proposal_progress", Type: FieldTypeAny, Description: "方案进度"},
	&FieldDefinition{Name: "latest_announcement_date", Type: FieldTypeAny, Description: "最新公告日期"},
)

// DividendDetailMapping 分红送配的列名映射
var DividendDetailMapping = ColumnMapping{
	{Source: "报告期", Target: "reporting_period"},
	{Source: "业绩披露日期", Target: "earnings_disclosure_date"},
	{Source: "送转股份-送转总比例", Target: "total_share_conversion_ratio"},
	{Source: "送转股份-送股比例", Target: "bonus_share_ratio"},
	{Source: "送转股份-转股比例", Target: "capitalization_ratio"},
	{Source: "现金分红-现金分红比例", Target: "cash_dividend_payout_ratio"},
	{Source: "现金分红-现金分红比例描述", Target: "cash_dividend_payout_ratio_description"},
	{Source: "现金分红-股息率", Target: "dividend_yield"},
	{Source: "每股收益", Target: "earnings_per_share"},
	{Source: "每股净资产", Target: "net_asset_value_per_share"},
	{Source: "每股公积金", Target: "surplus_reserve_fund_per_share"},
	{Source: "每股未分配利润", Target: "undistributed_profit_per_share"},
	{Source: "净利润同比增长", Target: "net_profit_growth_rate"},
	{Source: "总股本", Target: "total_shares_outstanding"},
	{Source: "预案公告日", Target: "preliminary_plan_announcement_date"},
	{Source: "股权登记日", Target: "record_date"},
	{Source: "除权除息日", Target: "ex_dividend_date"},
	{Source: "方案进度", Target: "proposal_progress"},
	{Source: "最新公告日期", Target: "latest_announcement_date"},
}

// StockNewsSchema 个股新闻
var StockNewsSchema = newSchema("stock_news", "个股相关新闻报道",
	&FieldDefinition{Name: "keyword", Type: FieldTypeString, Description: "关键词"},
	&FieldDefinition{Name: "title", Type: FieldTypeString, Description: "新闻标题", Required: true},
	&FieldDefinition{Name: "content", Type: FieldTypeString, Description: "新闻内容"},
	&FieldDefinition{Name: "publish_time", Type: FieldTypeString, Description: "发布时间", Required: true},
	&FieldDefinition{Name: "source", Type: FieldTypeString, Description: "文章来源"},
	&FieldDefinition{Name: "url", Type: FieldTypeString, Description: "新闻链接"},
)

// StockNewsMapping 个股新闻的列名映射
var StockNewsMapping = ColumnMapping{
	{Source: "关键词", Target: "keyword"},
	{Source: "新闻标题", Target: "title"},
	{Source: "新闻内容", Target: "content"},
	{Source: "发布时间", Target: "publish_time"},
	{Source: "文章来源", Target: "source"},
	{Source: "新闻链接", Target: "url"},
}

// FinancialNewsSchema 财经要闻
var FinancialNewsSchema = newSchema("financial_news", "财经要闻及市场动态",
	&FieldDefinition{Name: "title", Type: FieldTypeString, Description: "新闻标题", Required: true},
	&FieldDefinition{Name: "content", Type: FieldTypeString, Description: "新闻内容"},
	&FieldDefinition{Name: "publish_time", Type: FieldTypeString, Description: "发布时间", Required: true},
	&FieldDefinition{Name: "url", Type: FieldTypeString, Description: "新闻链接"},
)

// FinancialNewsMapping 财经要闻的列名映射（上游字段为拼音/英文缩写）
var FinancialNewsMapping = ColumnMapping{
	{Source: "tag", Target: "title"},
	{Source: "summary", Target: "content"},
	{Source: "pub_time", Target: "publish_time"},
	{Source: "url", Target: "url"},
}
