package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySchemas(t *testing.T) {
	cases := []struct {
		name    string
		schema  *DataSchema
		mapping ColumnMapping
	}{
		{"股票代码", StockCodeSchema, StockCodeMapping},
		{"历史价格", PriceBarSchema, PriceBarMapping},
		{"财务概要", FinancialAbstractSchema, FinancialAbstractMapping},
		{"融资融券", MarginDetailSchema, MarginDetailMapping},
		{"分红送配", DividendDetailSchema, DividendDetailMapping},
		{"个股新闻", StockNewsSchema, StockNewsMapping},
		{"财经要闻", FinancialNewsSchema, FinancialNewsMapping},
	}

	for _, tc := range cases {
		t.Run(tc.name+"模式定义合法", func(t *testing.T) {
			require.NoError(t, ValidateSchema(tc.schema))
		})

		t.Run(tc.name+"映射目标都在模式中", func(t *testing.T) {
			for _, rename := range tc.mapping {
				_, exists := tc.schema.Fields[rename.Target]
				assert.True(t, exists, "映射目标 %s 不在模式 %s 中", rename.Target, tc.schema.Name)
			}
		})

		t.Run(tc.name+"映射目标不重复", func(t *testing.T) {
			seen := make(map[string]bool)
			for _, rename := range tc.mapping {
				assert.False(t, seen[rename.Target], "映射目标 %s 重复", rename.Target)
				seen[rename.Target] = true
			}
		})
	}
}

func TestCategorySchemaRequiredFields(t *testing.T) {
	t.Run("历史价格的行情字段必填", func(t *testing.T) {
		for _, name := range []string{"date", "stock_code", "open", "close", "high", "low", "volume"} {
			assert.True(t, PriceBarSchema.Fields[name].Required, "%s 应为必填", name)
		}
		assert.False(t, PriceBarSchema.Fields["turnover"].Required)
	})

	t.Run("融资融券以日期和代码定位一行", func(t *testing.T) {
		assert.True(t, MarginDetailSchema.Fields["trading_date"].Required)
		assert.True(t, MarginDetailSchema.Fields["target_security_code"].Required)
		assert.False(t, MarginDetailSchema.Fields["margin_balance"].Required)
	})

	t.Run("新闻必须有标题和发布时间", func(t *testing.T) {
		assert.True(t, StockNewsSchema.Fields["title"].Required)
		assert.True(t, StockNewsSchema.Fields["publish_time"].Required)
		assert.True(t, FinancialNewsSchema.Fields["title"].Required)
		assert.True(t, FinancialNewsSchema.Fields["publish_time"].Required)
	})
}
