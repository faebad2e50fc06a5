package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCompactDate(t *testing.T) {
	t.Run("合法日期通过", func(t *testing.T) {
		assert.NoError(t, ValidateCompactDate("20250102"))
		assert.NoError(t, ValidateCompactDate("20240229"))
	})

	t.Run("长度不足被拒绝", func(t *testing.T) {
		assert.Error(t, ValidateCompactDate("2025102"))
		assert.Error(t, ValidateCompactDate(""))
	})

	t.Run("带分隔符的格式被拒绝", func(t *testing.T) {
		assert.Error(t, ValidateCompactDate("2025-01-02"))
	})

	t.Run("不存在的日期被拒绝", func(t *testing.T) {
		assert.Error(t, ValidateCompactDate("20250230"))
		assert.Error(t, ValidateCompactDate("20251301"))
	})

	t.Run("非数字被拒绝", func(t *testing.T) {
		assert.Error(t, ValidateCompactDate("abcd0102"))
	})
}

func TestParseCompactDate(t *testing.T) {
	d, err := ParseCompactDate("20250102")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 2, d.Day())
}

func TestParseISODate(t *testing.T) {
	t.Run("合法日期", func(t *testing.T) {
		d, err := ParseISODate("2025-01-02")
		require.NoError(t, err)
		assert.Equal(t, "20250102", FormatCompact(d))
	})

	t.Run("紧凑格式被拒绝", func(t *testing.T) {
		_, err := ParseISODate("20250102")
		assert.Error(t, err)
	})
}
