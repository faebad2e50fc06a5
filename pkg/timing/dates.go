package timing

import (
	"fmt"
	"time"
)

const (
	// CompactDateLayout 上游接口使用的紧凑日期格式
	CompactDateLayout = "20060102"
	// ISODateLayout 对外输出使用的日期格式
	ISODateLayout = "2006-01-02"
)

// ValidateCompactDate 校验日期是否为合法的 YYYYMMDD 格式。
// 不合法时返回带具体原因的错误，调用方应在发起上游请求前校验。
func ValidateCompactDate(s string) error {
	if len(s) != 8 {
		return fmt.Errorf("日期 %q 长度必须为8位（YYYYMMDD）", s)
	}
	if _, err := time.ParseInLocation(CompactDateLayout, s, time.Local); err != nil {
		return fmt.Errorf("日期 %q 不是合法的 YYYYMMDD 日期: %w", s, err)
	}
	return nil
}

// ParseCompactDate 解析 YYYYMMDD 格式日期
func ParseCompactDate(s string) (time.Time, error) {
	if err := ValidateCompactDate(s); err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(CompactDateLayout, s, time.Local)
}

// ParseISODate 解析 YYYY-MM-DD 格式日期
func ParseISODate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("日期 %q 不是合法的 YYYY-MM-DD 日期: %w", s, err)
	}
	return t, nil
}

// FormatCompact 格式化为 YYYYMMDD
func FormatCompact(t time.Time) string {
	return t.Format(CompactDateLayout)
}

// FormatISO 格式化为 YYYY-MM-DD
func FormatISO(t time.Time) string {
	return t.Format(ISODateLayout)
}
