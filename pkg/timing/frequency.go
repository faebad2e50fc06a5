package timing

import (
	"fmt"
	"time"
)

// Frequency 日期序列的取样频率
type Frequency string

const (
	FreqDaily      Frequency = "D"  // 每个自然日
	FreqWeekly     Frequency = "W"  // 每周日
	FreqMonthStart Frequency = "MS" // 每月第一天
	FreqMonthEnd   Frequency = "ME" // 每月最后一天
	FreqQuarterEnd Frequency = "Q"  // 每季度最后一天
	FreqYearEnd    Frequency = "Y"  // 每年最后一天
)

// ParseFrequency 解析频率标识，大小写敏感
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FreqDaily, FreqWeekly, FreqMonthStart, FreqMonthEnd, FreqQuarterEnd, FreqYearEnd:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("不支持的频率 %q，可选值: D, W, MS, ME, Q, Y", s)
	}
}

// DateRange 生成 [start, end] 区间内按频率取样的日期序列，升序。
// start 晚于 end 时返回空序列。
func DateRange(start, end time.Time, freq Frequency) []time.Time {
	start = truncateDay(start)
	end = truncateDay(end)
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if matchFreq(d, freq) {
			dates = append(dates, d)
		}
	}
	return dates
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func matchFreq(d time.Time, freq Frequency) bool {
	switch freq {
	case FreqDaily:
		return true
	case FreqWeekly:
		return d.Weekday() == time.Sunday
	case FreqMonthStart:
		return d.Day() == 1
	case FreqMonthEnd:
		return isMonthEnd(d)
	case FreqQuarterEnd:
		return isMonthEnd(d) && (d.Month() == time.March || d.Month() == time.June ||
			d.Month() == time.September || d.Month() == time.December)
	case FreqYearEnd:
		return d.Month() == time.December && d.Day() == 31
	default:
		return false
	}
}

func isMonthEnd(d time.Time) bool {
	return d.AddDate(0, 0, 1).Day() == 1
}
