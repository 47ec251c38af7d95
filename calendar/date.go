// Package calendar 提供了利率曲线构建所需的民用日期、期限与交易日历基础设施.
package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/wyfcoding/ratecurve/xerrors"
)

const secondsPerDay = 86400

// Date 表示前推格里历下的一个民用日期，内部以距 1970-01-01 的带符号天数存储。
type Date struct {
	serial int
}

// NewDate 以年月日构造日期。越界的日号按标准库规则归一化（如 2 月 30 日归一化到 3 月）。
func NewDate(year, month, day int) Date {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return Date{serial: int(t.Unix() / secondsPerDay)}
}

// FromTime 截取时间对象的日期部分（按 UTC）。
func FromTime(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

// ParseISO 严格解析 "YYYY-MM-DD" 格式的日期字符串。
// 任一段非数字返回 Parse 类错误；段数不为 3 或月、日越界返回 InvalidDate 类错误。
func ParseISO(iso string) (Date, error) {
	segments := strings.Split(iso, "-")

	parts := make([]int, 0, len(segments))
	for _, segment := range segments {
		n, err := strconv.Atoi(segment)
		if err != nil {
			return Date{}, xerrors.ParseError("non-numeric date segment").WithContext("input", iso)
		}
		parts = append(parts, n)
	}

	if len(parts) != 3 ||
		parts[0] < 0 || parts[1] < 1 || parts[1] > 12 || parts[2] < 1 || parts[2] > 31 {
		return Date{}, xerrors.InvalidDate("the date does not follow format 'YYYY-MM-DD'").WithContext("input", iso)
	}

	return NewDate(parts[0], parts[1], parts[2]), nil
}

// Serial 返回距 1970-01-01 的带符号天数。
func (d Date) Serial() int { return d.serial }

// Time 返回该日期在 UTC 零点对应的时间对象。
func (d Date) Time() time.Time {
	return time.Unix(int64(d.serial)*secondsPerDay, 0).UTC()
}

// Year 返回年份。
func (d Date) Year() int { return d.Time().Year() }

// Month 返回月份 (1-12)。
func (d Date) Month() int { return int(d.Time().Month()) }

// Day 返回日号 (1-31)。
func (d Date) Day() int { return d.Time().Day() }

// Weekday 返回星期几。
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// AddDays 返回向后（n 为负时向前）平移 n 个日历日后的日期。
func (d Date) AddDays(n int) Date { return Date{serial: d.serial + n} }

// Sub 返回 d - o 的日历天数差。
func (d Date) Sub(o Date) int { return d.serial - o.serial }

// Before 严格早于。
func (d Date) Before(o Date) bool { return d.serial < o.serial }

// After 严格晚于。
func (d Date) After(o Date) bool { return d.serial > o.serial }

// Equal 相等。
func (d Date) Equal(o Date) bool { return d.serial == o.serial }

// ISO 输出 "YYYY-MM-DD" 格式字符串，与 ParseISO 互逆。
func (d Date) ISO() string { return d.Time().Format("2006-01-02") }

// String 实现 fmt.Stringer。
func (d Date) String() string { return d.ISO() }

// daysInMonth 返回指定年月的日历天数。
func daysInMonth(year, month int) int {
	// 下月首日减一天
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
