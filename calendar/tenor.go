package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wyfcoding/ratecurve/xerrors"
)

// TenorUnit 期限单位。
type TenorUnit uint8

const (
	UnitDays TenorUnit = iota
	UnitWeeks
	UnitMonths
	UnitYears
)

func (u TenorUnit) String() string {
	return [...]string{"D", "W", "M", "Y"}[u]
}

// Tenor 表示 "n 个单位" 的期限，n 为负表示向过去平移。
type Tenor struct {
	N    int
	Unit TenorUnit
}

// ParseTenor 解析形如 "6M"、"10Y"、"-3w" 的期限字符串。
// 单位接受 D/d、W/w、M、Y/y；小写 m 保留给分钟扩展，不接受。
func ParseTenor(s string) (Tenor, error) {
	if len(s) < 2 {
		return Tenor{}, xerrors.ParseError("tenor string too short").WithContext("input", s)
	}

	loc := strings.IndexAny(s, "dDwWmMyY")
	if loc <= 0 {
		return Tenor{}, xerrors.ParseError("tenor string does not consist of numeric tenor amount and tenor unit (D/W/M/Y)").WithContext("input", s)
	}

	n, err := strconv.Atoi(s[:loc])
	if err != nil {
		return Tenor{}, xerrors.ParseError("tenor string does not consist of numeric tenor amount and tenor unit (D/W/M/Y)").WithContext("input", s)
	}

	var unit TenorUnit
	switch s[len(s)-1] {
	case 'D', 'd':
		unit = UnitDays
	case 'W', 'w':
		unit = UnitWeeks
	case 'M':
		unit = UnitMonths
	case 'Y', 'y':
		unit = UnitYears
	default:
		return Tenor{}, xerrors.ParseError("unknown tenor unit (expected D,W,M,Y)").WithContext("input", s)
	}

	return Tenor{N: n, Unit: unit}, nil
}

// String 输出形如 "6M" 的标准表示。
func (t Tenor) String() string {
	return fmt.Sprintf("%d%s", t.N, t.Unit)
}
