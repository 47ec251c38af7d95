// Package ratehelpers 提供了曲线引导所用的报价工具：OIS、FRA 与固定对浮动利率互换.
//
// 报价工具是纯值对象：只携带起止日、市场报价与约定配置，不持有曲线引用，
// 可以自由复制与并发共享。各变体按自身的曲线依赖回算隐含报价，
// 引导器据此驱动残差归零。
package ratehelpers

import (
	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/xerrors"
)

// DiscountProvider 贴现因子的抽象来源。构建器与冻结曲线均满足该接口。
type DiscountProvider interface {
	AsOf() calendar.Date
	DF(d calendar.Date) float64
}

// ForwardProvider 远期利率的抽象来源。
type ForwardProvider interface {
	AsOf() calendar.Date
	ForwardRate(start, end calendar.Date, dc calendar.DayCount) (float64, error)
}

// RateHelper 报价工具的公共能力：到期日与市场报价。
// 隐含报价的计算随变体的曲线依赖不同而不同，由各变体单独暴露。
type RateHelper interface {
	Maturity() calendar.Date
	MarketQuote() float64
}

// tenorFromFrequency 年付息次数到期限的最小映射，覆盖普通互换所需的频率。
func tenorFromFrequency(f calendar.Frequency) (calendar.Tenor, error) {
	switch f {
	case calendar.Annual:
		return calendar.Tenor{N: 1, Unit: calendar.UnitYears}, nil
	case calendar.SemiAnnual:
		return calendar.Tenor{N: 6, Unit: calendar.UnitMonths}, nil
	case calendar.Quarterly:
		return calendar.Tenor{N: 3, Unit: calendar.UnitMonths}, nil
	case calendar.Monthly:
		return calendar.Tenor{N: 1, Unit: calendar.UnitMonths}, nil
	default:
		return calendar.Tenor{}, xerrors.ErrUnsupportedFrequency
	}
}

// makeLegSchedule 按倒推规则生成一条腿的付息日程。
func makeLegSchedule(start, end calendar.Date, tenor calendar.Tenor, cal calendar.Calendar, bdc calendar.BusinessDayConvention) calendar.Schedule {
	return calendar.MakeSchedule(calendar.ScheduleConfig{
		Start:      start,
		End:        end,
		Tenor:      tenor,
		Calendar:   cal,
		BDC:        bdc,
		Rule:       calendar.Backward,
		EndOfMonth: false,
	})
}
