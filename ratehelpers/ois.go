package ratehelpers

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/xerrors"
)

// OisConfig 隔夜指数互换的固定腿约定。
type OisConfig struct {
	FixedDC   calendar.DayCount
	FixedFreq calendar.Frequency
	BDC       calendar.BusinessDayConvention
	Calendar  calendar.Calendar
}

// DefaultOisConfig 返回常用的 OIS 约定。
func DefaultOisConfig() OisConfig {
	return OisConfig{
		FixedDC:   calendar.ACT360,
		FixedFreq: calendar.Annual,
		BDC:       calendar.ModifiedFollowing,
	}
}

// OisSwapHelper 隔夜指数互换报价工具，用于贴现曲线引导。
type OisSwapHelper struct {
	start   calendar.Date
	end     calendar.Date
	parRate float64
	cfg     OisConfig
}

// NewOisSwapHelper 创建 OIS 报价工具。parRate 为市场平价利率（如 0.025 表示 2.5%）。
func NewOisSwapHelper(start, end calendar.Date, parRate decimal.Decimal, cfg OisConfig) *OisSwapHelper {
	return &OisSwapHelper{
		start:   start,
		end:     end,
		parRate: parRate.InexactFloat64(),
		cfg:     cfg,
	}
}

// Maturity 返回到期日。
func (h *OisSwapHelper) Maturity() calendar.Date { return h.end }

// MarketQuote 返回市场平价利率。
func (h *OisSwapHelper) MarketQuote() float64 { return h.parRate }

// ImpliedParRate 回算候选贴现曲线下的隐含平价利率。
// 浮动腿现值取平价 OIS 的简化形式 DF(start) - DF(end)（无利差、无残段）。
func (h *OisSwapHelper) ImpliedParRate(disc DiscountProvider) (float64, error) {
	tenor, err := tenorFromFrequency(h.cfg.FixedFreq)
	if err != nil {
		return 0, err
	}

	sched := makeLegSchedule(h.start, h.end, tenor, h.cfg.Calendar, h.cfg.BDC)
	dates := sched.Dates
	if len(dates) < 2 {
		return 0, xerrors.ErrScheduleTooShort
	}

	// 年金 = sum DF(d_i) * tau_{i-1,i}
	annuity := 0.0
	for i := 1; i < len(dates); i++ {
		tau := calendar.YearFraction(dates[i-1], dates[i], h.cfg.FixedDC)
		annuity += disc.DF(dates[i]) * tau
	}

	if !(annuity > 0.0) {
		return 0, xerrors.ErrNonPositiveAnnuity
	}

	numer := disc.DF(h.start) - disc.DF(h.end)
	return numer / annuity, nil
}
