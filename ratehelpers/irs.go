package ratehelpers

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/xerrors"
)

// IrsConfig 固定对浮动利率互换的两腿约定。
type IrsConfig struct {
	FixedDC   calendar.DayCount
	FixedFreq calendar.Frequency
	FloatDC   calendar.DayCount
	FloatFreq calendar.Frequency
	BDC       calendar.BusinessDayConvention
	Calendar  calendar.Calendar
}

// DefaultIrsConfig 返回常用的 IRS 约定。
func DefaultIrsConfig() IrsConfig {
	return IrsConfig{
		FixedDC:   calendar.ACT365F,
		FixedFreq: calendar.Annual,
		FloatDC:   calendar.ACT360,
		FloatFreq: calendar.Quarterly,
		BDC:       calendar.ModifiedFollowing,
	}
}

// IrsHelper 固定对浮动利率互换报价工具，在给定贴现曲线下用于远期曲线引导。
type IrsHelper struct {
	start   calendar.Date
	end     calendar.Date
	parRate float64
	cfg     IrsConfig
}

// NewIrsHelper 创建 IRS 报价工具。parRate 为市场平价利率。
func NewIrsHelper(start, end calendar.Date, parRate decimal.Decimal, cfg IrsConfig) *IrsHelper {
	return &IrsHelper{
		start:   start,
		end:     end,
		parRate: parRate.InexactFloat64(),
		cfg:     cfg,
	}
}

// Maturity 返回到期日。
func (h *IrsHelper) Maturity() calendar.Date { return h.end }

// MarketQuote 返回市场平价利率。
func (h *IrsHelper) MarketQuote() float64 { return h.parRate }

// ImpliedParRate 在固定的贴现曲线与候选远期曲线下回算隐含平价利率：
// 浮动腿现值除以固定腿年金。
func (h *IrsHelper) ImpliedParRate(disc DiscountProvider, fwd ForwardProvider) (float64, error) {
	fixTenor, err := tenorFromFrequency(h.cfg.FixedFreq)
	if err != nil {
		return 0, err
	}
	fltTenor, err := tenorFromFrequency(h.cfg.FloatFreq)
	if err != nil {
		return 0, err
	}

	fixSched := makeLegSchedule(h.start, h.end, fixTenor, h.cfg.Calendar, h.cfg.BDC)
	fltSched := makeLegSchedule(h.start, h.end, fltTenor, h.cfg.Calendar, h.cfg.BDC)

	fd := fixSched.Dates
	ld := fltSched.Dates
	if len(fd) < 2 || len(ld) < 2 {
		return 0, xerrors.ErrScheduleTooShort
	}

	// 固定腿年金
	annuity := 0.0
	for i := 1; i < len(fd); i++ {
		tau := calendar.YearFraction(fd[i-1], fd[i], h.cfg.FixedDC)
		annuity += disc.DF(fd[i]) * tau
	}
	if !(annuity > 0.0) {
		return 0, xerrors.ErrNonPositiveAnnuity
	}

	// 浮动腿现值 = sum DF(pay) * F(reset, pay) * tau
	pvFloat := 0.0
	for i := 1; i < len(ld); i++ {
		tau := calendar.YearFraction(ld[i-1], ld[i], h.cfg.FloatDC)
		f, ferr := fwd.ForwardRate(ld[i-1], ld[i], h.cfg.FloatDC)
		if ferr != nil {
			return 0, ferr
		}
		pvFloat += disc.DF(ld[i]) * f * tau
	}

	return pvFloat / annuity, nil
}
