package ratehelpers

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/xerrors"
)

// FraConfig 远期利率协议的计息基准。
type FraConfig struct {
	DC calendar.DayCount
}

// FraHelper 远期利率协议报价工具，用于远期曲线引导。
type FraHelper struct {
	start   calendar.Date
	end     calendar.Date
	fraRate float64
	cfg     FraConfig
}

// NewFraHelper 创建 FRA 报价工具。fraRate 为市场远期利率。
func NewFraHelper(start, end calendar.Date, fraRate decimal.Decimal, cfg FraConfig) *FraHelper {
	return &FraHelper{
		start:   start,
		end:     end,
		fraRate: fraRate.InexactFloat64(),
		cfg:     cfg,
	}
}

// Maturity 返回到期日。
func (h *FraHelper) Maturity() calendar.Date { return h.end }

// MarketQuote 返回市场远期利率。
func (h *FraHelper) MarketQuote() float64 { return h.fraRate }

// ImpliedFraRate 回算候选远期曲线下 [start, end] 区间的隐含远期利率。
func (h *FraHelper) ImpliedFraRate(fwd ForwardProvider) (float64, error) {
	tau := calendar.YearFraction(h.start, h.end, h.cfg.DC)
	if !(tau > 0.0) {
		return 0, xerrors.ErrNonPositiveAccrual
	}
	return fwd.ForwardRate(h.start, h.end, h.cfg.DC)
}
