package curve

import (
	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/curvemath"
)

// ForwardCurve 分段远期曲线的冻结只读视图。节点为伪贴现因子 P_f，
// 远期利率由伪贴现因子之比导出；P_f 本身不是真实贴现因子。
type ForwardCurve struct {
	pillarCurve
}

// PF 求年化时间 t 的伪贴现因子。
func (c *ForwardCurve) PF(t float64) float64 {
	return c.valueAt(t)
}

// ForwardRate 求 [start, end] 区间按计息基准 dc 的简单远期利率。
func (c *ForwardCurve) ForwardRate(start, end calendar.Date, dc calendar.DayCount) (float64, error) {
	return c.forwardRate(start, end, dc)
}

// ForwardBuilder 远期曲线构建器，与 DiscountBuilder 对称。
type ForwardBuilder struct {
	pillarCurve
}

// NewForwardBuilder 创建远期曲线构建器。
func NewForwardBuilder(asof calendar.Date, cfg Config) *ForwardBuilder {
	return &ForwardBuilder{pillarCurve: pillarCurve{asof: asof, cfg: cfg}}
}

// SetNodes 校验并替换全部伪贴现因子节点，重建内部插值器。
func (b *ForwardBuilder) SetNodes(nodes curvemath.Nodes1D) error {
	return b.setNodes(nodes)
}

// PF 求年化时间 t 的伪贴现因子。
func (b *ForwardBuilder) PF(t float64) float64 {
	return b.valueAt(t)
}

// ForwardRate 求 [start, end] 区间的简单远期利率（试解期间供报价工具回算使用）。
func (b *ForwardBuilder) ForwardRate(start, end calendar.Date, dc calendar.DayCount) (float64, error) {
	return b.forwardRate(start, end, dc)
}

// Freeze 将构建器固化为只读曲线。
func (b *ForwardBuilder) Freeze() *ForwardCurve {
	return &ForwardCurve{pillarCurve: pillarCurve{
		asof:   b.asof,
		cfg:    b.cfg,
		nodes:  b.nodes.Clone(),
		interp: b.interp,
	}}
}
