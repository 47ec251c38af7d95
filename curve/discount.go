package curve

import (
	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/curvemath"
)

// DiscountCurve 分段贴现曲线的冻结只读视图。节点为贴现因子，隐含 DF(0)=1，
// 节点间按对数线性插值，定义域外平直外推。
type DiscountCurve struct {
	pillarCurve
}

// DF 求日期 d 的贴现因子。
func (c *DiscountCurve) DF(d calendar.Date) float64 {
	return c.valueAt(c.timeOf(d))
}

// DFAtTime 求年化时间 t 的贴现因子。
func (c *DiscountCurve) DFAtTime(t float64) float64 {
	return c.valueAt(t)
}

// DiscountBuilder 贴现曲线构建器。构建期间可反复替换节点；
// Freeze 后产出只读曲线，构建器不应再被使用。
type DiscountBuilder struct {
	pillarCurve
}

// NewDiscountBuilder 创建贴现曲线构建器。
func NewDiscountBuilder(asof calendar.Date, cfg Config) *DiscountBuilder {
	return &DiscountBuilder{pillarCurve: pillarCurve{asof: asof, cfg: cfg}}
}

// SetNodes 校验并替换全部节点，重建内部插值器。
func (b *DiscountBuilder) SetNodes(nodes curvemath.Nodes1D) error {
	return b.setNodes(nodes)
}

// DF 求日期 d 的贴现因子（试解期间供报价工具回算使用）。
func (b *DiscountBuilder) DF(d calendar.Date) float64 {
	return b.valueAt(b.timeOf(d))
}

// DFAtTime 求年化时间 t 的贴现因子。
func (b *DiscountBuilder) DFAtTime(t float64) float64 {
	return b.valueAt(t)
}

// Freeze 将构建器固化为只读曲线。
func (b *DiscountBuilder) Freeze() *DiscountCurve {
	return &DiscountCurve{pillarCurve: pillarCurve{
		asof:   b.asof,
		cfg:    b.cfg,
		nodes:  b.nodes.Clone(),
		interp: b.interp,
	}}
}
