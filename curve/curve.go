// Package curve 提供了分段贴现曲线与分段远期（伪贴现）曲线.
//
// 曲线在自身构建期间由构建器独占持有并反复替换节点；构建完成后冻结为只读值，
// 可在多个读取方之间自由共享。
package curve

import (
	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/curvemath"
	"github.com/wyfcoding/ratecurve/xerrors"
)

// Config 曲线配置：日期到年化时间的换算基准。
type Config struct {
	DayCount calendar.DayCount
}

// pillarCurve 两类分段曲线共用的内核：估值日、配置、节点与对数线性插值器。
type pillarCurve struct {
	asof   calendar.Date
	cfg    Config
	nodes  curvemath.Nodes1D
	interp *curvemath.LogLinearInterpolator
}

// setNodes 校验节点、存储并重建插值器。插值器替换是曲线仅有的写操作。
func (p *pillarCurve) setNodes(nodes curvemath.Nodes1D) error {
	data := curvemath.Interp1DData{X: nodes.T, Y: nodes.V}

	interp, err := curvemath.NewLogLinearInterpolator(data)
	if err != nil {
		return err
	}

	p.nodes = nodes
	p.interp = interp
	return nil
}

// valueAt 求 t 处的（伪）贴现因子。约定 t <= 0 时返回 1。
func (p *pillarCurve) valueAt(t float64) float64 {
	if t <= 0.0 {
		return 1.0
	}
	if p.interp == nil {
		// 在 setNodes 之前取值属于编程错误
		panic("curve: value requested before nodes were set")
	}
	return p.interp.Value(t)
}

// timeOf 将日期换算为距估值日的年化时间。
func (p *pillarCurve) timeOf(d calendar.Date) float64 {
	return calendar.YearFraction(p.asof, d, p.cfg.DayCount)
}

// AsOf 返回估值日。
func (p *pillarCurve) AsOf() calendar.Date { return p.asof }

// Nodes 返回节点序列的副本，用于诊断与持久化。
func (p *pillarCurve) Nodes() curvemath.Nodes1D { return p.nodes.Clone() }

// forwardRate 由伪贴现因子之比推出简单远期利率 (P(t1)/P(t2) - 1) / tau。
func (p *pillarCurve) forwardRate(start, end calendar.Date, dc calendar.DayCount) (float64, error) {
	t1 := p.timeOf(start)
	t2 := p.timeOf(end)

	tau := calendar.YearFraction(start, end, dc)
	if !(tau > 0.0) {
		return 0, xerrors.ErrNonPositiveAccrual
	}

	p1 := p.valueAt(t1)
	p2 := p.valueAt(t2)

	return (p1/p2 - 1.0) / tau, nil
}
