package curve

import (
	"math"
	"testing"

	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/curvemath"
)

func nodesOf(t *testing.T, ts, vs []float64) curvemath.Nodes1D {
	t.Helper()
	var n curvemath.Nodes1D
	for i := range ts {
		if err := n.PushBack(ts[i], vs[i]); err != nil {
			t.Fatalf("PushBack(%v, %v) failed: %v", ts[i], vs[i], err)
		}
	}
	return n
}

func TestDiscountCurveConventions(t *testing.T) {
	asof := calendar.NewDate(2026, 1, 1)
	b := NewDiscountBuilder(asof, Config{DayCount: calendar.ACT365F})

	nodes := nodesOf(t, []float64{0, 0.5, 1.0}, []float64{1.0, 0.99, 0.97})
	if err := b.SetNodes(nodes); err != nil {
		t.Fatalf("SetNodes failed: %v", err)
	}
	c := b.Freeze()

	// DF 在估值日及之前恒为 1
	if got := c.DF(asof); got != 1.0 {
		t.Errorf("DF(asof) = %v, want 1", got)
	}
	if got := c.DFAtTime(0); got != 1.0 {
		t.Errorf("DF(t=0) = %v, want 1", got)
	}
	if got := c.DFAtTime(-0.5); got != 1.0 {
		t.Errorf("DF(t<0) = %v, want 1", got)
	}

	// 节点处精确，节点间对数线性
	if got := c.DFAtTime(0.5); math.Abs(got-0.99) > 1e-15 {
		t.Errorf("DF(0.5) = %v, want 0.99", got)
	}
	want := math.Exp((math.Log(0.99) + math.Log(0.97)) / 2)
	if got := c.DFAtTime(0.75); math.Abs(got-want) > 1e-15 {
		t.Errorf("DF(0.75) = %v, want %v", got, want)
	}

	// 超出末节点平直外推
	if got := c.DFAtTime(5.0); got != 0.97 {
		t.Errorf("DF beyond last node = %v, want 0.97", got)
	}

	// 日期接口经由年化时间换算
	half := calendar.NewDate(2026, 7, 1) // 181 天
	tHalf := calendar.YearFraction(asof, half, calendar.ACT365F)
	if got, want := c.DF(half), c.DFAtTime(tHalf); got != want {
		t.Errorf("DF(date) = %v, DFAtTime = %v, should agree", got, want)
	}
}

func TestSetNodesRejectsInvalid(t *testing.T) {
	asof := calendar.NewDate(2026, 1, 1)
	b := NewDiscountBuilder(asof, Config{DayCount: calendar.ACT365F})

	// 单点不足以插值
	var single curvemath.Nodes1D
	if err := single.PushBack(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.SetNodes(single); err == nil {
		t.Error("single node should be rejected")
	}

	// 非正值对对数线性插值非法
	bad := curvemath.Nodes1D{T: []float64{0, 1}, V: []float64{1, -0.5}}
	if err := b.SetNodes(bad); err == nil {
		t.Error("non-positive DF should be rejected")
	}
}

func TestForwardCurveRates(t *testing.T) {
	asof := calendar.NewDate(2026, 1, 1)
	b := NewForwardBuilder(asof, Config{DayCount: calendar.ACT365F})

	// 平坦 3% 连续复利形状的伪贴现因子
	rate := 0.03
	nodes := nodesOf(t,
		[]float64{0, 0.5, 1.0, 2.0},
		[]float64{1, math.Exp(-rate * 0.5), math.Exp(-rate * 1.0), math.Exp(-rate * 2.0)},
	)
	if err := b.SetNodes(nodes); err != nil {
		t.Fatalf("SetNodes failed: %v", err)
	}
	c := b.Freeze()

	if got := c.PF(0); got != 1.0 {
		t.Errorf("PF(0) = %v, want 1", got)
	}

	start := calendar.NewDate(2026, 7, 1)
	end := calendar.NewDate(2027, 1, 1)
	f, err := c.ForwardRate(start, end, calendar.ACT365F)
	if err != nil {
		t.Fatalf("ForwardRate failed: %v", err)
	}

	// 简单远期利率应落在连续复利利率附近
	t1 := calendar.YearFraction(asof, start, calendar.ACT365F)
	t2 := calendar.YearFraction(asof, end, calendar.ACT365F)
	tau := calendar.YearFraction(start, end, calendar.ACT365F)
	want := (c.PF(t1)/c.PF(t2) - 1.0) / tau
	if math.Abs(f-want) > 1e-15 {
		t.Errorf("ForwardRate = %v, want %v", f, want)
	}
	if math.Abs(f-rate) > 0.002 {
		t.Errorf("forward rate %v too far from flat rate %v", f, rate)
	}

	// 非正计息区间报错
	if _, err := c.ForwardRate(end, start, calendar.ACT365F); err == nil {
		t.Error("reversed accrual period should fail")
	}
	if _, err := c.ForwardRate(start, start, calendar.ACT365F); err == nil {
		t.Error("zero accrual period should fail")
	}
}

func TestFreezeIsolatesBuilder(t *testing.T) {
	asof := calendar.NewDate(2026, 1, 1)
	b := NewDiscountBuilder(asof, Config{DayCount: calendar.ACT365F})

	if err := b.SetNodes(nodesOf(t, []float64{0, 1}, []float64{1, 0.97})); err != nil {
		t.Fatal(err)
	}
	c := b.Freeze()
	before := c.DFAtTime(1.0)

	// 冻结后的曲线节点是副本，后续构建不影响已发布曲线的节点
	if err := b.SetNodes(nodesOf(t, []float64{0, 1, 2}, []float64{1, 0.9, 0.8})); err != nil {
		t.Fatal(err)
	}
	got := c.Nodes()
	if got.Len() != 2 || got.V[1] != 0.97 {
		t.Errorf("frozen curve nodes changed after builder mutation: %+v", got)
	}
	if c.DFAtTime(1.0) != before {
		t.Errorf("frozen curve values changed after builder mutation")
	}
}
