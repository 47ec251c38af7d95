// Package curvemath 提供了分段曲线节点与一维插值的数值基础设施.
package curvemath

import (
	"math"

	"github.com/wyfcoding/ratecurve/xerrors"
)

// Nodes1D 两条平行的实数序列 (t, v)。不变量：长度一致、t 严格递增、全部有限。
type Nodes1D struct {
	T []float64
	V []float64
}

// Len 返回节点个数。
func (n *Nodes1D) Len() int { return len(n.T) }

// PushBack 追加一个节点。要求 ti 严格大于末节点时间且 ti、vi 均有限。
func (n *Nodes1D) PushBack(ti, vi float64) error {
	if !isFinite(ti) || !isFinite(vi) {
		return xerrors.ErrNonFinite
	}
	if len(n.T) > 0 && !(ti > n.T[len(n.T)-1]) {
		return xerrors.ErrNonMonotonic
	}
	n.T = append(n.T, ti)
	n.V = append(n.V, vi)
	return nil
}

// SetLastValue 覆写末节点的取值。要求序列非空且取值有限。
func (n *Nodes1D) SetLastValue(vi float64) error {
	if len(n.V) == 0 {
		return xerrors.ErrNoNodes
	}
	if !isFinite(vi) {
		return xerrors.ErrNonFinite
	}
	n.V[len(n.V)-1] = vi
	return nil
}

// Clone 深拷贝节点序列。
func (n *Nodes1D) Clone() Nodes1D {
	out := Nodes1D{
		T: make([]float64, len(n.T)),
		V: make([]float64, len(n.V)),
	}
	copy(out.T, n.T)
	copy(out.V, n.V)
	return out
}

// ValidateNodes 检查节点序列的全局不变量。
func ValidateNodes(n *Nodes1D) error {
	if len(n.T) != len(n.V) {
		return xerrors.ErrSizeMismatch
	}
	for i := range n.T {
		if !isFinite(n.T[i]) || !isFinite(n.V[i]) {
			return xerrors.ErrNonFinite
		}
		if i > 0 && !(n.T[i] > n.T[i-1]) {
			return xerrors.ErrNonMonotonic
		}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
