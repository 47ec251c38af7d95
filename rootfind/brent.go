// Package rootfind 提供了区间括根前提下的一维标量求根器.
package rootfind

import (
	"math"

	"github.com/wyfcoding/ratecurve/xerrors"
)

// Options 求根器的迭代与容差参数。
type Options struct {
	MaxIter int
	TolAbs  float64
	TolRel  float64
}

// DefaultOptions 返回默认求根参数。
func DefaultOptions() Options {
	return Options{
		MaxIter: 100,
		TolAbs:  1e-12,
		TolRel:  1e-10,
	}
}

// Result 求根结果。达到迭代上限未收敛时 Converged 为 false，Root 为当前最优迭代点。
type Result struct {
	Root       float64
	Iterations int
	FAtRoot    float64
	Converged  bool
}

// Brent 在区间 [a, b] 上求解 f(x)=0，要求 a < b 且 f(a)*f(b) <= 0。
// 标准 Brent 算法：逆二次插值、割线法与二分法的组合，每步保持括根区间。
// 迭代中 f 返回非有限值视为参数错误；达到迭代上限不视为错误，返回最优迭代点。
func Brent(f func(float64) float64, a, b float64, opts Options) (Result, error) {
	if !(a < b) {
		return Result{}, xerrors.InvalidArgument("brent: require a < b")
	}

	fa := f(a)
	fb := f(b)
	if !isFinite(fa) || !isFinite(fb) {
		return Result{}, xerrors.ErrNonFinite
	}
	if fa == 0.0 {
		return Result{Root: a, Iterations: 0, FAtRoot: fa, Converged: true}, nil
	}
	if fb == 0.0 {
		return Result{Root: b, Iterations: 0, FAtRoot: fb, Converged: true}, nil
	}

	if fa*fb > 0.0 {
		return Result{}, xerrors.ErrNotBracketed
	}

	c := a
	fc := fa

	d := b - a
	e := d

	for iter := 1; iter <= opts.MaxIter; iter++ {
		// 保持 |f(b)| <= |f(c)|
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := math.Max(opts.TolAbs, opts.TolRel*math.Abs(b))
		m := 0.5 * (c - b)

		if math.Abs(m) <= tol || fb == 0.0 {
			return Result{Root: b, Iterations: iter, FAtRoot: fb, Converged: true}, nil
		}

		p, q := 0.0, 1.0
		useInterp := false

		if math.Abs(e) > tol && math.Abs(fa) > math.Abs(fb) {
			// 尝试插值步
			useInterp = true
			s := fb / fa

			if a == c {
				// 割线法
				p = 2.0 * m * s
				q = 1.0 - s
			} else {
				// 逆二次插值
				r := fb / fc
				t := fa / fc
				p = s * (2.0*m*t*(t-r) - (b-a)*(r-1.0))
				q = (t - 1.0) * (r - 1.0) * (s - 1.0)
			}

			if p > 0.0 {
				q = -q
			}
			p = math.Abs(p)

			// 插值步的可接受性检查
			min1 := 3.0*m*q - math.Abs(tol*q)
			min2 := math.Abs(e * q)

			if !(2.0*p < math.Min(min1, min2)) {
				useInterp = false
			}
		}

		if !useInterp {
			// 二分
			d = m
			e = m
		} else {
			e = d
			d = p / q
		}

		a = b
		fa = fb

		if math.Abs(d) > tol {
			b += d
		} else if m > 0 {
			b += tol
		} else {
			b -= tol
		}

		fb = f(b)
		if !isFinite(fb) {
			return Result{}, xerrors.ErrNonFinite
		}

		// 维持括根区间
		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c = a
			fc = fa
			d = b - a
			e = d
		}
	}

	// 达到迭代上限：返回当前最优迭代点，由调用方决定如何处置
	return Result{Root: b, Iterations: opts.MaxIter, FAtRoot: fb, Converged: false}, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
