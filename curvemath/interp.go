package curvemath

import (
	"math"
	"sort"

	"github.com/wyfcoding/ratecurve/xerrors"
)

// Interp1DData 插值器的构造输入。不变量：至少 2 个点、x 严格递增、全部有限。
type Interp1DData struct {
	X []float64
	Y []float64
}

// ValidateXY 检查插值输入的不变量。
func ValidateXY(data Interp1DData) error {
	if len(data.X) != len(data.Y) {
		return xerrors.ErrSizeMismatch
	}
	if len(data.X) < 2 {
		return xerrors.ErrTooFewPoints
	}
	for i := range data.X {
		if !isFinite(data.X[i]) || !isFinite(data.Y[i]) {
			return xerrors.ErrNonFinite
		}
		if i > 0 && !(data.X[i] > data.X[i-1]) {
			return xerrors.ErrNonMonotonic
		}
	}
	return nil
}

// LinearInterpolator 线性插值器，定义域外平直外推。
type LinearInterpolator struct {
	xs []float64
	ys []float64
}

// NewLinearInterpolator 校验输入并构造线性插值器。
func NewLinearInterpolator(data Interp1DData) (*LinearInterpolator, error) {
	if err := ValidateXY(data); err != nil {
		return nil, err
	}
	return &LinearInterpolator{xs: data.X, ys: data.Y}, nil
}

// Value 求 x 处的插值。x 落在定义域外时返回端点值。
func (li *LinearInterpolator) Value(x float64) float64 {
	if x <= li.xs[0] {
		return li.ys[0]
	}
	if x >= li.xs[len(li.xs)-1] {
		return li.ys[len(li.ys)-1]
	}

	k := locateInterval(li.xs, x)

	x0, x1 := li.xs[k], li.xs[k+1]
	y0, y1 := li.ys[k], li.ys[k+1]

	w := (x - x0) / (x1 - x0)
	return y0 + w*(y1-y0)
}

// LogLinearInterpolator 对数线性插值器：纵标取对数后线性插值再取指数。
// 构造时要求所有 y 严格为正；定义域外仍为平直外推（返回端点原值而非外推对数的指数）。
type LogLinearInterpolator struct {
	xs     []float64
	logYs  []float64
	yFirst float64
	yLast  float64
}

// NewLogLinearInterpolator 校验输入并构造对数线性插值器，预先计算 ln(y)。
func NewLogLinearInterpolator(data Interp1DData) (*LogLinearInterpolator, error) {
	if err := ValidateXY(data); err != nil {
		return nil, err
	}
	for _, y := range data.Y {
		if !(y > 0.0) {
			return nil, xerrors.ErrNonPositiveValue
		}
	}

	logYs := make([]float64, len(data.Y))
	for i, y := range data.Y {
		logYs[i] = math.Log(y)
	}

	return &LogLinearInterpolator{
		xs:     data.X,
		logYs:  logYs,
		yFirst: data.Y[0],
		yLast:  data.Y[len(data.Y)-1],
	}, nil
}

// Value 求 x 处的插值，结果严格为正。
func (li *LogLinearInterpolator) Value(x float64) float64 {
	if x <= li.xs[0] {
		return li.yFirst
	}
	if x >= li.xs[len(li.xs)-1] {
		return li.yLast
	}

	k := locateInterval(li.xs, x)

	x0, x1 := li.xs[k], li.xs[k+1]
	ly0, ly1 := li.logYs[k], li.logYs[k+1]

	w := (x - x0) / (x1 - x0)
	return math.Exp(ly0 + w*(ly1-ly0))
}

// locateInterval 二分定位包含 x 的区间 [xs[k], xs[k+1]]。调用方保证 x 在开定义域内。
func locateInterval(xs []float64, x float64) int {
	k := sort.SearchFloat64s(xs, x) - 1
	if k < 0 {
		k = 0
	}
	return k
}
