// Package bootstrap 提供了逐支柱的顺序曲线引导器.
//
// 每个支柱只求解曲线末节点这一个未知量，更早的支柱保持冻结，
// 整个问题因此退化为一串一维求根而非联立非线性方程组；
// 前提是报价工具已按到期日升序排列。
package bootstrap

import (
	"context"
	"math"
	"slices"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wyfcoding/ratecurve/bootstrap/metrics"
	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/curve"
	"github.com/wyfcoding/ratecurve/curvemath"
	"github.com/wyfcoding/ratecurve/logging"
	"github.com/wyfcoding/ratecurve/ratehelpers"
	"github.com/wyfcoding/ratecurve/rootfind"
	"github.com/wyfcoding/ratecurve/xerrors"
)

// Options 引导参数：求根器配置与贴现因子的括根区间。
type Options struct {
	Solver rootfind.Options
	DFMin  float64
	DFMax  float64
}

// DefaultOptions 返回默认引导参数。
func DefaultOptions() Options {
	return Options{
		Solver: rootfind.DefaultOptions(),
		DFMin:  1e-8,
		DFMax:  1.0,
	}
}

// CurveBootstrapper 顺序曲线引导器。引导期间独占持有曲线构建器，
// 成功后释放冻结的只读曲线；传入的 ctx 仅用于追踪与日志关联，不承载取消语义。
type CurveBootstrapper struct {
	logger  *logging.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New 创建引导器。logger 传 nil 则使用全局默认日志；m 传 nil 则不上报指标。
func New(logger *logging.Logger, m *metrics.Metrics) *CurveBootstrapper {
	if logger == nil {
		logger = logging.Default()
	}
	return &CurveBootstrapper{
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("ratecurve/bootstrap"),
	}
}

// BootstrapDiscountCurve 由 OIS 报价逐支柱引导贴现曲线。
// 报价工具按到期日稳定排序后依次处理：追加占位节点、求解该节点的贴现因子、提交。
func (cb *CurveBootstrapper) BootstrapDiscountCurve(
	ctx context.Context,
	asof calendar.Date,
	cfg curve.Config,
	helpers []*ratehelpers.OisSwapHelper,
	opts Options,
) (*curve.DiscountCurve, error) {
	ctx, span := cb.tracer.Start(ctx, "BootstrapDiscountCurve", trace.WithAttributes(
		attribute.Int("pillars", len(helpers)),
		attribute.String("day_count", cfg.DayCount.String()),
	))
	defer span.End()

	if len(helpers) == 0 {
		return nil, xerrors.ErrEmptyHelpers
	}

	sorted := slices.Clone(helpers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Maturity().Before(sorted[j].Maturity())
	})

	builder := curve.NewDiscountBuilder(asof, cfg)

	// 节点以 (t=0, df=1) 起步
	var nodes curvemath.Nodes1D
	if err := nodes.PushBack(0.0, 1.0); err != nil {
		return nil, err
	}

	for _, h := range sorted {
		ti := calendar.YearFraction(asof, h.Maturity(), cfg.DayCount)
		if !(ti > 0.0) {
			return nil, xerrors.ErrNonPositivePillar
		}

		// 占位节点：轻微衰减的初值，给插值器一个完整形状，取值由求解覆写
		guess := math.Exp(-0.02 * ti)
		if err := nodes.PushBack(ti, guess); err != nil {
			return nil, xerrors.Wrap(err, xerrors.ErrInvalidArgument, "bootstrap discount curve: add pillar node").
				WithContext("maturity", h.Maturity().ISO())
		}

		// 残差 f(df_i) = 隐含平价利率 - 市场报价；构建或回算失败以 NaN 上浮，交由求根器报错
		objective := func(dfi float64) float64 {
			trial := nodes.Clone()
			trial.V[len(trial.V)-1] = dfi

			if err := builder.SetNodes(trial); err != nil {
				return math.NaN()
			}

			implied, err := h.ImpliedParRate(builder)
			if err != nil {
				return math.NaN()
			}
			return implied - h.MarketQuote()
		}

		sol, err := rootfind.Brent(objective, opts.DFMin, opts.DFMax, opts.Solver)
		if err != nil {
			return nil, xerrors.Wrap(err, xerrors.ErrInvalidArgument, "bootstrap discount curve: pillar solve failed").
				WithContext("maturity", h.Maturity().ISO())
		}

		if err := nodes.SetLastValue(sol.Root); err != nil {
			return nil, err
		}
		if err := builder.SetNodes(nodes.Clone()); err != nil {
			return nil, err
		}

		cb.observePillar(ctx, "discount", h.Maturity(), ti, sol)
	}

	return builder.Freeze(), nil
}

// BootstrapForwardCurve 在给定贴现曲线下，由 FRA 与 IRS 报价逐支柱引导远期曲线。
// 曲线节点为伪贴现因子，残差按报价工具变体分派。
func (cb *CurveBootstrapper) BootstrapForwardCurve(
	ctx context.Context,
	asof calendar.Date,
	cfg curve.Config,
	disc *curve.DiscountCurve,
	helpers []ratehelpers.RateHelper,
	opts Options,
) (*curve.ForwardCurve, error) {
	ctx, span := cb.tracer.Start(ctx, "BootstrapForwardCurve", trace.WithAttributes(
		attribute.Int("pillars", len(helpers)),
		attribute.String("day_count", cfg.DayCount.String()),
	))
	defer span.End()

	if len(helpers) == 0 {
		return nil, xerrors.ErrEmptyHelpers
	}

	sorted := slices.Clone(helpers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Maturity().Before(sorted[j].Maturity())
	})

	builder := curve.NewForwardBuilder(asof, cfg)

	var nodes curvemath.Nodes1D
	if err := nodes.PushBack(0.0, 1.0); err != nil {
		return nil, err
	}

	for _, h := range sorted {
		ti := calendar.YearFraction(asof, h.Maturity(), cfg.DayCount)
		if !(ti > 0.0) {
			return nil, xerrors.ErrNonPositivePillar
		}

		guess := math.Exp(-0.02 * ti)
		if err := nodes.PushBack(ti, guess); err != nil {
			return nil, xerrors.Wrap(err, xerrors.ErrInvalidArgument, "bootstrap forward curve: add pillar node").
				WithContext("maturity", h.Maturity().ISO())
		}

		// 变体分派只在此处发生一次，残差闭包内不再做类型判断
		var implied func() (float64, error)
		switch v := h.(type) {
		case *ratehelpers.FraHelper:
			implied = func() (float64, error) { return v.ImpliedFraRate(builder) }
		case *ratehelpers.IrsHelper:
			implied = func() (float64, error) { return v.ImpliedParRate(disc, builder) }
		default:
			return nil, xerrors.ErrUnsupportedHelper
		}

		marketQuote := h.MarketQuote()
		objective := func(pfi float64) float64 {
			trial := nodes.Clone()
			trial.V[len(trial.V)-1] = pfi

			if err := builder.SetNodes(trial); err != nil {
				return math.NaN()
			}

			imp, err := implied()
			if err != nil {
				return math.NaN()
			}
			return imp - marketQuote
		}

		sol, err := rootfind.Brent(objective, opts.DFMin, opts.DFMax, opts.Solver)
		if err != nil {
			return nil, xerrors.Wrap(err, xerrors.ErrInvalidArgument, "bootstrap forward curve: pillar solve failed").
				WithContext("maturity", h.Maturity().ISO())
		}

		if err := nodes.SetLastValue(sol.Root); err != nil {
			return nil, err
		}
		if err := builder.SetNodes(nodes.Clone()); err != nil {
			return nil, err
		}

		cb.observePillar(ctx, "forward", h.Maturity(), ti, sol)
	}

	return builder.Freeze(), nil
}

// BootstrapDiscountCurve 使用默认引导器（全局日志、无指标）的包级便捷入口。
func BootstrapDiscountCurve(
	ctx context.Context,
	asof calendar.Date,
	cfg curve.Config,
	helpers []*ratehelpers.OisSwapHelper,
	opts Options,
) (*curve.DiscountCurve, error) {
	return New(nil, nil).BootstrapDiscountCurve(ctx, asof, cfg, helpers, opts)
}

// BootstrapForwardCurve 使用默认引导器的包级便捷入口。
func BootstrapForwardCurve(
	ctx context.Context,
	asof calendar.Date,
	cfg curve.Config,
	disc *curve.DiscountCurve,
	helpers []ratehelpers.RateHelper,
	opts Options,
) (*curve.ForwardCurve, error) {
	return New(nil, nil).BootstrapForwardCurve(ctx, asof, cfg, disc, helpers, opts)
}

// observePillar 输出单支柱求解的日志与指标。未收敛按既有行为提交最优迭代点并告警。
func (cb *CurveBootstrapper) observePillar(ctx context.Context, curveKind string, maturity calendar.Date, ti float64, sol rootfind.Result) {
	cb.metrics.ObservePillar(curveKind, sol.Iterations, sol.Converged)

	if !sol.Converged {
		cb.logger.WarnContext(ctx, "pillar solve hit iteration cap, committing best iterate",
			"curve", curveKind,
			"maturity", maturity.ISO(),
			"t", ti,
			"root", sol.Root,
			"residual", sol.FAtRoot,
			"iterations", sol.Iterations,
		)
		return
	}

	cb.logger.DebugContext(ctx, "pillar solved",
		"curve", curveKind,
		"maturity", maturity.ISO(),
		"t", ti,
		"root", sol.Root,
		"iterations", sol.Iterations,
	)
}
