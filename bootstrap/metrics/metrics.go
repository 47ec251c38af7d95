// Package metrics 提供了曲线引导过程的 Prometheus 监控指标.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 封装了引导器的求解诊断指标。
type Metrics struct {
	// PillarsSolved 已求解的支柱总数 (维度: curve)
	PillarsSolved *prometheus.CounterVec
	// SolveIterations 单支柱 Brent 迭代次数分布
	SolveIterations *prometheus.HistogramVec
	// NonConvergedSolves 达到迭代上限仍未收敛的求解次数
	NonConvergedSolves *prometheus.CounterVec
}

// New 初始化并注册引导器指标。
// 注册目标由调用方提供，传 nil 则使用 prometheus.DefaultRegisterer，
// 核心库不强制嵌入方使用全局注册表。
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		PillarsSolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ratecurve_bootstrap_pillars_solved_total",
			Help: "Total number of curve pillars solved",
		}, []string{"curve"}),
		SolveIterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ratecurve_bootstrap_solve_iterations",
			Help:    "Brent iterations per solved pillar",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 100},
		}, []string{"curve"}),
		NonConvergedSolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ratecurve_bootstrap_nonconverged_total",
			Help: "Total number of pillar solves that hit the iteration cap",
		}, []string{"curve"}),
	}

	reg.MustRegister(m.PillarsSolved, m.SolveIterations, m.NonConvergedSolves)
	return m
}

// ObservePillar 记录一次支柱求解。
func (m *Metrics) ObservePillar(curve string, iterations int, converged bool) {
	if m == nil {
		return
	}
	m.PillarsSolved.WithLabelValues(curve).Inc()
	m.SolveIterations.WithLabelValues(curve).Observe(float64(iterations))
	if !converged {
		m.NonConvergedSolves.WithLabelValues(curve).Inc()
	}
}
