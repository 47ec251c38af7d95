package xerrors

var (
	// ErrEmptyHelpers 报价工具列表为空。
	ErrEmptyHelpers = New(ErrInvalidArgument, 400101, "empty helpers", "at least one rate helper is required for bootstrapping", nil)
	// ErrNonFinite 输入含有 NaN 或 Inf。
	ErrNonFinite = New(ErrInvalidArgument, 400102, "non-finite input", "inputs must be finite floating point numbers", nil)
	// ErrNonMonotonic 时间轴非严格递增。
	ErrNonMonotonic = New(ErrInvalidArgument, 400103, "t must be strictly increasing", "node times must be strictly increasing", nil)
	// ErrSizeMismatch t 与 v 长度不一致。
	ErrSizeMismatch = New(ErrInvalidArgument, 400104, "t and v sizes differ", "node arrays must have equal length", nil)
	// ErrTooFewPoints 插值点数不足。
	ErrTooFewPoints = New(ErrInvalidArgument, 400105, "need at least 2 points", "interpolation requires two or more nodes", nil)
	// ErrNonPositiveValue 对数线性插值要求取值严格为正。
	ErrNonPositiveValue = New(ErrInvalidArgument, 400106, "y must be > 0", "log-linear interpolation requires positive ordinates", nil)
	// ErrNoNodes 节点序列为空。
	ErrNoNodes = New(ErrInvalidArgument, 400107, "no nodes", "operation requires a non-empty node sequence", nil)
	// ErrNotBracketed 求根区间未包含根。
	ErrNotBracketed = New(ErrInvalidArgument, 400108, "root not bracketed", "f(a)*f(b) must be <= 0", nil)
	// ErrNonPositiveAccrual 计息区间的年化期限非正。
	ErrNonPositiveAccrual = New(ErrInvalidArgument, 400109, "non-positive accrual tau", "accrual year fraction must be positive", nil)
	// ErrNonPositiveAnnuity 固定腿年金非正。
	ErrNonPositiveAnnuity = New(ErrInvalidArgument, 400110, "non-positive annuity", "fixed leg annuity must be positive", nil)
	// ErrNonPositivePillar 支柱时间非正。未严格递增的支柱时间由 ErrNonMonotonic 报告。
	ErrNonPositivePillar = New(ErrInvalidArgument, 400111, "non-positive pillar time", "pillar times must be positive and strictly increasing", nil)
	// ErrUnsupportedHelper 不支持的报价工具类型。
	ErrUnsupportedHelper = New(ErrInvalidArgument, 400112, "unsupported helper type", "forward bootstrap accepts FRA and IRS helpers only", nil)
	// ErrUnsupportedFrequency 不支持的付息频率。
	ErrUnsupportedFrequency = New(ErrInvalidArgument, 400113, "unsupported frequency", "supported: annual, semiannual, quarterly, monthly", nil)
	// ErrScheduleTooShort 生成的付息日程少于 2 个日期。
	ErrScheduleTooShort = New(ErrSchedule, 400114, "schedule has < 2 dates", "leg schedule must contain at least two dates", nil)
)
