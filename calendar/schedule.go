package calendar

// ScheduleConfig 付息日程的生成参数。
type ScheduleConfig struct {
	Start      Date
	End        Date
	Tenor      Tenor
	Calendar   Calendar
	BDC        BusinessDayConvention
	Rule       DateGenerationRule
	EndOfMonth bool
}

// Schedule 调整后的日期序列，严格递增，首尾分别为调整后的起始日与到期日。
type Schedule struct {
	Dates []Date
}

// maxScheduleSteps 防止期限配置异常时的死循环。
const maxScheduleSteps = 1024

// MakeSchedule 生成付息日程。
// Backward 规则每次都从原始到期日倒推 i 个期限，而不是从上一个生成日倒推，
// 整月期限下两者等价。Tenor.N 为零时退化为 [起始日, 到期日]。
func MakeSchedule(cfg ScheduleConfig) Schedule {
	var sched Schedule
	if cfg.Start.After(cfg.End) {
		return sched
	}

	cal := cfg.Calendar
	t := cfg.Tenor
	if t.N == 0 {
		sched.Dates = append(sched.Dates, cal.Adjust(cfg.Start, cfg.BDC))
		if !cfg.End.Equal(cfg.Start) {
			sched.Dates = append(sched.Dates, cal.Adjust(cfg.End, cfg.BDC))
		}
		return sched
	}

	var tmp []Date

	if cfg.Rule == Backward {
		tmp = append(tmp, cal.Adjust(cfg.End, cfg.BDC))
		for i := 1; i < maxScheduleSteps; i++ {
			neg := Tenor{N: -t.N * i, Unit: t.Unit}
			next := cal.Advance(cfg.End, neg, cfg.BDC)
			if next.Before(cfg.Start) {
				break
			}
			tmp = append(tmp, next)
			if next.Equal(cfg.Start) {
				break
			}
		}
		// 确保起始日在列
		if len(tmp) == 0 || !tmp[len(tmp)-1].Equal(cfg.Start) {
			tmp = append(tmp, cal.Adjust(cfg.Start, cfg.BDC))
		}
		reverseDates(tmp)
	} else {
		tmp = append(tmp, cal.Adjust(cfg.Start, cfg.BDC))
		for i := 1; i < maxScheduleSteps; i++ {
			pos := Tenor{N: t.N * i, Unit: t.Unit}
			next := cal.Advance(cfg.Start, pos, cfg.BDC)
			if next.After(cfg.End) {
				break
			}
			tmp = append(tmp, next)
			if next.Equal(cfg.End) {
				break
			}
		}
		if len(tmp) == 0 || !tmp[len(tmp)-1].Equal(cfg.End) {
			tmp = append(tmp, cal.Adjust(cfg.End, cfg.BDC))
		}
	}

	sched.Dates = dedupAdjacent(tmp)
	return sched
}

func reverseDates(dates []Date) {
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
}

func dedupAdjacent(dates []Date) []Date {
	if len(dates) == 0 {
		return dates
	}
	out := dates[:1]
	for _, d := range dates[1:] {
		if !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}
