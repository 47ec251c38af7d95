package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/logging"
)

const baseConfig = `version = "1"

[log]
level = "info"

[tracing]
service_name = "ratecurve"
otlp_endpoint = "localhost:4317"
enabled = false

[solver]
max_iter = 64
tol_abs = 1e-13
tol_rel = 1e-11

[bootstrap]
df_min = 1e-6
df_max = 0.999

[curves.discount]
day_count = "ACT/365F"
bdc = "modified_following"

[curves.forward]
day_count = "ACT/360"
bdc = "following"
`

const reloadedConfig = `version = "1"

[log]
level = "debug"

[solver]
max_iter = 64
tol_abs = 1e-13
tol_rel = 1e-11

[bootstrap]
df_min = 1e-6
df_max = 0.999

[curves.discount]
day_count = "ACT/365F"
bdc = "modified_following"

[curves.forward]
day_count = "ACT/360"
bdc = "following"
`

func TestLoadAndHotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(baseConfig), 0o644); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}

	var cfg Config
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Version != "1" {
		t.Errorf("version = %q, want 1", cfg.Version)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
	if cfg.Tracing.ServiceName != "ratecurve" || cfg.Tracing.OTLPEndpoint != "localhost:4317" {
		t.Errorf("tracing section mismatch: %+v", cfg.Tracing)
	}

	// 求根参数映射
	sopts := cfg.Solver.SolverOptions()
	if sopts.MaxIter != 64 || sopts.TolAbs != 1e-13 || sopts.TolRel != 1e-11 {
		t.Errorf("solver options = %+v", sopts)
	}

	// 引导参数映射
	bopts := cfg.BootstrapOptions()
	if bopts.DFMin != 1e-6 || bopts.DFMax != 0.999 {
		t.Errorf("bootstrap bracket = [%v, %v], want [1e-6, 0.999]", bopts.DFMin, bopts.DFMax)
	}
	if bopts.Solver.MaxIter != 64 {
		t.Errorf("bootstrap solver max iter = %d, want 64", bopts.Solver.MaxIter)
	}

	// 曲线约定映射
	if got := ParseDayCount(cfg.Curves.Discount.DayCount, calendar.ACT360); got != calendar.ACT365F {
		t.Errorf("discount day count = %v, want ACT/365F", got)
	}
	if got := ParseDayCount(cfg.Curves.Forward.DayCount, calendar.ACT365F); got != calendar.ACT360 {
		t.Errorf("forward day count = %v, want ACT/360", got)
	}
	if got := ParseBDC(cfg.Curves.Discount.BDC, calendar.Following); got != calendar.ModifiedFollowing {
		t.Errorf("discount bdc = %v, want ModifiedFollowing", got)
	}
	if got := ParseBDC(cfg.Curves.Forward.BDC, calendar.ModifiedFollowing); got != calendar.Following {
		t.Errorf("forward bdc = %v, want Following", got)
	}

	if got := GetViper().GetString("version"); got != "1" {
		t.Errorf("viper version = %q, want 1", got)
	}
	PrintWithMask(&cfg)

	// 热更新：文件改为 debug 级别后，回调应同步全局日志级别
	logger := logging.NewFromConfig(logging.Config{
		Service: "ratecurve",
		Module:  "config-test",
		Level:   cfg.Log.Level,
	})
	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Fatal("debug logging should be disabled before reload")
	}

	reloaded := make(chan *Config, 1)
	RegisterReloadHook(func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})

	if err := os.WriteFile(path, []byte(reloadedConfig), 0o644); err != nil {
		t.Fatalf("rewrite fixture failed: %v", err)
	}

	select {
	case c := <-reloaded:
		if c.Log.Level != "debug" {
			t.Errorf("reloaded log level = %q, want debug", c.Log.Level)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("config reload not observed")
	}

	// 回调触发前 SetLevel 已执行
	if !logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug logging should be enabled after reload")
	}
}

func TestParseConventionFallbacks(t *testing.T) {
	if got := ParseDayCount("", calendar.Thirty360US); got != calendar.Thirty360US {
		t.Errorf("empty day count should fall back, got %v", got)
	}
	if got := ParseDayCount("30/360US", calendar.ACT360); got != calendar.Thirty360US {
		t.Errorf("30/360US parse = %v", got)
	}
	if got := ParseBDC("", calendar.Preceding); got != calendar.Preceding {
		t.Errorf("empty bdc should fall back, got %v", got)
	}
	if got := ParseBDC("preceding", calendar.Following); got != calendar.Preceding {
		t.Errorf("preceding parse = %v", got)
	}
}
