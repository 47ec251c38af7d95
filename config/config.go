// Package config 提供了统一的配置加载与管理能力.
// 生成摘要:
// 1) 曲线引导参数（求根容差、括根区间）支持 TOML 配置与热更新。
// 2) 曲线默认约定（计息基准、调整规则）集中配置。
// 3) 配置变更时自动同步全局日志级别。
// 假设:
// 1) 远程日志为可选配置，默认关闭。
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/wyfcoding/ratecurve/bootstrap"
	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/logging"
	"github.com/wyfcoding/ratecurve/rootfind"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 全局顶级配置结构.
type Config struct {
	Version   string          `mapstructure:"version"   toml:"version"`
	Log       LogConfig       `mapstructure:"log"       toml:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"   toml:"tracing"`
	Metrics   MetricsConfig   `mapstructure:"metrics"   toml:"metrics"`
	Solver    SolverConfig    `mapstructure:"solver"    toml:"solver"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap" toml:"bootstrap"`
	Curves    CurvesConfig    `mapstructure:"curves"    toml:"curves"`
}

// LogConfig 定义日志输出、级别与切割策略.
type LogConfig struct {
	Level      string          `mapstructure:"level"       toml:"level"`       // 日志级别。
	File       string          `mapstructure:"file"        toml:"file"`        // 日志文件路径。
	MaxSize    int             `mapstructure:"max_size"    toml:"max_size"`    // 单个文件最大大小 (MB)。
	MaxBackups int             `mapstructure:"max_backups" toml:"max_backups"` // 最大备份数。
	MaxAge     int             `mapstructure:"max_age"     toml:"max_age"`     // 最大保留天数。
	Compress   bool            `mapstructure:"compress"    toml:"compress"`    // 是否启用压缩。
	Remote     RemoteLogConfig `mapstructure:"remote"      toml:"remote"`      // 远程日志写入配置。
}

// RemoteLogConfig 定义远程日志写入配置.
type RemoteLogConfig struct {
	Enabled       bool          `mapstructure:"enabled"        toml:"enabled"`
	Endpoint      string        `mapstructure:"endpoint"       toml:"endpoint"`
	AuthToken     string        `mapstructure:"auth_token"     toml:"auth_token"`
	Timeout       time.Duration `mapstructure:"timeout"        toml:"timeout"`
	BatchSize     int           `mapstructure:"batch_size"     toml:"batch_size"`
	BufferSize    int           `mapstructure:"buffer_size"    toml:"buffer_size"`
	FlushInterval time.Duration `mapstructure:"flush_interval" toml:"flush_interval"`
	DropOnFull    bool          `mapstructure:"drop_on_full"   toml:"drop_on_full"`
}

// TracingConfig 定义分布式追踪上报参数.
type TracingConfig struct {
	ServiceName  string `mapstructure:"service_name"  toml:"service_name"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint" toml:"otlp_endpoint"`
	Enabled      bool   `mapstructure:"enabled"       toml:"enabled"`
}

// MetricsConfig 定义指标采集开关.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path"    toml:"path"`
}

// SolverConfig 定义求根器的迭代与容差参数.
type SolverConfig struct {
	MaxIter int     `mapstructure:"max_iter" toml:"max_iter" validate:"omitempty,min=1"`
	TolAbs  float64 `mapstructure:"tol_abs"  toml:"tol_abs"  validate:"omitempty,gt=0"`
	TolRel  float64 `mapstructure:"tol_rel"  toml:"tol_rel"  validate:"omitempty,gt=0"`
}

// BootstrapConfig 定义引导过程中贴现因子的括根区间.
type BootstrapConfig struct {
	DFMin float64 `mapstructure:"df_min" toml:"df_min" validate:"omitempty,gt=0"`
	DFMax float64 `mapstructure:"df_max" toml:"df_max" validate:"omitempty,gtfield=DFMin"`
}

// CurvesConfig 定义两条曲线的默认约定.
type CurvesConfig struct {
	Discount CurveConfig `mapstructure:"discount" toml:"discount"`
	Forward  CurveConfig `mapstructure:"forward"  toml:"forward"`
}

// CurveConfig 单条曲线的日期换算基准与调整规则.
type CurveConfig struct {
	DayCount string `mapstructure:"day_count" toml:"day_count" validate:"omitempty,oneof=ACT/360 ACT/365F 30/360US"`
	BDC      string `mapstructure:"bdc"       toml:"bdc"       validate:"omitempty,oneof=following modified_following preceding"`
}

// SolverOptions 将配置转换为求根器参数，缺省项落到默认值。
func (c SolverConfig) SolverOptions() rootfind.Options {
	opts := rootfind.DefaultOptions()
	if c.MaxIter > 0 {
		opts.MaxIter = c.MaxIter
	}
	if c.TolAbs > 0 {
		opts.TolAbs = c.TolAbs
	}
	if c.TolRel > 0 {
		opts.TolRel = c.TolRel
	}
	return opts
}

// BootstrapOptions 将配置组装为引导参数。
func (c *Config) BootstrapOptions() bootstrap.Options {
	opts := bootstrap.DefaultOptions()
	opts.Solver = c.Solver.SolverOptions()
	if c.Bootstrap.DFMin > 0 {
		opts.DFMin = c.Bootstrap.DFMin
	}
	if c.Bootstrap.DFMax > 0 {
		opts.DFMax = c.Bootstrap.DFMax
	}
	return opts
}

// ParseDayCount 解析配置中的计息基准字符串，未配置时返回给定默认值。
func ParseDayCount(s string, fallback calendar.DayCount) calendar.DayCount {
	switch s {
	case "ACT/360":
		return calendar.ACT360
	case "ACT/365F":
		return calendar.ACT365F
	case "30/360US":
		return calendar.Thirty360US
	default:
		return fallback
	}
}

// ParseBDC 解析配置中的调整规则字符串，未配置时返回给定默认值。
func ParseBDC(s string, fallback calendar.BusinessDayConvention) calendar.BusinessDayConvention {
	switch s {
	case "following":
		return calendar.Following
	case "modified_following":
		return calendar.ModifiedFollowing
	case "preceding":
		return calendar.Preceding
	default:
		return fallback
	}
}

var vInstance = viper.New()
var onReload []func(*Config)

// RegisterReloadHook 注册配置热更新回调。
func RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	onReload = append(onReload, hook)
}

// Load 全生产级的配置加载逻辑.
func Load(path string, conf any) error {
	vInstance.SetConfigFile(path)
	vInstance.SetConfigType("toml")

	vInstance.SetEnvPrefix("RATECURVE")
	vInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vInstance.AutomaticEnv()

	if err := vInstance.ReadInConfig(); err != nil {
		return fmt.Errorf("read config error: %w", err)
	}

	if err := vInstance.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	vInstance.WatchConfig()
	vInstance.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name)
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)

		if unmarshalErr := vInstance.Unmarshal(conf); unmarshalErr != nil {
			slog.Error("reload config unmarshal failed", "error", unmarshalErr)

			return
		}

		// 核心优化：如果配置中有日志级别，自动更新全局日志级别
		if c, ok := conf.(*Config); ok {
			logging.SetLevel(c.Log.Level)
		} else {
			// 尝试使用反射获取 Log.Level
			val := reflect.ValueOf(conf)
			if val.Kind() == reflect.Ptr {
				val = val.Elem()
			}
			logField := val.FieldByName("Log")
			if logField.IsValid() {
				levelField := logField.FieldByName("Level")
				if levelField.IsValid() && levelField.Kind() == reflect.String {
					logging.SetLevel(levelField.String())
				}
			}
		}

		if validateErr := validate.Struct(conf); validateErr != nil {
			slog.Error("reload config validation failed", "error", validateErr)
		} else {
			slog.Info("config hot-reloaded and validated successfully")
		}

		if cfg, ok := conf.(*Config); ok {
			for _, hook := range onReload {
				hook(cfg)
			}
		}
	})

	return nil
}

// PrintWithMask 脱敏打印当前配置.
func PrintWithMask(conf any) {
	data, err := json.Marshal(conf)
	if err != nil {
		slog.Error("failed to marshal config for printing", "error", err)

		return
	}

	var configMap map[string]any
	if unmarshalErr := json.Unmarshal(data, &configMap); unmarshalErr != nil {
		slog.Error("failed to unmarshal config for masking", "error", unmarshalErr)

		return
	}

	mask(configMap)

	maskedJSON, marshalErr := json.MarshalIndent(configMap, "  ", "  ")
	if marshalErr != nil {
		slog.Error("failed to marshal masked config", "error", marshalErr)

		return
	}

	slog.Info("Current effective configuration", "config", string(maskedJSON))
}

func mask(configMap map[string]any) {
	sensitiveKeys := []string{"password", "secret", "dsn", "key", "token"}

	for key, val := range configMap {
		if subMap, ok := val.(map[string]any); ok {
			mask(subMap)

			continue
		}

		if slice, ok := val.([]any); ok {
			for _, item := range slice {
				if itemMap, ok := item.(map[string]any); ok {
					mask(itemMap)
				}
			}

			continue
		}

		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(strings.ToLower(key), sensitiveKey) {
				configMap[key] = "******"

				break
			}
		}
	}
}

// GetViper 返回底层的 Viper 实例.
func GetViper() *viper.Viper {
	return vInstance
}
