package config

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// LifecycleConfig tunes the subscription lifecycle engine.
type LifecycleConfig struct {
	// GracePeriodDays is applied when a subscription row carries no explicit
	// grace period of its own.
	GracePeriodDays int `mapstructure:"gracePeriodDays"`
	// WarningOffsetDays are the pre-expiry offsets (in days) at which an
	// expiry warning notification is emitted.
	WarningOffsetDays []int         `mapstructure:"warningOffsetDays"`
	RunInterval       time.Duration `mapstructure:"runInterval"`
}

func DefaultLifecycleConfig() LifecycleConfig {
	return LifecycleConfig{
		GracePeriodDays:   7,
		WarningOffsetDays: []int{7, 3, 1},
		RunInterval:       time.Hour,
	}
}

// LifecycleConfigHolder serves the current lifecycle config and hot-reloads it
// when the backing file changes.
type LifecycleConfigHolder struct {
	current atomic.Value // holds LifecycleConfig
}

func NewLifecycleConfigHolder(log *zap.Logger) (*LifecycleConfigHolder, error) {
	log = log.Named("lifecycle.config")
	v := viper.New()

	v.SetConfigName("lifecycle")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/quickmemo/config") // Volume-mounted config
	v.AddConfigPath("/etc/quickmemo")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("QUICKMEMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultLifecycleConfig()
	v.SetDefault("lifecycle.gracePeriodDays", defaults.GracePeriodDays)
	v.SetDefault("lifecycle.warningOffsetDays", defaults.WarningOffsetDays)
	v.SetDefault("lifecycle.runInterval", defaults.RunInterval)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg LifecycleConfig
	if err := v.UnmarshalKey("lifecycle", &cfg); err != nil {
		return nil, err
	}
	if err := validateLifecycleConfig(cfg); err != nil {
		return nil, err
	}

	holder := &LifecycleConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated LifecycleConfig
		if err := v.UnmarshalKey("lifecycle", &updated); err != nil {
			log.Warn("reload failed", zap.String("file", e.Name), zap.Error(err))
			return
		}
		if err := validateLifecycleConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded",
			zap.String("file", e.Name),
			zap.Int("grace_period_days", updated.GracePeriodDays),
			zap.Ints("warning_offset_days", updated.WarningOffsetDays),
		)
	})

	return holder, nil
}

// NewStaticLifecycleConfigHolder wraps a fixed config with no file watching.
func NewStaticLifecycleConfigHolder(cfg LifecycleConfig) *LifecycleConfigHolder {
	holder := &LifecycleConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *LifecycleConfigHolder) Get() LifecycleConfig {
	return h.current.Load().(LifecycleConfig)
}

func validateLifecycleConfig(cfg LifecycleConfig) error {
	if cfg.GracePeriodDays <= 0 {
		return errors.New("lifecycle.gracePeriodDays must be positive")
	}
	if len(cfg.WarningOffsetDays) == 0 {
		return errors.New("lifecycle.warningOffsetDays cannot be empty")
	}
	for _, offset := range cfg.WarningOffsetDays {
		if offset <= 0 {
			return errors.New("lifecycle.warningOffsetDays must be positive")
		}
	}
	if cfg.RunInterval <= 0 {
		return errors.New("lifecycle.runInterval must be positive")
	}
	return nil
}
