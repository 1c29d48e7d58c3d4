package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateLifecycleConfig(t *testing.T) {
	assert.NoError(t, validateLifecycleConfig(DefaultLifecycleConfig()))

	cases := []struct {
		name string
		cfg  LifecycleConfig
	}{
		{"zero grace", LifecycleConfig{GracePeriodDays: 0, WarningOffsetDays: []int{7}, RunInterval: time.Hour}},
		{"no offsets", LifecycleConfig{GracePeriodDays: 7, WarningOffsetDays: nil, RunInterval: time.Hour}},
		{"negative offset", LifecycleConfig{GracePeriodDays: 7, WarningOffsetDays: []int{7, -1}, RunInterval: time.Hour}},
		{"zero interval", LifecycleConfig{GracePeriodDays: 7, WarningOffsetDays: []int{7}, RunInterval: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, validateLifecycleConfig(tc.cfg))
		})
	}
}

func TestStaticLifecycleConfigHolder(t *testing.T) {
	cfg := LifecycleConfig{GracePeriodDays: 3, WarningOffsetDays: []int{5, 2}, RunInterval: time.Minute}
	holder := NewStaticLifecycleConfigHolder(cfg)
	assert.Equal(t, cfg, holder.Get())
}
