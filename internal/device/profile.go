// Package device supplies the active model configuration and the battery level.
package device

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

// Profile is read once per job; values may be stale.
type Profile interface {
	ModelConfiguration(ctx context.Context) (entity.ModelConfiguration, error)
	BatteryLevel(ctx context.Context) (int, error)
}

// FileProfile reads the model configuration from a YAML file on every call
// and the battery level from a sysfs capacity file.
type FileProfile struct {
	configPath      string
	batteryPath     string
	batteryOverride int // < 0 disables
	logger          *slog.Logger
}

var _ Profile = (*FileProfile)(nil)

func NewFileProfile(cfg common.DeviceConfig, logger *slog.Logger) *FileProfile {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileProfile{
		configPath:      cfg.ProfilePath,
		batteryPath:     cfg.BatteryPath,
		batteryOverride: cfg.BatteryOverride,
		logger:          logger,
	}
}

// ModelConfiguration parses and validates the YAML profile. Missing mode and
// quantization default to interactive and 4bit.
func (p *FileProfile) ModelConfiguration(_ context.Context) (entity.ModelConfiguration, error) {
	raw, err := os.ReadFile(p.configPath)
	if err != nil {
		return entity.ModelConfiguration{}, fmt.Errorf("read device profile: %w", err)
	}
	var mc entity.ModelConfiguration
	if err := yaml.Unmarshal(raw, &mc); err != nil {
		return entity.ModelConfiguration{}, fmt.Errorf("parse device profile: %w", err)
	}
	if mc.Mode == "" {
		mc.Mode = constants.ModeInteractive
	}
	if mc.Quantization == "" {
		mc.Quantization = constants.Quantization4Bit
	}
	if err := common.ValidateStruct(mc); err != nil {
		return entity.ModelConfiguration{}, fmt.Errorf("device profile %s: %w", p.configPath, err)
	}
	return mc, nil
}

// BatteryLevel returns the override when set, otherwise the sysfs reading
// clamped to 0..100.
func (p *FileProfile) BatteryLevel(_ context.Context) (int, error) {
	if p.batteryOverride >= 0 {
		return clamp(p.batteryOverride), nil
	}
	if p.batteryPath == "" {
		return 0, fmt.Errorf("no battery source configured")
	}
	raw, err := os.ReadFile(p.batteryPath)
	if err != nil {
		return 0, fmt.Errorf("read battery: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("parse battery %q: %w", strings.TrimSpace(string(raw)), err)
	}
	if n < 0 || n > 100 {
		p.logger.Warn("device.battery.out_of_range", "value", n)
	}
	return clamp(n), nil
}

func clamp(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}
