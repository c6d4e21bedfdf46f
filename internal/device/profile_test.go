package device

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestModelConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "device.yaml", `
transcription_model: models/ggml-base.en-q5_0.bin
extraction_model: qwen2.5:0.5b
max_tokens: 384
`)
	p := NewFileProfile(common.DeviceConfig{ProfilePath: path, BatteryOverride: -1}, nil)
	mc, err := p.ModelConfiguration(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.ModelConfiguration{
		TranscriptionModel: "models/ggml-base.en-q5_0.bin",
		ExtractionModel:    "qwen2.5:0.5b",
		Quantization:       constants.Quantization4Bit,
		MaxTokens:          384,
		Mode:               constants.ModeInteractive,
	}, mc)

	// re-read per call
	writeFile(t, dir, "device.yaml", `
transcription_model: t.bin
extraction_model: e
quantization: 8bit
max_tokens: 128
mode: batch
`)
	mc, err = p.ModelConfiguration(context.Background())
	require.NoError(t, err)
	require.Equal(t, constants.ModeBatch, mc.Mode)
	require.Equal(t, constants.Quantization8Bit, mc.Quantization)
}

func TestModelConfigurationInvalid(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	p := NewFileProfile(common.DeviceConfig{ProfilePath: filepath.Join(dir, "absent.yaml")}, nil)
	_, err := p.ModelConfiguration(ctx)
	require.Error(t, err)

	p = NewFileProfile(common.DeviceConfig{ProfilePath: writeFile(t, dir, "bad.yaml", "max_tokens: [")}, nil)
	_, err = p.ModelConfiguration(ctx)
	require.Error(t, err)

	p = NewFileProfile(common.DeviceConfig{ProfilePath: writeFile(t, dir, "zero.yaml", "transcription_model: t\nextraction_model: e\nmax_tokens: 0\n")}, nil)
	_, err = p.ModelConfiguration(ctx)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestBatteryLevel(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		name     string
		cfg      common.DeviceConfig
		want     int
		hasError bool
	}{
		{"override", common.DeviceConfig{BatteryOverride: 20}, 20, false},
		{"sysfs", common.DeviceConfig{BatteryOverride: -1, BatteryPath: writeFile(t, dir, "cap", "87\n")}, 87, false},
		{"clamped", common.DeviceConfig{BatteryOverride: -1, BatteryPath: writeFile(t, dir, "cap2", "140")}, 100, false},
		{"garbage", common.DeviceConfig{BatteryOverride: -1, BatteryPath: writeFile(t, dir, "cap3", "full")}, 0, true},
		{"missing", common.DeviceConfig{BatteryOverride: -1, BatteryPath: filepath.Join(dir, "none")}, 0, true},
		{"unconfigured", common.DeviceConfig{BatteryOverride: -1}, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewFileProfile(tc.cfg, nil).BatteryLevel(ctx)
			if tc.hasError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
