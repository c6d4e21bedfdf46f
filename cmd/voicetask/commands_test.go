package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNormalizeCommand(t *testing.T) {
	out, err := run(t, "", "normalize", "um", "buy", "milk")
	require.NoError(t, err)
	require.Equal(t, "Buy milk.\n", out)

	out, err = run(t, "  um   buy milk ", "normalize", "--partial")
	require.NoError(t, err)
	require.Equal(t, "um buy milk\n", out)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, `{"tasks":[{"title":"Buy milk","priority":"URGENT"}]}`, "validate")
	require.NoError(t, err)
	var res entity.ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.True(t, res.Validated)
	require.Equal(t, "high", string(res.Tasks[0].Priority))

	out, err = run(t, "", "validate", "--input", "buy milk", "nope")
	require.NoError(t, err)
	res = entity.ExtractionResult{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.False(t, res.Validated)
	require.Equal(t, "buy milk", *res.FallbackTranscript)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("", "from")
	require.NoError(t, err)
	require.Nil(t, d)

	d, err = parseDate("2026-03-01", "from")
	require.NoError(t, err)
	require.Equal(t, 2026, d.Year())

	_, err = parseDate("03/01/2026", "to")
	require.ErrorContains(t, err, "--to")
}

func TestProcessRejectsBadMode(t *testing.T) {
	_, err := run(t, "", "process", "--mode", "turbo", "memo.wav")
	require.ErrorContains(t, err, "invalid --mode")
}
