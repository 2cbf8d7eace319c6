package wasm_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/wasm-introspect/wasm"
)

func observeLogs(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	wasm.SetLogger(zap.New(core))
	t.Cleanup(func() { wasm.SetLogger(nil) })
	return logs
}

func TestParseWarnsOnDuplicateSection(t *testing.T) {
	logs := observeLogs(t, zapcore.WarnLevel)

	first := (&wasm.Builder{Exports: []wasm.Export{{Name: "first", Kind: wasm.KindFunc}}}).Encode()
	second := (&wasm.Builder{Exports: []wasm.Export{{Name: "second", Kind: wasm.KindFunc}}}).Encode()
	mustParse(t, append(first, second[wasm.HeaderSize:]...))

	entries := logs.FilterMessage("duplicate section, using first occurrence").All()
	require.Len(t, entries, 1)
	require.Equal(t, "export", entries[0].ContextMap()["section"])
}

func TestScanLogsSectionsAtDebug(t *testing.T) {
	logs := observeLogs(t, zapcore.DebugLevel)

	secs, err := wasm.ScanSections(addModule())
	require.NoError(t, err)
	require.Equal(t, len(secs), logs.FilterMessage("section").Len())
}

func TestScanSkipsSectionLogsAboveDebug(t *testing.T) {
	logs := observeLogs(t, zapcore.InfoLevel)

	_, err := wasm.ScanSections(addModule())
	require.NoError(t, err)
	require.Zero(t, logs.Len())
}

func TestSetLoggerNilRestoresNop(t *testing.T) {
	observeLogs(t, zapcore.DebugLevel)
	wasm.SetLogger(nil)
	require.NotNil(t, wasm.Logger())
	require.False(t, wasm.Logger().Core().Enabled(zapcore.ErrorLevel))
}
