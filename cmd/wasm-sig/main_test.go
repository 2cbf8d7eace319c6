package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-introspect/errors"
	"github.com/wippyai/wasm-introspect/introspect"
	"github.com/wippyai/wasm-introspect/wasm"
)

func testModule(t *testing.T) string {
	t.Helper()
	data := (&wasm.Builder{
		Types: []wasm.FuncType{
			{Params: []wasm.ValType{wasm.ValI32, wasm.ValI32}, Results: []wasm.ValType{wasm.ValI32}},
			{},
		},
		Imports: []wasm.Import{{Module: "env", Name: "tick", Kind: wasm.KindFunc, TypeIdx: 1}},
		Funcs:   []uint32{0},
		Exports: []wasm.Export{
			{Name: "tick", Kind: wasm.KindFunc, Index: 0},
			{Name: "add", Kind: wasm.KindFunc, Index: 1},
		},
		Code: [][]byte{{0x00, 0x20, 0x00, 0x20, 0x01, 0x6a, 0x0b}},
	}).Encode()

	path := filepath.Join(t.TempDir(), "test.wasm")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandResolvesNamesInOrder(t *testing.T) {
	out, err := execute(t, testModule(t), "missing", "add", "tick")
	require.NoError(t, err)
	require.Equal(t,
		"missing: (not exported)\n"+
			"add: funcidx=1 typeidx=0 (i32, i32) -> (i32)\n"+
			"tick: funcidx=0 (imported, signature unavailable)\n",
		out)
}

func TestCommandListsAllByDefault(t *testing.T) {
	out, err := execute(t, testModule(t))
	require.NoError(t, err)
	require.Equal(t,
		"tick: funcidx=0 (imported, signature unavailable)\n"+
			"add: funcidx=1 typeidx=0 (i32, i32) -> (i32)\n",
		out)

	all, err := execute(t, "--all", testModule(t), "add")
	require.NoError(t, err)
	require.Equal(t, out, all)
}

func TestCommandVerify(t *testing.T) {
	out, err := execute(t, "--verify", testModule(t), "add")
	require.NoError(t, err)
	require.Equal(t, "add: funcidx=1 typeidx=0 (i32, i32) -> (i32)\n", out)
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)

	_, err = execute(t, filepath.Join(t.TempDir(), "absent.wasm"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.wasm")
	require.NoError(t, os.WriteFile(bad, []byte("\x00asx\x01\x00\x00\x00"), 0o644))
	_, err = execute(t, bad)
	require.True(t, errors.IsKind(err, errors.KindInvalidModule), "got %v", err)
}

func TestCommandVerbose(t *testing.T) {
	_, err := execute(t, "-v", testModule(t), "add")
	require.NoError(t, err)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func loadedModel(t *testing.T) *interactiveModel {
	t.Helper()
	m := newInteractiveModel(testModule(t))
	msg := m.loadModule()
	loaded, ok := msg.(loadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	m.Update(msg)
	return m
}

func TestInteractiveBrowse(t *testing.T) {
	m := loadedModel(t)
	require.Len(t, m.visible, 2)
	require.Equal(t, uint32(1), m.imports)

	view := m.View()
	require.Contains(t, view, "2 function exports, 1 imported functions")
	require.Contains(t, view, "tick: funcidx=0 (imported, signature unavailable)")

	m.Update(key("down"))
	f, ok := m.current()
	require.True(t, ok)
	require.Equal(t, "add", f.Name)

	m.Update(key("enter"))
	require.Equal(t, stateDetail, m.state)
	view = m.View()
	require.Contains(t, view, "type index      0")
	require.Contains(t, view, "u32")

	m.Update(key("esc"))
	require.Equal(t, stateBrowse, m.state)
}

func TestInteractiveFilter(t *testing.T) {
	m := loadedModel(t)

	m.Update(key("/"))
	require.Equal(t, stateFilter, m.state)
	m.Update(key("a"))
	m.Update(key("d"))
	require.Equal(t, "ad", m.filter.Value())
	require.Len(t, m.visible, 1)

	// q is filter text while filtering, not quit
	m.Update(key("q"))
	require.Empty(t, m.visible)
	require.Contains(t, m.View(), "no matching function exports")

	m.Update(key("esc"))
	require.Equal(t, stateBrowse, m.state)
	require.Len(t, m.visible, 2)
}

func TestInteractiveLoadError(t *testing.T) {
	m := newInteractiveModel(filepath.Join(t.TempDir(), "absent.wasm"))
	require.Equal(t, "Loading module...", m.View())

	m.Update(m.loadModule())
	require.Contains(t, m.View(), "Error:")
}

func TestLiftCandidates(t *testing.T) {
	require.Equal(t, []string{"bool", "u8", "s8", "u16", "s16", "u32", "s32", "char"}, liftCandidates("i32"))
	require.Equal(t, []string{"u64", "s64"}, liftCandidates("i64"))
	require.Equal(t, []string{"f64"}, liftCandidates("f64"))
	require.Equal(t, []string{"f32"}, liftCandidates("f32"))
	require.Empty(t, liftCandidates("funcref"))
}

func TestLiftCandidatesFlattenToCoreType(t *testing.T) {
	for _, core := range []string{"i32", "i64", "f32", "f64"} {
		for _, name := range liftCandidates(core) {
			p, err := wit.ParseType(name)
			require.NoError(t, err)
			flat := p.Flat()
			require.Len(t, flat, 1, name)
			require.Equal(t, core, flatCoreType(flat[0]), name)
		}
	}
	require.Empty(t, flatCoreType(wit.String{}))
}

func TestDetailViewImported(t *testing.T) {
	view := detailView(introspect.Result{Name: "tick", Status: introspect.ImportedFunctionExport})
	require.Contains(t, view, "imported function, signature not available")
}
