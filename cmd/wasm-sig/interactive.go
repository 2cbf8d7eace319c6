package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-introspect/introspect"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
	stateDetail
)

type interactiveModel struct {
	err      error
	filename string
	funcs    []introspect.Result
	visible  []int
	filter   textinput.Model
	selected int
	imports  uint32
	loaded   bool
	state    modelState
}

type loadedMsg struct {
	err     error
	funcs   []introspect.Result
	imports uint32
}

func newInteractiveModel(filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "export name"
	ti.Prompt = "/ "
	ti.Width = 40
	return &interactiveModel{
		filename: filename,
		filter:   ti,
		state:    stateBrowse,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *interactiveModel) loadModule() tea.Msg {
	data, err := introspect.Load(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	r, err := introspect.Inspect(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	funcs, err := r.Functions()
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{funcs: funcs, imports: r.FunctionImports()}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loaded = true
		m.err = msg.err
		m.funcs = msg.funcs
		m.imports = msg.imports
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateBrowse {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "enter":
			switch m.state {
			case stateBrowse:
				if len(m.visible) > 0 {
					m.state = stateDetail
				}
			case stateDetail:
				m.state = stateBrowse
			}

		case "esc":
			m.state = stateBrowse
		}
	}

	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filter.Blur()
		m.state = stateBrowse
		if msg.String() == "esc" {
			m.filter.SetValue("")
			m.applyFilter()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *interactiveModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, f := range m.funcs {
		if needle == "" || strings.Contains(strings.ToLower(f.Name), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) current() (introspect.Result, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return introspect.Result{}, false
	}
	return m.funcs[m.visible[m.selected]], true
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("wasm-sig"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d function exports, %d imported functions", len(m.funcs), m.imports)))
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse, stateFilter:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(dimStyle.Render("no matching function exports"))
			b.WriteString("\n")
		}
		for i, idx := range m.visible {
			line := formatFunc(m.funcs[idx])
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + introspect.FormatResult(m.funcs[idx])))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("type to filter • enter keep • esc clear"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • / filter • enter details • q quit"))
		}

	case stateDetail:
		f, _ := m.current()
		b.WriteString(detailView(f))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}

	return b.String()
}

func formatFunc(f introspect.Result) string {
	if f.Status == introspect.ImportedFunctionExport {
		return funcStyle.Render(f.Name) + dimStyle.Render(fmt.Sprintf(" funcidx=%d (imported)", f.FuncIndex))
	}
	return funcStyle.Render(f.Name) +
		dimStyle.Render(fmt.Sprintf(" funcidx=%d typeidx=%d ", f.FuncIndex, f.TypeIndex)) +
		"(" + styledTypes(f.Params) + ") -> (" + styledTypes(f.Results) + ")"
}

func styledTypes(types []string) string {
	styled := make([]string, len(types))
	for i, t := range types {
		styled[i] = typeStyle.Render(t)
	}
	return strings.Join(styled, ", ")
}

func detailView(f introspect.Result) string {
	var b strings.Builder

	b.WriteString(funcStyle.Render(f.Name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  function index  %d\n", f.FuncIndex)
	if f.Status == introspect.ImportedFunctionExport {
		b.WriteString("  imported function, signature not available\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  type index      %d\n\n", f.TypeIndex)

	writeTypes := func(label string, types []string) {
		fmt.Fprintf(&b, "  %s\n", label)
		if len(types) == 0 {
			b.WriteString(dimStyle.Render("    (none)"))
			b.WriteString("\n")
		}
		for i, t := range types {
			fmt.Fprintf(&b, "    %d  %s", i, typeStyle.Render(t))
			if lifts := liftCandidates(t); len(lifts) > 0 {
				b.WriteString(dimStyle.Render("  lowered from " + strings.Join(lifts, " | ")))
			}
			b.WriteString("\n")
		}
	}
	writeTypes("params", f.Params)
	writeTypes("results", f.Results)
	return b.String()
}

// scalars are the WIT primitives that flatten to a single core value.
var scalars = []wit.Primitive{
	wit.Bool{}, wit.U8{}, wit.S8{}, wit.U16{}, wit.S16{}, wit.U32{}, wit.S32{}, wit.Char{},
	wit.U64{}, wit.S64{}, wit.F32{}, wit.F64{},
}

// lowerings maps a core value type to the WIT primitives whose canonical ABI
// flattening produces it, in scalars order.
var lowerings = func() map[string][]string {
	m := make(map[string][]string)
	for _, p := range scalars {
		flat := p.Flat()
		if len(flat) != 1 {
			continue
		}
		core := flatCoreType(flat[0])
		if core == "" {
			continue
		}
		m[core] = append(m[core], p.WIT(nil, ""))
	}
	return m
}()

func flatCoreType(t wit.Type) string {
	switch t.(type) {
	case wit.U32:
		return "i32"
	case wit.U64:
		return "i64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	default:
		return ""
	}
}

// liftCandidates lists the component-model primitive types whose canonical
// ABI lowering is the given core value type.
func liftCandidates(core string) []string {
	return lowerings[core]
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
