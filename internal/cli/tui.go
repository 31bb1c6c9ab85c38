package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/pipeline"
	"github.com/matzehuels/tubemap/pkg/transit"
)

const (
	// gridColumns is the number of line checkboxes per row.
	gridColumns = 3

	// resizeStep scales the canvas on each shrink or grow.
	resizeStep = 1.1

	cellWidth = 28
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Key Bindings
// =============================================================================

type exploreKeys struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Refresh key.Binding
	Shrink  key.Binding
	Grow    key.Binding
	Quit    key.Binding
}

func newExploreKeys() exploreKeys {
	return exploreKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "toggle")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		None:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "remove all")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Shrink:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "shrink")),
		Grow:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "grow")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.All, k.None, k.Refresh, k.Shrink, k.Grow, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.All, k.None, k.Refresh},
		{k.Shrink, k.Grow, k.Quit},
	}
}

// =============================================================================
// ExploreModel - Interactive line selection
// =============================================================================

// ExploreModel is the bubbletea model for the explore command: a grid of line
// checkboxes driving an explorer session. Every refresh writes the map to
// Output.
type ExploreModel struct {
	ctx      context.Context
	explorer *pipeline.Explorer
	lines    []transit.Line

	Output string
	Cursor int

	keys   exploreKeys
	help   help.Model
	status string
	err    error
}

// NewExploreModel creates a model over ex. The caller runs the first refresh.
func NewExploreModel(ctx context.Context, ex *pipeline.Explorer, output string) ExploreModel {
	return ExploreModel{
		ctx:      ctx,
		explorer: ex,
		lines:    ex.Lines(),
		Output:   output,
		keys:     newExploreKeys(),
		help:     help.New(),
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.Cursor-gridColumns >= 0 {
				m.Cursor -= gridColumns
			}
		case key.Matches(msg, m.keys.Down):
			if m.Cursor+gridColumns < len(m.lines) {
				m.Cursor += gridColumns
			}
		case key.Matches(msg, m.keys.Left):
			if m.Cursor > 0 {
				m.Cursor--
			}
		case key.Matches(msg, m.keys.Right):
			if m.Cursor < len(m.lines)-1 {
				m.Cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if len(m.lines) > 0 {
				m.apply(m.explorer.Toggle(m.ctx, m.lines[m.Cursor].Name))
			}
		case key.Matches(msg, m.keys.All):
			m.apply(m.explorer.SelectAll(m.ctx))
		case key.Matches(msg, m.keys.None):
			m.apply(m.explorer.SelectNone(m.ctx))
		case key.Matches(msg, m.keys.Refresh):
			m.apply(m.explorer.Refresh(m.ctx))
		case key.Matches(msg, m.keys.Shrink):
			m.resize(1 / resizeStep)
		case key.Matches(msg, m.keys.Grow):
			m.resize(resizeStep)
		}
	}
	return m, nil
}

// apply records a refresh result and writes the map.
func (m *ExploreModel) apply(res *pipeline.Result) {
	m.status = fmt.Sprintf("%d lines · %d stations · %d segments",
		res.Stats.Lines, res.Stats.Nodes, res.Stats.Edges)
	m.save()
}

// resize scales the canvas. The graph is not rebuilt; the canvas lays itself
// out again and the caption follows the legend.
func (m *ExploreModel) resize(factor float64) {
	w, h := m.explorer.Size()
	m.explorer.Resize(w*factor, h*factor)
	w, h = m.explorer.Size()
	m.status = fmt.Sprintf("canvas %.0f×%.0f", w, h)
	m.save()
}

func (m *ExploreModel) save() {
	if m.Output == "" {
		return
	}
	m.err = writeOutput(m.Output, m.explorer.SVG())
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Lines"))
	b.WriteString("\n\n")

	for i, l := range m.lines {
		box := "[ ]"
		if m.explorer.Selected(l.Name) {
			box = "[x]"
		}
		label := box + " " + l.Name

		style := listNormalStyle
		if i == m.Cursor {
			style = listSelectedStyle
		} else if !m.explorer.Selected(l.Name) {
			style = listDimStyle
		}
		cell := swatch(l.Color) + " " + style.Render(label)
		b.WriteString(lipgloss.NewStyle().Width(cellWidth).Render(cell))

		if (i+1)%gridColumns == 0 || i == len(m.lines)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.status != "":
		b.WriteString(StyleDim.Render(m.status))
		if m.Output != "" {
			b.WriteString(StyleDim.Render(" " + iconArrow + " " + m.Output))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// exploreCommand creates the explore command, the interactive host for an
// explorer session.
func (c *CLI) exploreCommand() *cobra.Command {
	var data dataFlags
	var linesStr, output string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Select lines interactively and redraw the map on every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), data, parseList(linesStr), output)
		},
	}

	data.register(cmd)
	cmd.Flags().StringVarP(&linesStr, "lines", "l", "", "initially selected lines (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", defaultOutput+".svg", "SVG file rewritten on every refresh")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, in io.Reader, out io.Writer, data dataFlags, lines []string, output string) error {
	n, err := c.loadNetwork(ctx, data)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		lines = slices.Clone(c.Config.Lines.Initial)
	}

	// The session must not log while the program owns the terminal.
	opts := c.pipelineOptions(ctx)
	opts.Logger = nil
	ex := pipeline.NewExplorer(n, opts, lines...)

	m := NewExploreModel(ctx, ex, output)
	m.apply(ex.Refresh(ctx))
	if m.err != nil {
		return m.err
	}

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(ExploreModel); ok && fm.Output != "" {
		printSuccess(out, "Map written after %d refreshes", ex.Refreshes())
		printFile(out, fm.Output)
	}
	return nil
}
