package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/numlab/radwave/internal/potential"
	"github.com/numlab/radwave/internal/quantum"
	"github.com/numlab/radwave/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Viewer is a bubbletea model that browses the channels of a stored run
// and can toggle between wavefunction and potential views.
type Viewer struct {
	meta     store.RunMetadata
	channels []quantum.Wavefunction
	model    potential.Model

	idx           int
	showPotential bool
	width         int
}

// NewViewer builds a viewer for a loaded run. The potential model is
// resolved from the run's metadata; an unknown shape falls back to
// Woods-Saxon since the viewer is diagnostic, not authoritative.
func NewViewer(meta store.RunMetadata, channels []quantum.Wavefunction) *Viewer {
	model, err := potential.Lookup(meta.Potential)
	if err != nil {
		model = potential.WoodsSaxon
	}
	return &Viewer{meta: meta, channels: channels, model: model, width: plotWidth}
}

func (v *Viewer) Init() tea.Cmd { return nil }

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "left", "h":
			if v.idx > 0 {
				v.idx--
			}
		case "right", "l":
			if v.idx < len(v.channels)-1 {
				v.idx++
			}
		case "p":
			v.showPotential = !v.showPotential
		}
	}
	return v, nil
}

func (v *Viewer) View() string {
	var b strings.Builder

	title := fmt.Sprintf("run %s", v.meta.ID)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	width := v.width - 10
	if width < 20 {
		width = plotWidth
	}

	if v.showPotential {
		b.WriteString(labelStyle.Render("effective potential V(r)"))
		b.WriteString("\n")
		b.WriteString(v.plotPotential(width))
	} else {
		ch := v.meta.Channels
		label := fmt.Sprintf("channel %d/%d", v.idx+1, len(v.channels))
		if v.idx < len(ch) {
			label = fmt.Sprintf("channel %d/%d  l=%d  E=%.3f MeV", v.idx+1, len(v.channels), ch[v.idx].L, ch[v.idx].Energy)
			if ch[v.idx].Label != "" {
				label += "  " + ch[v.idx].Label
			}
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(asciigraph.Plot(v.channels[v.idx],
			asciigraph.Height(plotHeight),
			asciigraph.Width(width),
			asciigraph.Caption("u(r)"),
		))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("←/→ channel   p potential   q quit"))
	b.WriteString("\n")
	return b.String()
}

func (v *Viewer) plotPotential(width int) string {
	g := v.meta.Grid()
	p := potential.Params{Depth: v.meta.Depth, Radius: v.meta.Radius, Diffuseness: v.meta.Diffuseness}

	vs := make([]float64, g.NumPoints())
	for i := range vs {
		vs[i] = v.model(g.R(i), p)
	}
	return asciigraph.Plot(vs,
		asciigraph.Height(plotHeight),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s, V0=%g MeV", v.meta.Potential, v.meta.Depth)),
	)
}

// Run starts the interactive viewer and blocks until it exits.
func Run(meta store.RunMetadata, channels []quantum.Wavefunction) error {
	_, err := tea.NewProgram(NewViewer(meta, channels)).Run()
	return err
}
