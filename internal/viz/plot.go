// Package viz renders wavefunctions in the terminal: one-shot asciigraph
// plots for the CLI and an interactive bubbletea viewer for stored runs.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/numlab/radwave/internal/quantum"
)

const (
	plotWidth  = 80
	plotHeight = 15
)

// Plot renders a single wavefunction against its radial grid.
func Plot(u quantum.Wavefunction, g quantum.Grid, caption string) string {
	if caption == "" {
		caption = fmt.Sprintf("u(r), h=%g fm, rmax=%g fm", g.Step, g.RMax)
	}
	return asciigraph.Plot(u,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotChannels renders one graph per channel, labeled by the channel's
// metadata when available.
func PlotChannels(channels []quantum.Wavefunction, labels []string, g quantum.Grid) string {
	var b strings.Builder
	for i, u := range channels {
		caption := fmt.Sprintf("channel %d", i)
		if i < len(labels) && labels[i] != "" {
			caption = fmt.Sprintf("channel %d (%s)", i, labels[i])
		}
		b.WriteString(Plot(u, g, caption))
		b.WriteString("\n\n")
	}
	return b.String()
}
