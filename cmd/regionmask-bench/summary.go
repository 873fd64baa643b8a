package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/regionmask/pkg/mask"
	"github.com/dd0wney/regionmask/pkg/mesh"
	"github.com/dd0wney/regionmask/pkg/metrics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2).
			MarginRight(2)

	timingBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

type summary struct {
	mesh     *mesh.Mesh
	cfg      mask.Config
	locator  string
	result   *mask.Result
	meshTime time.Duration
	total    time.Duration
	families int
	batch    batchStats
}

type batchStats struct {
	regions int
	workers int
	elapsed time.Duration
}

func renderSummary(s summary) string {
	res := s.result

	var classes strings.Builder
	fmt.Fprintf(&classes, "Cells by class\n")
	values := make([]int, 0, len(res.LayerCounts))
	for v := range res.LayerCounts {
		values = append(values, v)
	}
	slices.Sort(values)
	for _, v := range values {
		fmt.Fprintf(&classes, "%-10s %8d\n", metrics.ClassLabel(v), res.LayerCounts[v])
	}
	fmt.Fprintf(&classes, "\nEdges inside    %6d\n", mask.Counts(res.Edge)[mask.Inside])
	fmt.Fprintf(&classes, "Vertices inside %6d", mask.Counts(res.Vertex)[mask.Inside])

	steps := 0
	for _, ts := range res.Trace {
		steps += ts.Steps()
	}

	timings := fmt.Sprintf(`Timings
mesh       %10s
trace      %10s
fill       %10s
relax      %10s
aggregate  %10s
total      %10s

Trace steps  %d
Interior cell %d`,
		round(s.meshTime),
		round(res.Timings[mask.PhaseTrace]),
		round(res.Timings[mask.PhaseFill]),
		round(res.Timings[mask.PhaseRelax]),
		round(res.Timings[mask.PhaseAggregate]),
		round(s.total),
		steps,
		res.InCell,
	)

	header := fmt.Sprintf("Region %q on %d cells / %d edges / %d vertices",
		res.Name, s.mesh.NumCells(), s.mesh.NumEdges(), s.mesh.NumVertices())
	footer := fmt.Sprintf("run %s | layers=%d strategy=%s pathfinder=%s locator=%s | %d metric families",
		res.RunID, s.cfg.NumLayers, s.cfg.Strategy, s.cfg.PathFinder, s.locator, s.families)

	if s.batch.regions > 0 {
		footer += fmt.Sprintf("\nbatch: %d regions on %d workers in %s", s.batch.regions, s.batch.workers, round(s.batch.elapsed))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(header),
		lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Render(classes.String()), timingBoxStyle.Render(timings)),
		helpStyle.Render(footer),
	)
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Microsecond)
}
