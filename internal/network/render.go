package network

import (
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog/log"
)

const (
	minSymbolSize = 8.0
	maxSymbolSize = 45.0
)

// RenderHTML writes an interactive force-directed visualization of the
// network to path.
func RenderHTML(net *Network, title, path string) error {
	maxAppearances := 0
	for _, n := range net.Nodes {
		if n.Appearances > maxAppearances {
			maxAppearances = n.Appearances
		}
	}

	nodes := make([]opts.GraphNode, 0, len(net.Nodes))
	for _, n := range net.Nodes {
		nodes = append(nodes, opts.GraphNode{
			Name:       n.Name,
			SymbolSize: symbolSize(n.Appearances, maxAppearances),
			Value:      float32(n.Appearances),
		})
	}

	links := make([]opts.GraphLink, 0, len(net.Edges))
	for _, e := range net.Edges {
		links = append(links, opts.GraphLink{
			Source: e.From,
			Target: e.To,
			Value:  float32(e.Weight),
		})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "100vh",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)

	graph.AddSeries(
		"co-occurrence",
		nodes,
		links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:             "force",
			Force:              &opts.GraphForce{Repulsion: 800, EdgeLength: 60},
			Roam:               opts.Bool(true),
			FocusNodeAdjacency: opts.Bool(true),
			Draggable:          opts.Bool(true),
		}),
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(true),
		}),
	)

	page := components.NewPage()
	page.SetLayout(components.PageNoneLayout)
	page.AddCharts(graph)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return err
	}

	log.Info().
		Str("path", path).
		Int("nodes", len(nodes)).
		Int("edges", len(links)).
		Msg("Rendered network visualization")
	return nil
}

// symbolSize scales node size with the square root of appearances so the
// heavy hitters do not drown everything else.
func symbolSize(appearances, maxAppearances int) float32 {
	if maxAppearances <= 0 {
		return float32(minSymbolSize)
	}
	scale := math.Sqrt(float64(appearances)) / math.Sqrt(float64(maxAppearances))
	return float32(minSymbolSize + (maxSymbolSize-minSymbolSize)*scale)
}
