// Command build-network builds the person co-occurrence network from the
// extracted names and writes the CSV exports plus interactive visualizations.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/doclens/doclens/internal/names"
	"github.com/doclens/doclens/internal/network"
	"github.com/doclens/doclens/pkg/logging"
	"github.com/doclens/doclens/pkg/pipeline"
)

const topSubgraphSize = 100

func main() {
	in := flag.String("in", "", "extracted names JSON (default from config)")
	flag.Parse()

	config := pipeline.DefaultPipelineConfig()
	if *in != "" {
		config.DataPaths.NamesJSON = *in
	}

	if err := logging.SetupLogger(config.Logging); err != nil {
		fmt.Printf("Failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	filePersons, err := names.LoadNames(config.DataPaths.NamesJSON)
	if err != nil {
		fmt.Printf("Cannot load %s: %v\n", config.DataPaths.NamesJSON, err)
		fmt.Println("Run extract-names first.")
		os.Exit(1)
	}

	fmt.Println("Co-occurrence Network")
	fmt.Println("=====================")
	fmt.Printf("Input: %d files, %d unique persons\n\n",
		len(filePersons), names.UniquePersons(filePersons))

	net := network.Build(filePersons, config.Analysis)

	fmt.Printf("Network: %d nodes, %d edges, density %.4f\n",
		len(net.Nodes), len(net.Edges), net.Density())
	fmt.Printf("(persons with >=%d appearances, edges with weight >=%d)\n\n",
		config.Analysis.MinAppearances, config.Analysis.MinEdgeWeight)

	fmt.Println("Top 15 by degree:")
	for i, name := range net.TopByDegree(15) {
		fmt.Printf("  %2d. %-40s degree %d, %d appearances\n",
			i+1, name, net.Degree(name), net.Appearances(name))
	}

	fmt.Println()
	fmt.Println("Top 20 co-occurrences:")
	top := net.Edges
	if len(top) > 20 {
		top = top[:20]
	}
	for i, e := range top {
		fmt.Printf("  %2d. %s -- %s (%d files)\n", i+1, e.From, e.To, e.Weight)
	}

	paths := config.DataPaths
	if err := network.WriteEdgesCSV(net, paths.EdgesCSV); err != nil {
		fmt.Printf("Failed to write edges: %v\n", err)
		os.Exit(1)
	}
	if err := network.WriteNodesCSV(net, paths.NodesCSV); err != nil {
		fmt.Printf("Failed to write nodes: %v\n", err)
		os.Exit(1)
	}

	if err := network.RenderHTML(net, "Person Co-occurrence Network", paths.NetworkHTML); err != nil {
		fmt.Printf("Failed to render network map: %v\n", err)
		os.Exit(1)
	}
	top100 := net.Subgraph(net.TopByDegree(topSubgraphSize))
	if err := network.RenderHTML(top100, "Person Co-occurrence Network (Top 100)", paths.NetworkTopHTML); err != nil {
		fmt.Printf("Failed to render top-100 map: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Saved: %s, %s, %s, %s\n",
		paths.EdgesCSV, paths.NodesCSV, paths.NetworkHTML, paths.NetworkTopHTML)
}
