package network

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/doclens/doclens/pkg/pipeline"
)

// Node is a person kept in the network with its file-appearance count
type Node struct {
	Name        string `json:"name"`
	Appearances int    `json:"appearances"`
}

// Edge is a co-occurrence between two persons; Weight counts the files in
// which both appear. From < To lexicographically.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// Network is the filtered co-occurrence graph
type Network struct {
	Nodes []Node // sorted by appearances desc
	Edges []Edge // sorted by weight desc

	graph  *simple.WeightedUndirectedGraph
	ids    map[string]int64
	names  map[int64]string
	counts map[string]int
}

// Build constructs the co-occurrence network from a file-to-persons map.
// Persons below MinAppearances are dropped before pairing; edges below
// MinEdgeWeight are dropped from the final graph.
func Build(filePersons map[string][]string, config *pipeline.AnalysisConfig) *Network {
	counts := make(map[string]int)
	for _, persons := range filePersons {
		for _, p := range persons {
			counts[p]++
		}
	}

	frequent := make(map[string]bool)
	for p, c := range counts {
		if c >= config.MinAppearances {
			frequent[p] = true
		}
	}

	weights := make(map[[2]string]int)
	for _, persons := range filePersons {
		inFile := make([]string, 0, len(persons))
		for _, p := range persons {
			if frequent[p] {
				inFile = append(inFile, p)
			}
		}
		if len(inFile) < 2 {
			continue
		}
		sort.Strings(inFile)
		for i := 0; i < len(inFile); i++ {
			for j := i + 1; j < len(inFile); j++ {
				weights[[2]string{inFile[i], inFile[j]}]++
			}
		}
	}

	net := &Network{
		ids:    make(map[string]int64),
		names:  make(map[int64]string),
		counts: counts,
		graph:  simple.NewWeightedUndirectedGraph(0, 0),
	}

	inNetwork := make(map[string]bool)
	for pair, w := range weights {
		if w < config.MinEdgeWeight {
			continue
		}
		net.Edges = append(net.Edges, Edge{From: pair[0], To: pair[1], Weight: w})
		inNetwork[pair[0]] = true
		inNetwork[pair[1]] = true
	}
	sort.Slice(net.Edges, func(i, j int) bool {
		if net.Edges[i].Weight != net.Edges[j].Weight {
			return net.Edges[i].Weight > net.Edges[j].Weight
		}
		if net.Edges[i].From != net.Edges[j].From {
			return net.Edges[i].From < net.Edges[j].From
		}
		return net.Edges[i].To < net.Edges[j].To
	})

	for name := range inNetwork {
		net.Nodes = append(net.Nodes, Node{Name: name, Appearances: counts[name]})
	}
	sort.Slice(net.Nodes, func(i, j int) bool {
		if net.Nodes[i].Appearances != net.Nodes[j].Appearances {
			return net.Nodes[i].Appearances > net.Nodes[j].Appearances
		}
		return net.Nodes[i].Name < net.Nodes[j].Name
	})

	for i, node := range net.Nodes {
		id := int64(i)
		net.ids[node.Name] = id
		net.names[id] = node.Name
		net.graph.AddNode(simple.Node(id))
	}
	for _, e := range net.Edges {
		net.graph.SetWeightedEdge(net.graph.NewWeightedEdge(
			simple.Node(net.ids[e.From]),
			simple.Node(net.ids[e.To]),
			float64(e.Weight),
		))
	}

	return net
}

// Appearances returns a person's file-appearance count, including persons
// that were filtered out of the graph.
func (n *Network) Appearances(name string) int {
	return n.counts[name]
}

// Degree returns the number of distinct co-occurrence partners of a person.
func (n *Network) Degree(name string) int {
	id, ok := n.ids[name]
	if !ok {
		return 0
	}
	return n.graph.From(id).Len()
}

// Density returns the graph density 2E / N(N-1), zero for trivial graphs.
func (n *Network) Density() float64 {
	nodes := len(n.Nodes)
	if nodes < 2 {
		return 0
	}
	return 2 * float64(len(n.Edges)) / float64(nodes*(nodes-1))
}

// TopByDegree returns up to limit node names ordered by degree descending,
// ties broken by name for stable output.
func (n *Network) TopByDegree(limit int) []string {
	type ranked struct {
		name   string
		degree int
	}
	all := make([]ranked, 0, len(n.Nodes))
	for _, node := range n.Nodes {
		all = append(all, ranked{node.Name, n.Degree(node.Name)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].degree != all[j].degree {
			return all[i].degree > all[j].degree
		}
		return all[i].name < all[j].name
	})

	if limit > len(all) {
		limit = len(all)
	}
	out := make([]string, 0, limit)
	for _, r := range all[:limit] {
		out = append(out, r.name)
	}
	return out
}

// Subgraph returns the network induced by keeping only the named nodes and
// the edges between them.
func (n *Network) Subgraph(keep []string) *Network {
	kept := make(map[string]bool, len(keep))
	for _, name := range keep {
		kept[name] = true
	}

	sub := &Network{
		ids:    make(map[string]int64),
		names:  make(map[int64]string),
		counts: n.counts,
		graph:  simple.NewWeightedUndirectedGraph(0, 0),
	}

	for _, node := range n.Nodes {
		if kept[node.Name] {
			sub.Nodes = append(sub.Nodes, node)
		}
	}
	for _, e := range n.Edges {
		if kept[e.From] && kept[e.To] {
			sub.Edges = append(sub.Edges, e)
		}
	}

	for i, node := range sub.Nodes {
		id := int64(i)
		sub.ids[node.Name] = id
		sub.names[id] = node.Name
		sub.graph.AddNode(simple.Node(id))
	}
	for _, e := range sub.Edges {
		sub.graph.SetWeightedEdge(sub.graph.NewWeightedEdge(
			simple.Node(sub.ids[e.From]),
			simple.Node(sub.ids[e.To]),
			float64(e.Weight),
		))
	}

	return sub
}
