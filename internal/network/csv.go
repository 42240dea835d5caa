package network

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteEdgesCSV writes the edge list as from,to,weight ordered by weight
// descending.
func WriteEdgesCSV(net *Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"from", "to", "weight"}); err != nil {
		return err
	}
	for _, e := range net.Edges {
		if err := w.Write([]string{e.From, e.To, fmt.Sprintf("%d", e.Weight)}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteNodesCSV writes the node list as name,appearances ordered by
// appearances descending.
func WriteNodesCSV(net *Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "appearances"}); err != nil {
		return err
	}
	for _, n := range net.Nodes {
		if err := w.Write([]string{n.Name, fmt.Sprintf("%d", n.Appearances)}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
