package community

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/sociogram/internal/core/model"
)

// CommunityDetector groups the people of a sociogram into clusters of two or more.
type CommunityDetector interface {
	Detect(sg model.Sociogram) ([][]string, error)
}

// Grouping is the output of one detector.
type Grouping struct {
	Title    string
	Clusters [][]string
}

// Analyze runs the component and label propagation detectors over sg.
// A failing detector is left out of the result and reported in the error.
func Analyze(sg model.Sociogram) ([]Grouping, error) {
	detectors := []struct {
		title    string
		detector CommunityDetector
	}{
		{"Components", NewComponentDetector()},
		{"Communities", NewLabelPropagationDetector()},
	}

	var groupings []Grouping
	var errs []error
	for _, d := range detectors {
		clusters, err := d.detector.Detect(sg)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", strings.ToLower(d.title), err))
			continue
		}
		groupings = append(groupings, Grouping{Title: d.title, Clusters: clusters})
	}
	return groupings, errors.Join(errs...)
}

// ComponentDetector reports weakly connected components.
type ComponentDetector struct{}

func NewComponentDetector() CommunityDetector {
	return &ComponentDetector{}
}

func (d *ComponentDetector) Detect(sg model.Sociogram) ([][]string, error) {
	adj := undirected(sg)

	visited := make(map[string]bool)
	var communities [][]string

	for _, n := range sg.Names {
		if visited[n] {
			continue
		}
		members := make(map[string]bool)
		d.dfs(n, adj, visited, members)

		// Singletons are not clusters
		if len(members) < 2 {
			continue
		}
		component := make([]string, 0, len(members))
		for _, name := range sg.Names {
			if members[name] {
				component = append(component, name)
			}
		}
		communities = append(communities, component)
	}

	return communities, nil
}

func (d *ComponentDetector) dfs(u string, adj map[string]map[string]int, visited, members map[string]bool) {
	visited[u] = true
	members[u] = true
	for v := range adj[u] {
		if !visited[v] {
			d.dfs(v, adj, visited, members)
		}
	}
}

// undirected builds a weighted adjacency map; a mutual "knows" pair weighs 2.
func undirected(sg model.Sociogram) map[string]map[string]int {
	adj := make(map[string]map[string]int, len(sg.Names))
	for _, n := range sg.Names {
		adj[n] = make(map[string]int)
	}

	for _, e := range sg.Edges {
		if _, ok := adj[e.From]; !ok {
			continue
		}
		if _, ok := adj[e.To]; !ok {
			continue
		}
		adj[e.From][e.To]++
		adj[e.To][e.From]++
	}
	return adj
}
