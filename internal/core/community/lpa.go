package community

import (
	"sort"

	"github.com/agenthands/sociogram/internal/core/model"
)

// LabelPropagationDetector implements community detection using Label Propagation Algorithm (LPA).
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(sg model.Sociogram) ([][]string, error) {
	if len(sg.Names) == 0 {
		return nil, nil
	}

	adj := undirected(sg)

	// Each person starts in their own community
	labels := make(map[string]string, len(sg.Names))
	for _, n := range sg.Names {
		labels[n] = n
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		for _, u := range sg.Names {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				labelCounts[label] += weight
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			var candidates []string
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}

			// Lexicographically largest label wins ties so runs are stable
			sort.Strings(candidates)
			bestLabel := candidates[len(candidates)-1]

			if labels[u] != bestLabel {
				labels[u] = bestLabel
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	clusters := make(map[string][]string)
	var order []string
	for _, n := range sg.Names {
		label := labels[n]
		if _, ok := clusters[label]; !ok {
			order = append(order, label)
		}
		clusters[label] = append(clusters[label], n)
	}

	var communities [][]string
	for _, label := range order {
		if cluster := clusters[label]; len(cluster) >= 2 {
			communities = append(communities, cluster)
		}
	}

	return communities, nil
}
