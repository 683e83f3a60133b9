package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/sociogram/internal/core/community"
	"github.com/agenthands/sociogram/internal/core/model"
)

// PrintSummary describes a generated sociogram before it is submitted.
func PrintSummary(w io.Writer, sg model.Sociogram, groupings []community.Grouping) {
	fmt.Fprintf(w, "Sociogram: %d people, %d \"knows\" edges\n", len(sg.Names), len(sg.Edges))
	for _, name := range sg.Names {
		fmt.Fprintf(w, "\t%-10s knows %d, known by %d\n", name, sg.OutDegree(name), sg.InDegree(name))
	}
	for _, g := range groupings {
		if len(g.Clusters) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s: %d\n", g.Title, len(g.Clusters))
		for i, c := range g.Clusters {
			fmt.Fprintf(w, "\t#%d: %s\n", i+1, strings.Join(c, ", "))
		}
	}
}

// PrintStatements lists statements without submitting them.
func PrintStatements(w io.Writer, statements []model.Statement) {
	for i, st := range statements {
		fmt.Fprintf(w, "%d: %s.: %s\n", i+1, st.Description(), st.Text())
	}
}

// Verification compares live graph counts with the generated cast.
type Verification struct {
	Vertices  int64
	Edges     int64
	People    int
	MaxFanOut int
}

func (v Verification) OK() bool {
	return v.Vertices == int64(v.People) && v.Edges <= int64(v.MaxFanOut*v.People)
}

func PrintVerification(w io.Writer, v Verification) {
	fmt.Fprintf(w, "Vertices: %d (expected %d)\n", v.Vertices, v.People)
	fmt.Fprintf(w, "Edges: %d (at most %d)\n", v.Edges, v.MaxFanOut*v.People)
	if v.OK() {
		fmt.Fprintln(w, "Graph verified.")
	} else {
		fmt.Fprintln(w, "Graph does not match the generated sociogram.")
	}
}
