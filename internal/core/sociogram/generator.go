package sociogram

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/agenthands/sociogram/internal/core/model"
)

const DefaultMaxFanOut = 8

// Sampling selects how outgoing edge targets are drawn for one vertex.
type Sampling int

const (
	// SampleLegacy draws from indices [0, N-1) and then drops the source index.
	// A vertex can end up with fewer than MaxFanOut edges and the last name is
	// never a target. Kept for parity with graphs built by earlier runs.
	SampleLegacy Sampling = iota
	// SampleExcludeSelf draws from the N-1 indices other than the source.
	SampleExcludeSelf
)

func (s Sampling) String() string {
	switch s {
	case SampleLegacy:
		return "legacy"
	case SampleExcludeSelf:
		return "exclude-self"
	default:
		return "unknown"
	}
}

func ParseSampling(s string) (Sampling, error) {
	switch s {
	case "", "legacy":
		return SampleLegacy, nil
	case "exclude-self":
		return SampleExcludeSelf, nil
	default:
		return SampleLegacy, fmt.Errorf("unknown sampling policy: %s", s)
	}
}

type Generator struct {
	Dialect   Dialect
	Sampling  Sampling
	MaxFanOut int
	Rand      *rand.Rand
}

type Option func(*Generator)

func WithSampling(s Sampling) Option {
	return func(g *Generator) { g.Sampling = s }
}

func WithMaxFanOut(n int) Option {
	return func(g *Generator) { g.MaxFanOut = n }
}

func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.Rand = r }
}

// WithSeed makes generation reproducible.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func NewGenerator(dialect Dialect, opts ...Option) *Generator {
	g := &Generator{
		Dialect:   dialect,
		Sampling:  SampleLegacy,
		MaxFanOut: DefaultMaxFanOut,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.Rand == nil {
		g.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Build draws the random "knows" edges for names. Edges are grouped by source
// in input order; each source's targets keep their sampled order.
func (g *Generator) Build(names []string) model.Sociogram {
	sg := model.Sociogram{Names: append([]string(nil), names...)}

	for i, name := range names {
		for _, t := range g.targets(i, len(names)) {
			sg.Edges = append(sg.Edges, model.Edge{From: name, To: names[t]})
		}
	}
	return sg
}

func (g *Generator) targets(i, n int) []int {
	switch g.Sampling {
	case SampleExcludeSelf:
		if n <= 1 {
			return nil
		}
		perm := g.Rand.Perm(n - 1)
		if len(perm) > g.MaxFanOut {
			perm = perm[:g.MaxFanOut]
		}
		// shift indices at or past i to skip the source
		for k, idx := range perm {
			if idx >= i {
				perm[k] = idx + 1
			}
		}
		return perm
	default:
		if n <= 1 {
			return nil
		}
		perm := g.Rand.Perm(n - 1)
		if len(perm) > g.MaxFanOut {
			perm = perm[:g.MaxFanOut]
		}
		out := perm[:0]
		for _, idx := range perm {
			if idx != i {
				out = append(out, idx)
			}
		}
		return out
	}
}

// Statements renders sg as [reset, vertices..., edges...].
func (g *Generator) Statements(sg model.Sociogram) []model.Statement {
	out := make([]model.Statement, 0, 1+len(sg.Names)+len(sg.Edges))

	out = append(out, model.NewStatement("Drop existing Graph", g.Dialect.DropAll()))
	for _, name := range sg.Names {
		out = append(out, model.NewStatement("Add "+name, g.Dialect.AddVertex(name)))
	}
	for _, e := range sg.Edges {
		out = append(out, model.NewStatement(
			fmt.Sprintf("%s knows %s", e.From, e.To),
			g.Dialect.AddEdge(e.From, e.To),
		))
	}
	return out
}

func (g *Generator) Generate(names []string) []model.Statement {
	return g.Statements(g.Build(names))
}
