package sociogram

import (
	"fmt"
	"strings"

	"github.com/agenthands/sociogram/internal/driver"
)

// Dialect renders sociogram elements as query text for one graph service.
type Dialect interface {
	Name() string
	DropAll() string
	AddVertex(name string) string
	AddEdge(from, to string) string
	CountVertices() string
	CountEdges() string
}

// Schema holds the labels and partition property stamped on generated elements.
type Schema struct {
	VertexLabel       string
	EdgeLabel         string
	PartitionProperty string
	PartitionValue    string
}

func DefaultSchema() Schema {
	return Schema{
		VertexLabel:       "person",
		EdgeLabel:         "knows",
		PartitionProperty: "partitionKey",
		PartitionValue:    "as",
	}
}

// PartitionProperty turns a partition key path such as "/partitionKey" into the property name.
func PartitionProperty(path string) string {
	return strings.TrimPrefix(path, "/")
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// QuoteEscape escapes s for use inside a single-quoted string literal.
func QuoteEscape(s string) string {
	return quoteEscaper.Replace(s)
}

type Gremlin struct {
	Schema Schema
}

func NewGremlin(schema Schema) *Gremlin {
	return &Gremlin{Schema: schema}
}

func (g *Gremlin) Name() string { return "gremlin" }

func (g *Gremlin) DropAll() string { return driver.GremlinDropAllQuery }

func (g *Gremlin) AddVertex(name string) string {
	return fmt.Sprintf(driver.GremlinAddVertexQuery,
		QuoteEscape(g.Schema.VertexLabel),
		QuoteEscape(name),
		QuoteEscape(g.Schema.PartitionProperty),
		QuoteEscape(g.Schema.PartitionValue))
}

func (g *Gremlin) AddEdge(from, to string) string {
	return fmt.Sprintf(driver.GremlinAddEdgeQuery,
		QuoteEscape(from),
		QuoteEscape(g.Schema.EdgeLabel),
		QuoteEscape(to))
}

func (g *Gremlin) CountVertices() string { return driver.GremlinCountVerticesQuery }

func (g *Gremlin) CountEdges() string { return driver.GremlinCountEdgesQuery }

// Cypher renders the same graph for Memgraph. Labels and property names are
// emitted as identifiers and are expected to be plain words.
type Cypher struct {
	Schema Schema
}

func NewCypher(schema Schema) *Cypher {
	return &Cypher{Schema: schema}
}

func (c *Cypher) Name() string { return "cypher" }

func (c *Cypher) DropAll() string { return driver.CypherDropAllQuery }

func (c *Cypher) AddVertex(name string) string {
	return fmt.Sprintf(driver.CypherAddVertexQuery,
		c.Schema.VertexLabel,
		QuoteEscape(name),
		c.Schema.PartitionProperty,
		QuoteEscape(c.Schema.PartitionValue))
}

func (c *Cypher) AddEdge(from, to string) string {
	return fmt.Sprintf(driver.CypherAddEdgeQuery,
		QuoteEscape(from),
		QuoteEscape(to),
		c.Schema.EdgeLabel)
}

func (c *Cypher) CountVertices() string { return driver.CypherCountVerticesQuery }

func (c *Cypher) CountEdges() string { return driver.CypherCountEdgesQuery }
