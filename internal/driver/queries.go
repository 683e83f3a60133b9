package driver

// Gremlin statement templates. Arguments must already be escaped with QuoteEscape.
const (
	GremlinDropAllQuery   = `g.V().drop()`
	GremlinAddVertexQuery = `g.addV('%s').property('id', '%s').property('%s', '%s')`
	GremlinAddEdgeQuery   = `g.V('%s').addE('%s').to(g.V('%s'))`

	GremlinCountVerticesQuery = `g.V().count()`
	GremlinCountEdgesQuery    = `g.E().count()`
)

// Cypher statement templates for Memgraph.
const (
	CypherDropAllQuery   = `MATCH (n) DETACH DELETE n`
	CypherAddVertexQuery = `CREATE (p:%s {id: '%s', %s: '%s'}) RETURN p`
	CypherAddEdgeQuery   = `
		MATCH (a {id: '%s'}), (b {id: '%s'})
		CREATE (a)-[k:%s]->(b)
		RETURN k
	`

	CypherCountVerticesQuery = `MATCH (n) RETURN count(n) AS count`
	CypherCountEdgesQuery    = `MATCH ()-[e]->() RETURN count(e) AS count`
)
