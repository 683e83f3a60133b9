//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/sociogram/internal/core"
	"github.com/agenthands/sociogram/internal/core/model"
	"github.com/agenthands/sociogram/internal/core/sociogram"
	"github.com/agenthands/sociogram/internal/driver"
	"github.com/agenthands/sociogram/internal/report"
)

func openMemgraph(t *testing.T) core.OpenFunc {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	user := os.Getenv("MEMGRAPH_USER")
	pwd := os.Getenv("MEMGRAPH_PASSWORD")

	return func(ctx context.Context) (driver.GraphDriver, error) {
		return driver.NewMemgraphDriver(ctx, uri, user, pwd)
	}
}

func countOf(t *testing.T, d driver.GraphDriver, query string) int64 {
	t.Helper()
	records, err := d.Submit(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, records, 1)
	n, ok := records[0].(map[string]any)["count"].(int64)
	require.True(t, ok)
	return n
}

func TestPopulateMemgraph(t *testing.T) {
	open := openMemgraph(t)
	ctx := context.Background()

	dialect := sociogram.NewCypher(sociogram.DefaultSchema())
	gen := sociogram.NewGenerator(dialect, sociogram.WithSeed(2024), sociogram.WithSampling(sociogram.SampleExcludeSelf))
	names := sociogram.Names()
	sg := gen.Build(names)

	runner := core.NewRunner(open, report.NewConsole(os.Stdout))
	result := runner.Run(ctx, gen.Statements(sg))

	require.Equal(t, model.Completed, result.Outcome, "run error: %v", result.Err)
	assert.Equal(t, 1+len(names)+len(sg.Edges), result.Submitted)

	d, err := open(ctx)
	require.NoError(t, err)
	defer d.Close(ctx)

	assert.Equal(t, int64(len(names)), countOf(t, d, dialect.CountVertices()))
	assert.Equal(t, int64(len(sg.Edges)), countOf(t, d, dialect.CountEdges()))
}

func TestPopulateMemgraph_RerunResetsGraph(t *testing.T) {
	open := openMemgraph(t)
	ctx := context.Background()

	dialect := sociogram.NewCypher(sociogram.DefaultSchema())
	names := sociogram.Names()

	var last model.Sociogram
	for seed := int64(1); seed <= 2; seed++ {
		gen := sociogram.NewGenerator(dialect, sociogram.WithSeed(seed))
		last = gen.Build(names)
		result := core.NewRunner(open, report.NewConsole(os.Stdout)).Run(ctx, gen.Statements(last))
		require.Equal(t, model.Completed, result.Outcome)
	}

	d, err := open(ctx)
	require.NoError(t, err)
	defer d.Close(ctx)

	assert.Equal(t, int64(len(names)), countOf(t, d, dialect.CountVertices()))
	assert.Equal(t, int64(len(last.Edges)), countOf(t, d, dialect.CountEdges()))
}

func TestProtocolFailureAbortsRun(t *testing.T) {
	open := openMemgraph(t)

	statements := []model.Statement{
		model.NewStatement("Drop existing Graph", "MATCH (n) DETACH DELETE n"),
		model.NewStatement("Broken", "CREATE (p:person {id: 'x'}"),
		model.NewStatement("Never sent", "CREATE (p:person {id: 'y'}) RETURN p"),
	}

	result := core.NewRunner(open, report.NewConsole(os.Stdout)).Run(context.Background(), statements)

	assert.Equal(t, model.Aborted, result.Outcome)
	assert.Equal(t, 2, result.Submitted)
	_, ok := driver.AsProtocolError(result.Failure())
	assert.True(t, ok)
}

func TestBuildIndices_Repeatable(t *testing.T) {
	open := openMemgraph(t)
	ctx := context.Background()

	d, err := open(ctx)
	require.NoError(t, err)
	defer d.Close(ctx)

	mg, ok := d.(*driver.MemgraphDriver)
	require.True(t, ok)
	assert.NoError(t, mg.BuildIndices(ctx, "person"))
	assert.NoError(t, mg.BuildIndices(ctx, "person"), "an existing index is not an error")
}
