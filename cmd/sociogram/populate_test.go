package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/agenthands/sociogram/internal/config"
	"github.com/agenthands/sociogram/internal/core"
	"github.com/agenthands/sociogram/internal/driver"
	"github.com/agenthands/sociogram/internal/driver/gremlintest"
	"github.com/agenthands/sociogram/internal/provision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvisionAPI struct {
	DatabaseErr error
}

func (s stubProvisionAPI) CreateDatabase(ctx context.Context, id string) error {
	return s.DatabaseErr
}

func (s stubProvisionAPI) CreateContainer(ctx context.Context, database, id, partitionKeyPath string) error {
	return nil
}

// scriptedDriver fails the statement at FailAt (1-based) with Err.
type scriptedDriver struct {
	FailAt    int
	Err       error
	Submitted []string
	Closed    bool
}

func (d *scriptedDriver) Submit(ctx context.Context, statement string) ([]any, error) {
	d.Submitted = append(d.Submitted, statement)
	if len(d.Submitted) == d.FailAt {
		return nil, d.Err
	}
	return []any{map[string]any{"id": statement}}, nil
}

func (d *scriptedDriver) Close(ctx context.Context) error {
	d.Closed = true
	return nil
}

func stubProvisioning(t *testing.T, api provision.API) {
	t.Helper()
	prev := newProvisionAPI
	newProvisionAPI = func(*config.Config) (provision.API, error) { return api, nil }
	t.Cleanup(func() { newProvisionAPI = prev })
}

func stubDriver(t *testing.T, d driver.GraphDriver) {
	t.Helper()
	prev := openDriver
	openDriver = func(*config.Config) core.OpenFunc {
		return func(ctx context.Context) (driver.GraphDriver, error) { return d, nil }
	}
	t.Cleanup(func() { openDriver = prev })
}

func writeGremlinConfig(t *testing.T, host string, port int, withCosmos bool) string {
	t.Helper()
	var b strings.Builder
	if withCosmos {
		b.WriteString("[cosmos]\nendpoint = \"https://example.documents.azure.com:443/\"\nkey = \"c2VjcmV0\"\n\n")
	}
	fmt.Fprintf(&b, "[gremlin]\nhost = %q\nport = %d\nenable_tls = false\n\n", host, port)
	b.WriteString("[graph]\ndatabase = \"graphdb\"\ncontainer = \"people\"\n\n")
	b.WriteString("[run]\nseed = 11\nlog_level = \"error\"\n")

	path := filepath.Join(t.TempDir(), "sociogram.toml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func populate(t *testing.T, path string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetIn(strings.NewReader(""))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"populate", "--config", path})
	err := root.Execute()
	return out.String(), err
}

var totalPattern = regexp.MustCompile(`need to execute : (\d+)\.\.`)

func TestPopulate_ProvisioningFailureContinues(t *testing.T) {
	stubProvisioning(t, stubProvisionAPI{DatabaseErr: errors.New("forbidden")})
	server := gremlintest.NewServer(t, func(script string) gremlintest.Reply {
		if script == "g.V().drop()" {
			return gremlintest.Reply{Code: driver.StatusNoContent}
		}
		return gremlintest.Reply{Data: []any{map[string]any{"id": script}}}
	})

	out, err := populate(t, writeGremlinConfig(t, server.Host(), server.Port(), true))
	require.NoError(t, err)

	assert.Contains(t, out, "failed to create database 'graphdb': forbidden")
	assert.NotContains(t, out, "Created Collection")
	assert.Contains(t, out, "Graph constructed. B-)")

	m := totalPattern.FindStringSubmatch(out)
	require.NotNil(t, m)
	total, _ := strconv.Atoi(m[1])

	scripts := server.Scripts()
	require.Len(t, scripts, total)
	assert.Equal(t, "g.V().drop()", scripts[0])
	assert.Equal(t, "g.addV('person').property('id', 'Hazel').property('partitionKey', 'as')", scripts[1])
	assert.Contains(t, out, "Executing 1: Drop existing Graph.: g.V().drop().. error")
}

func TestPopulate_ProvisionedTarget(t *testing.T) {
	stubProvisioning(t, stubProvisionAPI{DatabaseErr: provision.ErrExists})
	d := &scriptedDriver{}
	stubDriver(t, d)

	out, err := populate(t, writeGremlinConfig(t, "localhost", 8182, true))
	require.NoError(t, err)

	assert.Contains(t, out, "Created Database: graphdb (existing)")
	assert.Contains(t, out, "Created Collection (Graph): people (created)")
	assert.Contains(t, out, "Graph constructed. B-)")
	assert.True(t, d.Closed)
}

func TestPopulate_ProtocolFailureFails(t *testing.T) {
	d := &scriptedDriver{
		FailAt: 3,
		Err: &driver.ProtocolError{
			StatusCode: 429,
			Attributes: map[string]any{driver.AttrRetryAfterMs: "00:00:00.0100000"},
		},
	}
	stubDriver(t, d)

	out, err := populate(t, writeGremlinConfig(t, "localhost", 8182, false))
	require.Error(t, err)

	pe, ok := driver.AsProtocolError(err)
	require.True(t, ok)
	assert.Equal(t, 429, pe.StatusCode)
	assert.Len(t, d.Submitted, 3)
	assert.True(t, d.Closed)
	assert.Contains(t, out, "\tRequest Error!")
	assert.Contains(t, out, "Run aborted: 3 of")
	assert.NotContains(t, out, "Graph constructed")
	assert.NotContains(t, out, "Created Database", "no cosmos account configured")
}

func TestPopulate_GenericFailureEndsQuietly(t *testing.T) {
	d := &scriptedDriver{FailAt: 2, Err: errors.New("connection reset")}
	stubDriver(t, d)

	out, err := populate(t, writeGremlinConfig(t, "localhost", 8182, false))
	require.NoError(t, err)

	assert.Len(t, d.Submitted, 2)
	assert.True(t, d.Closed)
	assert.Contains(t, out, "Error: connection reset")
	assert.Contains(t, out, "Run stopped: 2 of")
	assert.Contains(t, out, "Graph constructed. B-)")
}
