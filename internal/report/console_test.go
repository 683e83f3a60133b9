package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/agenthands/sociogram/internal/core/community"
	"github.com/agenthands/sociogram/internal/core/model"
	"github.com/agenthands/sociogram/internal/driver"
	"github.com/stretchr/testify/assert"
)

func TestConsole_Success(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	st := model.NewStatement("Add Hazel", "g.addV('person')")

	c.RunStarted(2)
	c.StatementStarted(1, st)
	c.StatementSucceeded(1, st, []any{map[string]any{"id": "Hazel"}})

	out := buf.String()
	assert.Contains(t, out, "need to execute : 2..")
	assert.Contains(t, out, "Executing 1: Add Hazel.: g.addV('person').. ")
	assert.Contains(t, out, "\t{\"id\":\"Hazel\"}\n")
	assert.Contains(t, out, "ok\n")
}

func TestConsole_EmptyAndGenericFailure(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	st := model.NewStatement("Drop existing Graph", "g.V().drop()")

	c.StatementEmpty(1, st)
	c.SubmissionFailed(2, st, errors.New("connection reset"))
	c.RunFinished(model.RunResult{Outcome: model.Stopped, Submitted: 2, Total: 5})

	out := buf.String()
	assert.Contains(t, out, "error\n")
	assert.Contains(t, out, "Error: connection reset\n")
	assert.Contains(t, out, "Run stopped: 2 of 5 statements submitted")
}

func TestConsole_ProtocolFailure(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.ProtocolFailure(3, model.NewStatement("Hazel knows Isaac", "g.V('Hazel')"), &driver.ProtocolError{
		StatusCode: 597,
		Attributes: map[string]any{
			driver.AttrStatusCode:   429,
			driver.AttrActivityID:   "act-1",
			driver.AttrRetryAfterMs: "00:00:00.0100000",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "\tRequest Error!\n")
	assert.Contains(t, out, "\tStatusCode: 597\n")
	assert.Contains(t, out, "\t[\"x-ms-status-code\"] : 429\n")
	assert.Contains(t, out, "\t[\"x-ms-total-request-charge\"] : null\n")
	assert.Contains(t, out, "\t[\"x-ms-retry-after-ms\"] : \"00:00:00.0100000\"\n")
	assert.Contains(t, out, "\t[\"x-ms-activity-id\"] : \"act-1\"\n")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	sg := model.Sociogram{
		Names: []string{"A", "B"},
		Edges: []model.Edge{{From: "A", To: "B"}},
	}

	PrintSummary(&buf, sg, []community.Grouping{
		{Title: "Components", Clusters: [][]string{{"A", "B"}}},
		{Title: "Communities"},
	})

	out := buf.String()
	assert.Contains(t, out, "Sociogram: 2 people, 1 \"knows\" edges")
	assert.Contains(t, out, "Components: 1\n\t#1: A, B")
	assert.NotContains(t, out, "Communities")
}

func TestVerification(t *testing.T) {
	v := Verification{Vertices: 14, Edges: 90, People: 14, MaxFanOut: 8}
	assert.True(t, v.OK())

	v.Vertices = 13
	assert.False(t, v.OK())

	var buf bytes.Buffer
	PrintVerification(&buf, v)
	assert.Contains(t, buf.String(), "does not match")
}
