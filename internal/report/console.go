package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agenthands/sociogram/internal/core/model"
	"github.com/agenthands/sociogram/internal/driver"
)

// Console writes line-oriented run diagnostics.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) RunStarted(total int) {
	fmt.Fprintf(c.w, "need to execute : %d..\n", total)
}

func (c *Console) StatementStarted(index int, st model.Statement) {
	fmt.Fprintf(c.w, "Executing %d: %s.: %s.. ", index, st.Description(), st.Text())
}

func (c *Console) StatementSucceeded(index int, st model.Statement, records []any) {
	fmt.Fprintln(c.w, "\tResult:")
	for _, rec := range records {
		fmt.Fprintf(c.w, "\t%s\n", jsonString(rec))
	}
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, "ok")
}

func (c *Console) StatementEmpty(index int, st model.Statement) {
	fmt.Fprintln(c.w, "error")
}

func (c *Console) ProtocolFailure(index int, st model.Statement, err *driver.ProtocolError) {
	fmt.Fprintln(c.w, "\tRequest Error!")
	fmt.Fprintf(c.w, "\tStatusCode: %d\n", err.StatusCode)
	if err.Message != "" {
		fmt.Fprintf(c.w, "\tMessage: %s\n", err.Message)
	}
	fmt.Fprintln(c.w, "\tStatusAttributes:")
	for _, key := range []string{driver.AttrStatusCode, driver.AttrRequestCharge, driver.AttrRetryAfterMs, driver.AttrActivityID} {
		fmt.Fprintf(c.w, "\t[%q] : %s\n", key, jsonString(err.Attribute(key)))
	}
}

func (c *Console) SubmissionFailed(index int, st model.Statement, err error) {
	fmt.Fprintf(c.w, "Error: %v\n", err)
}

func (c *Console) RunFinished(result model.RunResult) {
	fmt.Fprintf(c.w, "Run %s: %d of %d statements submitted\n", result.Outcome, result.Submitted, result.Total)
}

func jsonString(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
