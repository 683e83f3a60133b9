package core

import (
	"context"
	"fmt"

	"github.com/agenthands/sociogram/internal/core/model"
	"github.com/agenthands/sociogram/internal/driver"
)

type MockDriver struct {
	Submitted []string
	Results   map[string][]any
	Errs      map[string]error
	Closed    int
}

func (m *MockDriver) Submit(ctx context.Context, statement string) ([]any, error) {
	m.Submitted = append(m.Submitted, statement)
	if err := m.Errs[statement]; err != nil {
		return nil, err
	}
	if res, ok := m.Results[statement]; ok {
		return res, nil
	}
	return []any{map[string]any{"id": statement}}, nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	m.Closed++
	return nil
}

func (m *MockDriver) Open(ctx context.Context) (driver.GraphDriver, error) {
	return m, nil
}

// RecordingObserver keeps a flat event log.
type RecordingObserver struct {
	Events []string
	Final  model.RunResult
}

func (o *RecordingObserver) RunStarted(total int) {
	o.Events = append(o.Events, fmt.Sprintf("start %d", total))
}

func (o *RecordingObserver) StatementStarted(index int, st model.Statement) {
	o.Events = append(o.Events, fmt.Sprintf("exec %d", index))
}

func (o *RecordingObserver) StatementSucceeded(index int, st model.Statement, records []any) {
	o.Events = append(o.Events, fmt.Sprintf("ok %d", index))
}

func (o *RecordingObserver) StatementEmpty(index int, st model.Statement) {
	o.Events = append(o.Events, fmt.Sprintf("empty %d", index))
}

func (o *RecordingObserver) ProtocolFailure(index int, st model.Statement, err *driver.ProtocolError) {
	o.Events = append(o.Events, fmt.Sprintf("protocol %d %d", index, err.StatusCode))
}

func (o *RecordingObserver) SubmissionFailed(index int, st model.Statement, err error) {
	o.Events = append(o.Events, fmt.Sprintf("failed %d", index))
}

func (o *RecordingObserver) RunFinished(result model.RunResult) {
	o.Final = result
	o.Events = append(o.Events, "finish "+result.Outcome.String())
}
