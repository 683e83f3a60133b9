package core

import (
	"context"
	"fmt"

	"github.com/agenthands/sociogram/internal/core/model"
	"github.com/agenthands/sociogram/internal/driver"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OpenFunc acquires the driver used for a single run.
type OpenFunc func(ctx context.Context) (driver.GraphDriver, error)

// Observer receives per-statement progress. Index is 1-based.
type Observer interface {
	RunStarted(total int)
	StatementStarted(index int, st model.Statement)
	StatementSucceeded(index int, st model.Statement, records []any)
	StatementEmpty(index int, st model.Statement)
	ProtocolFailure(index int, st model.Statement, err *driver.ProtocolError)
	SubmissionFailed(index int, st model.Statement, err error)
	RunFinished(result model.RunResult)
}

// Runner submits statements strictly in order, once each, without retries.
type Runner struct {
	Open     OpenFunc
	Observer Observer
}

func NewRunner(open OpenFunc, observer Observer) *Runner {
	return &Runner{Open: open, Observer: observer}
}

func (r *Runner) Run(ctx context.Context, statements []model.Statement) (result model.RunResult) {
	result = model.RunResult{ID: uuid.NewString(), Outcome: model.Completed, Total: len(statements)}
	logger := log.With().Str("run_id", result.ID).Logger()
	logger.Info().Int("statements", len(statements)).Msg("Starting run")
	r.Observer.RunStarted(len(statements))
	defer func() { r.Observer.RunFinished(result) }()

	d, err := r.Open(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open graph driver")
		result.Outcome = model.Stopped
		result.Err = fmt.Errorf("failed to open graph driver: %w", err)
		r.Observer.SubmissionFailed(0, model.Statement{}, result.Err)
		return result
	}
	defer func() {
		if err := d.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn().Err(err).Msg("failed to close graph driver")
		}
	}()

	for i, st := range statements {
		index := i + 1
		r.Observer.StatementStarted(index, st)
		result.Submitted++

		records, err := d.Submit(ctx, st.Text())
		if err != nil {
			if pe, ok := driver.AsProtocolError(err); ok {
				logger.Error().Err(err).Int("index", index).Int("status", pe.StatusCode).Msg("statement rejected")
				r.Observer.ProtocolFailure(index, st, pe)
				result.Outcome = model.Aborted
				result.Err = fmt.Errorf("statement %d (%s): %w", index, st.Description(), err)
				return result
			}
			logger.Error().Err(err).Int("index", index).Msg("statement failed")
			r.Observer.SubmissionFailed(index, st, err)
			result.Outcome = model.Stopped
			result.Err = err
			return result
		}

		if len(records) == 0 {
			logger.Debug().Int("index", index).Msg("statement returned no records")
			r.Observer.StatementEmpty(index, st)
			continue
		}
		logger.Debug().Int("index", index).Int("records", len(records)).Msg("statement succeeded")
		r.Observer.StatementSucceeded(index, st, records)
	}

	return result
}
