package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrExists is returned by an API when the resource is already present.
// Ensure counts it as success.
var ErrExists = errors.New("resource already exists")

// API creates the storage resources backing a graph.
type API interface {
	CreateDatabase(ctx context.Context, id string) error
	CreateContainer(ctx context.Context, database, id, partitionKeyPath string) error
}

type Status int

const (
	Skipped Status = iota
	Created
	Existing
	Failed
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Existing:
		return "existing"
	case Failed:
		return "failed"
	default:
		return "skipped"
	}
}

// Result reports what happened to each resource. A failed database leaves the
// container Skipped.
type Result struct {
	Database  Status
	Container Status
	Err       error
}

// Ready reports whether both resources are known to exist.
func (r Result) Ready() bool {
	ok := func(s Status) bool { return s == Created || s == Existing }
	return ok(r.Database) && ok(r.Container)
}

type Provisioner struct {
	API API
}

func NewProvisioner(api API) *Provisioner {
	return &Provisioner{API: api}
}

// Ensure creates the database and container when missing. It never fails the
// caller: errors are logged and returned inside Result.
func (p *Provisioner) Ensure(ctx context.Context, database, container, partitionKeyPath string) Result {
	var res Result

	res.Database, res.Err = classify(p.API.CreateDatabase(ctx, database))
	if res.Err != nil {
		res.Err = fmt.Errorf("failed to create database '%s': %w", database, res.Err)
		log.Error().Err(res.Err).Msg("provisioning failed")
		return res
	}
	log.Info().Str("database", database).Stringer("status", res.Database).Msg("database ready")

	res.Container, res.Err = classify(p.API.CreateContainer(ctx, database, container, partitionKeyPath))
	if res.Err != nil {
		res.Err = fmt.Errorf("failed to create container '%s': %w", container, res.Err)
		log.Error().Err(res.Err).Msg("provisioning failed")
		return res
	}
	log.Info().Str("container", container).Stringer("status", res.Container).Msg("container ready")

	return res
}

func classify(err error) (Status, error) {
	switch {
	case err == nil:
		return Created, nil
	case errors.Is(err, ErrExists):
		return Existing, nil
	default:
		return Failed, err
	}
}
