package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(ctx context.Context, uri, username, password string) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}

	log.Info().Str("uri", uri).Msg("Connected to Memgraph")
	return &MemgraphDriver{Driver: driver}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) Submit(ctx context.Context, statement string) ([]any, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, statement, nil, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fromNeo4jError(err)
	}

	records := make([]any, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, rec.AsMap())
	}
	return records, nil
}

// BuildIndices creates the lookup index used by edge statements.
func (d *MemgraphDriver) BuildIndices(ctx context.Context, label string) error {
	queries := []string{
		fmt.Sprintf("CREATE INDEX ON :%s(id);", label),
	}

	var errs []error
	for _, q := range queries {
		if _, err := d.Submit(ctx, q); err != nil {
			errs = append(errs, fmt.Errorf("failed to create index (%s): %w", q, err))
		}
	}
	return errors.Join(errs...)
}

// fromNeo4jError maps server-side Neo4j errors onto ProtocolError so the runner
// treats them like Gremlin status failures. Client and transport errors pass through.
func fromNeo4jError(err error) error {
	var neoErr *neo4j.Neo4jError
	if !errors.As(err, &neoErr) {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	classification, category := "", ""
	// Neo.<Classification>.<Category>.<Title>
	if parts := strings.Split(neoErr.Code, "."); len(parts) >= 3 {
		classification, category = parts[1], parts[2]
	}

	status := 500
	switch classification {
	case "ClientError":
		status = 400
	case "TransientError":
		status = 503
	}

	return &ProtocolError{
		StatusCode: status,
		Message:    neoErr.Msg,
		Attributes: map[string]any{
			"code":           neoErr.Code,
			"classification": classification,
			"category":       category,
		},
	}
}
