package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/supplyon/gremcos"
	"github.com/supplyon/gremcos/interfaces"
)

// Gremlin Server status codes that carry results.
const (
	StatusSuccess        = 200
	StatusNoContent      = 204
	StatusPartialContent = 206
)

type GremlinSettings struct {
	URL      string
	Username string
	Password string
}

// GremlinDriver submits Gremlin scripts to a Gremlin Server endpoint such as Cosmos DB.
type GremlinDriver struct {
	client *gremcos.Cosmos
}

func NewGremlinDriver(ctx context.Context, settings GremlinSettings) (*GremlinDriver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := gremcos.New(settings.URL,
		gremcos.WithAuth(settings.Username, settings.Password),
		gremcos.WithLogger(log.Logger.With().Str("component", "gremcos").Logger()),
		gremcos.NumMaxActiveConnections(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gremlin client: %w", err)
	}

	log.Info().Str("url", settings.URL).Str("user", settings.Username).Msg("Connected to Gremlin endpoint")
	return &GremlinDriver{client: client}, nil
}

type execution struct {
	responses []interfaces.Response
	err       error
}

func (d *GremlinDriver) Submit(ctx context.Context, statement string) ([]any, error) {
	done := make(chan execution, 1)
	go func() {
		responses, err := d.client.Execute(statement)
		done <- execution{responses: responses, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to execute query: %w", ctx.Err())
	case exec := <-done:
		if err := fromGremlinResponses(exec.responses, exec.err); err != nil {
			return nil, err
		}
		return decodeResponses(exec.responses)
	}
}

func (d *GremlinDriver) Close(ctx context.Context) error {
	return d.client.Stop()
}

// gremcos reports some statuses only through the error text.
var gremlinStatusMarkers = []struct {
	marker string
	code   int
}{
	{"UNAUTHORIZED", 401},
	{"AUTHENTICATE", 407},
	{"MALFORMED REQUEST", 498},
	{"INVALID REQUEST ARGUMENTS", 499},
	{"SERVER ERROR", 500},
	{"SCRIPT EVALUATION ERROR", 597},
	{"SERVER TIMEOUT", 598},
	{"SERVER SERIALIZATION ERROR", 599},
}

func fromGremlinResponses(responses []interfaces.Response, err error) error {
	for _, r := range responses {
		switch r.Status.Code {
		case StatusSuccess, StatusNoContent, StatusPartialContent:
			continue
		}
		return &ProtocolError{
			StatusCode: r.Status.Code,
			Message:    r.Status.Message,
			Attributes: r.Status.Attributes,
		}
	}
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, m := range gremlinStatusMarkers {
		if strings.Contains(msg, m.marker) {
			return &ProtocolError{StatusCode: m.code, Message: msg}
		}
	}
	return fmt.Errorf("failed to execute query: %w", err)
}

func decodeResponses(responses []interfaces.Response) ([]any, error) {
	var records []any
	for _, r := range responses {
		v, err := decodeValue(r.Result.Data)
		if err != nil {
			return nil, err
		}
		switch val := v.(type) {
		case nil:
		case []any:
			records = append(records, val...)
		default:
			records = append(records, val)
		}
	}
	return records, nil
}
