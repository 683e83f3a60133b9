package driver

import (
	"context"
)

// GraphDriver submits one statement at a time to a graph service.
// Submit returns the result records in service order.
type GraphDriver interface {
	Submit(ctx context.Context, statement string) ([]any, error)
	Close(ctx context.Context) error
}
