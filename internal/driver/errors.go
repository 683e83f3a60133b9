package driver

import (
	"errors"
	"fmt"
)

// Cosmos DB status attributes attached to Gremlin responses.
const (
	AttrStatusCode    = "x-ms-status-code"
	AttrRequestCharge = "x-ms-total-request-charge"
	AttrRetryAfterMs  = "x-ms-retry-after-ms"
	AttrActivityID    = "x-ms-activity-id"
)

// ProtocolError is a structured failure reported by the graph service itself,
// as opposed to transport or client-side errors.
type ProtocolError struct {
	StatusCode int
	Message    string
	Attributes map[string]any
}

func (e *ProtocolError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("graph service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("graph service returned status %d: %s", e.StatusCode, e.Message)
}

// Attribute returns the named status attribute, or nil when absent.
func (e *ProtocolError) Attribute(key string) any {
	if e.Attributes == nil {
		return nil
	}
	return e.Attributes[key]
}

func (e *ProtocolError) RetryAfter() any { return e.Attribute(AttrRetryAfterMs) }

func (e *ProtocolError) ActivityID() any { return e.Attribute(AttrActivityID) }

func AsProtocolError(err error) (*ProtocolError, bool) {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
