// Package events publishes quote lifecycle events over NATS with
// OpenTelemetry trace propagation, so external collaborators (storage,
// notifications, payments) can react to state changes.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"

	"github.com/openbay/quote-engine/engine/quote"
)

// Subjects for quote lifecycle events.
const (
	SubjectQuoteCreated      = "quotes.created"
	SubjectQuoteTransitioned = "quotes.transitioned"
)

// QuoteEvent is the wire shape of a lifecycle state change.
type QuoteEvent struct {
	QuoteID          string            `json:"quote_id"`
	ServiceRequestID string            `json:"service_request_id"`
	From             quote.QuoteStatus `json:"from,omitempty"`
	Status           quote.QuoteStatus `json:"status"`
	TotalCost        float64           `json:"total_cost"`
	At               time.Time         `json:"at"`
}

// natsHeaderCarrier adapts nats.Msg headers for OTel TextMapCarrier.
type natsHeaderCarrier nats.Msg

func (c *natsHeaderCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *natsHeaderCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *natsHeaderCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// Publish serializes v as JSON and publishes it to subject. Trace context
// from ctx is injected into the message headers.
func Publish[T any](ctx context.Context, nc *nats.Conn, subject string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
	}
	otel.GetTextMapPropagator().Inject(ctx, (*natsHeaderCarrier)(msg))
	return nc.PublishMsg(msg)
}

// Subscribe registers a handler for JSON messages of type T. Trace context
// is extracted from message headers; malformed messages are dropped.
func Subscribe[T any](nc *nats.Conn, subject string, handler func(context.Context, T)) (*nats.Subscription, error) {
	return nc.Subscribe(subject, func(msg *nats.Msg) {
		var v T
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			return
		}
		ctx := otel.GetTextMapPropagator().Extract(context.Background(), (*natsHeaderCarrier)(msg))
		handler(ctx, v)
	})
}

// Publisher emits quote events to NATS. A nil Publisher is a no-op, so
// callers can run without a broker configured.
type Publisher struct {
	nc *nats.Conn
}

// NewPublisher creates a Publisher over an established connection.
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

// QuoteCreated publishes a creation event for q.
func (p *Publisher) QuoteCreated(ctx context.Context, q quote.Quote) error {
	if p == nil || p.nc == nil {
		return nil
	}
	return Publish(ctx, p.nc, SubjectQuoteCreated, QuoteEvent{
		QuoteID:          q.ID,
		ServiceRequestID: q.ServiceRequestID,
		Status:           q.Status,
		TotalCost:        q.TotalCost,
		At:               q.CreatedAt,
	})
}

// QuoteTransitioned publishes a state-change event from -> q.Status.
func (p *Publisher) QuoteTransitioned(ctx context.Context, from quote.QuoteStatus, q quote.Quote) error {
	if p == nil || p.nc == nil {
		return nil
	}
	return Publish(ctx, p.nc, SubjectQuoteTransitioned, QuoteEvent{
		QuoteID:          q.ID,
		ServiceRequestID: q.ServiceRequestID,
		From:             from,
		Status:           q.Status,
		TotalCost:        q.TotalCost,
		At:               time.Now(),
	})
}
