package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-planner-service/internal/ports"
	"log"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// PublisherMetrics is implemented by the metrics collector.
type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	PublishObserve(d time.Duration)
	NATSSetConnected(connected bool)
}

// NATSPublisher emits plan events on <subject>.<outcome>.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
	metrics PublisherMetrics
}

func NewNATSPublisher(url, subject string, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("itinerary-planner"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, subject: subjectToken(subject), metrics: m}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}

// Subject returns the subject ev is published on.
func (p *NATSPublisher) Subject(ev ports.PlanEvent) string {
	return fmt.Sprintf("%s.%s", p.subject, subjectToken(ev.Outcome))
}

func (p *NATSPublisher) PublishPlan(ctx context.Context, ev ports.PlanEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("publish plan: marshal: %w", err)
	}

	start := time.Now()
	err = p.nc.Publish(p.Subject(ev), b)
	if p.metrics != nil {
		p.metrics.PublishObserve(time.Since(start))
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	if err != nil {
		return fmt.Errorf("publish plan: %w", err)
	}
	return nil
}

// subjectToken makes s safe as a single NATS subject token. Dots inside a
// configured base subject are kept so it can carry a hierarchy.
func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	repl := strings.NewReplacer(" ", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = strings.Trim(repl.Replace(s), ".")
	if s == "" {
		s = "_"
	}
	return s
}

// NopPublisher drops every event. Used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishPlan(ctx context.Context, ev ports.PlanEvent) error { return nil }
