package publisher

import (
	"context"
	"itinerary-planner-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectToken(t *testing.T) {
	tests := map[string]string{
		"planner.plans":  "planner.plans",
		" no itinerary ": "no_itinerary",
		"a>b*c/d":        "a_b_c_d",
		".trailing.":     "trailing",
		"":               "_",
	}
	for in, want := range tests {
		assert.Equal(t, want, subjectToken(in), "input %q", in)
	}
}

func TestSubjectIncludesOutcome(t *testing.T) {
	p := &NATSPublisher{subject: subjectToken("planner.plans")}

	assert.Equal(t, "planner.plans.ok", p.Subject(ports.PlanEvent{Outcome: "ok"}))
	assert.Equal(t, "planner.plans.no_itinerary", p.Subject(ports.PlanEvent{Outcome: "no_itinerary"}))
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "planner.plans", nil)
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p ports.PlanEventPublisher = NopPublisher{}
	assert.NoError(t, p.PublishPlan(context.Background(), ports.PlanEvent{Outcome: "ok"}))
}
