package ports

import (
	"context"
	"time"
)

// PlanEvent summarises one planning call for downstream consumers.
type PlanEvent struct {
	RequestID            string    `json:"requestId"`
	Outcome              string    `json:"outcome"`
	Scenario             string    `json:"scenario,omitempty"`
	TotalDurationMinutes int       `json:"totalDurationMinutes,omitempty"`
	LegCount             int       `json:"legCount,omitempty"`
	PlannedAt            time.Time `json:"plannedAt"`
}

// Port: outbound notifications about planning outcomes.
type PlanEventPublisher interface {
	PublishPlan(ctx context.Context, ev PlanEvent) error
}
