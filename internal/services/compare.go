package services

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
)

// compareScenarios picks the winning scenario. The full-bike plan wins only
// when strictly faster than the bus plan or when there is no bus plan.
func compareScenarios(busScore int, busOK bool, bikeScore int, bikeOK bool) (domain.Scenario, error) {
	switch {
	case bikeOK && (!busOK || bikeScore < busScore):
		return domain.ScenarioFullBike, nil
	case busOK:
		return domain.ScenarioBus, nil
	default:
		return "", fmt.Errorf("compare scenarios: %w", domain.ErrNoItinerary)
	}
}
