package events

import "time"

const (
	TypeAssessmentCompleted = "ASSESSMENT_COMPLETED"
	TypeRoadmapGenerated    = "ROADMAP_GENERATED"
)

// NewAssessmentCompleted is emitted once an analysis has been stored for a user.
func NewAssessmentCompleted(userID, email, name, flow, primaryProfile string) BaseEvent {
	return BaseEvent{
		Type: TypeAssessmentCompleted,
		Data: map[string]interface{}{
			"user_id":         userID,
			"email":           email,
			"name":            name,
			"flow":            flow,
			"primary_profile": primaryProfile,
		},
		OccurredAt: time.Now(),
	}
}

func NewRoadmapGenerated(userID, email, name, role string, duration int) BaseEvent {
	return BaseEvent{
		Type: TypeRoadmapGenerated,
		Data: map[string]interface{}{
			"user_id":  userID,
			"email":    email,
			"name":     name,
			"role":     role,
			"duration": duration,
		},
		OccurredAt: time.Now(),
	}
}
