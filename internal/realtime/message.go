package realtime

import "github.com/google/uuid"

type SSEEvent string

const (
	SSEEventToast                 SSEEvent = "Toast"
	SSEEventOnboardingStepChanged SSEEvent = "OnboardingStepChanged"
	SSEEventOnboardingCompleted   SSEEvent = "OnboardingCompleted"
	SSEEventProfileUpdated        SSEEvent = "ProfileUpdated"
	SSEEventAvatarUpdated         SSEEvent = "AvatarUpdated"
	SSEEventGenerationCreated     SSEEvent = "GenerationCreated"
	SSEEventCarouselNavigated     SSEEvent = "CarouselNavigated"
)

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// UserChannel is the channel every stream of a user is subscribed to.
func UserChannel(userID uuid.UUID) string {
	return "user:" + userID.String()
}
