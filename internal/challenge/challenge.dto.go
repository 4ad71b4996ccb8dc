package challenge

import "time"

type CreateChallengeRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// UpdateChallengeRequest carries the patchable fields. Nil means "leave as is".
// Server-controlled fields (participants, createdBy, timestamps) are never
// taken from the request body.
type UpdateChallengeRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type JoinChallengeResponse struct {
	Message         string `json:"message"`
	UserChallengeID string `json:"id"`
}
