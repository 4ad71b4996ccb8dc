package userchallenge

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusNotStarted = "Not Started"
	StatusOngoing    = "Ongoing"
	StatusFinished   = "Finished"
)

// UserChallenge links a Firebase user to a challenge they joined and tracks
// personal progress independent of the challenge document itself.
type UserChallenge struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID      string             `json:"userId" bson:"userId"`
	UserEmail   string             `json:"userEmail" bson:"userEmail"`
	ChallengeID primitive.ObjectID `json:"challengeId" bson:"challengeId"`
	Progress    int                `json:"progress" bson:"progress"`
	Status      string             `json:"status" bson:"status"`
	JoinDate    time.Time          `json:"joinDate" bson:"joinDate"`
	LastUpdate  time.Time          `json:"lastUpdate" bson:"lastUpdate"`
}

type UpdateProgressRequest struct {
	Progress int `json:"progress"`
}

// Participant is a join record enriched with public profile data pulled from
// the identity provider.
type Participant struct {
	ID          primitive.ObjectID `json:"_id"`
	DisplayName string             `json:"displayName"`
	Email       string             `json:"email,omitempty"`
	PhotoURL    string             `json:"photoURL,omitempty"`
	JoinDate    time.Time          `json:"joinDate"`
}
