package challenge

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Challenge struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title          string             `json:"title" bson:"title"`
	Description    string             `json:"description" bson:"description"`
	Category       string             `json:"category" bson:"category"`
	StartDate      time.Time          `json:"startDate" bson:"startDate"`
	EndDate        time.Time          `json:"endDate" bson:"endDate"`
	Participants   int                `json:"participants" bson:"participants"`
	CreatedBy      string             `json:"createdBy" bson:"createdBy"`
	CreatedByEmail string             `json:"createdByEmail" bson:"createdByEmail"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}
