package tip

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tip struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title      string             `json:"title" bson:"title"`
	Content    string             `json:"content" bson:"content"`
	AuthorName string             `json:"authorName" bson:"authorName"`
	Upvotes    int                `json:"upvotes" bson:"upvotes"`
	CreatedBy  string             `json:"createdBy" bson:"createdBy"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

type CreateTipRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}
