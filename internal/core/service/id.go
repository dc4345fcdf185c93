package service

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID mints a new hex object id for embedded documents (comments get
// their identity here, before persistence, so deletion can address them).
func NewID() string {
	return primitive.NewObjectID().Hex()
}
