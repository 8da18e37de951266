package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Identity 目錄服務帳號；PasswordHash 為 bcrypt
type Identity struct {
	UID           string    `json:"uid" bson:"_id"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"passwordHash"`
	EmailVerified bool      `json:"emailVerified" bson:"emailVerified"`
	Disabled      bool      `json:"disabled" bson:"disabled"`
	Origin        string    `json:"origin,omitempty" bson:"origin,omitempty"`
	ShopID        string    `json:"shopId,omitempty" bson:"shopId,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

var IdentityIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "origin", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("idx_origin_createdAt_id"),
	},
}
