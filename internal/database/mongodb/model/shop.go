package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Shop 同時承載店主紀錄（_id = shopOwnerId）與店鋪流水號（_id = shopId）
type Shop struct {
	ID                 string    `json:"id" bson:"_id"`
	Name               string    `json:"name,omitempty" bson:"name,omitempty"`
	OwnerID            string    `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	LastEmployeeNumber int       `json:"lastEmployeeNumber" bson:"lastEmployeeNumber"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updatedAt"`
}

var ShopIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "ownerId", Value: 1}},
		Options: options.Index().SetName("idx_ownerId").SetSparse(true),
	},
}
