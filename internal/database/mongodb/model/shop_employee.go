package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ShopEmployee 店鋪 → 員工索引，_id 為 "<shopId>:<uid>"
type ShopEmployee struct {
	ID         string    `json:"-" bson:"_id"`
	ShopID     string    `json:"shopId" bson:"shopId"`
	EmployeeID string    `json:"employeeId" bson:"employeeId"`
	Email      string    `json:"email" bson:"email"`
	Status     string    `json:"status" bson:"status"`
	DateAdded  time.Time `json:"dateAdded" bson:"dateAdded"`
}

func ShopEmployeeKey(shopID, uid string) string {
	return shopID + ":" + uid
}

var ShopEmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "dateAdded", Value: 1}},
		Options: options.Index().SetName("idx_shopId_dateAdded"),
	},
}
