package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BatchLogEmployee struct {
	Email      string `json:"email" bson:"email"`
	EmployeeID string `json:"employeeId" bson:"employeeId"`
}

type BatchLogError struct {
	EmployeeNumber int    `json:"employeeNumber" bson:"employeeNumber"`
	Error          string `json:"error" bson:"error"`
}

// BatchLog 一次批次建立的紀錄，只新增不修改
type BatchLog struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	ShopID         string             `json:"shopId" bson:"shopId"`
	Timestamp      time.Time          `json:"timestamp" bson:"timestamp"`
	ShopOwnerID    string             `json:"shopOwnerId" bson:"shopOwnerId"`
	CountRequested int                `json:"countRequested" bson:"countRequested"`
	CountCreated   int                `json:"countCreated" bson:"countCreated"`
	CountFailed    int                `json:"countFailed" bson:"countFailed"`
	CountSkipped   int                `json:"countSkipped" bson:"countSkipped"`
	Exhausted      bool               `json:"exhausted" bson:"exhausted"`
	Employees      []BatchLogEmployee `json:"employees" bson:"employees"`
	Errors         []BatchLogError    `json:"errors" bson:"errors"`
}

var BatchLogIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_shopId_timestamp_desc"),
	},
}
