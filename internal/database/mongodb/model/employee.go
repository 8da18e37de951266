package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Employee _id 沿用目錄服務配發的 uid
type Employee struct {
	ID                string     `json:"id" bson:"_id"`
	Name              string     `json:"name" bson:"name"`
	Role              string     `json:"role" bson:"role"`
	Permissions       []string   `json:"permissions" bson:"permissions"`
	ShopID            string     `json:"shopId" bson:"shopId"`
	ShopOwnerID       string     `json:"shopOwnerId" bson:"shopOwnerId"`
	Email             string     `json:"email" bson:"email"`
	TemporaryPassword string     `json:"temporaryPassword,omitempty" bson:"temporaryPassword,omitempty"`
	EmployeeID        string     `json:"employeeId" bson:"employeeId"`
	EmployeeNumber    int        `json:"employeeNumber" bson:"employeeNumber"`
	Status            string     `json:"status" bson:"status"`
	CreatedBy         string     `json:"createdBy" bson:"createdBy"`
	IsBatchGenerated  bool       `json:"isBatchGenerated" bson:"isBatchGenerated"`
	StatusUpdatedBy   string     `json:"statusUpdatedBy,omitempty" bson:"statusUpdatedBy,omitempty"`
	PasswordResetAt   *time.Time `json:"passwordResetAt,omitempty" bson:"passwordResetAt,omitempty"`
	PasswordResetBy   string     `json:"passwordResetBy,omitempty" bson:"passwordResetBy,omitempty"`
	DateCreated       time.Time  `json:"dateCreated" bson:"dateCreated"`
	LastUpdated       time.Time  `json:"lastUpdated" bson:"lastUpdated"`
}

var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "employeeId", Value: 1}},
		Options: options.Index().SetName("uniq_shopId_employeeId").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "employeeNumber", Value: 1}},
		Options: options.Index().SetName("idx_shopId_employeeNumber"),
	},
	{
		Keys:    bson.D{{Key: "shopOwnerId", Value: 1}},
		Options: options.Index().SetName("idx_shopOwnerId"),
	},
}
