package repository

import (
	"context"
	"time"

	"staffhub/internal/core"
	client "staffhub/internal/database/client"
	"staffhub/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShopEmployeeRepository struct {
	collection *mongo.Collection
}

func NewShopEmployeeRepository(mongoClient *client.MongoClient) *ShopEmployeeRepository {
	repository := &ShopEmployeeRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionShopEmployees)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *ShopEmployeeRepository) ensureIndexes(contextValue context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(contextValue, model.ShopEmployeeIndexes)
	return err
}

// Put 以 "<shopId>:<uid>" 覆寫索引項目
func (repository *ShopEmployeeRepository) Put(contextValue context.Context, membership *model.ShopEmployee) error {
	membership.ID = model.ShopEmployeeKey(membership.ShopID, membership.EmployeeID)
	if membership.DateAdded.IsZero() {
		membership.DateAdded = time.Now().UTC()
	}
	_, err := repository.collection.ReplaceOne(
		contextValue,
		bson.M{"_id": membership.ID},
		membership,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (repository *ShopEmployeeRepository) UpdateStatus(contextValue context.Context, shopID, uid, status string) error {
	result, err := repository.collection.UpdateOne(
		contextValue,
		bson.M{"_id": model.ShopEmployeeKey(shopID, uid)},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete 不存在時不視為錯誤
func (repository *ShopEmployeeRepository) Delete(contextValue context.Context, shopID, uid string) error {
	_, err := repository.collection.DeleteOne(contextValue, bson.M{"_id": model.ShopEmployeeKey(shopID, uid)})
	return err
}
