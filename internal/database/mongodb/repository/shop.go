package repository

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/core"
	client "staffhub/internal/database/client"
	"staffhub/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShopRepository struct {
	collection *mongo.Collection
}

func NewShopRepository(mongoClient *client.MongoClient) *ShopRepository {
	repository := &ShopRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionShops)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *ShopRepository) ensureIndexes(contextValue context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(contextValue, model.ShopIndexes)
	return err
}

func (repository *ShopRepository) GetByID(contextValue context.Context, id string) (*model.Shop, error) {
	var shop model.Shop
	if err := repository.collection.FindOne(contextValue, bson.M{"_id": id}).Decode(&shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

// OwnerExists 店主授權僅以紀錄是否存在判斷
func (repository *ShopRepository) OwnerExists(contextValue context.Context, ownerID string) (bool, error) {
	count, err := repository.collection.CountDocuments(contextValue, bson.M{"_id": ownerID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LastEmployeeNumber 尚未建立過員工的店鋪回傳 0
func (repository *ShopRepository) LastEmployeeNumber(contextValue context.Context, shopID string) (int, error) {
	shop, err := repository.GetByID(contextValue, shopID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return shop.LastEmployeeNumber, nil
}

// AdvanceLastEmployeeNumber 以 $max 推進流水號，永不倒退；回傳更新後的值
func (repository *ShopRepository) AdvanceLastEmployeeNumber(contextValue context.Context, shopID string, number int) (int, error) {
	update := withUpdatedAt(bson.M{
		"$max":         bson.M{"lastEmployeeNumber": number},
		"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
	})
	findOptions := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var shop model.Shop
	if err := repository.collection.FindOneAndUpdate(contextValue, bson.M{"_id": shopID}, update, findOptions).Decode(&shop); err != nil {
		return 0, err
	}
	return shop.LastEmployeeNumber, nil
}

// Register 建立或更新店主 / 店鋪紀錄，不會重設既有流水號
func (repository *ShopRepository) Register(contextValue context.Context, shop *model.Shop) error {
	set := bson.M{"name": shop.Name}
	if shop.OwnerID != "" {
		set["ownerId"] = shop.OwnerID
	}
	update := withUpdatedAt(bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"createdAt":          time.Now().UTC(),
			"lastEmployeeNumber": 0,
		},
	})
	_, err := repository.collection.UpdateOne(contextValue, bson.M{"_id": shop.ID}, update, options.Update().SetUpsert(true))
	return err
}
