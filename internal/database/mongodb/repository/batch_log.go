package repository

import (
	"context"
	"time"

	"staffhub/internal/core"
	client "staffhub/internal/database/client"
	"staffhub/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BatchLogRepository struct {
	collection *mongo.Collection
}

func NewBatchLogRepository(mongoClient *client.MongoClient) *BatchLogRepository {
	repository := &BatchLogRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionEmployeeBatchLogs)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *BatchLogRepository) ensureIndexes(contextValue context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(contextValue, model.BatchLogIndexes)
	return err
}

func (repository *BatchLogRepository) Append(contextValue context.Context, batchLog *model.BatchLog) error {
	if batchLog.ID.IsZero() {
		batchLog.ID = primitive.NewObjectID()
	}
	if batchLog.Timestamp.IsZero() {
		batchLog.Timestamp = time.Now().UTC()
	}
	_, err := repository.collection.InsertOne(contextValue, batchLog)
	return err
}

// ListByShop 由新到舊
func (repository *BatchLogRepository) ListByShop(contextValue context.Context, shopID string, limit int64) ([]*model.BatchLog, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := repository.collection.Find(contextValue, bson.M{"shopId": shopID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(contextValue)

	results := make([]*model.BatchLog, 0)
	if err := cursor.All(contextValue, &results); err != nil {
		return nil, err
	}
	return results, nil
}
