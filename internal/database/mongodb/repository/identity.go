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

// IdentityUpdate 只更新非 nil 欄位
type IdentityUpdate struct {
	Disabled     *bool
	PasswordHash *string
}

type IdentityRepository struct {
	collection *mongo.Collection
}

func NewIdentityRepository(mongoClient *client.MongoClient) *IdentityRepository {
	repository := &IdentityRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionIdentities)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *IdentityRepository) ensureIndexes(contextValue context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(contextValue, model.IdentityIndexes)
	return err
}

// Insert email 重複時回傳 duplicate key 錯誤（由 unique index 保證）
func (repository *IdentityRepository) Insert(contextValue context.Context, identity *model.Identity) error {
	nowUTC := time.Now().UTC()
	identity.CreatedAt = nowUTC
	identity.UpdatedAt = nowUTC
	_, err := repository.collection.InsertOne(contextValue, identity)
	return err
}

func (repository *IdentityRepository) GetByEmail(contextValue context.Context, email string) (*model.Identity, error) {
	var identity model.Identity
	if err := repository.collection.FindOne(contextValue, bson.M{"email": email}).Decode(&identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (repository *IdentityRepository) Update(contextValue context.Context, uid string, fields IdentityUpdate) error {
	set := bson.M{}
	if fields.Disabled != nil {
		set["disabled"] = *fields.Disabled
	}
	if fields.PasswordHash != nil {
		set["passwordHash"] = *fields.PasswordHash
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}

	result, err := repository.collection.UpdateOne(contextValue, bson.M{"_id": uid}, withUpdatedAt(update))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repository *IdentityRepository) Delete(contextValue context.Context, uid string) error {
	result, err := repository.collection.DeleteOne(contextValue, bson.M{"_id": uid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IdentityCursor 分頁位置：上一頁最後一筆的 (createdAt, _id)
type IdentityCursor struct {
	CreatedAt time.Time
	UID       string
}

// ListByOriginBefore 供對帳使用：指定來源且建立時間早於 before 的帳號，依 (createdAt, _id) 排序；
// after 不為 nil 時從該位置之後接續
func (repository *IdentityRepository) ListByOriginBefore(
	contextValue context.Context,
	origin string,
	before time.Time,
	after *IdentityCursor,
	limit int64,
) ([]*model.Identity, error) {
	filter := bson.M{
		"origin":    origin,
		"createdAt": bson.M{"$lt": before},
	}
	if after != nil {
		filter["$or"] = bson.A{
			bson.M{"createdAt": bson.M{"$gt": after.CreatedAt}},
			bson.M{"createdAt": after.CreatedAt, "_id": bson.M{"$gt": after.UID}},
		}
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := repository.collection.Find(contextValue, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(contextValue)

	results := make([]*model.Identity, 0)
	if err := cursor.All(contextValue, &results); err != nil {
		return nil, err
	}
	return results, nil
}
