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

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(mongoClient *client.MongoClient) *EmployeeRepository {
	repository := &EmployeeRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionEmployees)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *EmployeeRepository) ensureIndexes(contextValue context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(contextValue, model.EmployeeIndexes)
	return err
}

// stampEmployee 只補上呼叫端沒給的時間欄位
func stampEmployee(employee *model.Employee, nowUTC time.Time) {
	if employee.DateCreated.IsZero() {
		employee.DateCreated = nowUTC
	}
	if employee.LastUpdated.IsZero() {
		employee.LastUpdated = nowUTC
	}
}

func (repository *EmployeeRepository) Create(contextValue context.Context, employee *model.Employee) (*model.Employee, error) {
	stampEmployee(employee, time.Now().UTC())

	if _, err := repository.collection.InsertOne(contextValue, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (repository *EmployeeRepository) GetByID(contextValue context.Context, uid string) (*model.Employee, error) {
	var employee model.Employee
	if err := repository.collection.FindOne(contextValue, bson.M{"_id": uid}).Decode(&employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (repository *EmployeeRepository) Exists(contextValue context.Context, uid string) (bool, error) {
	count, err := repository.collection.CountDocuments(contextValue, bson.M{"_id": uid}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByShop 依流水號排序，且不回傳臨時密碼欄位
func (repository *EmployeeRepository) ListByShop(contextValue context.Context, shopID string) ([]*model.Employee, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "employeeNumber", Value: 1}}).
		SetProjection(bson.M{"temporaryPassword": 0})

	cursor, err := repository.collection.Find(contextValue, bson.M{"shopId": shopID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(contextValue)

	results := make([]*model.Employee, 0)
	for cursor.Next(contextValue) {
		var employee model.Employee
		if err := cursor.Decode(&employee); err != nil {
			return nil, err
		}
		results = append(results, &employee)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (repository *EmployeeRepository) UpdateStatus(contextValue context.Context, uid, status, updatedBy string, at time.Time) error {
	return repository.updateByID(contextValue, uid, bson.M{"$set": bson.M{
		"status":          status,
		"statusUpdatedBy": updatedBy,
		"lastUpdated":     at,
	}})
}

func (repository *EmployeeRepository) UpdatePassword(contextValue context.Context, uid, password, resetBy string, at time.Time) error {
	return repository.updateByID(contextValue, uid, bson.M{"$set": bson.M{
		"temporaryPassword": password,
		"passwordResetAt":   at,
		"passwordResetBy":   resetBy,
		"lastUpdated":       at,
	}})
}

func (repository *EmployeeRepository) updateByID(contextValue context.Context, uid string, update bson.M) error {
	result, err := repository.collection.UpdateOne(contextValue, bson.M{"_id": uid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repository *EmployeeRepository) Delete(contextValue context.Context, uid string) error {
	result, err := repository.collection.DeleteOne(contextValue, bson.M{"_id": uid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
