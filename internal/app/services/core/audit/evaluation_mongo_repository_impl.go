package audit

import (
	"context"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/app/models"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EvaluationMongoRepository struct {
	Collection *mongo.Collection
}

func NewEvaluationMongoRepository(db *mongo.Client, dbName string) contracts.EvaluationRepository {
	return &EvaluationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionEvaluations),
	}
}

func (repo *EvaluationMongoRepository) InsertEvaluation(ctx context.Context, record *models.EvaluationRecord) error {
	_, err := repo.Collection.InsertOne(ctx, record)
	if err != nil {
		return exceptions.ErrDBInsertDocument(err)
	}
	return nil
}

func (repo *EvaluationMongoRepository) FindEvaluations(ctx context.Context, page, pageSize int) ([]models.EvaluationRecord, int, error) {
	total, err := repo.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, exceptions.ErrDBFindDocument(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "evaluated_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := repo.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	records := make([]models.EvaluationRecord, 0, pageSize)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, exceptions.ErrDBFindDocument(err)
	}

	return records, int(total), nil
}
