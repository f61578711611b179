package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"sgf_engine/internal/domain/record"
	errs "sgf_engine/internal/errors"
)

const recordsCollection = "records"

type RecordRepository struct {
	log       *zap.SugaredLogger
	mongo     *mongo.Database
	pageLimit int
}

func NewRecordRepository(log *zap.SugaredLogger, mongo *mongo.Database, pageLimit int) *RecordRepository {
	return &RecordRepository{
		log:       log,
		mongo:     mongo,
		pageLimit: pageLimit,
	}
}

func (r *RecordRepository) Save(ctx context.Context, rec *record.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.mongo.Collection(recordsCollection).InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("insert record %s: %w", rec.ID, err)
	}
	return nil
}

func (r *RecordRepository) Get(ctx context.Context, id string) (*record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result record.Record
	err := r.mongo.Collection(recordsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", errs.ErrRecordNotFound, id)
		}
		return nil, err
	}
	return &result, nil
}

// List returns one page of records, newest first, without their SGF text.
func (r *RecordRepository) List(ctx context.Context, page int) (*record.RecordPage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection(recordsCollection)

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(pageOffset(page, r.pageLimit)).
		SetLimit(int64(r.pageLimit)).
		SetProjection(bson.M{"sgf": 0})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []record.Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return &record.RecordPage{
		PageNum:    page,
		TotalPages: totalPages(total, r.pageLimit),
		Records:    records,
	}, nil
}

func pageOffset(page, limit int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * limit)
}

func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}
